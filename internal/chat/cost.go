package chat

import "math"

// modelPricing holds per-token USD prices. Prices follow the public OpenAI
// rate card and need a manual bump when it changes.
type modelPricing struct {
	promptPerToken     float64
	completionPerToken float64
}

var pricingTable = map[string]modelPricing{
	"gpt-4o-mini":   {promptPerToken: 0.150 / 1_000_000, completionPerToken: 0.600 / 1_000_000},
	"gpt-4o":        {promptPerToken: 2.50 / 1_000_000, completionPerToken: 10.00 / 1_000_000},
	"gpt-3.5-turbo": {promptPerToken: 0.50 / 1_000_000, completionPerToken: 1.50 / 1_000_000},
}

// EstimateCost returns the USD cost of one exchange, rounded to 6 decimals.
// Unknown models are priced as gpt-4o-mini rather than failing the exchange.
func EstimateCost(model string, promptTokens, completionTokens int) float64 {
	pricing, ok := pricingTable[model]
	if !ok {
		pricing = pricingTable["gpt-4o-mini"]
	}

	cost := float64(promptTokens)*pricing.promptPerToken +
		float64(completionTokens)*pricing.completionPerToken
	return math.Round(cost*1e6) / 1e6
}
