package chat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mlafitness/backend/internal/telemetry/metrics"
	"github.com/mlafitness/backend/internal/telemetry/tracing"
)

// ErrModelUnavailable wraps any model API failure that survives retries.
var ErrModelUnavailable = errors.New("model unavailable")

const (
	defaultTemperature     = 0.7
	defaultPresencePenalty = 0.1
	defaultFreqPenalty     = 0.1
	modelCallMaxRetries    = 3
)

// Usage is the token accounting for one completed exchange.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCost    float64 `json:"estimated_cost"`
}

// Completion is one successful model reply.
type Completion struct {
	Text  string
	Usage Usage
}

//go:generate mockgen -source=$GOFILE -destination=client_mocks_test.go -package=chat_test

// completionAPI is the slice of the OpenAI client the Client needs.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client calls the chat completion API with the app's fixed sampling
// parameters and retries transient failures with exponential backoff.
type Client struct {
	api       completionAPI
	model     string
	maxTokens int
	timeout   time.Duration

	metricsManager *metrics.Manager
}

type NewClientParams struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	MetricsManager *metrics.Manager
}

func NewClient(params NewClientParams) *Client {
	return &Client{
		api:            openai.NewClient(params.APIKey),
		model:          params.Model,
		maxTokens:      params.MaxTokens,
		timeout:        params.Timeout,
		metricsManager: params.MetricsManager,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends the system prompt plus conversation turns to the model.
// Replies are short by design: the token cap keeps the coach persona terse
// and the per-exchange cost predictable.
func (c *Client) Complete(ctx context.Context, systemPrompt string, turns []Turn) (*Completion, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chat.client.complete")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(
		attribute.String("model", c.model),
		attribute.Int("turns", len(turns)),
	)

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:            c.model,
		Messages:         messages,
		MaxTokens:        c.maxTokens,
		Temperature:      defaultTemperature,
		PresencePenalty:  defaultPresencePenalty,
		FrequencyPenalty: defaultFreqPenalty,
	}

	callStart := time.Now()
	var resp openai.ChatCompletionResponse
	resp, err = c.doWithRetry(ctx, req)
	c.metricsManager.HistModelCallDuration.Observe(time.Since(callStart).Seconds())
	if err != nil {
		c.metricsManager.CounterModelCallFailures.Inc()
		err = fmt.Errorf("%w: %s", ErrModelUnavailable, err)
		return nil, err
	}

	usage := Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
		EstimatedCost:    EstimateCost(c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	}

	return &Completion{
		Text:  resp.Choices[0].Message.Content,
		Usage: usage,
	}, nil
}

func (c *Client) doWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var lastErr error
	for attempt := 0; attempt < modelCallMaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(callCtx, req)
		cancel()

		if err == nil {
			if len(resp.Choices) == 0 {
				lastErr = errors.New("empty chat response")
			} else {
				return resp, nil
			}
		} else {
			lastErr = err
		}

		if attempt < modelCallMaxRetries-1 {
			waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Debugf("model call failed (attempt %d), retrying in %s: %s", attempt+1, waitTime, lastErr)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return openai.ChatCompletionResponse{}, ctx.Err()
			}
		}
	}
	return openai.ChatCompletionResponse{}, lastErr
}
