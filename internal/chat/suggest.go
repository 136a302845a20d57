package chat

import (
	"math/rand"
	"strings"
	"sync"
	"unicode"
)

const (
	maxSuggestions = 4
	minSuggestions = 2
)

// topicRule binds a set of keyword cues to a canned follow-up set.
// Rules are evaluated in order against the recent conversation text,
// first match wins.
type topicRule struct {
	topic       string
	keywords    []string
	suggestions []string
}

var topicRules = []topicRule{
	{
		topic:    "strengths",
		keywords: []string{"strongest", "top", "best"},
		suggestions: []string{
			"How can I improve? 💪",
			"Give me a workout idea",
			"What should I focus on next?",
			"Help me stay consistent",
		},
	},
	{
		topic:    "improvement",
		keywords: []string{"improve", "better", "variety"},
		suggestions: []string{
			"Suggest a 20-min routine",
			"What exercises work well together?",
			"Set a goal for me",
			"What's my top exercise? 🏆",
		},
	},
	{
		topic:    "progress",
		keywords: []string{"progress", "doing", "week", "focus"},
		suggestions: []string{
			"What's my top exercise? 🏆",
			"Give me a workout idea 💪",
			"How can I improve?",
			"Help me stay consistent",
		},
	},
	{
		topic:    "motivation",
		keywords: []string{"motivat", "tip"},
		suggestions: []string{
			"Suggest a 20-min routine",
			"What should I do tomorrow?",
			"Set a goal for me",
			"Celebrate my progress!",
		},
	},
	{
		topic:    "workout",
		keywords: []string{"workout", "exercise", "routine"},
		suggestions: []string{
			"How do I track this?",
			"What exercises work well together?",
			"Give me recovery tips",
			"When should I workout next?",
		},
	},
	{
		topic:    "gratitude",
		keywords: []string{"thanks", "thank"},
		suggestions: []string{
			"What should I focus on next? 🎯",
			"Give me a fitness tip!",
			"Show my weekly progress",
			"Help me plan tomorrow",
		},
	},
}

// activity volume bands for the default suggestion pools
const (
	volumeLow    = "low"
	volumeMedium = "medium"
	volumeHigh   = "high"
)

const (
	lowVolumeMaxMinutes    = 60
	mediumVolumeMaxMinutes = 240
)

// defaultPools holds the screen-specific fallback sets, one or more variants
// per (screen, volume band); a variant is picked with the injected random
// source so tests can pin the choice via the seed.
var defaultPools = map[string]map[string][][]string{
	ScreenTrackExercise: {
		volumeLow: {{
			"How do I get started? 🎯",
			"What's a good beginner workout?",
			"How do I log my first exercise?",
			"Give me motivation!",
		}},
		volumeMedium: {{
			"What's a good workout for today? 💪",
			"How long should I exercise?",
			"Suggest a 20-minute routine",
			"Give me motivation!",
		}},
		volumeHigh: {{
			"What's a good workout for today? 💪",
			"Should I take a rest day?",
			"Give me recovery tips",
			"Suggest something new to try",
		}},
	},
	ScreenStatistics: {
		volumeLow: {{
			"How do I build a habit? 🎯",
			"What's my most frequent activity?",
			"Give me a fitness tip!",
			"Set a goal for me",
		}},
		volumeMedium: {{
			"How am I doing this week? 📊",
			"What's my most frequent activity?",
			"Should I increase my duration?",
			"Give me a fitness tip!",
		}},
		volumeHigh: {{
			"How am I doing this week? 📊",
			"What's my strongest activity?",
			"Am I overtraining?",
			"Give me a fitness tip!",
		}},
	},
	ScreenJournal: {
		volumeLow: {{
			"Help me plan next week 🏆",
			"What should I focus on?",
			"How do I stay consistent?",
			"Give me motivation!",
		}},
		volumeMedium: {{
			"Show me my workout patterns 🏆",
			"What are my best days?",
			"Help me plan next week",
			"What should I focus on?",
		}},
		volumeHigh: {{
			"Show me my workout patterns 🏆",
			"What are my best days?",
			"Help me plan a recovery week",
			"What should I focus on?",
		}},
	},
	ScreenGeneral: {
		volumeLow: {{
			"How do I track progress? 🎯",
			"Give me a fitness tip!",
			"What should I focus on?",
			"How can I stay motivated?",
		}},
		volumeMedium: {
			{
				"How do I track progress? 🎯",
				"Give me a fitness tip!",
				"What should I focus on?",
				"How can I stay motivated?",
			},
			{
				"How am I doing this week? 📊",
				"Give me a workout idea 💪",
				"What should I focus on?",
				"Help me stay consistent",
			},
		},
		volumeHigh: {{
			"How am I doing this week? 📊",
			"What's my strongest activity?",
			"Give me recovery tips",
			"Set a goal for me",
		}},
	},
}

// Engine picks follow-up suggestions from fixed tables: a topic lookup over
// the recent conversation, falling back to screen defaults personalized by
// weekly activity volume. Deterministic given the seed - no ranking model.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(seed int64) *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Suggest returns up to 4 follow-up prompts for the given conversation tail.
func (e *Engine) Suggest(recentTurns []Turn, screen string, fc *FitnessContext) []string {
	if len(recentTurns) > RecentTurns {
		recentTurns = recentTurns[len(recentTurns)-RecentTurns:]
	}

	candidates := e.candidates(recentTurns, screen, fc)

	var recentQuestions []string
	for _, turn := range recentTurns {
		if turn.Role == RoleUser {
			recentQuestions = append(recentQuestions, turn.Content)
		}
	}

	return dedupe(candidates, recentQuestions)
}

func (e *Engine) candidates(recentTurns []Turn, screen string, fc *FitnessContext) []string {
	var sb strings.Builder
	for _, turn := range recentTurns {
		sb.WriteString(strings.ToLower(turn.Content))
		sb.WriteString(" ")
	}
	recentText := sb.String()

	for _, rule := range topicRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(recentText, keyword) {
				return rule.suggestions
			}
		}
	}

	return e.defaultSet(screen, fc)
}

func (e *Engine) defaultSet(screen string, fc *FitnessContext) []string {
	screenPools, ok := defaultPools[screen]
	if !ok {
		screenPools = defaultPools[ScreenGeneral]
	}

	weeklyMinutes := 0
	if fc != nil {
		weeklyMinutes = fc.WindowMinutes
	}

	band := volumeLow
	switch {
	case weeklyMinutes >= mediumVolumeMaxMinutes:
		band = volumeHigh
	case weeklyMinutes >= lowVolumeMaxMinutes:
		band = volumeMedium
	}

	variants := screenPools[band]

	e.mu.Lock()
	defer e.mu.Unlock()
	return variants[e.rng.Intn(len(variants))]
}

// dedupe drops candidates too similar to what the user already asked.
// Both sides are normalized (lowercased, punctuation and emoji stripped); a
// candidate is discarded when its normalized form contains, or is contained
// in, a normalized recent question. If that leaves fewer than 2 candidates,
// only exact normalized matches are excluded so the caller always gets a
// usable set.
func dedupe(candidates, recentQuestions []string) []string {
	normQuestions := make([]string, 0, len(recentQuestions))
	for _, q := range recentQuestions {
		if nq := normalizeText(q); nq != "" {
			normQuestions = append(normQuestions, nq)
		}
	}

	strict := filterCandidates(candidates, normQuestions, false)
	if len(strict) >= minSuggestions {
		return capSuggestions(strict)
	}

	return capSuggestions(filterCandidates(candidates, normQuestions, true))
}

func filterCandidates(candidates, normQuestions []string, exactOnly bool) []string {
	var kept []string
	for _, cand := range candidates {
		normCand := normalizeText(cand)

		duplicate := false
		for _, normQ := range normQuestions {
			if exactOnly {
				duplicate = normCand == normQ
			} else {
				duplicate = strings.Contains(normCand, normQ) || strings.Contains(normQ, normCand)
			}
			if duplicate {
				break
			}
		}

		if !duplicate {
			kept = append(kept, cand)
		}
	}
	return kept
}

func capSuggestions(suggestions []string) []string {
	if len(suggestions) > maxSuggestions {
		return suggestions[:maxSuggestions]
	}
	return suggestions
}

// normalizeText lowercases and strips everything but letters, digits and
// single spaces - which also removes emoji.
func normalizeText(s string) string {
	var sb strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace:
			sb.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}
