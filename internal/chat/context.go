package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mlafitness/backend/internal/exercises"
	"github.com/mlafitness/backend/internal/telemetry/tracing"
)

const (
	// DefaultWindowDays is used when a message carries no period cue.
	DefaultWindowDays = 7

	// recentActivitiesCap bounds the individual sessions shown in the prompt.
	recentActivitiesCap = 10

	// allTimeTopLimit bounds the all-time favourite types fetched for context.
	allTimeTopLimit = 5

	contextCacheTTLSeconds = 60
	contextCacheSizeBytes  = 8 * 1024 * 1024
)

// windowRule maps free-text period cues to a look-back window size in days.
// Rules are evaluated in order, first match wins.
type windowRule struct {
	cues []string
	days int
}

var windowRules = []windowRule{
	{cues: []string{"past month", "last month", "30 day", "month"}, days: 30},
	{cues: []string{"14 day", "2 week", "two week"}, days: 14},
	{cues: []string{"today"}, days: 1},
	{cues: []string{"yesterday"}, days: 2},
}

// DetectWindowDays resolves the look-back window implied by a user message.
// Case-insensitive substring search over a fixed cue table - deliberately not
// natural-language date parsing.
func DetectWindowDays(message string) int {
	lowered := strings.ToLower(message)
	for _, rule := range windowRules {
		for _, cue := range rule.cues {
			if strings.Contains(lowered, cue) {
				return rule.days
			}
		}
	}
	return DefaultWindowDays
}

// Activity is one individual session shown in the prompt context.
type Activity struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

// FitnessContext is the aggregated view of a user's exercise data for one
// look-back window, shaped for prompt assembly.
type FitnessContext struct {
	PeriodName       string                `json:"periodName"`
	WindowDays       int                   `json:"windowDays"`
	RecentActivities []Activity            `json:"recentActivities"`
	WindowBreakdown  []exercises.TypeTotal `json:"windowBreakdown"`
	AllTimeTop       []exercises.TypeTotal `json:"allTimeTop"`
	TotalActivities  int                   `json:"totalActivities"`
	WindowMinutes    int                   `json:"windowMinutes"`
}

//go:generate mockgen -source=$GOFILE -destination=context_mocks_test.go -package=chat_test

type chatRepo interface {
	List(ctx context.Context, params exercises.ListParams) ([]exercises.Record, error)
	Breakdown(ctx context.Context, params exercises.BreakdownParams) ([]exercises.TypeTotal, error)
}

// ContextBuilder aggregates a user's records into a FitnessContext.
// Results are cached per (username, window) for a short TTL since one chat
// exchange builds the same context more than once.
type ContextBuilder struct {
	repo  chatRepo
	cache *freecache.Cache

	timeNow func() time.Time
}

func NewContextBuilder(repo chatRepo) *ContextBuilder {
	return &ContextBuilder{
		repo:    repo,
		cache:   freecache.NewCache(contextCacheSizeBytes),
		timeNow: time.Now,
	}
}

// Build aggregates the user's records over the given look-back window.
// Aggregation failures degrade to an empty context instead of failing the
// chat exchange - the model can still answer without data.
func (b *ContextBuilder) Build(ctx context.Context, username string, windowDays int) *FitnessContext {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chat.context.build")
	defer span.End()

	span.SetAttributes(
		attribute.String("username", username),
		attribute.Int("window_days", windowDays),
	)

	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	cacheKey := []byte(fmt.Sprintf("fitctx::%s::%d", username, windowDays))
	if cached, err := b.cache.Get(cacheKey); err == nil {
		var fc FitnessContext
		if err := json.Unmarshal(cached, &fc); err == nil {
			return &fc
		}
	}

	fc := b.build(ctx, username, windowDays)

	if fcJson, err := json.Marshal(fc); err == nil {
		if err := b.cache.Set(cacheKey, fcJson, contextCacheTTLSeconds); err != nil {
			log.Tracef("fitness context cache set for [%s]: %s", username, err)
		}
	}

	return fc
}

func (b *ContextBuilder) build(ctx context.Context, username string, windowDays int) *FitnessContext {
	now := b.timeNow()
	windowStart := windowStart(now, windowDays)

	fc := &FitnessContext{
		PeriodName: periodName(windowDays),
		WindowDays: windowDays,
	}

	records, err := b.repo.List(ctx, exercises.ListParams{
		Username:    username,
		From:        &windowStart,
		NewestFirst: true,
	})
	if err != nil {
		log.Errorf("fitness context, list records for [%s]: %s", username, err)
		return fc
	}

	fc.TotalActivities = len(records)
	for _, rec := range records {
		fc.WindowMinutes += rec.Duration
		if len(fc.RecentActivities) < recentActivitiesCap {
			fc.RecentActivities = append(fc.RecentActivities, Activity{
				Type:     rec.ExerciseType,
				Duration: rec.Duration,
				Date:     rec.Date.Format("2006-01-02"),
			})
		}
	}

	breakdown, err := b.repo.Breakdown(ctx, exercises.BreakdownParams{
		Username: username,
		From:     &windowStart,
	})
	if err != nil {
		log.Errorf("fitness context, window breakdown for [%s]: %s", username, err)
		return fc
	}
	fc.WindowBreakdown = breakdown

	allTimeTop, err := b.repo.Breakdown(ctx, exercises.BreakdownParams{
		Username: username,
		Limit:    allTimeTopLimit,
	})
	if err != nil {
		log.Errorf("fitness context, all-time top for [%s]: %s", username, err)
		return fc
	}
	fc.AllTimeTop = allTimeTop

	return fc
}

// windowStart resolves the look-back window start. The default weekly window
// follows the app's journal view: current calendar week, Monday to now. All
// other sizes are plain rolling windows of N days ending now, normalized to
// the start of the first day.
func windowStart(now time.Time, windowDays int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if windowDays == DefaultWindowDays {
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday)
	}

	return midnight.AddDate(0, 0, -(windowDays - 1))
}

func periodName(windowDays int) string {
	switch windowDays {
	case 1:
		return "today"
	case 2:
		return "since yesterday"
	case DefaultWindowDays:
		return "this week (Monday - today)"
	default:
		return fmt.Sprintf("the last %d days", windowDays)
	}
}
