package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mlafitness/backend/internal/exercises"
	"github.com/mlafitness/backend/internal/telemetry/tracing"
)

// ErrInvalidDateFormat marks caller-supplied dates that fail to parse;
// handlers map it to a 400 instead of an internal error.
var ErrInvalidDateFormat = errors.New("invalid date format")

const (
	dateLayout    = "2006-01-02"
	trendDays     = 7
	weekdayLayout = "Mon"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

type statsRepo interface {
	List(ctx context.Context, params exercises.ListParams) ([]exercises.Record, error)
	TotalsByUser(ctx context.Context) ([]exercises.UserTotals, error)
	TotalsForUser(ctx context.Context, username string) ([]exercises.UserTotals, error)
	Breakdown(ctx context.Context, params exercises.BreakdownParams) ([]exercises.TypeTotal, error)
	DailyTotals(ctx context.Context, username string, from, to *time.Time) ([]exercises.DayTotal, error)
}

// TrendEntry is one day of the 7-day trend. The JSON keys follow what the
// frontend chart component expects: a weekday label and a "Duration" series.
type TrendEntry struct {
	Name     string `json:"name"`
	Duration int    `json:"Duration"`
	Date     string `json:"date"`
}

type Analyzer struct {
	repo statsRepo

	timeNow func() time.Time
}

func NewAnalyzer(repo statsRepo) *Analyzer {
	return &Analyzer{
		repo:    repo,
		timeNow: time.Now,
	}
}

// TotalsByUser returns the all-time per-type duration sums of every user.
func (a *Analyzer) TotalsByUser(ctx context.Context) (_ []exercises.UserTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.totalsByUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return a.repo.TotalsByUser(ctx)
}

// TotalsForUser returns the all-time per-type duration sums of one user.
func (a *Analyzer) TotalsForUser(ctx context.Context, username string) (_ []exercises.UserTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.totalsForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("username", username))

	return a.repo.TotalsForUser(ctx, username)
}

// DailyTrend returns the summed duration per calendar day for the rolling
// 7-day window ending today, oldest day first. Every day of the window is
// present exactly once: days without records get a zero duration and their
// weekday name is derived from the date, not from the query result.
func (a *Analyzer) DailyTrend(ctx context.Context, username string) (_ []TrendEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.dailyTrend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("username", username))

	now := a.timeNow()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(trendDays - 1))

	dayTotals, err := a.repo.DailyTotals(ctx, username, &windowStart, nil)
	if err != nil {
		return nil, err
	}

	date2total := make(map[string]int, len(dayTotals))
	for _, dt := range dayTotals {
		date2total[dt.Date] = dt.TotalDuration
	}

	trend := make([]TrendEntry, 0, trendDays)
	for day := windowStart; !day.After(now); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(dateLayout)
		trend = append(trend, TrendEntry{
			Name:     day.Format(weekdayLayout),
			Duration: date2total[dateStr],
			Date:     dateStr,
		})
	}

	return trend, nil
}

// TotalsForRange returns the per-type breakdown for the caller-supplied
// [start, end] date pair; the end boundary is pushed one day forward so the
// full end day is included.
func (a *Analyzer) TotalsForRange(ctx context.Context, username, startStr, endStr string) (_ []exercises.TypeTotal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.totalsForRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("username", username))

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: start [%s]", ErrInvalidDateFormat, startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: end [%s]", ErrInvalidDateFormat, endStr)
	}
	end = end.AddDate(0, 0, 1)

	return a.repo.Breakdown(ctx, exercises.BreakdownParams{
		Username: username,
		From:     &start,
		To:       &end,
	})
}

// AllRecords dumps every stored record, oldest first.
func (a *Analyzer) AllRecords(ctx context.Context) (_ []exercises.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.allRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return a.repo.List(ctx, exercises.ListParams{})
}
