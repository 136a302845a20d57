package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/mlafitness/backend/internal/exercises"
	"github.com/mlafitness/backend/internal/stats"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAnalyzer_DailyTrend(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	// thursday afternoon, so the window runs friday (14th) to thursday (20th)
	now := time.Date(2025, 3, 20, 15, 4, 0, 0, time.UTC)
	stats.SetAnalyzerTimeNow(analyzer, func() time.Time { return now })

	windowStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().
		DailyTotals(gomock.Any(), "serj", &windowStart, nil).
		Return([]exercises.DayTotal{
			{Date: "2025-03-14", TotalDuration: 30},
			{Date: "2025-03-18", TotalDuration: 45},
			// outside the window, must be ignored
			{Date: "2025-03-10", TotalDuration: 120},
		}, nil)

	trend, err := analyzer.DailyTrend(context.Background(), "serj")
	require.NoError(t, err)
	require.Len(t, trend, 7)

	expected := []stats.TrendEntry{
		{Name: "Fri", Duration: 30, Date: "2025-03-14"},
		{Name: "Sat", Duration: 0, Date: "2025-03-15"},
		{Name: "Sun", Duration: 0, Date: "2025-03-16"},
		{Name: "Mon", Duration: 0, Date: "2025-03-17"},
		{Name: "Tue", Duration: 45, Date: "2025-03-18"},
		{Name: "Wed", Duration: 0, Date: "2025-03-19"},
		{Name: "Thu", Duration: 0, Date: "2025-03-20"},
	}
	assert.Equal(t, expected, trend)
}

func TestAnalyzer_DailyTrend_NoRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	now := time.Date(2025, 3, 20, 15, 4, 0, 0, time.UTC)
	stats.SetAnalyzerTimeNow(analyzer, func() time.Time { return now })

	repoMock.EXPECT().
		DailyTotals(gomock.Any(), "newuser", gomock.Any(), nil).
		Return(nil, nil)

	trend, err := analyzer.DailyTrend(context.Background(), "newuser")
	require.NoError(t, err)
	require.Len(t, trend, 7)
	for _, entry := range trend {
		assert.Zero(t, entry.Duration)
	}
	assert.Equal(t, "2025-03-14", trend[0].Date)
	assert.Equal(t, "2025-03-20", trend[6].Date)
}

func TestAnalyzer_DailyTrend_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	repoMock.EXPECT().
		DailyTotals(gomock.Any(), "serj", gomock.Any(), nil).
		Return(nil, errors.New("mongo down"))

	trend, err := analyzer.DailyTrend(context.Background(), "serj")
	require.Error(t, err)
	assert.Nil(t, trend)
}

func TestAnalyzer_TotalsForRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	expectedTotals := []exercises.TypeTotal{
		{ExerciseType: "Running", TotalDuration: 120, SessionCount: 4},
		{ExerciseType: "Swimming", TotalDuration: 60, SessionCount: 2},
	}

	repoMock.EXPECT().
		Breakdown(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params exercises.BreakdownParams) ([]exercises.TypeTotal, error) {
			assert.Equal(t, "serj", params.Username)
			require.NotNil(t, params.From)
			require.NotNil(t, params.To)
			assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *params.From)
			// end boundary pushed a day forward so the whole end day counts
			assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), *params.To)
			return expectedTotals, nil
		})

	totals, err := analyzer.TotalsForRange(context.Background(), "serj", "2025-03-10", "2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, expectedTotals, totals)
}

func TestAnalyzer_TotalsForRange_InvalidDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	for _, tc := range []struct {
		name  string
		start string
		end   string
	}{
		{name: "bad start", start: "10-03-2025", end: "2025-03-16"},
		{name: "bad end", start: "2025-03-10", end: "not-a-date"},
		{name: "empty", start: "", end: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := analyzer.TotalsForRange(context.Background(), "serj", tc.start, tc.end)
			require.ErrorIs(t, err, stats.ErrInvalidDateFormat)
			assert.Nil(t, totals)
		})
	}
}

func TestAnalyzer_AllRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	analyzer := stats.NewAnalyzer(repoMock)

	records := []exercises.Record{
		{Username: "serj", ExerciseType: "Running", Duration: 30},
		{Username: "ana", ExerciseType: "Cycling", Duration: 45},
	}
	repoMock.EXPECT().
		List(gomock.Any(), exercises.ListParams{}).
		Return(records, nil)

	got, err := analyzer.AllRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
