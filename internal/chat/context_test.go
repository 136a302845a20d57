package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mlafitness/backend/internal/chat"
	"github.com/mlafitness/backend/internal/exercises"
)

func TestDetectWindowDays(t *testing.T) {
	for _, tc := range []struct {
		message string
		want    int
	}{
		{message: "how am I doing this month?", want: 30},
		{message: "show me the past month", want: 30},
		{message: "my last 30 day summary", want: 30},
		{message: "how many workouts last month", want: 30},
		{message: "progress in the last 14 days", want: 14},
		{message: "the last 2 weeks were rough", want: 14},
		{message: "past two weeks?", want: 14},
		{message: "what did I do today", want: 1},
		{message: "did I work out yesterday?", want: 2},
		// first match wins, today outranks yesterday
		{message: "today vs yesterday", want: 1},
		{message: "how am I doing?", want: 7},
		{message: "", want: 7},
		{message: "THIS MONTH please", want: 30},
	} {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, chat.DetectWindowDays(tc.message))
		})
	}
}

func TestContextBuilder_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockchatRepo(ctrl)
	builder := chat.NewContextBuilder(repoMock)

	// wednesday, so the default weekly window starts monday the 17th
	now := time.Date(2025, 3, 19, 18, 30, 0, 0, time.UTC)
	chat.SetContextBuilderTimeNow(builder, func() time.Time { return now })

	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	repoMock.EXPECT().
		List(gomock.Any(), exercises.ListParams{
			Username:    "serj",
			From:        &monday,
			NewestFirst: true,
		}).
		Return([]exercises.Record{
			{Username: "serj", ExerciseType: "Running", Duration: 30, Date: now.Add(-2 * time.Hour)},
			{Username: "serj", ExerciseType: "Swimming", Duration: 45, Date: now.Add(-24 * time.Hour)},
		}, nil)

	repoMock.EXPECT().
		Breakdown(gomock.Any(), exercises.BreakdownParams{
			Username: "serj",
			From:     &monday,
		}).
		Return([]exercises.TypeTotal{
			{ExerciseType: "Swimming", TotalDuration: 45, SessionCount: 1},
			{ExerciseType: "Running", TotalDuration: 30, SessionCount: 1},
		}, nil)

	repoMock.EXPECT().
		Breakdown(gomock.Any(), exercises.BreakdownParams{
			Username: "serj",
			Limit:    5,
		}).
		Return([]exercises.TypeTotal{
			{ExerciseType: "Running", TotalDuration: 1200, SessionCount: 40},
		}, nil)

	fc := builder.Build(context.Background(), "serj", chat.DefaultWindowDays)
	require.NotNil(t, fc)

	assert.Equal(t, "this week (Monday - today)", fc.PeriodName)
	assert.Equal(t, chat.DefaultWindowDays, fc.WindowDays)
	assert.Equal(t, 2, fc.TotalActivities)
	assert.Equal(t, 75, fc.WindowMinutes)
	require.Len(t, fc.RecentActivities, 2)
	assert.Equal(t, "Running", fc.RecentActivities[0].Type)
	require.Len(t, fc.WindowBreakdown, 2)
	require.Len(t, fc.AllTimeTop, 1)
	assert.Equal(t, 40, fc.AllTimeTop[0].SessionCount)
}

func TestContextBuilder_Build_CachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockchatRepo(ctrl)
	builder := chat.NewContextBuilder(repoMock)

	repoMock.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
	repoMock.EXPECT().Breakdown(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	first := builder.Build(context.Background(), "ana", 14)
	require.NotNil(t, first)

	// second build within the TTL comes from the cache, no repo calls
	second := builder.Build(context.Background(), "ana", 14)
	require.NotNil(t, second)
	assert.Equal(t, first.PeriodName, second.PeriodName)
	assert.Equal(t, first.WindowDays, second.WindowDays)

	// a different window is a different cache entry
	repoMock.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
	repoMock.EXPECT().Breakdown(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	third := builder.Build(context.Background(), "ana", 30)
	require.NotNil(t, third)
	assert.Equal(t, 30, third.WindowDays)
	assert.Equal(t, "the last 30 days", third.PeriodName)
}

func TestContextBuilder_Build_DegradesOnRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockchatRepo(ctrl)
	builder := chat.NewContextBuilder(repoMock)

	repoMock.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mongo down"))

	fc := builder.Build(context.Background(), "serj", 1)
	require.NotNil(t, fc)
	assert.Equal(t, "today", fc.PeriodName)
	assert.Zero(t, fc.TotalActivities)
	assert.Empty(t, fc.RecentActivities)
	assert.Empty(t, fc.WindowBreakdown)
}

func TestContextBuilder_Build_RecentActivitiesCapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockchatRepo(ctrl)
	builder := chat.NewContextBuilder(repoMock)

	now := time.Date(2025, 3, 19, 18, 30, 0, 0, time.UTC)
	chat.SetContextBuilderTimeNow(builder, func() time.Time { return now })

	var records []exercises.Record
	for i := 0; i < 13; i++ {
		records = append(records, exercises.Record{
			Username:     "serj",
			ExerciseType: "Running",
			Duration:     10,
			Date:         now.Add(-time.Duration(i) * time.Hour),
		})
	}

	repoMock.EXPECT().List(gomock.Any(), gomock.Any()).Return(records, nil)
	repoMock.EXPECT().Breakdown(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	fc := builder.Build(context.Background(), "serj", 30)
	require.NotNil(t, fc)
	assert.Equal(t, 13, fc.TotalActivities)
	assert.Equal(t, 130, fc.WindowMinutes)
	assert.Len(t, fc.RecentActivities, 10)
}
