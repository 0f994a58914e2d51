package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/date-engine/generic"
	"github.com/warp/date-engine/generic/store"
)

func saveEnding(t *testing.T, schedules generic.ScheduleStore, id, last string) {
	t.Helper()
	calc := generic.MustParseDate("2020-01-15")
	lastDate := generic.MustParseDate(last)
	dates, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleMonthlyFirstDay, calc, lastDate)
	require.NoError(t, err)
	require.NoError(t, schedules.SaveSchedule(context.Background(), generic.SavedSchedule{
		ID:              generic.ScheduleID(id),
		Kind:            generic.ScheduleMonthlyFirstDay,
		CalculationDate: calc,
		LastDate:        lastDate,
		Dates:           dates,
		CreatedAt:       time.Now(),
	}))
}

func TestRetentionSweeper_DeletesExpiredSchedules(t *testing.T) {
	// GIVEN: Schedules ending in 2021 and 2022, retention of half a year
	ctx := context.Background()
	schedules := store.NewMemory()
	saveEnding(t, schedules, "ended-2021", "2021-06-30")
	saveEnding(t, schedules, "ended-2022", "2022-06-30")

	sweeper := NewRetentionSweeper(schedules, newNullLogger(), decimal.RequireFromString("0.5"))
	sweeper.today = func() generic.Date { return generic.MustParseDate("2022-03-01") }

	// WHEN: Sweeping
	deleted, err := sweeper.Sweep(ctx)

	// THEN: Only the schedule past its retention is gone
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = schedules.GetSchedule(ctx, "ended-2021")
	assert.ErrorIs(t, err, generic.ErrScheduleNotFound)
	_, err = schedules.GetSchedule(ctx, "ended-2022")
	assert.NoError(t, err)

	// WHEN: Sweeping again on the day retention ends, then one day later
	sweeper.today = func() generic.Date { return generic.MustParseDate("2022-12-30") }
	deleted, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	sweeper.today = func() generic.Date { return generic.MustParseDate("2022-12-31") }
	deleted, err = sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestRetentionSweeper_StartStop(t *testing.T) {
	schedules := store.NewMemory()
	saveEnding(t, schedules, "old", "2020-06-30")

	sweeper := NewRetentionSweeper(schedules, newNullLogger(), decimal.Zero)
	sweeper.CheckInterval = time.Hour
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()

	// The immediate sweep on start ran before Stop returned
	_, err := schedules.GetSchedule(context.Background(), "old")
	assert.ErrorIs(t, err, generic.ErrScheduleNotFound)

	disabled := NewRetentionSweeper(schedules, newNullLogger(), decimal.Zero)
	disabled.Enabled = false
	disabled.Start()
	disabled.Stop()
}
