package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/date-engine/generic"
	"github.com/warp/date-engine/generic/store"
)

func savedSchedule(t *testing.T, id string, createdAt time.Time) generic.SavedSchedule {
	t.Helper()
	calc, last := generic.MustParseDate("2022-02-15"), generic.MustParseDate("2023-02-28")
	dates, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleMonthlyFirstDay, calc, last)
	require.NoError(t, err)
	return generic.SavedSchedule{
		ID:              generic.ScheduleID(id),
		Name:            "schedule " + id,
		Kind:            generic.ScheduleMonthlyFirstDay,
		CalculationDate: calc,
		LastDate:        last,
		Dates:           dates,
		CreatedAt:       createdAt,
	}
}

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	s := savedSchedule(t, "a", time.Date(2022, 2, 15, 9, 0, 0, 0, time.UTC))

	require.NoError(t, m.SaveSchedule(ctx, s))
	assert.ErrorIs(t, m.SaveSchedule(ctx, s), generic.ErrDuplicateSchedule)

	got, err := m.GetSchedule(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)
	assert.True(t, s.Dates.Equal(got.Dates))

	require.NoError(t, m.DeleteSchedule(ctx, "a"))
	_, err = m.GetSchedule(ctx, "a")
	assert.ErrorIs(t, err, generic.ErrScheduleNotFound)
	assert.ErrorIs(t, m.DeleteSchedule(ctx, "a"), generic.ErrScheduleNotFound)
}

func TestMemory_ListOrdersByCreationThenID(t *testing.T) {
	// GIVEN: Schedules saved out of creation order, two sharing a timestamp
	ctx := context.Background()
	m := store.NewMemory()
	base := time.Date(2022, 2, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, m.SaveSchedule(ctx, savedSchedule(t, "late", base.Add(time.Hour))))
	require.NoError(t, m.SaveSchedule(ctx, savedSchedule(t, "b", base)))
	require.NoError(t, m.SaveSchedule(ctx, savedSchedule(t, "a", base)))

	// WHEN: Listing
	list, err := m.ListSchedules(ctx)
	require.NoError(t, err)

	// THEN: Oldest first, ties broken by ID
	ids := make([]generic.ScheduleID, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	assert.Equal(t, []generic.ScheduleID{"a", "b", "late"}, ids)

	require.NoError(t, m.DeleteSchedule(ctx, "b"))
	list, err = m.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
