package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/date-engine/generic"
	"github.com/warp/date-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s, err := sqlite.New(":memory:", sqlite.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func yearlySchedule(t *testing.T, id string, createdAt time.Time) generic.SavedSchedule {
	t.Helper()
	calc, last := generic.MustParseDate("2022-02-15"), generic.MustParseDate("2034-02-28")
	dates, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleYearlyFirstDay, calc, last)
	require.NoError(t, err)
	return generic.SavedSchedule{
		ID:              generic.ScheduleID(id),
		Name:            "Yearly premium",
		Kind:            generic.ScheduleYearlyFirstDay,
		CalculationDate: calc,
		LastDate:        last,
		Dates:           dates,
		CreatedAt:       createdAt,
	}
}

func TestSaveAndGetSchedule(t *testing.T) {
	// GIVEN: A saved yearly schedule
	ctx := context.Background()
	s := newTestStore(t)
	created := time.Date(2022, 2, 15, 9, 30, 0, 123, time.UTC)
	sched := yearlySchedule(t, "sched-1", created)
	require.NoError(t, s.SaveSchedule(ctx, sched))

	// WHEN: Loading it back
	got, err := s.GetSchedule(ctx, "sched-1")
	require.NoError(t, err)

	// THEN: Every field survives, dates included
	assert.Equal(t, sched.ID, got.ID)
	assert.Equal(t, sched.Name, got.Name)
	assert.Equal(t, sched.Kind, got.Kind)
	assert.Equal(t, sched.CalculationDate, got.CalculationDate)
	assert.Equal(t, sched.LastDate, got.LastDate)
	assert.True(t, sched.Dates.Equal(got.Dates))
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, 5, got.Dates.IndexOfOrPreviousElement(generic.MustParseDate("2028-06-30")))
}

func TestSaveSchedule_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	sched := yearlySchedule(t, "dup", time.Now())

	require.NoError(t, s.SaveSchedule(ctx, sched))
	assert.ErrorIs(t, s.SaveSchedule(ctx, sched), generic.ErrDuplicateSchedule)

	sched.ID = "no-dates"
	sched.Dates = nil
	assert.ErrorIs(t, s.SaveSchedule(ctx, sched), generic.ErrNullReference)
}

func TestGetAndDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetSchedule(ctx, "missing")
	assert.ErrorIs(t, err, generic.ErrScheduleNotFound)
	assert.ErrorIs(t, s.DeleteSchedule(ctx, "missing"), generic.ErrScheduleNotFound)
}

func TestListSchedules_OldestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2022, 2, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveSchedule(ctx, yearlySchedule(t, "c", base.Add(2*time.Second))))
	require.NoError(t, s.SaveSchedule(ctx, yearlySchedule(t, "b", base)))
	require.NoError(t, s.SaveSchedule(ctx, yearlySchedule(t, "a", base)))

	list, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, generic.ScheduleID("a"), list[0].ID)
	assert.Equal(t, generic.ScheduleID("b"), list[1].ID)
	assert.Equal(t, generic.ScheduleID("c"), list[2].ID)

	require.NoError(t, s.DeleteSchedule(ctx, "b"))
	list, err = s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStore_LogsWrites(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s, err := sqlite.New(":memory:", sqlite.WithLogger(logger))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveSchedule(context.Background(), yearlySchedule(t, "logged", time.Now())))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "schedule saved", entry.Message)
	assert.Equal(t, generic.ScheduleID("logged"), entry.Data["schedule_id"])
}

func TestGetSchedule_RejectsRowEditedOutOfOrder(t *testing.T) {
	// GIVEN: A saved schedule whose dates were edited by hand into disorder
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schedules.db")
	s, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.SaveSchedule(ctx, yearlySchedule(t, "edited", time.Now())))

	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.ExecContext(ctx,
		`UPDATE schedules SET dates_json = '["2023-01-01","2024-01-01","2023-01-01"]' WHERE id = 'edited'`)
	require.NoError(t, err)

	// WHEN: Loading it
	_, err = s.GetSchedule(ctx, "edited")

	// THEN: It fails instead of returning an unsearchable sequence
	assert.ErrorIs(t, err, generic.ErrUnordered)
	assert.Contains(t, err.Error(), "edited")
}
