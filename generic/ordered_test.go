package generic_test

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/date-engine/generic"
)

func monthlySchedule(t *testing.T) *generic.OrderedDates {
	t.Helper()
	od, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleMonthlyFirstDay, d("2022-02-15"), d("2023-02-28"))
	require.NoError(t, err)
	return od
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewOrderedDates_Validates(t *testing.T) {
	_, err := generic.NewOrderedDates(nil)
	assert.ErrorIs(t, err, generic.ErrNullReference)

	_, err = generic.NewOrderedDates(dates("2022-01-01", "2022-03-01", "2022-02-01"))
	assert.ErrorIs(t, err, generic.ErrUnordered)
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)

	var unordered *generic.UnorderedError
	require.True(t, errors.As(err, &unordered))
	assert.Equal(t, "dates", unordered.Source)
	assert.Equal(t, 2, unordered.Index)
	assert.Equal(t, d("2022-03-01"), unordered.Previous)
	assert.Equal(t, d("2022-02-01"), unordered.Next)

	empty, err := generic.NewOrderedDates([]generic.Date{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	// A sequence that returns to its first date is not ordered
	_, err = generic.NewOrderedDates(dates("2022-01-01", "2022-02-01", "2022-01-01"))
	require.True(t, errors.As(err, &unordered))
	assert.Equal(t, 2, unordered.Index)
	assert.Equal(t, d("2022-02-01"), unordered.Previous)
	assert.Equal(t, d("2022-01-01"), unordered.Next)

	// Repeated dates are non-decreasing
	repeated, err := generic.NewOrderedDates(dates("2022-01-01", "2022-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, repeated.Len())
}

func TestNewOrderedDates_CopiesInput(t *testing.T) {
	input := dates("2022-01-01", "2022-02-01")
	od, err := generic.NewOrderedDates(input)
	require.NoError(t, err)

	input[0] = d("2030-01-01")
	assert.Equal(t, d("2022-01-01"), od.At(0))

	out := od.Dates()
	out[1] = d("1999-01-01")
	assert.Equal(t, d("2022-02-01"), od.At(1))
}

func TestNewOrderedDatesFromStrategy(t *testing.T) {
	t.Run("nil strategy", func(t *testing.T) {
		_, err := generic.NewOrderedDatesFromStrategy(nil, d("2022-02-15"), d("2023-02-28"))
		assert.ErrorIs(t, err, generic.ErrNullReference)
	})

	t.Run("strategy error is propagated", func(t *testing.T) {
		_, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleMonthlyFirstDay, d("2022-02-15"), d("2022-02-28"))
		assert.ErrorIs(t, err, generic.ErrOutOfRange)
		assert.Contains(t, err.Error(), "monthly_first_day")
	})

	t.Run("nil output", func(t *testing.T) {
		nothing := generic.StrategyFunc(func(_, _ generic.Date) ([]generic.Date, error) { return nil, nil })
		_, err := generic.NewOrderedDatesFromStrategy(nothing, d("2022-02-15"), d("2023-02-28"))
		assert.ErrorIs(t, err, generic.ErrNullReference)
	})

	t.Run("unordered output names the strategy", func(t *testing.T) {
		backwards := generic.StrategyFunc(func(_, _ generic.Date) ([]generic.Date, error) {
			return dates("2022-03-01", "2022-02-01"), nil
		})
		_, err := generic.NewOrderedDatesFromStrategy(backwards, d("2022-02-15"), d("2023-02-28"))

		var unordered *generic.UnorderedError
		require.True(t, errors.As(err, &unordered))
		assert.Contains(t, unordered.Source, "StrategyFunc")
		assert.Equal(t, 1, unordered.Index)
	})

	t.Run("monthly", func(t *testing.T) {
		od := monthlySchedule(t)
		assert.Equal(t, 12, od.Len())
		first, ok := od.First()
		assert.True(t, ok)
		assert.Equal(t, d("2022-03-01"), first)
		last, ok := od.Last()
		assert.True(t, ok)
		assert.Equal(t, d("2023-02-01"), last)
	})
}

func TestIsSorted(t *testing.T) {
	_, err := generic.IsSorted(nil)
	assert.ErrorIs(t, err, generic.ErrNullReference)

	for _, tt := range []struct {
		dates []generic.Date
		want  bool
	}{
		{[]generic.Date{}, true},
		{dates("2022-01-01"), true},
		{dates("2022-01-01", "2022-01-01"), true},
		{dates("2022-01-01", "2022-02-01", "2023-01-01"), true},
		{dates("2022-02-01", "2022-01-01"), false},
		{dates("2022-01-01", "2022-02-01", "2022-01-01"), false},
	} {
		sorted, err := generic.IsSorted(tt.dates)
		require.NoError(t, err)
		assert.Equal(t, tt.want, sorted, "%v", tt.dates)
	}
}

// =============================================================================
// ACCESS & VIEWS
// =============================================================================

func TestAt_PanicsOutOfRange(t *testing.T) {
	od := monthlySchedule(t)

	assert.Equal(t, d("2022-04-01"), od.At(1))
	assert.Panics(t, func() { od.At(-1) })
	assert.Panics(t, func() { od.At(12) })
}

func TestSlice_SharesStorageWithoutMutation(t *testing.T) {
	od := monthlySchedule(t)

	view, err := od.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, dates("2022-04-01", "2022-05-01"), view.Dates())
	assert.Equal(t, 0, view.BinarySearch(d("2022-04-01")))

	empty, err := od.Slice(12, 12)
	require.NoError(t, err)
	_, ok := empty.First()
	assert.False(t, ok)
	_, ok = empty.Last()
	assert.False(t, ok)

	for _, bounds := range [][2]int{{-1, 2}, {3, 2}, {0, 13}} {
		_, err := od.Slice(bounds[0], bounds[1])
		assert.ErrorIs(t, err, generic.ErrIndexOutOfRange, "%v", bounds)
	}
}

func TestIteration_IsRestartable(t *testing.T) {
	od := monthlySchedule(t)

	first := slices.Collect(od.Values())
	second := slices.Collect(od.Values())
	assert.Equal(t, first, second)
	assert.Len(t, first, 12)

	var indexes []int
	for i, date := range od.All() {
		assert.Equal(t, od.At(i), date)
		indexes = append(indexes, i)
		if i == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)
}

// =============================================================================
// SEARCH
// =============================================================================

func TestBinarySearch(t *testing.T) {
	od, err := generic.NewOrderedDates(dates("2022-03-01", "2022-04-01", "2022-05-01"))
	require.NoError(t, err)

	assert.Equal(t, 1, od.BinarySearch(d("2022-04-01")))
	assert.Equal(t, ^2, od.BinarySearch(d("2022-04-15")))
	assert.Equal(t, ^0, od.BinarySearch(d("2022-01-01")))
	assert.Equal(t, ^3, od.BinarySearch(d("2022-06-01")))

	assert.True(t, od.Contains(d("2022-05-01")))
	assert.False(t, od.Contains(d("2022-05-02")))
}

func TestIndexOfOrPreviousElement(t *testing.T) {
	// GIVEN: The monthly schedule 2022-03-01 .. 2023-02-01
	od := monthlySchedule(t)

	assert.Equal(t, 0, od.IndexOfOrPreviousElement(d("2022-03-02")))
	assert.Equal(t, -1, od.IndexOfOrPreviousElement(d("2022-02-02")))
	assert.Equal(t, 0, od.IndexOfOrPreviousElement(d("2022-03-01")))
	assert.Equal(t, 5, od.IndexOfOrPreviousElement(d("2022-08-31")))
	assert.Equal(t, 11, od.IndexOfOrPreviousElement(d("2030-01-01")))
}

// =============================================================================
// EQUALITY & ENCODING
// =============================================================================

func TestEqualAndHash_AreValueBased(t *testing.T) {
	a := monthlySchedule(t)
	b, err := generic.NewOrderedDates(a.Dates())
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	shorter, err := a.Slice(0, 11)
	require.NoError(t, err)
	assert.False(t, a.Equal(shorter))
	assert.NotEqual(t, a.Hash(), shorter.Hash())

	var none *generic.OrderedDates
	assert.True(t, none.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestJSON_RejectsUnorderedInput(t *testing.T) {
	od := monthlySchedule(t)
	data, err := json.Marshal(od)
	require.NoError(t, err)

	var decoded generic.OrderedDates
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, od.Equal(&decoded))

	var unordered generic.OrderedDates
	err = json.Unmarshal([]byte(`["2022-02-01","2022-01-01"]`), &unordered)
	assert.ErrorIs(t, err, generic.ErrUnordered)
}

func TestJSON_NeverOverwritesABuiltSequence(t *testing.T) {
	// GIVEN: A decoded sequence
	var od generic.OrderedDates
	require.NoError(t, json.Unmarshal([]byte(`["2022-01-01","2022-02-01"]`), &od))

	// WHEN: Decoding into it again
	err := json.Unmarshal([]byte(`["2023-01-01"]`), &od)

	// THEN: The decode fails and the dates are unchanged
	assert.ErrorIs(t, err, generic.ErrInvalidArgument)
	assert.Equal(t, dates("2022-01-01", "2022-02-01"), od.Dates())
}
