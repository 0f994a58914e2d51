package generic

import "time"

// =============================================================================
// PERIOD BOUNDARIES - First and last days of months and years
// =============================================================================

// FirstDayOfMonth returns the first day of date's month.
func FirstDayOfMonth(date Date) Date { return Date{year: date.year, month: date.month, day: 1} }

// FirstDayOfNextMonth returns the first day of the month after date's.
func FirstDayOfNextMonth(date Date) Date { return FirstDayOfMonth(date).AddMonths(1) }

// LastDayOfMonth returns the last day of date's month.
func LastDayOfMonth(date Date) Date { return FirstDayOfNextMonth(date).AddDays(-1) }

// FirstDayOfMonthOnOrAfter returns date if it is a first of month, otherwise
// the first day of the following month.
func FirstDayOfMonthOnOrAfter(date Date) Date {
	if date.day == 1 {
		return date
	}
	return FirstDayOfNextMonth(date)
}

// FirstDayOfYear returns January 1 of date's year.
func FirstDayOfYear(date Date) Date { return Date{year: date.year, month: time.January, day: 1} }

// FirstDayOfNextYear returns January 1 of the year after date's.
func FirstDayOfNextYear(date Date) Date { return FirstDayOfYear(date).AddYears(1) }

// FirstDayOfYearOnOrAfter returns date if it is January 1, otherwise January 1
// of the following year.
func FirstDayOfYearOnOrAfter(date Date) Date {
	if date.DayOfYear() == 1 {
		return date
	}
	return FirstDayOfNextYear(date)
}

// =============================================================================
// PERIOD - What a schedule kind counts in
// =============================================================================

// period is the capability a schedule kind supplies to the shared schedule
// algorithm in schedule.go.
type period struct {
	// rollForward returns the first boundary on or after a date.
	rollForward func(Date) Date
	// add moves a boundary by n periods.
	add func(Date, int) Date
	// completeBetween counts full periods between two dates.
	completeBetween func(from, to Date) int
}

var periods = map[ScheduleKind]period{
	ScheduleMonthlyFirstDay: {
		rollForward:     FirstDayOfMonthOnOrAfter,
		add:             Date.AddMonths,
		completeBetween: CompleteMonthsBetween,
	},
	ScheduleYearlyFirstDay: {
		rollForward:     FirstDayOfYearOnOrAfter,
		add:             Date.AddYears,
		completeBetween: CompleteYearsBetween,
	},
}
