package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Whole-day Gregorian calendar value
// =============================================================================

// DateLayout is the ISO 8601 calendar date layout used for text encoding.
const DateLayout = "2006-01-02"

// unixEpochDayNumber is the DayNumber of 1970-01-01 counted from 0001-01-01.
const unixEpochDayNumber = 719162

const secondsPerDay = 24 * 60 * 60

// Years covered by date arithmetic. Adding days, months or years saturates
// at MinDate and MaxDate instead of overflowing.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	MinDate = Date{year: MinYear, month: time.January, day: 1}
	MaxDate = Date{year: MaxYear, month: time.December, day: 31}
)

// Date is a calendar day with no time of day and no location.
// Dates are comparable with == and ordered with Compare.
//
// The zero Date is not a calendar day; IsZero reports it. Use NewDate or
// ParseDate to build one.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date for year, month and day. Out of range values are
// normalized the way time.Date normalizes them (e.g. October 32 is November 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today returns the current date in the local time zone.
func Today() Date { return DateOf(time.Now()) }

// ParseDate parses a date in DateLayout form. Unlike NewDate it rejects
// components that do not name a real day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q: %v", ErrInvalidArgument, s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) time() time.Time { return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC) }

// Properties
func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) DayOfYear() int        { return d.time().YearDay() }
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }
func (d Date) IsZero() bool          { return d == Date{} }

// DayNumber is the number of days elapsed since 0001-01-01. Differences of
// day numbers are exact day counts.
func (d Date) DayNumber() int {
	return int(d.time().Unix()/secondsPerDay) + unixEpochDayNumber
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time { return d.time() }

// Comparison
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

func (d Date) Before(other Date) bool        { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool         { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool         { return d == other }
func (d Date) BeforeOrEqual(other Date) bool { return d.Compare(other) <= 0 }
func (d Date) AfterOrEqual(other Date) bool  { return d.Compare(other) >= 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Arithmetic

// AddDays moves d by n days.
func (d Date) AddDays(n int) Date {
	dn := d.DayNumber()
	switch {
	case n > 0 && n > MaxDate.DayNumber()-dn:
		return MaxDate
	case n < 0 && n < MinDate.DayNumber()-dn:
		return MinDate
	}
	return DateOf(d.time().AddDate(0, 0, n))
}

// AddMonths moves d by n calendar months. A day that does not exist in the
// target month is clamped to the month's last day (January 31 + 1 month is
// February 28 or 29).
func (d Date) AddMonths(n int) Date {
	switch {
	case n > 0 && n > (MaxYear-d.year)*12+int(time.December-d.month):
		return MaxDate
	case n < 0 && n < (MinYear-d.year)*12-int(d.month-time.January):
		return MinDate
	}
	total := d.year*12 + int(d.month-1) + n
	year := floorDiv(total, 12)
	month := time.Month(total-year*12) + 1
	return Date{year: year, month: month, day: min(d.day, DaysInMonth(year, month))}
}

// AddYears moves d by n calendar years, clamping February 29 to February 28
// when the target year is not a leap year.
func (d Date) AddYears(n int) Date {
	switch {
	case n > 0 && n > MaxYear-d.year:
		return MaxDate
	case n < 0 && n < MinYear-d.year:
		return MinDate
	}
	year := d.year + n
	return Date{year: year, month: d.month, day: min(d.day, DaysInMonth(year, d.month))}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Text encoding

func (d Date) String() string { return d.time().Format(DateLayout) }

// MarshalText encodes d in DateLayout form.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText decodes a date in DateLayout form.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CALENDAR UTILITIES
// =============================================================================

// IsLeapYear reports whether year has a February 29 in the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year. Months outside
// January..December are normalized the way time.Date normalizes them.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
