/*
Package generic provides the core calendar and schedule engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for reasoning
  about calendar dates: fractional ages, elapsed fractions of a year, and
  schedules of period-boundary dates. Whether pricing an annuity or billing
  a yearly premium, the same engine produces the dates and the ages.

KEY CONCEPTS:
  - Date: A whole calendar day (no time of day, no location)
  - Precision: The numeric representation of fractional ages
    (Decimal, Float64, Float32)
  - Strategy / ScheduleKind: Date range -> ascending boundary dates
  - OrderedDates: Immutable non-decreasing dates with binary search
  - AgeFunc: Integer age convention (last or nearest birthday)

DESIGN PRINCIPLES:
  1. Immutability: Dates and OrderedDates are values; views never mutate
  2. Precision: Algorithms are written once, generic over Precision
  3. Eager validation: Bad ranges fail before any dates are built
  4. Leap years: Divisors are always the real length (365 or 366) of the
     year being measured

USAGE:
  calc := generic.MustParseDate("2022-02-15")
  last := generic.MustParseDate("2023-02-28")
  dates, err := generic.NewOrderedDatesFromStrategy(generic.ScheduleMonthlyFirstDay, calc, last)
  age := generic.ExactAge(generic.Decimal, birth, calc)

SEE ALSO:
  - time.go: Date
  - calendar.go: Age and fraction arithmetic
  - schedule.go: Schedule strategies
  - ordered.go: OrderedDates
*/
package generic

// AgeFunc maps a birth date and a calculation date to an integer age.
type AgeFunc func(birth, calculation Date) int

var (
	_ AgeFunc = AgeLastBirthday
	_ AgeFunc = AgeNearestBirthday
)
