/*
calendar.go - Fractional age and elapsed-year arithmetic

PURPOSE:
  Actuarial date arithmetic over Date: exact fractional ages, integer ages,
  complete month/year counts, elapsed fractions of a year, and adding a
  fractional number of years back to a date.

EXACT AGE:
  The age between two dates is the number of whole anniversaries plus the
  remaining days divided by the length of the year-span those days fall in:

    early, late := FirstOf(a, b), LastOf(a, b)
    years       := late.Year() - early.Year()
    anchor      := early.AddYears(years)
    days        := late.DayOfYear() - anchor.DayOfYear()
    divisor     := days in [anchor, anchor+1y) if days > 0
                   days in [anchor-1y, anchor) otherwise
    age         := years + days/divisor

  ExactAge is symmetric and never negative. AddFractionalYears inverts it:
  AddFractionalYears(a, ExactAge(a, b)) == b whenever a <= b, except that a
  February 29 anchor lands on February 28 in non-leap target years.

PRECISIONS:
  Every fractional operation takes a Precision (Decimal, Float64, Float32).

    age := generic.ExactAge(generic.Decimal, birth, today)
    back := generic.AddFractionalYears(generic.Decimal, birth, age)

SEE ALSO:
  - precision.go: Numeric kinds
  - period.go: First/last day of month and year helpers
*/
package generic

// =============================================================================
// ORDERING HELPERS
// =============================================================================

// FirstOf returns the earlier of two dates.
func FirstOf(a, b Date) Date {
	if a.After(b) {
		return b
	}
	return a
}

// LastOf returns the later of two dates.
func LastOf(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// WithinInclusiveRange reports whether x lies between a and b, bounds
// included, whichever order a and b are given in.
func WithinInclusiveRange(x, a, b Date) bool {
	return FirstOf(a, b).BeforeOrEqual(x) && x.BeforeOrEqual(LastOf(a, b))
}

// =============================================================================
// AGES
// =============================================================================

// ExactAge returns the fractional number of years between date1 and date2.
func ExactAge[T any](p Precision[T], date1, date2 Date) T {
	early, late := FirstOf(date1, date2), LastOf(date1, date2)

	years := late.Year() - early.Year()
	anchor := early.AddYears(years)

	days := late.DayOfYear() - anchor.DayOfYear()
	var divisor int
	if days > 0 {
		divisor = anchor.AddYears(1).DayNumber() - anchor.DayNumber()
	} else {
		divisor = anchor.DayNumber() - anchor.AddYears(-1).DayNumber()
	}
	return p.Add(p.FromInt(years), p.Ratio(days, divisor))
}

// AgeNearestBirthday rounds the exact age to the nearest integer. An age
// exactly halfway between two birthdays rounds up.
func AgeNearestBirthday(date1, date2 Date) int {
	return Decimal.Int(Decimal.Round(ExactAge(Decimal, date1, date2)))
}

// AgeLastBirthday returns the number of birthdays completed.
func AgeLastBirthday(date1, date2 Date) int {
	return Decimal.Int(ExactAge(Decimal, date1, date2))
}

// CompleteYearsBetween returns the number of full years between two dates.
func CompleteYearsBetween(first, second Date) int {
	return AgeLastBirthday(first, second)
}

// CompleteMonthsBetween returns the number of full calendar months from first
// to second. A month counts once second's day of month reaches first's.
func CompleteMonthsBetween(first, second Date) int {
	years := AgeLastBirthday(first, second)

	months := int(second.Month()) - int(first.Month())
	if months <= 0 {
		months = (months + 12) % 12
	}
	if second.Day() < first.Day() {
		months = (months + 11) % 12
	}
	return months + years*12
}

// =============================================================================
// ELAPSED FRACTIONS
// =============================================================================

// ElapsedFractionOfYear returns the part of date's year already elapsed, in
// [0, 1). January 1 is 0.
func ElapsedFractionOfYear[T any](p Precision[T], date Date) T {
	return ExactAge(p, FirstDayOfYear(date), date)
}

// DifferenceOfElapsedFraction measures the distance between two dates in
// years counted from January 1 of the earlier date's year.
func DifferenceOfElapsedFraction[T any](p Precision[T], date1, date2 Date) T {
	earlier, later := FirstOf(date1, date2), LastOf(date1, date2)
	return p.Sub(ExactAge(p, FirstDayOfYear(earlier), later), ElapsedFractionOfYear(p, earlier))
}

// =============================================================================
// FRACTIONAL YEAR ADDITION
// =============================================================================

// AddFractionalYears adds n years to date, n possibly fractional or negative.
// The fractional part is converted to days on a 365 or 366 day basis,
// whichever represents it with the smaller rounding error.
func AddFractionalYears[T any](p Precision[T], date Date, n T) Date {
	whole := p.Truncate(n)
	frac := p.Sub(n, whole)
	years := p.Int(whole)

	days := fractionToDays(p, frac)
	if p.Sign(n) < 0 {
		return date.AddDays(days).AddYears(years)
	}
	return date.AddYears(years).AddDays(days)
}

func fractionToDays[T any](p Precision[T], frac T) int {
	on365 := p.MulInt(frac, 365)
	on366 := p.MulInt(frac, 366)
	rounded365, rounded366 := p.Round(on365), p.Round(on366)

	if p.Less(p.Abs(p.Sub(rounded365, on365)), p.Abs(p.Sub(rounded366, on366))) {
		return p.Int(rounded365)
	}
	return p.Int(rounded366)
}
