/*
schedule.go - Schedule strategies (payment date generation)

PURPOSE:
  Turns a (calculation date, last date) range into an ascending list of
  period boundaries, e.g. the first day of every month until a policy ends.

KINDS:
  monthly_first_day: one date per month, each on the 1st
  yearly_first_day:  one date per year, each on January 1

PROTOCOL (shared by every kind):
  1. Validate: roll the calculation date forward to the first boundary on or
     after it. If that boundary is after the last date there is no schedule
     and an *OutOfRangeError is returned.
  2. Generate: count the complete periods between the rolled start and the
     last date, plus one for the rolled start itself, and step forward one
     period at a time.

  Calculation date 2022-02-15, last date 2023-02-28, monthly:
    2022-03-01, 2022-04-01, ..., 2023-02-01   (12 dates)

EXTENSION:
  Strategy is the capability consumers depend on. ScheduleKind implements
  it for the built-in kinds; StrategyFunc adapts any function.

SEE ALSO:
  - period.go: Per-kind period capability
  - ordered.go: OrderedDates built from a Strategy
*/
package generic

import (
	"fmt"
	"sort"
)

// =============================================================================
// STRATEGY - Capability interface
// =============================================================================

// Strategy produces the ascending dates of a schedule.
type Strategy interface {
	Dates(calculationDate, lastDate Date) ([]Date, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(calculationDate, lastDate Date) ([]Date, error)

// Dates calls f.
func (f StrategyFunc) Dates(calculationDate, lastDate Date) ([]Date, error) {
	return f(calculationDate, lastDate)
}

// =============================================================================
// SCHEDULE KIND - Built-in strategies
// =============================================================================

// ScheduleKind selects one of the built-in schedule strategies.
type ScheduleKind string

const (
	ScheduleMonthlyFirstDay ScheduleKind = "monthly_first_day"
	ScheduleYearlyFirstDay  ScheduleKind = "yearly_first_day"
)

var _ Strategy = ScheduleMonthlyFirstDay

// ScheduleKinds lists the supported kinds in name order.
func ScheduleKinds() []ScheduleKind {
	kinds := make([]ScheduleKind, 0, len(periods))
	for k := range periods {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseScheduleKind validates a schedule kind name.
func ParseScheduleKind(s string) (ScheduleKind, error) {
	k := ScheduleKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScheduleKind, s)
	}
	return k, nil
}

// Valid reports whether k is a supported kind.
func (k ScheduleKind) Valid() bool {
	_, ok := periods[k]
	return ok
}

func (k ScheduleKind) String() string { return string(k) }

func (k ScheduleKind) period() (period, error) {
	p, ok := periods[k]
	if !ok {
		return period{}, fmt.Errorf("%w: %q", ErrUnknownScheduleKind, string(k))
	}
	return p, nil
}

// RolledStart returns the first boundary of k on or after calculationDate.
func (k ScheduleKind) RolledStart(calculationDate Date) (Date, error) {
	p, err := k.period()
	if err != nil {
		return Date{}, err
	}
	return p.rollForward(calculationDate), nil
}

// Validate checks that a schedule exists between calculationDate and lastDate.
func (k ScheduleKind) Validate(calculationDate, lastDate Date) error {
	_, _, err := k.validate(calculationDate, lastDate)
	return err
}

func (k ScheduleKind) validate(calculationDate, lastDate Date) (period, Date, error) {
	p, err := k.period()
	if err != nil {
		return period{}, Date{}, err
	}
	rolled := p.rollForward(calculationDate)
	if rolled.After(lastDate) {
		return period{}, Date{}, &OutOfRangeError{
			Kind:            k,
			CalculationDate: calculationDate,
			RolledStart:     rolled,
			LastDate:        lastDate,
		}
	}
	return p, rolled, nil
}

// Dates generates the schedule. The result is non-empty and strictly
// ascending whenever err is nil.
func (k ScheduleKind) Dates(calculationDate, lastDate Date) ([]Date, error) {
	p, rolled, err := k.validate(calculationDate, lastDate)
	if err != nil {
		return nil, err
	}

	count := p.completeBetween(rolled, lastDate) + 1
	dates := make([]Date, count)
	for i := range dates {
		dates[i] = p.add(rolled, i)
	}
	return dates, nil
}
