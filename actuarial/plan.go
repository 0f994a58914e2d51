package actuarial

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/date-engine/generic"
)

// =============================================================================
// PLAN - Payment schedule for one life
// =============================================================================

// Plan is an immutable payment schedule for a life born on BirthDate.
type Plan struct {
	BirthDate generic.Date
	Basis     AgeBasis
	Schedule  *generic.OrderedDates
}

// Payment describes one scheduled payment.
type Payment struct {
	Index int
	Date  generic.Date
	// ExactAge is the fractional age on Date.
	ExactAge decimal.Decimal
	// Age is the integer age on Date under the plan's basis.
	Age int
	// YearFraction is the time since the previous payment in years counted
	// from January 1; zero for the first payment.
	YearFraction decimal.Decimal
}

// NewPlan generates the schedule with strategy and attaches the life.
// The birth date must not be after the calculation date.
func NewPlan(birthDate generic.Date, basis AgeBasis, strategy generic.Strategy, calculationDate, lastDate generic.Date) (*Plan, error) {
	if birthDate.After(calculationDate) {
		return nil, fmt.Errorf("%w: birth date %s is after calculation date %s",
			generic.ErrInvalidArgument, birthDate, calculationDate)
	}
	schedule, err := generic.NewOrderedDatesFromStrategy(strategy, calculationDate, lastDate)
	if err != nil {
		return nil, err
	}
	return &Plan{BirthDate: birthDate, Basis: basis, Schedule: schedule}, nil
}

// AgeAt returns the integer age on date under the plan's basis.
func (p *Plan) AgeAt(date generic.Date) int {
	return p.Basis.Func()(p.BirthDate, date)
}

// DateAtAge returns the date on which the life reaches the exact age.
func (p *Plan) DateAtAge(age decimal.Decimal) generic.Date {
	return generic.AddFractionalYears(generic.Decimal, p.BirthDate, age)
}

// Payments lists every payment in date order.
func (p *Plan) Payments() []Payment {
	payments := make([]Payment, 0, p.Schedule.Len())
	for i, date := range p.Schedule.All() {
		payments = append(payments, p.payment(i, date))
	}
	return payments
}

// PaymentOn returns the latest payment on or before date. ok is false when
// date precedes the first payment.
func (p *Plan) PaymentOn(date generic.Date) (payment Payment, ok bool) {
	i := p.Schedule.IndexOfOrPreviousElement(date)
	if i < 0 {
		return Payment{}, false
	}
	return p.payment(i, p.Schedule.At(i)), true
}

func (p *Plan) payment(i int, date generic.Date) Payment {
	payment := Payment{
		Index:        i,
		Date:         date,
		ExactAge:     generic.ExactAge(generic.Decimal, p.BirthDate, date),
		Age:          p.AgeAt(date),
		YearFraction: decimal.Zero,
	}
	if i > 0 {
		payment.YearFraction = generic.DifferenceOfElapsedFraction(generic.Decimal, p.Schedule.At(i-1), date)
	}
	return payment
}
