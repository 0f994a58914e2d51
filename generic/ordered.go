/*
ordered.go - Immutable, validated sequence of non-decreasing dates

PURPOSE:
  OrderedDates holds dates in non-decreasing order (duplicates allowed) and
  answers lookups by binary search. The typical use is mapping an arbitrary
  date to the scheduled payment date on or before it.

INVARIANTS:
  - dates[i] <= dates[i+1] for every i, checked at construction
  - the backing array is owned by the sequence and never written after
    construction; Slice views share it, Dates returns a copy

EQUALITY:
  Two sequences are Equal when they hold the same dates in the same order.
  Hash is derived from the same values, so Equal sequences hash alike.

USAGE:
  schedule, err := generic.NewOrderedDatesFromStrategy(
      generic.ScheduleMonthlyFirstDay, calculationDate, lastDate)
  i := schedule.IndexOfOrPreviousElement(claimDate)
  if i >= 0 {
      paymentDate := schedule.At(i)
  }

SEE ALSO:
  - schedule.go: Strategies producing the dates
*/
package generic

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// OrderedDates is an immutable sequence of non-decreasing dates.
type OrderedDates struct {
	dates []Date
}

// NewOrderedDates validates and copies dates.
func NewOrderedDates(dates []Date) (*OrderedDates, error) {
	if dates == nil {
		return nil, fmt.Errorf("%w: dates", ErrNullReference)
	}
	if i := firstDecrease(dates); i > 0 {
		return nil, &UnorderedError{Source: "dates", Index: i, Previous: dates[i-1], Next: dates[i]}
	}
	return &OrderedDates{dates: slices.Clone(dates)}, nil
}

// NewOrderedDatesFromStrategy builds the sequence from a strategy's output,
// rejecting output that is not ordered.
func NewOrderedDatesFromStrategy(strategy Strategy, calculationDate, lastDate Date) (*OrderedDates, error) {
	if strategy == nil {
		return nil, fmt.Errorf("%w: strategy", ErrNullReference)
	}
	dates, err := strategy.Dates(calculationDate, lastDate)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategyName(strategy), err)
	}
	if dates == nil {
		return nil, fmt.Errorf("%w: dates produced by strategy %s", ErrNullReference, strategyName(strategy))
	}
	if i := firstDecrease(dates); i > 0 {
		return nil, &UnorderedError{
			Source:   "strategy " + strategyName(strategy),
			Index:    i,
			Previous: dates[i-1],
			Next:     dates[i],
		}
	}
	return &OrderedDates{dates: slices.Clone(dates)}, nil
}

func strategyName(s Strategy) string {
	if k, ok := s.(ScheduleKind); ok {
		return string(k)
	}
	return fmt.Sprintf("%T", s)
}

// IsSorted reports whether dates never decrease. Sequences shorter than two
// are sorted. A nil slice is ErrNullReference.
func IsSorted(dates []Date) (bool, error) {
	if dates == nil {
		return false, fmt.Errorf("%w: dates", ErrNullReference)
	}
	return firstDecrease(dates) < 0, nil
}

// firstDecrease returns the index of the first date smaller than its
// predecessor, or -1.
func firstDecrease(dates []Date) int {
	for i := 1; i < len(dates); i++ {
		if dates[i].Before(dates[i-1]) {
			return i
		}
	}
	return -1
}

// =============================================================================
// ACCESS
// =============================================================================

// Len returns the number of dates.
func (o *OrderedDates) Len() int { return len(o.dates) }

// At returns the i-th date. It panics if i is out of range.
func (o *OrderedDates) At(i int) Date {
	if i < 0 || i >= len(o.dates) {
		panic(fmt.Sprintf("generic: OrderedDates index %d out of range [0:%d]", i, len(o.dates)))
	}
	return o.dates[i]
}

// First returns the earliest date. ok is false for an empty sequence.
func (o *OrderedDates) First() (d Date, ok bool) {
	if len(o.dates) == 0 {
		return Date{}, false
	}
	return o.dates[0], true
}

// Last returns the latest date. ok is false for an empty sequence.
func (o *OrderedDates) Last() (d Date, ok bool) {
	if len(o.dates) == 0 {
		return Date{}, false
	}
	return o.dates[len(o.dates)-1], true
}

// Dates returns a copy of the dates.
func (o *OrderedDates) Dates() []Date { return slices.Clone(o.dates) }

// Slice returns the view [from, to) sharing this sequence's storage.
func (o *OrderedDates) Slice(from, to int) (*OrderedDates, error) {
	if from < 0 || to < from || to > len(o.dates) {
		return nil, fmt.Errorf("%w: [%d:%d] of %d dates", ErrIndexOutOfRange, from, to, len(o.dates))
	}
	return &OrderedDates{dates: o.dates[from:to:to]}, nil
}

// All iterates over index, date pairs in order.
func (o *OrderedDates) All() iter.Seq2[int, Date] {
	return func(yield func(int, Date) bool) {
		for i, d := range o.dates {
			if !yield(i, d) {
				return
			}
		}
	}
}

// Values iterates over the dates in order.
func (o *OrderedDates) Values() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for _, d := range o.dates {
			if !yield(d) {
				return
			}
		}
	}
}

// =============================================================================
// SEARCH
// =============================================================================

// Contains reports whether date is in the sequence.
func (o *OrderedDates) Contains(date Date) bool {
	return o.BinarySearch(date) >= 0
}

// BinarySearch returns the index of date if present. Otherwise it returns the
// bitwise complement of the index where date would be inserted.
func (o *OrderedDates) BinarySearch(date Date) int {
	i, found := slices.BinarySearchFunc(o.dates, date, Date.Compare)
	if found {
		return i
	}
	return ^i
}

// IndexOfOrPreviousElement returns the index of date if present, otherwise
// the index of the latest date before it, or -1 if date precedes them all.
func (o *OrderedDates) IndexOfOrPreviousElement(date Date) int {
	i := o.BinarySearch(date)
	if i >= 0 {
		return i
	}
	return ^i - 1
}

// =============================================================================
// EQUALITY
// =============================================================================

// Equal reports whether both sequences hold the same dates in order.
func (o *OrderedDates) Equal(other *OrderedDates) bool {
	if o == nil || other == nil {
		return o == other
	}
	return slices.Equal(o.dates, other.dates)
}

// Hash returns a hash of the dates consistent with Equal.
func (o *OrderedDates) Hash() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 8)
	for _, d := range o.dates {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(d.DayNumber()))
		h.Write(buf)
	}
	return h.Sum64()
}

// =============================================================================
// ENCODING
// =============================================================================

// MarshalJSON encodes the dates as an array of DateLayout strings.
func (o *OrderedDates) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.dates)
}

// UnmarshalJSON decodes and validates an array of dates. It only decodes
// into a zero OrderedDates; a built sequence is never overwritten.
func (o *OrderedDates) UnmarshalJSON(data []byte) error {
	if o.dates != nil {
		return fmt.Errorf("%w: cannot decode into a built OrderedDates", ErrInvalidArgument)
	}
	var dates []Date
	if err := json.Unmarshal(data, &dates); err != nil {
		return err
	}
	if dates == nil {
		dates = []Date{}
	}
	parsed, err := NewOrderedDates(dates)
	if err != nil {
		return err
	}
	o.dates = parsed.dates
	return nil
}
