/*
errors.go - Centralized error types for the date engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers test for error kinds with errors.Is and read details with errors.As.

ERROR KINDS:
  1. Invalid argument - bad dates, unordered sequences, empty schedule ranges
  2. Null reference   - a required collaborator (strategy, sequence) is missing
  3. Store errors     - saved schedule lookups

  ErrOutOfRange and ErrUnordered are specializations of ErrInvalidArgument:

    if errors.Is(err, generic.ErrInvalidArgument) {
        // true for *OutOfRangeError and *UnorderedError as well
    }

SEE ALSO:
  - schedule.go: Returns OutOfRangeError
  - ordered.go: Returns UnorderedError
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned when an input cannot be processed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNullReference is returned when a required collaborator is absent.
	ErrNullReference = errors.New("null reference")

	// ErrOutOfRange is returned when a schedule's first period boundary falls
	// after the requested last date.
	ErrOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidArgument)

	// ErrUnordered is returned when a date sequence decreases somewhere.
	ErrUnordered = fmt.Errorf("%w: dates are not ordered", ErrInvalidArgument)

	// ErrUnknownScheduleKind is returned for schedule kinds outside the
	// supported set.
	ErrUnknownScheduleKind = fmt.Errorf("%w: unknown schedule kind", ErrInvalidArgument)

	// ErrIndexOutOfRange is returned for view bounds outside a sequence.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrScheduleNotFound is returned when a saved schedule doesn't exist.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrDuplicateSchedule is returned when saving a schedule whose ID exists.
	ErrDuplicateSchedule = errors.New("duplicate schedule id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OutOfRangeError reports a calculation date whose rolled period boundary
// comes after the last date.
type OutOfRangeError struct {
	Kind            ScheduleKind
	CalculationDate Date
	RolledStart     Date
	LastDate        Date
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: first period boundary %s (from calculation date %s) is after last date %s",
		e.Kind, e.RolledStart, e.CalculationDate, e.LastDate)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

// UnorderedError reports the first decrease found in a date sequence.
// Source names who produced the sequence ("dates" for caller input, or the
// strategy).
type UnorderedError struct {
	Source   string
	Index    int
	Previous Date
	Next     Date
}

func (e *UnorderedError) Error() string {
	return fmt.Sprintf("the dates produced by %s are not ordered: %s at index %d follows %s",
		e.Source, e.Next, e.Index, e.Previous)
}

func (e *UnorderedError) Unwrap() error {
	return ErrUnordered
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNullReference) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrDuplicateSchedule)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound)
}
