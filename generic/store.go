/*
store.go - Persistence interface for saved schedules

PURPOSE:
  Defines the interface between the schedule API and the database. A saved
  schedule is the generated OrderedDates plus the inputs that produced it,
  so later lookups ("which payment date covers March 2?") don't regenerate.

KEY INTERFACES:
  ScheduleStore: Save, get, list, delete saved schedules

CONTRACT:
  - SaveSchedule rejects an existing ID with ErrDuplicateSchedule
  - GetSchedule and DeleteSchedule return ErrScheduleNotFound for unknown IDs
  - ListSchedules orders by creation time, then ID

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for testing

SEE ALSO:
  - ordered.go: OrderedDates
  - api/handlers.go: HTTP endpoints using the store
*/
package generic

import (
	"context"
	"time"
)

// ScheduleID identifies a saved schedule.
type ScheduleID string

// SavedSchedule is a generated schedule together with its inputs.
type SavedSchedule struct {
	ID              ScheduleID
	Name            string
	Kind            ScheduleKind
	CalculationDate Date
	LastDate        Date
	Dates           *OrderedDates
	CreatedAt       time.Time
}

// ScheduleStore persists saved schedules.
type ScheduleStore interface {
	SaveSchedule(ctx context.Context, s SavedSchedule) error
	GetSchedule(ctx context.Context, id ScheduleID) (SavedSchedule, error)
	ListSchedules(ctx context.Context) ([]SavedSchedule, error)
	DeleteSchedule(ctx context.Context, id ScheduleID) error
}
