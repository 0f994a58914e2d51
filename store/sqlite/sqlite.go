/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements generic.ScheduleStore using SQLite. A schedule row keeps the
  generation inputs next to the generated dates so lookups never regenerate.

KEY TABLES:
  schedules: id, name, kind, calculation_date, last_date, dates_json, created_at

  Dates are stored as ISO text ("2006-01-02"), dates_json as a JSON array of
  the same. created_at is unix nanoseconds so ORDER BY is chronological.

VALIDATION ON READ:
  dates_json is decoded and passed through NewOrderedDates, so a row edited
  by hand into disorder fails to load instead of breaking binary search.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency.

USAGE:
  store, err := sqlite.New("./data/schedules.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - generic/store.go: Interface definition
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/warp/date-engine/generic"
)

// Store implements generic.ScheduleStore using SQLite.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	store.log.WithField("path", dbPath).Debug("sqlite store opened")
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		calculation_date TEXT NOT NULL,
		last_date TEXT NOT NULL,
		dates_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_created
		ON schedules(created_at, id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULES
// =============================================================================

// SaveSchedule inserts a schedule. An existing ID is ErrDuplicateSchedule.
func (s *Store) SaveSchedule(ctx context.Context, sched generic.SavedSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sched.Dates == nil {
		return fmt.Errorf("%w: schedule %s has no dates", generic.ErrNullReference, sched.ID)
	}
	datesJSON, err := json.Marshal(sched.Dates)
	if err != nil {
		return fmt.Errorf("failed to encode dates: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schedules (id, name, kind, calculation_date, last_date, dates_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(sched.ID),
		sched.Name,
		string(sched.Kind),
		sched.CalculationDate.String(),
		sched.LastDate.String(),
		string(datesJSON),
		sched.CreatedAt.UnixNano(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return generic.ErrDuplicateSchedule
		}
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"schedule_id": sched.ID,
		"kind":        sched.Kind,
		"dates":       sched.Dates.Len(),
	}).Debug("schedule saved")
	return nil
}

// GetSchedule loads one schedule.
func (s *Store) GetSchedule(ctx context.Context, id generic.ScheduleID) (generic.SavedSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, calculation_date, last_date, dates_json, created_at
		FROM schedules WHERE id = ?`, string(id))

	sched, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return generic.SavedSchedule{}, generic.ErrScheduleNotFound
	}
	return sched, err
}

// ListSchedules loads every schedule, oldest first.
func (s *Store) ListSchedules(ctx context.Context) ([]generic.SavedSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, calculation_date, last_date, dates_json, created_at
		FROM schedules ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []generic.SavedSchedule{}
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

// DeleteSchedule removes one schedule.
func (s *Store) DeleteSchedule(ctx context.Context, id generic.ScheduleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrScheduleNotFound
	}

	s.log.WithField("schedule_id", id).Debug("schedule deleted")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row scanner) (generic.SavedSchedule, error) {
	var (
		sched                              generic.SavedSchedule
		id, kind, calculation, last, dates string
		createdAt                          int64
	)
	if err := row.Scan(&id, &sched.Name, &kind, &calculation, &last, &dates, &createdAt); err != nil {
		return generic.SavedSchedule{}, err
	}

	var err error
	sched.ID = generic.ScheduleID(id)
	sched.Kind = generic.ScheduleKind(kind)
	if sched.CalculationDate, err = generic.ParseDate(calculation); err != nil {
		return generic.SavedSchedule{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	if sched.LastDate, err = generic.ParseDate(last); err != nil {
		return generic.SavedSchedule{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	var decoded []generic.Date
	if err := json.Unmarshal([]byte(dates), &decoded); err != nil {
		return generic.SavedSchedule{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	if decoded == nil {
		decoded = []generic.Date{}
	}
	if sched.Dates, err = generic.NewOrderedDates(decoded); err != nil {
		return generic.SavedSchedule{}, fmt.Errorf("schedule %s: %w", id, err)
	}
	sched.CreatedAt = time.Unix(0, createdAt).UTC()
	return sched, nil
}

var _ generic.ScheduleStore = (*Store)(nil)
