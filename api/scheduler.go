/*
scheduler.go - Automated retention of saved schedules

PURPOSE:
  Periodically deletes saved schedules whose last date lies more than the
  retention period in the past. Schedules that can still answer lookups
  for recent dates are kept.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - A schedule expires when today > LastDate + Retention
  - A failed delete is logged and the sweep continues

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Retention: Grace period after LastDate, as a fraction of years
  - Enabled: Whether the sweeper is active (default: true)

USAGE:
  sweeper := NewRetentionSweeper(store, logger, decimal.NewFromInt(1))
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - handlers.go: DeleteSchedule endpoint (manual deletion)
  - generic/calendar.go: AddFractionalYears
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/date-engine/generic"
)

// RetentionSweeper deletes expired saved schedules.
type RetentionSweeper struct {
	Store         generic.ScheduleStore
	Log           logrus.FieldLogger
	Retention     decimal.Decimal
	CheckInterval time.Duration
	Enabled       bool

	today  func() generic.Date
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRetentionSweeper creates a sweeper keeping schedules for retention
// years after their last date.
func NewRetentionSweeper(store generic.ScheduleStore, log logrus.FieldLogger, retention decimal.Decimal) *RetentionSweeper {
	return &RetentionSweeper{
		Store:         store,
		Log:           log,
		Retention:     retention,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		today:         generic.Today,
	}
}

// Start begins the sweeper.
func (rs *RetentionSweeper) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		rs.Log.Info("retention sweeper disabled, not starting")
		return
	}
	if rs.ticker != nil {
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)

	go rs.run()

	rs.Log.WithFields(logrus.Fields{
		"interval":        rs.CheckInterval,
		"retention_years": rs.Retention.String(),
	}).Info("retention sweeper started")
}

// Stop stops the sweeper and waits for a running sweep to finish.
func (rs *RetentionSweeper) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		rs.Log.Info("retention sweeper stopped")
	}
}

func (rs *RetentionSweeper) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.sweepLogged()

	for {
		select {
		case <-rs.ticker.C:
			rs.sweepLogged()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RetentionSweeper) sweepLogged() {
	deleted, err := rs.Sweep(context.Background())
	if err != nil {
		rs.Log.WithError(err).Error("retention sweep failed")
		return
	}
	if deleted > 0 {
		rs.Log.WithField("deleted", deleted).Info("retention sweep completed")
	}
}

// Sweep deletes every expired schedule once and returns how many were
// deleted.
func (rs *RetentionSweeper) Sweep(ctx context.Context) (int, error) {
	schedules, err := rs.Store.ListSchedules(ctx)
	if err != nil {
		return 0, err
	}

	today := rs.today()
	deleted := 0
	for _, s := range schedules {
		expires := generic.AddFractionalYears(generic.Decimal, s.LastDate, rs.Retention)
		if !today.After(expires) {
			continue
		}
		if err := rs.Store.DeleteSchedule(ctx, s.ID); err != nil {
			rs.Log.WithError(err).WithField("schedule_id", s.ID).Warn("failed to delete expired schedule")
			continue
		}
		deleted++
	}
	return deleted, nil
}
