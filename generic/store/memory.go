// Package store provides ScheduleStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/date-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	schedules map[generic.ScheduleID]generic.SavedSchedule
	order     []generic.ScheduleID
}

func NewMemory() *Memory {
	return &Memory{
		schedules: make(map[generic.ScheduleID]generic.SavedSchedule),
	}
}

// SaveSchedule stores s. The ID must be new.
func (m *Memory) SaveSchedule(_ context.Context, s generic.SavedSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.schedules[s.ID]; exists {
		return generic.ErrDuplicateSchedule
	}

	// Keep order sorted by (CreatedAt, ID) so ListSchedules needs no sort.
	i := sort.Search(len(m.order), func(i int) bool {
		other := m.schedules[m.order[i]]
		if !other.CreatedAt.Equal(s.CreatedAt) {
			return other.CreatedAt.After(s.CreatedAt)
		}
		return other.ID > s.ID
	})
	m.order = append(m.order, "")
	copy(m.order[i+1:], m.order[i:])
	m.order[i] = s.ID
	m.schedules[s.ID] = s
	return nil
}

func (m *Memory) GetSchedule(_ context.Context, id generic.ScheduleID) (generic.SavedSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[id]
	if !ok {
		return generic.SavedSchedule{}, generic.ErrScheduleNotFound
	}
	return s, nil
}

func (m *Memory) ListSchedules(_ context.Context) ([]generic.SavedSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.SavedSchedule, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.schedules[id])
	}
	return result, nil
}

func (m *Memory) DeleteSchedule(_ context.Context, id generic.ScheduleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schedules[id]; !ok {
		return generic.ErrScheduleNotFound
	}
	delete(m.schedules, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ generic.ScheduleStore = (*Memory)(nil)
