// Package timer contains the timer lifecycle use cases.
package timer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	"github.com/timeflow/backend/internal/domain/entity"
)

// Manager starts and stops the single running timer. A timer is an active
// time entry; starting while one runs stops it first.
type Manager struct {
	mu      sync.Mutex
	entries *timeentry.Store
}

// NewManager creates a new Manager over the time entry store.
func NewManager(entries *timeentry.Store) *Manager {
	return &Manager{entries: entries}
}

// Start begins timing activityName under category and returns the new
// active entry. Input is validated before any running timer is stopped.
func (m *Manager) Start(ctx context.Context, activityName, category string) (*entity.TimeEntry, error) {
	activityName, category, err := timeentry.ValidateTimerInput(activityName, category)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stopped, started, err := m.entries.SwitchActive(ctx, activityName, category)
	if err != nil {
		return nil, err
	}

	if stopped != nil {
		slog.Info("Stopped running timer before starting a new one",
			"stopped_id", stopped.ID,
			"started_id", started.ID,
			"duration_minutes", stopped.Duration,
		)
	}
	return started, nil
}

// Stop completes the running timer and returns it.
// Returns an error wrapping ErrNoActiveTimer when no timer is running.
func (m *Manager) Stop(ctx context.Context) (*entity.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.entries.StopActive(ctx)
}

// Active returns the running timer, or nil when idle.
func (m *Manager) Active(ctx context.Context) (*entity.TimeEntry, error) {
	return m.entries.Active(ctx)
}
