// Package timeentry contains the time entry store and its use cases.
package timeentry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	domainerror "github.com/timeflow/backend/internal/domain/error"
)

const (
	// MaxActivityNameLength is the maximum allowed length for activity names.
	MaxActivityNameLength = 200
	// MaxCategoryLength is the maximum allowed length for an entry's category.
	MaxCategoryLength = 50
)

// Store owns the time entries and the derived active timer.
// Mutations are serialized so at most one entry is ever active.
type Store struct {
	mu    sync.Mutex
	table adapter.Table[*entity.TimeEntry]
	clock adapter.Clock
}

// NewStore creates a new Store over the provider's time entries table.
func NewStore(provider adapter.PersistenceProvider, clock adapter.Clock) *Store {
	return &Store{
		table: provider.TimeEntries(),
		clock: clock,
	}
}

// List returns time entries in insertion order. A limit of zero or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]*entity.TimeEntry, error) {
	entries, err := s.table.Select(ctx, adapter.Query{Limit: limit})
	if err != nil {
		return nil, backendError("failed to list time entries", err)
	}
	return entries, nil
}

// Get returns the time entry with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*entity.TimeEntry, error) {
	return s.find(ctx, id)
}

// EntriesForDate returns the entries whose start time falls on date's
// calendar day, evaluated in date's location.
func (s *Store) EntriesForDate(ctx context.Context, date time.Time) ([]*entity.TimeEntry, error) {
	from := entity.StartOfDay(date)
	y, m, d := from.Date()
	to := time.Date(y, m, d+1, 0, 0, 0, 0, from.Location())

	entries, err := s.table.Select(ctx, adapter.Query{
		Filters: []adapter.Filter{
			adapter.Gte(entity.TimeEntryColumnStartTime, from),
			adapter.Lt(entity.TimeEntryColumnStartTime, to),
		},
	})
	if err != nil {
		return nil, backendError("failed to list time entries for date", err)
	}

	result := make([]*entity.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if entity.SameCalendarDay(e.StartTime, date) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Active returns the running entry, or nil when no timer is running.
func (s *Store) Active(ctx context.Context) (*entity.TimeEntry, error) {
	entries, err := s.table.Select(ctx, adapter.Query{
		Filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnIsActive, true)},
		Limit:   1,
	})
	if err != nil {
		return nil, backendError("failed to find active time entry", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

// SwitchActive completes the running entry, if any, at now and starts a new
// active entry, as one step. It returns the stopped entry (nil when idle)
// and the started one. Inputs must already be validated.
func (s *Store) SwitchActive(ctx context.Context, activityName, category string) (stopped, started *entity.TimeEntry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	active, err := s.Active(ctx)
	if err != nil {
		return nil, nil, err
	}
	if active != nil {
		stopped, err = s.complete(ctx, active, now)
		if err != nil {
			return nil, nil, err
		}
	}

	started, err = s.insert(ctx, &entity.TimeEntry{
		ActivityName: activityName,
		Category:     category,
		StartTime:    now,
		IsActive:     true,
	})
	if err != nil {
		return nil, nil, err
	}
	return stopped, started, nil
}

// StopActive completes the running entry at now.
// Returns a TimerError wrapping ErrNoActiveTimer when idle.
func (s *Store) StopActive(ctx context.Context) (*entity.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, domainerror.NewTimerError(
			domainerror.ErrCodeNoActiveTimer,
			"no timer is running",
			domainerror.ErrNoActiveTimer,
		)
	}
	return s.complete(ctx, active, s.clock.Now())
}

// complete stamps end on entry and saves it. An end before the start is
// clamped to the start so a clock step backwards yields a zero-minute entry.
func (s *Store) complete(ctx context.Context, entry *entity.TimeEntry, end time.Time) (*entity.TimeEntry, error) {
	if end.Before(entry.StartTime) {
		end = entry.StartTime
	}
	entry.Complete(end)
	entry.UpdatedAt = s.clock.Now()

	updated, err := s.table.Update(ctx, entry)
	if err != nil {
		return nil, s.updateError(err)
	}
	return updated, nil
}

func (s *Store) find(ctx context.Context, id int64) (*entity.TimeEntry, error) {
	entries, err := s.table.Select(ctx, adapter.Query{
		Filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnID, id)},
		Limit:   1,
	})
	if err != nil {
		return nil, backendError("failed to find time entry", err)
	}
	if len(entries) == 0 {
		return nil, notFoundError()
	}
	return entries[0], nil
}

// insert assigns the next id and timestamps, then stores entry.
func (s *Store) insert(ctx context.Context, entry *entity.TimeEntry) (*entity.TimeEntry, error) {
	id, err := s.table.NextID(ctx)
	if err != nil {
		return nil, backendError("failed to allocate time entry id", err)
	}

	now := s.clock.Now()
	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now

	created, err := s.table.Insert(ctx, entry)
	if err != nil {
		return nil, backendError("failed to create time entry", err)
	}
	return created, nil
}

func (s *Store) updateError(err error) error {
	if errors.Is(err, adapter.ErrNoRows) {
		return notFoundError()
	}
	return backendError("failed to update time entry", err)
}

// ValidateTimerInput trims and validates an activity name and category.
func ValidateTimerInput(activityName, category string) (string, string, error) {
	activityName = strings.TrimSpace(activityName)
	if activityName == "" {
		return "", "", domainerror.NewTimeEntryError(
			domainerror.ErrCodeActivityNameRequired,
			"activity name is required",
			domainerror.ErrActivityNameRequired,
		)
	}
	if utf8.RuneCountInString(activityName) > MaxActivityNameLength {
		return "", "", domainerror.NewTimeEntryError(
			domainerror.ErrCodeActivityNameTooLong,
			fmt.Sprintf("activity name must not exceed %d characters", MaxActivityNameLength),
			domainerror.ErrActivityNameTooLong,
		)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return "", "", domainerror.NewTimeEntryError(
			domainerror.ErrCodeEntryCategoryRequired,
			"category is required",
			domainerror.ErrEntryCategoryRequired,
		)
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return "", "", domainerror.NewTimeEntryError(
			domainerror.ErrCodeEntryCategoryTooLong,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrEntryCategoryTooLong,
		)
	}

	return activityName, category, nil
}

func validateTimeRange(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return domainerror.NewTimeEntryError(
			domainerror.ErrCodeMissingTimeEntryFields,
			"start time is required",
			domainerror.ErrStartTimeRequired,
		)
	}
	if end != nil && end.Before(start) {
		return domainerror.NewTimeEntryError(
			domainerror.ErrCodeInvalidTimeRange,
			"end time must not be before start time",
			domainerror.ErrInvalidTimeRange,
		)
	}
	return nil
}

func notFoundError() error {
	return domainerror.NewTimeEntryError(
		domainerror.ErrCodeTimeEntryNotFound,
		"time entry not found",
		domainerror.ErrTimeEntryNotFound,
	)
}

// backendError wraps a provider failure, leaving domain errors untouched.
func backendError(message string, err error) error {
	var entryErr *domainerror.TimeEntryError
	var persistenceErr *domainerror.PersistenceError
	if errors.As(err, &entryErr) || errors.As(err, &persistenceErr) {
		return err
	}
	return domainerror.NewBackendUnavailableError(message, err)
}
