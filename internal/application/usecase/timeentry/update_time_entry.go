package timeentry

import (
	"context"
	"time"

	"github.com/timeflow/backend/internal/domain/entity"
)

// UpdateTimeEntryInput represents a partial update of a time entry.
// Nil fields are left unchanged.
type UpdateTimeEntryInput struct {
	ActivityName *string
	Category     *string
	StartTime    *time.Time
	EndTime      *time.Time
}

// Update merges input into the entry with the given id. The duration is
// recomputed when either timestamp changes and both are present; setting an
// end time on a running entry completes it.
func (s *Store) Update(ctx context.Context, id int64, input UpdateTimeEntryInput) (*entity.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	activityName := entry.ActivityName
	if input.ActivityName != nil {
		activityName = *input.ActivityName
	}
	category := entry.Category
	if input.Category != nil {
		category = *input.Category
	}
	if input.ActivityName != nil || input.Category != nil {
		activityName, category, err = ValidateTimerInput(activityName, category)
		if err != nil {
			return nil, err
		}
	}

	start := entry.StartTime
	if input.StartTime != nil {
		start = *input.StartTime
	}
	end := entry.EndTime
	if input.EndTime != nil {
		end = input.EndTime
	}
	if err := validateTimeRange(start, end); err != nil {
		return nil, err
	}

	entry.ActivityName = activityName
	entry.Category = category
	entry.StartTime = start
	if end != nil && (input.StartTime != nil || input.EndTime != nil) {
		entry.Complete(*end)
	}
	entry.UpdatedAt = s.clock.Now()

	updated, err := s.table.Update(ctx, entry)
	if err != nil {
		return nil, s.updateError(err)
	}
	return updated, nil
}
