package timeentry

import (
	"context"
	"time"

	"github.com/timeflow/backend/internal/domain/entity"
	domainerror "github.com/timeflow/backend/internal/domain/error"
)

// CreateTimeEntryInput represents the input for manual time entry creation.
type CreateTimeEntryInput struct {
	ActivityName string
	Category     string
	StartTime    time.Time
	EndTime      *time.Time // Optional; when set the entry is completed
	IsActive     bool       // Only honored when EndTime is nil
}

// Create validates input and stores a new time entry.
func (s *Store) Create(ctx context.Context, input CreateTimeEntryInput) (*entity.TimeEntry, error) {
	activityName, category, err := ValidateTimerInput(input.ActivityName, input.Category)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	entry := &entity.TimeEntry{
		ActivityName: activityName,
		Category:     category,
		StartTime:    input.StartTime,
	}
	if input.EndTime != nil {
		entry.Complete(*input.EndTime)
	} else {
		entry.IsActive = input.IsActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.IsActive {
		active, err := s.Active(ctx)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, domainerror.NewTimeEntryError(
				domainerror.ErrCodeActiveTimerExists,
				"another timer is already running",
				domainerror.ErrActiveTimerExists,
			)
		}
	}

	return s.insert(ctx, entry)
}
