package timeentry

import (
	"context"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// Delete removes the entry with the given id and returns it.
// Deleting the running entry leaves no timer active.
func (s *Store) Delete(ctx context.Context, id int64) (*entity.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.table.Delete(ctx, adapter.Eq(entity.TimeEntryColumnID, id))
	if err != nil {
		return nil, backendError("failed to delete time entry", err)
	}
	if len(removed) == 0 {
		return nil, notFoundError()
	}
	return removed[0], nil
}
