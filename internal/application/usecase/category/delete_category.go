package category

import (
	"context"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// Delete removes the category with the given id and returns it.
// Time entries filed under the category keep its name.
func (s *Store) Delete(ctx context.Context, id int64) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.table.Delete(ctx, adapter.Eq(entity.CategoryColumnID, id))
	if err != nil {
		return nil, backendError("failed to delete category", err)
	}
	if len(removed) == 0 {
		return nil, notFoundError()
	}
	return removed[0], nil
}
