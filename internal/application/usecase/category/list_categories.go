package category

import (
	"context"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// List returns every category in insertion order.
func (s *Store) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.table.Select(ctx, adapter.Query{})
	if err != nil {
		return nil, backendError("failed to list categories", err)
	}
	return categories, nil
}
