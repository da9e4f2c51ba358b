package category

import (
	"context"
	"errors"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// UpdateCategoryInput represents a partial update of a category.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string
	DisplayName *string
	Color       *string
	Icon        *string
}

// Update merges input into the category with the given id.
func (s *Store) Update(ctx context.Context, id int64, input UpdateCategoryInput) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := s.nameTaken(ctx, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}

	if input.DisplayName != nil {
		category.DisplayName = *input.DisplayName
		if category.DisplayName == "" {
			category.DisplayName = category.Name
		}
	}

	if input.Color != nil {
		color := entity.DefaultCategoryColor
		if *input.Color != "" {
			if color, err = normalizeColor(*input.Color); err != nil {
				return nil, err
			}
		}
		category.Color = color
	}

	if input.Icon != nil {
		icon, err := validateIcon(*input.Icon)
		if err != nil {
			return nil, err
		}
		if icon == "" {
			icon = entity.DefaultCategoryIcon
		}
		category.Icon = icon
	}

	category.UpdatedAt = s.clock.Now()

	updated, err := s.table.Update(ctx, category)
	if err != nil {
		if errors.Is(err, adapter.ErrNoRows) {
			return nil, notFoundError()
		}
		return nil, backendError("failed to update category", err)
	}
	return updated, nil
}
