package category

import (
	"context"

	"github.com/timeflow/backend/internal/domain/entity"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	DisplayName string // Optional, defaults to Name
	Color       string // Optional, defaults to DefaultCategoryColor
	Icon        string // Optional, defaults to DefaultCategoryIcon
}

// Create validates input and stores a new category.
func (s *Store) Create(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	color := entity.DefaultCategoryColor
	if input.Color != "" {
		if color, err = normalizeColor(input.Color); err != nil {
			return nil, err
		}
	}

	icon, err := validateIcon(input.Icon)
	if err != nil {
		return nil, err
	}
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.nameTaken(ctx, name, 0); err != nil {
		return nil, err
	}

	id, err := s.table.NextID(ctx)
	if err != nil {
		return nil, backendError("failed to allocate category id", err)
	}

	category := entity.NewCategory(id, name, displayName, color, icon, s.clock.Now())
	created, err := s.table.Insert(ctx, category)
	if err != nil {
		return nil, backendError("failed to create category", err)
	}
	return created, nil
}
