// Package category contains the category store and its use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	domainerror "github.com/timeflow/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

// Store provides CRUD over categories. Deleting a category never touches
// the time entries that reference it.
type Store struct {
	mu    sync.Mutex
	table adapter.Table[*entity.Category]
	clock adapter.Clock
}

// NewStore creates a new Store over the provider's categories table.
func NewStore(provider adapter.PersistenceProvider, clock adapter.Clock) *Store {
	return &Store{
		table: provider.Categories(),
		clock: clock,
	}
}

// Get returns the category with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*entity.Category, error) {
	return s.findOne(ctx, adapter.Eq(entity.CategoryColumnID, id))
}

// GetByName returns the category with the given name.
func (s *Store) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return s.findOne(ctx, adapter.Eq(entity.CategoryColumnName, strings.TrimSpace(name)))
}

func (s *Store) findOne(ctx context.Context, filter adapter.Filter) (*entity.Category, error) {
	categories, err := s.table.Select(ctx, adapter.Query{
		Filters: []adapter.Filter{filter},
		Limit:   1,
	})
	if err != nil {
		return nil, backendError("failed to find category", err)
	}
	if len(categories) == 0 {
		return nil, notFoundError()
	}
	return categories[0], nil
}

// nameTaken reports whether a category other than exceptID uses name.
func (s *Store) nameTaken(ctx context.Context, name string, exceptID int64) error {
	categories, err := s.table.Select(ctx, adapter.Query{
		Filters: []adapter.Filter{adapter.Eq(entity.CategoryColumnName, name)},
	})
	if err != nil {
		return backendError("failed to check category name existence", err)
	}
	for _, c := range categories {
		if c.ID != exceptID {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"a category with this name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

// normalizeColor parses a hex color (#RGB or #RRGGBB) and returns it as
// lowercase #rrggbb.
func normalizeColor(color string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(color))
	if err != nil {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return c.Hex(), nil
}

func validateIcon(icon string) (string, error) {
	icon = strings.TrimSpace(icon)
	if utf8.RuneCountInString(icon) > MaxIconLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryIconTooLong,
			fmt.Sprintf("icon must not exceed %d characters", MaxIconLength),
			domainerror.ErrCategoryIconTooLong,
		)
	}
	return icon, nil
}

func notFoundError() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// backendError wraps a provider failure, leaving domain errors untouched.
func backendError(message string, err error) error {
	var categoryErr *domainerror.CategoryError
	var persistenceErr *domainerror.PersistenceError
	if errors.As(err, &categoryErr) || errors.As(err, &persistenceErr) {
		return err
	}
	return domainerror.NewBackendUnavailableError(message, err)
}
