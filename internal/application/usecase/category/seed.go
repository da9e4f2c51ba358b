package category

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/timeflow/backend/internal/application/adapter"
)

//go:embed defaults.yaml
var defaultCategoriesYAML []byte

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
}

type seedCategory struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Color       string `yaml:"color"`
	Icon        string `yaml:"icon"`
}

// DefaultCategories returns the built-in category set.
func DefaultCategories() ([]CreateCategoryInput, error) {
	var file seedFile
	if err := yaml.Unmarshal(defaultCategoriesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse default categories: %w", err)
	}

	inputs := make([]CreateCategoryInput, len(file.Categories))
	for i, c := range file.Categories {
		inputs[i] = CreateCategoryInput{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Color:       c.Color,
			Icon:        c.Icon,
		}
	}
	return inputs, nil
}

// Seed inserts the default categories when the table is empty.
// It returns the number of categories created.
func (s *Store) Seed(ctx context.Context) (int, error) {
	existing, err := s.table.Select(ctx, adapter.Query{Limit: 1})
	if err != nil {
		return 0, backendError("failed to check existing categories", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	defaults, err := DefaultCategories()
	if err != nil {
		return 0, err
	}

	for i, input := range defaults {
		if _, err := s.Create(ctx, input); err != nil {
			return i, fmt.Errorf("failed to seed category %q: %w", input.Name, err)
		}
	}

	slog.Info("Seeded default categories", "count", len(defaults))
	return len(defaults), nil
}
