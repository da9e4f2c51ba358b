// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category column names, shared by every persistence provider.
const (
	CategoryColumnID          = "id"
	CategoryColumnName        = "name"
	CategoryColumnDisplayName = "display_name"
	CategoryColumnColor       = "color"
	CategoryColumnIcon        = "icon"
)

// Category represents an activity category that time entries are filed under.
// Entries reference a category by Name, not by ID.
type Category struct {
	ID          int64
	Name        string
	DisplayName string
	Color       string
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for display name, color and icon is applied in the
// Application layer before calling this constructor.
func NewCategory(id int64, name, displayName, color, icon string, now time.Time) *Category {
	return &Category{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
		Color:       color,
		Icon:        icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PrimaryKey returns the category ID.
func (c *Category) PrimaryKey() int64 {
	return c.ID
}

// ColumnValue returns the value stored under the given column name.
func (c *Category) ColumnValue(column string) (any, bool) {
	switch column {
	case CategoryColumnID:
		return c.ID, true
	case CategoryColumnName:
		return c.Name, true
	case CategoryColumnDisplayName:
		return c.DisplayName, true
	case CategoryColumnColor:
		return c.Color, true
	case CategoryColumnIcon:
		return c.Icon, true
	default:
		return nil, false
	}
}
