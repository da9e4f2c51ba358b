// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"

	"github.com/timeflow/backend/internal/domain/entity"
)

// Table names.
const (
	TableCategories  = "categories"
	TableTimeEntries = "time_entries"
)

// ErrNoRows is returned by Table.Update when no record has the row's primary key.
var ErrNoRows = errors.New("no rows matched")

// ErrMissingFilter is returned by Table.Delete when called without filters.
var ErrMissingFilter = errors.New("delete requires at least one filter")

// Operator is a comparison applied by a Filter.
type Operator string

const (
	OpEq  Operator = "="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
)

// Valid reports whether op is a supported operator.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpGt, OpGte, OpLt, OpLte:
		return true
	default:
		return false
	}
}

// Filter restricts a query to rows whose column compares to Value.
type Filter struct {
	Column string
	Op     Operator
	Value  any
}

// Eq matches rows where column equals value.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Gte matches rows where column is greater than or equal to value.
func Gte(column string, value any) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

// Lt matches rows where column is strictly less than value.
func Lt(column string, value any) Filter {
	return Filter{Column: column, Op: OpLt, Value: value}
}

// Query selects rows matching every filter, ordered by primary key.
// A Limit of zero or less selects all matching rows.
type Query struct {
	Filters []Filter
	Limit   int
}

// Row is a record that can be stored in a provider table.
type Row interface {
	PrimaryKey() int64
	ColumnValue(column string) (any, bool)
}

// Table defines table-oriented CRUD operations over one record type.
type Table[R Row] interface {
	// NextID returns the next value of the table's id sequence. Values are never reused.
	NextID(ctx context.Context) (int64, error)

	// Select returns the rows matching the query in primary key order.
	Select(ctx context.Context, query Query) ([]R, error)

	// Insert stores a new row. The row's primary key must already be assigned.
	Insert(ctx context.Context, row R) (R, error)

	// Update replaces the row with the same primary key. Returns ErrNoRows if absent.
	Update(ctx context.Context, row R) (R, error)

	// Delete removes every row matching all filters and returns the removed rows.
	Delete(ctx context.Context, filters ...Filter) ([]R, error)
}

// PersistenceProvider defines the storage backend consumed by the stores.
type PersistenceProvider interface {
	// Categories returns the categories table.
	Categories() Table[*entity.Category]

	// TimeEntries returns the time entries table.
	TimeEntries() Table[*entity.TimeEntry]

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
