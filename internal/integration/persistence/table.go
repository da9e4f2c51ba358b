// Package persistence implements the persistence provider backends.
package persistence

import (
	"strings"
	"time"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	"github.com/timeflow/backend/internal/integration/persistence/model"
)

// tableSpec describes how a domain row maps to its storage model.
type tableSpec[R adapter.Row, M any] struct {
	name     string
	toModel  func(R) *M
	toEntity func(*M) R
}

var categorySpec = tableSpec[*entity.Category, model.CategoryModel]{
	name:     adapter.TableCategories,
	toModel:  model.CategoryFromEntity,
	toEntity: (*model.CategoryModel).ToEntity,
}

var timeEntrySpec = tableSpec[*entity.TimeEntry, model.TimeEntryModel]{
	name:     adapter.TableTimeEntries,
	toModel:  model.TimeEntryFromEntity,
	toEntity: (*model.TimeEntryModel).ToEntity,
}

// matchesAll reports whether row satisfies every filter.
func matchesAll(row adapter.Row, filters []adapter.Filter) bool {
	for _, f := range filters {
		if !matches(row, f) {
			return false
		}
	}
	return true
}

func matches(row adapter.Row, f adapter.Filter) bool {
	value, ok := row.ColumnValue(f.Column)
	if !ok {
		return false
	}

	cmp, ok := compareValues(value, f.Value)
	if !ok {
		return false
	}

	switch f.Op {
	case adapter.OpEq:
		return cmp == 0
	case adapter.OpGt:
		return cmp > 0
	case adapter.OpGte:
		return cmp >= 0
	case adapter.OpLt:
		return cmp < 0
	case adapter.OpLte:
		return cmp <= 0
	default:
		return false
	}
}

// compareValues orders two column values of the same kind.
// It returns false when the values are not comparable.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, a == nil && b == nil
	}

	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	}

	x, ok := toInt64(a)
	if !ok {
		return 0, false
	}
	y, ok := toInt64(b)
	if !ok {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	default:
		return 0, true
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// applyLimit truncates rows to limit when limit is positive.
func applyLimit[R any](rows []R, limit int) []R {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
