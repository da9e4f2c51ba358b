package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
	"github.com/timeflow/backend/internal/integration/persistence/model"
)

// memoryProvider implements adapter.PersistenceProvider in process memory.
type memoryProvider struct {
	categories  *memoryTable[*entity.Category, model.CategoryModel]
	timeEntries *memoryTable[*entity.TimeEntry, model.TimeEntryModel]
}

// NewMemoryProvider creates a provider that keeps all records in memory.
func NewMemoryProvider() adapter.PersistenceProvider {
	return &memoryProvider{
		categories:  newMemoryTable(categorySpec),
		timeEntries: newMemoryTable(timeEntrySpec),
	}
}

// Categories returns the categories table.
func (p *memoryProvider) Categories() adapter.Table[*entity.Category] {
	return p.categories
}

// TimeEntries returns the time entries table.
func (p *memoryProvider) TimeEntries() adapter.Table[*entity.TimeEntry] {
	return p.timeEntries
}

// Ping always succeeds.
func (p *memoryProvider) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (p *memoryProvider) Close() error {
	return nil
}

// memoryTable stores model copies keyed by primary key so callers never
// share memory with the table.
type memoryTable[R adapter.Row, M any] struct {
	mu   sync.RWMutex
	spec tableSpec[R, M]
	seq  int64
	rows map[int64]*M
}

func newMemoryTable[R adapter.Row, M any](spec tableSpec[R, M]) *memoryTable[R, M] {
	return &memoryTable[R, M]{
		spec: spec,
		rows: make(map[int64]*M),
	}
}

// NextID returns the next value of the table's id sequence.
func (t *memoryTable[R, M]) NextID(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	return t.seq, nil
}

// Select returns the rows matching the query in primary key order.
func (t *memoryTable[R, M]) Select(ctx context.Context, query adapter.Query) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	result := make([]R, 0, len(ids))
	for _, id := range ids {
		row := t.spec.toEntity(t.rows[id])
		if matchesAll(row, query.Filters) {
			result = append(result, row)
		}
	}
	return applyLimit(result, query.Limit), nil
}

// Insert stores a new row.
func (t *memoryTable[R, M]) Insert(ctx context.Context, row R) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := row.PrimaryKey()
	if _, exists := t.rows[id]; exists {
		return zero, fmt.Errorf("%s: duplicate primary key %d", t.spec.name, id)
	}
	if id > t.seq {
		t.seq = id
	}

	stored := t.spec.toModel(row)
	t.rows[id] = stored
	return t.spec.toEntity(stored), nil
}

// Update replaces the row with the same primary key.
func (t *memoryTable[R, M]) Update(ctx context.Context, row R) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := row.PrimaryKey()
	if _, exists := t.rows[id]; !exists {
		return zero, adapter.ErrNoRows
	}

	stored := t.spec.toModel(row)
	t.rows[id] = stored
	return t.spec.toEntity(stored), nil
}

// Delete removes every row matching all filters.
func (t *memoryTable[R, M]) Delete(ctx context.Context, filters ...adapter.Filter) ([]R, error) {
	if len(filters) == 0 {
		return nil, adapter.ErrMissingFilter
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int64, 0)
	for id, stored := range t.rows {
		if matchesAll(t.spec.toEntity(stored), filters) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	removed := make([]R, 0, len(ids))
	for _, id := range ids {
		removed = append(removed, t.spec.toEntity(t.rows[id]))
		delete(t.rows, id)
	}
	return removed, nil
}
