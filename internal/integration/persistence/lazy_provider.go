package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// OpenFunc connects to a persistence backend.
type OpenFunc func(ctx context.Context) (adapter.PersistenceProvider, error)

// LazyProvider defers connecting to the backend until the first operation.
// A failed attempt is not cached; the next operation tries again.
type LazyProvider struct {
	mu       sync.Mutex
	open     OpenFunc
	provider adapter.PersistenceProvider
}

// NewLazyProvider creates a provider that opens its backend on first use.
func NewLazyProvider(open OpenFunc) *LazyProvider {
	return &LazyProvider{open: open}
}

func (p *LazyProvider) resolve(ctx context.Context) (adapter.PersistenceProvider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return p.provider, nil
	}

	provider, err := p.open(ctx)
	if err != nil {
		slog.Warn("Failed to initialize persistence provider", "error", err)
		return nil, fmt.Errorf("failed to initialize persistence provider: %w", err)
	}

	slog.Info("Persistence provider initialized")
	p.provider = provider
	return provider, nil
}

// Categories returns the categories table.
func (p *LazyProvider) Categories() adapter.Table[*entity.Category] {
	return &lazyTable[*entity.Category]{
		resolve: func(ctx context.Context) (adapter.Table[*entity.Category], error) {
			provider, err := p.resolve(ctx)
			if err != nil {
				return nil, err
			}
			return provider.Categories(), nil
		},
	}
}

// TimeEntries returns the time entries table.
func (p *LazyProvider) TimeEntries() adapter.Table[*entity.TimeEntry] {
	return &lazyTable[*entity.TimeEntry]{
		resolve: func(ctx context.Context) (adapter.Table[*entity.TimeEntry], error) {
			provider, err := p.resolve(ctx)
			if err != nil {
				return nil, err
			}
			return provider.TimeEntries(), nil
		},
	}
}

// Ping opens the backend if needed and checks it.
func (p *LazyProvider) Ping(ctx context.Context) error {
	provider, err := p.resolve(ctx)
	if err != nil {
		return err
	}
	return provider.Ping(ctx)
}

// Close closes the backend if it was opened.
func (p *LazyProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider == nil {
		return nil
	}
	err := p.provider.Close()
	p.provider = nil
	return err
}

type lazyTable[R adapter.Row] struct {
	resolve func(ctx context.Context) (adapter.Table[R], error)
}

func (t *lazyTable[R]) NextID(ctx context.Context) (int64, error) {
	table, err := t.resolve(ctx)
	if err != nil {
		return 0, err
	}
	return table.NextID(ctx)
}

func (t *lazyTable[R]) Select(ctx context.Context, query adapter.Query) ([]R, error) {
	table, err := t.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return table.Select(ctx, query)
}

func (t *lazyTable[R]) Insert(ctx context.Context, row R) (R, error) {
	table, err := t.resolve(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return table.Insert(ctx, row)
}

func (t *lazyTable[R]) Update(ctx context.Context, row R) (R, error) {
	table, err := t.resolve(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return table.Update(ctx, row)
}

func (t *lazyTable[R]) Delete(ctx context.Context, filters ...adapter.Filter) ([]R, error) {
	table, err := t.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return table.Delete(ctx, filters...)
}
