package testutil

import (
	"context"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

// FailingProvider is a persistence provider whose every operation fails
// with Err. Use it to simulate an unreachable backend.
type FailingProvider struct {
	Err error
}

// NewFailingProvider creates a provider failing with err.
func NewFailingProvider(err error) *FailingProvider {
	return &FailingProvider{Err: err}
}

func (p *FailingProvider) Categories() adapter.Table[*entity.Category] {
	return failingTable[*entity.Category]{err: p.Err}
}

func (p *FailingProvider) TimeEntries() adapter.Table[*entity.TimeEntry] {
	return failingTable[*entity.TimeEntry]{err: p.Err}
}

func (p *FailingProvider) Ping(context.Context) error {
	return p.Err
}

func (p *FailingProvider) Close() error {
	return nil
}

type failingTable[R adapter.Row] struct {
	err error
}

func (t failingTable[R]) NextID(context.Context) (int64, error) {
	return 0, t.err
}

func (t failingTable[R]) Select(context.Context, adapter.Query) ([]R, error) {
	return nil, t.err
}

func (t failingTable[R]) Insert(context.Context, R) (R, error) {
	var zero R
	return zero, t.err
}

func (t failingTable[R]) Update(context.Context, R) (R, error) {
	var zero R
	return zero, t.err
}

func (t failingTable[R]) Delete(context.Context, ...adapter.Filter) ([]R, error) {
	return nil, t.err
}
