package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/persistence"
	"github.com/timeflow/backend/internal/testutil"
)

func newTestManager(t *testing.T) (*Manager, *timeentry.Store, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	store := timeentry.NewStore(persistence.NewMemoryProvider(), clock)
	return NewManager(store), store, clock
}

func TestManager_StartStop(t *testing.T) {
	ctx := context.Background()
	manager, _, clock := newTestManager(t)

	active, err := manager.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	started, err := manager.Start(ctx, "Write tests", "development")
	require.NoError(t, err)
	assert.True(t, started.IsActive)
	assert.Nil(t, started.EndTime)
	assert.Equal(t, 0, started.Duration)

	clock.Advance(90 * time.Second)

	stopped, err := manager.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	assert.False(t, stopped.IsActive)
	require.NotNil(t, stopped.EndTime)
	assert.Equal(t, 2, stopped.Duration)

	active, err = manager.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestManager_StartWhileRunning(t *testing.T) {
	ctx := context.Background()
	manager, store, clock := newTestManager(t)

	first, err := manager.Start(ctx, "Design", "work")
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)

	second, err := manager.Start(ctx, "Email", "admin")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	previous, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsActive)
	assert.Equal(t, 30, previous.Duration)

	active, err := manager.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestManager_StopWhenIdle(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	_, err := manager.Stop(ctx)
	assert.ErrorIs(t, err, domainerror.ErrNoActiveTimer)

	var timerErr *domainerror.TimerError
	require.True(t, errors.As(err, &timerErr))
	assert.Equal(t, domainerror.ErrCodeNoActiveTimer, timerErr.Code)
}

func TestManager_InvalidStartKeepsRunningTimer(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestManager(t)

	running, err := manager.Start(ctx, "Focus", "work")
	require.NoError(t, err)

	_, err = manager.Start(ctx, "   ", "work")
	assert.ErrorIs(t, err, domainerror.ErrActivityNameRequired)

	active, err := manager.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, running.ID, active.ID)
}

func TestManager_ConcurrentStarts(t *testing.T) {
	ctx := context.Background()
	manager, store, _ := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Start(ctx, "Parallel", "work")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 20)

	activeCount := 0
	for _, e := range entries {
		if e.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}
