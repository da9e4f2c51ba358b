package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/domain/entity"
)

var t0 = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func newSQLiteProvider(t *testing.T) adapter.PersistenceProvider {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	provider := NewGormProvider(db)
	require.NoError(t, provider.Migrate(context.Background()))
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

func newRedisProvider(t *testing.T) adapter.PersistenceProvider {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	provider := NewRedisProvider(client, "test")
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

// forEachProvider runs fn against a fresh instance of every backend.
func forEachProvider(t *testing.T, fn func(t *testing.T, provider adapter.PersistenceProvider)) {
	backends := map[string]func(t *testing.T) adapter.PersistenceProvider{
		"memory": func(*testing.T) adapter.PersistenceProvider { return NewMemoryProvider() },
		"sqlite": newSQLiteProvider,
		"redis":  newRedisProvider,
		"lazy": func(t *testing.T) adapter.PersistenceProvider {
			return NewLazyProvider(func(context.Context) (adapter.PersistenceProvider, error) {
				return NewMemoryProvider(), nil
			})
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func newEntry(id int64, activity string, start time.Time, minutes int, active bool) *entity.TimeEntry {
	e := &entity.TimeEntry{
		ID:           id,
		ActivityName: activity,
		Category:     "work",
		StartTime:    start,
		IsActive:     active,
		CreatedAt:    t0,
		UpdatedAt:    t0,
	}
	if !active {
		e.Complete(start.Add(time.Duration(minutes) * time.Minute))
	}
	return e
}

func insertEntries(t *testing.T, table adapter.Table[*entity.TimeEntry], entries ...*entity.TimeEntry) {
	t.Helper()
	for _, e := range entries {
		_, err := table.Insert(context.Background(), e)
		require.NoError(t, err)
	}
}

func TestProvider_NextID(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		ctx := context.Background()

		for want := int64(1); want <= 3; want++ {
			id, err := provider.TimeEntries().NextID(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, id)
		}

		// Sequences are per table.
		id, err := provider.Categories().NextID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})
}

func TestProvider_InsertSelect(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		ctx := context.Background()
		table := provider.TimeEntries()

		insertEntries(t, table,
			newEntry(2, "second", t0.Add(time.Hour), 15, false),
			newEntry(1, "first", t0, 30, false),
			newEntry(3, "running", t0.Add(2*time.Hour), 0, true),
		)

		all, err := table.Select(ctx, adapter.Query{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

		first := all[0]
		assert.Equal(t, "first", first.ActivityName)
		assert.Equal(t, 30, first.Duration)
		assert.True(t, first.StartTime.Equal(t0))
		require.NotNil(t, first.EndTime)
		assert.True(t, first.EndTime.Equal(t0.Add(30*time.Minute)))
		assert.Nil(t, all[2].EndTime)

		limited, err := table.Select(ctx, adapter.Query{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})
}

func TestProvider_InsertDuplicate(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		table := provider.Categories()
		c := entity.NewCategory(1, "work", "Work", "#112233", "Briefcase", t0)

		_, err := table.Insert(context.Background(), c)
		require.NoError(t, err)

		_, err = table.Insert(context.Background(), c)
		assert.Error(t, err)
	})
}

func TestProvider_Filters(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		ctx := context.Background()
		table := provider.TimeEntries()

		insertEntries(t, table,
			newEntry(1, "yesterday", t0.Add(-24*time.Hour), 10, false),
			newEntry(2, "morning", t0, 20, false),
			newEntry(3, "evening", t0.Add(10*time.Hour), 30, false),
			newEntry(4, "running", t0.Add(11*time.Hour), 0, true),
		)

		tests := []struct {
			name    string
			filters []adapter.Filter
			want    []int64
		}{
			{
				name:    "bool equality",
				filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnIsActive, true)},
				want:    []int64{4},
			},
			{
				name:    "string equality",
				filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnActivityName, "morning")},
				want:    []int64{2},
			},
			{
				name:    "id equality",
				filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnID, int64(3))},
				want:    []int64{3},
			},
			{
				name:    "null end time",
				filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnEndTime, nil)},
				want:    []int64{4},
			},
			{
				name: "time range",
				filters: []adapter.Filter{
					adapter.Gte(entity.TimeEntryColumnStartTime, t0),
					adapter.Lt(entity.TimeEntryColumnStartTime, t0.Add(11*time.Hour)),
				},
				want: []int64{2, 3},
			},
			{
				name: "time range in another location",
				filters: []adapter.Filter{
					adapter.Gte(entity.TimeEntryColumnStartTime, t0.In(time.FixedZone("UTC+3", 3*60*60))),
				},
				want: []int64{2, 3, 4},
			},
			{
				name:    "duration comparison",
				filters: []adapter.Filter{{Column: entity.TimeEntryColumnDuration, Op: adapter.OpGt, Value: int64(15)}},
				want:    []int64{2, 3},
			},
			{
				name:    "no match",
				filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnActivityName, "missing")},
				want:    []int64{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rows, err := table.Select(ctx, adapter.Query{Filters: tt.filters})
				require.NoError(t, err)

				ids := make([]int64, 0, len(rows))
				for _, r := range rows {
					ids = append(ids, r.ID)
				}
				assert.Equal(t, tt.want, ids)
			})
		}
	})
}

func TestProvider_Update(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		ctx := context.Background()
		table := provider.TimeEntries()

		running := newEntry(1, "running", t0, 0, true)
		insertEntries(t, table, running)

		running.Complete(t0.Add(45 * time.Minute))
		updated, err := table.Update(ctx, running)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, 45, updated.Duration)

		active, err := table.Select(ctx, adapter.Query{
			Filters: []adapter.Filter{adapter.Eq(entity.TimeEntryColumnIsActive, true)},
		})
		require.NoError(t, err)
		assert.Empty(t, active)

		_, err = table.Update(ctx, newEntry(99, "ghost", t0, 5, false))
		assert.ErrorIs(t, err, adapter.ErrNoRows)
	})
}

func TestProvider_Delete(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		ctx := context.Background()
		table := provider.Categories()

		for i, name := range []string{"work", "play", "rest"} {
			_, err := table.Insert(ctx, entity.NewCategory(int64(i+1), name, name, "#112233", "tag", t0))
			require.NoError(t, err)
		}

		removed, err := table.Delete(ctx, adapter.Eq(entity.CategoryColumnName, "play"))
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Equal(t, int64(2), removed[0].ID)

		removed, err = table.Delete(ctx, adapter.Eq(entity.CategoryColumnName, "play"))
		require.NoError(t, err)
		assert.Empty(t, removed)

		_, err = table.Delete(ctx)
		assert.ErrorIs(t, err, adapter.ErrMissingFilter)

		rest, err := table.Select(ctx, adapter.Query{})
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})
}

func TestProvider_Ping(t *testing.T) {
	forEachProvider(t, func(t *testing.T, provider adapter.PersistenceProvider) {
		assert.NoError(t, provider.Ping(context.Background()))
	})
}

func TestLazyProvider_RetriesFailedOpen(t *testing.T) {
	ctx := context.Background()
	attempts := 0
	provider := NewLazyProvider(func(context.Context) (adapter.PersistenceProvider, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("backend not ready")
		}
		return NewMemoryProvider(), nil
	})

	assert.Equal(t, 0, attempts)

	_, err := provider.TimeEntries().Select(ctx, adapter.Query{})
	assert.Error(t, err)

	_, err = provider.TimeEntries().Select(ctx, adapter.Query{})
	assert.NoError(t, err)

	_, err = provider.Categories().NextID(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)

	assert.NoError(t, provider.Close())
}
