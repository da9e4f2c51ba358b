package timeentry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/persistence"
	"github.com/timeflow/backend/internal/testutil"
)

var base = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(base)
	return NewStore(persistence.NewMemoryProvider(), clock), clock
}

func ptr[T any](v T) *T {
	return &v
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("completed entry gets duration and is inactive", func(t *testing.T) {
		store, _ := newTestStore(t)

		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Write report",
			Category:     "work",
			StartTime:    base,
			EndTime:      ptr(base.Add(90 * time.Minute)),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), entry.ID)
		assert.Equal(t, 90, entry.Duration)
		assert.False(t, entry.IsActive)
		require.NotNil(t, entry.EndTime)
	})

	t.Run("duration rounds half a minute up", func(t *testing.T) {
		store, _ := newTestStore(t)

		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Standup",
			Category:     "meeting",
			StartTime:    base,
			EndTime:      ptr(base.Add(29*time.Minute + 30*time.Second)),
		})
		require.NoError(t, err)
		assert.Equal(t, 30, entry.Duration)

		entry, err = store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Standup",
			Category:     "meeting",
			StartTime:    base,
			EndTime:      ptr(base.Add(29*time.Minute + 29*time.Second)),
		})
		require.NoError(t, err)
		assert.Equal(t, 29, entry.Duration)
	})

	t.Run("equal start and end yields a zero minute entry", func(t *testing.T) {
		store, _ := newTestStore(t)

		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Blink",
			Category:     "work",
			StartTime:    base,
			EndTime:      ptr(base),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, entry.Duration)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Backwards",
			Category:     "work",
			StartTime:    base,
			EndTime:      ptr(base.Add(-time.Minute)),
		})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTimeRange)

		entries, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("validation failures", func(t *testing.T) {
		store, _ := newTestStore(t)

		tests := []struct {
			name  string
			input CreateTimeEntryInput
			want  error
		}{
			{
				name:  "missing activity name",
				input: CreateTimeEntryInput{ActivityName: "  ", Category: "work", StartTime: base},
				want:  domainerror.ErrActivityNameRequired,
			},
			{
				name:  "missing category",
				input: CreateTimeEntryInput{ActivityName: "Coding", StartTime: base},
				want:  domainerror.ErrEntryCategoryRequired,
			},
			{
				name:  "category too long",
				input: CreateTimeEntryInput{ActivityName: "Coding", Category: string(make([]byte, 51)), StartTime: base},
				want:  domainerror.ErrEntryCategoryTooLong,
			},
			{
				name:  "missing start time",
				input: CreateTimeEntryInput{ActivityName: "Coding", Category: "work"},
				want:  domainerror.ErrStartTimeRequired,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := store.Create(ctx, tt.input)
				assert.ErrorIs(t, err, tt.want)

				var entryErr *domainerror.TimeEntryError
				assert.True(t, errors.As(err, &entryErr))
			})
		}
	})

	t.Run("second active entry is rejected", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Running", Category: "work", StartTime: base, IsActive: true,
		})
		require.NoError(t, err)

		_, err = store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Also running", Category: "work", StartTime: base, IsActive: true,
		})
		assert.ErrorIs(t, err, domainerror.ErrActiveTimerExists)
	})

	t.Run("ids are never reused after delete", func(t *testing.T) {
		store, _ := newTestStore(t)

		first, err := store.Create(ctx, CreateTimeEntryInput{ActivityName: "A", Category: "work", StartTime: base})
		require.NoError(t, err)
		second, err := store.Create(ctx, CreateTimeEntryInput{ActivityName: "B", Category: "work", StartTime: base})
		require.NoError(t, err)

		_, err = store.Delete(ctx, second.ID)
		require.NoError(t, err)

		third, err := store.Create(ctx, CreateTimeEntryInput{ActivityName: "C", Category: "work", StartTime: base})
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(3), third.ID)
	})
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changing end time recomputes duration", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Review", Category: "work", StartTime: base, EndTime: ptr(base.Add(30 * time.Minute)),
		})
		require.NoError(t, err)

		updated, err := store.Update(ctx, entry.ID, UpdateTimeEntryInput{EndTime: ptr(base.Add(45 * time.Minute))})
		require.NoError(t, err)

		assert.Equal(t, entry.ID, updated.ID)
		assert.Equal(t, 45, updated.Duration)
	})

	t.Run("renaming keeps duration", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Review", Category: "work", StartTime: base, EndTime: ptr(base.Add(30 * time.Minute)),
		})
		require.NoError(t, err)

		updated, err := store.Update(ctx, entry.ID, UpdateTimeEntryInput{ActivityName: ptr("Code review")})
		require.NoError(t, err)

		assert.Equal(t, "Code review", updated.ActivityName)
		assert.Equal(t, 30, updated.Duration)
	})

	t.Run("end time on running entry completes it", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Focus", Category: "work", StartTime: base, IsActive: true,
		})
		require.NoError(t, err)

		updated, err := store.Update(ctx, entry.ID, UpdateTimeEntryInput{EndTime: ptr(base.Add(20 * time.Minute))})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, 20, updated.Duration)

		active, err := store.Active(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "Review", Category: "work", StartTime: base, EndTime: ptr(base.Add(30 * time.Minute)),
		})
		require.NoError(t, err)

		_, err = store.Update(ctx, entry.ID, UpdateTimeEntryInput{StartTime: ptr(base.Add(time.Hour))})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTimeRange)

		unchanged, err := store.Get(ctx, entry.ID)
		require.NoError(t, err)
		assert.True(t, unchanged.StartTime.Equal(base))
	})

	t.Run("missing entry", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Update(ctx, 42, UpdateTimeEntryInput{ActivityName: ptr("x")})
		assert.ErrorIs(t, err, domainerror.ErrTimeEntryNotFound)
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the removed entry", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{ActivityName: "A", Category: "work", StartTime: base})
		require.NoError(t, err)

		removed, err := store.Delete(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, removed.ID)

		_, err = store.Get(ctx, entry.ID)
		assert.ErrorIs(t, err, domainerror.ErrTimeEntryNotFound)
	})

	t.Run("deleting the active entry clears the timer", func(t *testing.T) {
		store, _ := newTestStore(t)
		entry, err := store.Create(ctx, CreateTimeEntryInput{
			ActivityName: "A", Category: "work", StartTime: base, IsActive: true,
		})
		require.NoError(t, err)

		_, err = store.Delete(ctx, entry.ID)
		require.NoError(t, err)

		active, err := store.Active(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("missing entry", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.Delete(ctx, 7)
		assert.ErrorIs(t, err, domainerror.ErrTimeEntryNotFound)
	})
}

func TestStore_EntriesForDate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	// Only the middle two start on the 15th.
	starts := []time.Time{
		day.Add(-time.Minute),
		day,
		day.Add(23*time.Hour + 59*time.Minute),
		day.Add(24 * time.Hour),
	}
	for _, start := range starts {
		_, err := store.Create(ctx, CreateTimeEntryInput{ActivityName: "A", Category: "work", StartTime: start})
		require.NoError(t, err)
	}

	entries, err := store.EntriesForDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Equal(t, int64(3), entries[1].ID)
}

func TestStore_EntriesForDate_Location(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	zone := time.FixedZone("UTC-5", -5*60*60)
	// 03:00 UTC on the 16th is 22:00 on the 15th in UTC-5.
	_, err := store.Create(ctx, CreateTimeEntryInput{
		ActivityName: "Late", Category: "work",
		StartTime: time.Date(2025, 1, 16, 3, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	entries, err := store.EntriesForDate(ctx, time.Date(2025, 1, 15, 12, 0, 0, 0, zone))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = store.EntriesForDate(ctx, time.Date(2025, 1, 16, 12, 0, 0, 0, zone))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SwitchActive(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	stopped, first, err := store.SwitchActive(ctx, "Design", "work")
	require.NoError(t, err)
	assert.Nil(t, stopped)
	assert.True(t, first.IsActive)

	clock.Advance(25 * time.Minute)

	stopped, second, err := store.SwitchActive(ctx, "Email", "admin")
	require.NoError(t, err)
	require.NotNil(t, stopped)
	assert.Equal(t, first.ID, stopped.ID)
	assert.Equal(t, 25, stopped.Duration)
	assert.False(t, stopped.IsActive)

	active, err := store.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
}

func TestStore_BackendUnavailable(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewFakeClock(base)
	store := NewStore(testutil.NewFailingProvider(errors.New("connection refused")), clock)

	_, err := store.List(ctx, 0)
	assert.ErrorIs(t, err, domainerror.ErrBackendUnavailable)

	_, err = store.Active(ctx)
	assert.ErrorIs(t, err, domainerror.ErrBackendUnavailable)

	_, err = store.Create(ctx, CreateTimeEntryInput{ActivityName: "A", Category: "work", StartTime: base})
	assert.ErrorIs(t, err, domainerror.ErrBackendUnavailable)

	_, err = store.Delete(ctx, 1)
	assert.ErrorIs(t, err, domainerror.ErrBackendUnavailable)
}
