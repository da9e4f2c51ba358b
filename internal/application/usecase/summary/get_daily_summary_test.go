package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeflow/backend/internal/application/usecase/category"
	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	"github.com/timeflow/backend/internal/domain/entity"
	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/persistence"
	"github.com/timeflow/backend/internal/testutil"
)

var day = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func newTestAggregator(t *testing.T) (*Aggregator, *timeentry.Store, *category.Store) {
	t.Helper()
	provider := persistence.NewMemoryProvider()
	clock := testutil.NewFakeClock(day.Add(18 * time.Hour))
	entries := timeentry.NewStore(provider, clock)
	categories := category.NewStore(provider, clock)
	return NewAggregator(entries, categories), entries, categories
}

func addEntry(t *testing.T, store *timeentry.Store, category string, start time.Time, minutes int) {
	t.Helper()
	_, err := store.Create(context.Background(), timeentry.CreateTimeEntryInput{
		ActivityName: "Activity",
		Category:     category,
		StartTime:    start,
		EndTime:      ptr(start.Add(time.Duration(minutes) * time.Minute)),
	})
	require.NoError(t, err)
}

func TestAggregator_Summarize(t *testing.T) {
	ctx := context.Background()
	aggregator, entries, categories := newTestAggregator(t)

	_, err := categories.Create(ctx, category.CreateCategoryInput{Name: "work", DisplayName: "Work", Color: "#112233", Icon: "Briefcase"})
	require.NoError(t, err)

	addEntry(t, entries, "work", day.Add(9*time.Hour), 60)
	addEntry(t, entries, "work", day.Add(11*time.Hour), 15)
	addEntry(t, entries, "meeting", day.Add(14*time.Hour), 30)
	// Another day.
	addEntry(t, entries, "work", day.Add(-2*time.Hour), 45)
	// Still running.
	_, err = entries.Create(ctx, timeentry.CreateTimeEntryInput{
		ActivityName: "Running", Category: "work", StartTime: day.Add(17 * time.Hour), IsActive: true,
	})
	require.NoError(t, err)

	summary, err := aggregator.Summarize(ctx, day.Add(12*time.Hour))
	require.NoError(t, err)

	assert.True(t, summary.Date.Equal(day))
	assert.Equal(t, 105, summary.TotalMinutes)
	assert.Equal(t, 3, summary.EntryCount)
	assert.Equal(t, map[string]int{"work": 75, "meeting": 30}, summary.CategoryBreakdown)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "work", summary.Categories[0].Name)
	assert.Equal(t, "Work", summary.Categories[0].DisplayName)
	assert.Equal(t, "#112233", summary.Categories[0].Color)
	assert.Equal(t, 71.43, summary.Categories[0].Percentage)

	assert.Equal(t, "meeting", summary.Categories[1].Name)
	assert.Equal(t, UncategorizedColor, summary.Categories[1].Color)
	assert.Equal(t, UncategorizedIcon, summary.Categories[1].Icon)
	assert.Equal(t, 28.57, summary.Categories[1].Percentage)
}

func TestAggregator_EmptyDay(t *testing.T) {
	ctx := context.Background()
	aggregator, _, _ := newTestAggregator(t)

	summary, err := aggregator.Summarize(ctx, day)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalMinutes)
	assert.Zero(t, summary.EntryCount)
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Empty(t, summary.Categories)
}

func TestAggregator_ZeroMinuteEntriesCount(t *testing.T) {
	ctx := context.Background()
	aggregator, entries, _ := newTestAggregator(t)

	addEntry(t, entries, "work", day.Add(9*time.Hour), 0)

	summary, err := aggregator.Summarize(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EntryCount)
	assert.Equal(t, 0, summary.TotalMinutes)
	assert.Equal(t, 0.0, summary.Categories[0].Percentage)
}

type failingEntries struct{}

func (failingEntries) EntriesForDate(context.Context, time.Time) ([]*entity.TimeEntry, error) {
	return nil, domainerror.NewBackendUnavailableError("failed to list time entries for date", errors.New("down"))
}

func TestAggregator_BackendUnavailable(t *testing.T) {
	_, _, categories := newTestAggregator(t)
	aggregator := NewAggregator(failingEntries{}, categories)

	summary, err := aggregator.Summarize(context.Background(), day)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domainerror.ErrBackendUnavailable)
}
