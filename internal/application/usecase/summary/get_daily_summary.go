// Package summary contains the daily summary use case.
package summary

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timeflow/backend/internal/domain/entity"
)

// Breakdown fallbacks for entries without a category or whose category
// no longer exists.
const (
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#6B7280"
	UncategorizedIcon  = "Circle"
)

// EntryReader provides the time entries of a calendar day.
type EntryReader interface {
	EntriesForDate(ctx context.Context, date time.Time) ([]*entity.TimeEntry, error)
}

// CategoryReader provides the known categories.
type CategoryReader interface {
	List(ctx context.Context) ([]*entity.Category, error)
}

// Aggregator computes daily summaries from the stores. It keeps no state
// of its own.
type Aggregator struct {
	entries    EntryReader
	categories CategoryReader
}

// NewAggregator creates a new Aggregator.
func NewAggregator(entries EntryReader, categories CategoryReader) *Aggregator {
	return &Aggregator{
		entries:    entries,
		categories: categories,
	}
}

// Summarize totals the completed entries of date's calendar day.
// Running entries are excluded. Store failures are returned, never
// reported as an empty day.
func (a *Aggregator) Summarize(ctx context.Context, date time.Time) (*entity.DailySummary, error) {
	entries, err := a.entries.EntriesForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &entity.DailySummary{
		Date:              entity.StartOfDay(date),
		CategoryBreakdown: make(map[string]int),
		Categories:        []entity.CategoryShare{},
	}

	for _, e := range entries {
		if e.IsActive {
			continue
		}
		key := e.Category
		if key == "" {
			key = UncategorizedName
		}
		summary.CategoryBreakdown[key] += e.Duration
		summary.TotalMinutes += e.Duration
		summary.EntryCount++
	}

	if len(summary.CategoryBreakdown) == 0 {
		return summary, nil
	}

	categories, err := a.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	summary.Categories = shares(summary.CategoryBreakdown, summary.TotalMinutes, categories)
	return summary, nil
}

// shares joins the breakdown with category metadata, largest first.
func shares(breakdown map[string]int, total int, categories []*entity.Category) []entity.CategoryShare {
	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}

	result := make([]entity.CategoryShare, 0, len(breakdown))
	for name, minutes := range breakdown {
		share := entity.CategoryShare{
			Name:        name,
			DisplayName: name,
			Color:       UncategorizedColor,
			Icon:        UncategorizedIcon,
			Minutes:     minutes,
			Percentage:  percentage(minutes, total),
		}
		if c, ok := byName[name]; ok {
			share.DisplayName = c.DisplayName
			if c.Color != "" {
				share.Color = c.Color
			}
			if c.Icon != "" {
				share.Icon = c.Icon
			}
		}
		result = append(result, share)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Minutes != result[j].Minutes {
			return result[i].Minutes > result[j].Minutes
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// percentage returns part/total as a percentage rounded to two decimals.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
	return p.InexactFloat64()
}
