package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeflow/backend/internal/domain/entity"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func resolveDate(dateFlag string, now time.Time) (time.Time, error) {
	if dateFlag == "" {
		return now, nil
	}

	parsed, err := time.ParseInLocation(dateLayout, dateFlag, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// formatEntry renders an entry as "#id HH:MM-HH:MM activity [category] duration".
func formatEntry(e *entity.TimeEntry, now time.Time) string {
	loc := now.Location()

	builder := strings.Builder{}
	builder.Grow(48 + len(e.ActivityName) + len(e.Category))

	fmt.Fprintf(&builder, "#%d %s-", e.ID, e.StartTime.In(loc).Format(clockLayout))
	if e.EndTime != nil {
		builder.WriteString(e.EndTime.In(loc).Format(clockLayout))
	} else {
		builder.WriteString("     ")
	}

	builder.WriteString(" ")
	builder.WriteString(e.ActivityName)
	builder.WriteString(" [")
	builder.WriteString(e.Category)
	builder.WriteString("] ")

	if e.IsActive {
		builder.WriteString("running ")
		builder.WriteString(entity.FormatElapsed(e.Elapsed(now)))
	} else {
		builder.WriteString(entity.FormatMinutes(e.Duration))
	}

	return builder.String()
}

func printEntries(cmd *cobra.Command, entries []*entity.TimeEntry, now time.Time) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "(no entries)")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(out, formatEntry(e, now))
	}
}

func printSummary(cmd *cobra.Command, s *entity.DailySummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s across %d entries\n",
		s.Date.Format(dateLayout), entity.FormatMinutes(s.TotalMinutes), s.EntryCount)

	for _, share := range s.Categories {
		fmt.Fprintf(out, "  %-20s %8s %6.2f%%\n",
			share.DisplayName, entity.FormatMinutes(share.Minutes), share.Percentage)
	}
}

func printCategories(cmd *cobra.Command, categories []*entity.Category) {
	out := cmd.OutOrStdout()
	if len(categories) == 0 {
		fmt.Fprintln(out, "(no categories)")
		return
	}
	for _, c := range categories {
		fmt.Fprintf(out, "#%d %s (%s) %s %s\n", c.ID, c.Name, c.DisplayName, c.Color, c.Icon)
	}
}
