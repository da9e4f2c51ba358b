package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timeflow/backend/internal/domain/entity"
)

func newSummaryCommand(ctx context.Context, d *deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the time spent per category for today or a specific date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}

			date, err := resolveDate(dateFlag, injector.Clock.Now())
			if err != nil {
				return err
			}

			summary, err := injector.Summary.Summarize(ctx, date)
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")

	return cmd
}

func newEntriesCommand(ctx context.Context, d *deps) *cobra.Command {
	var (
		dateFlag  string
		limitFlag int
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List time entries in creation order, or the entries of one date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limitFlag < 0 {
				return fmt.Errorf("invalid limit %d", limitFlag)
			}

			injector, err := d.get(ctx)
			if err != nil {
				return err
			}
			now := injector.Clock.Now()

			var entries []*entity.TimeEntry
			if dateFlag != "" {
				date, err := resolveDate(dateFlag, now)
				if err != nil {
					return err
				}
				entries, err = injector.TimeEntries.EntriesForDate(ctx, date)
				if err != nil {
					return err
				}
				if limitFlag > 0 && len(entries) > limitFlag {
					entries = entries[:limitFlag]
				}
			} else {
				limit := limitFlag
				if limit == 0 {
					limit = injector.Config.Timer.ListLimit
				}
				entries, err = injector.TimeEntries.List(ctx, limit)
				if err != nil {
					return err
				}
			}

			printEntries(cmd, entries, now)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Only entries started on this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of entries (default: configured list limit)")

	return cmd
}

func newCategoriesCommand(ctx context.Context, d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the known categories.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}

			categories, err := injector.Categories.List(ctx)
			if err != nil {
				return err
			}

			printCategories(cmd, categories)
			return nil
		},
	}
}
