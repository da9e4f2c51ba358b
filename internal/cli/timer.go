package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeflow/backend/internal/domain/entity"
)

func newStartCommand(ctx context.Context, d *deps) *cobra.Command {
	var categoryFlag string

	cmd := &cobra.Command{
		Use:   "start <activity>",
		Short: "Start a timer, stopping the running one first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}

			previous, err := injector.Timer.Active(ctx)
			if err != nil {
				return err
			}

			started, err := injector.Timer.Start(ctx, strings.Join(args, " "), categoryFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if previous != nil {
				stopped, err := injector.TimeEntries.Get(ctx, previous.ID)
				if err == nil {
					fmt.Fprintf(out, "Stopped %s\n", formatEntry(stopped, injector.Clock.Now()))
				}
			}
			fmt.Fprintf(out, "Started %s\n", formatEntry(started, injector.Clock.Now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryFlag, "category", "c", "work", "Category name")

	return cmd
}

func newStopCommand(ctx context.Context, d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}

			stopped, err := injector.Timer.Stop(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s\n", formatEntry(stopped, injector.Clock.Now()))
			return nil
		},
	}
}

func newStatusCommand(ctx context.Context, d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}

			active, err := injector.Timer.Active(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if active == nil {
				fmt.Fprintln(out, "No timer running")
				return nil
			}

			now := injector.Clock.Now()
			fmt.Fprintf(out, "%s [%s] running for %s (since %s)\n",
				active.ActivityName,
				active.Category,
				entity.FormatElapsed(active.Elapsed(now)),
				active.StartTime.In(now.Location()).Format(clockLayout),
			)
			return nil
		},
	}
}
