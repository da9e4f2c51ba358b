// Package cli implements the timeflow command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/timeflow/backend/config"
	"github.com/timeflow/backend/internal/infra/dependency"
)

// InjectorFunc builds the application dependencies.
type InjectorFunc func(ctx context.Context) (*dependency.Injector, error)

// deps opens the injector on first use so that commands failing argument
// validation never touch the backend.
type deps struct {
	open InjectorFunc

	mu       sync.Mutex
	injector *dependency.Injector
}

func (d *deps) get(ctx context.Context) (*dependency.Injector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.injector != nil {
		return d.injector, nil
	}
	injector, err := d.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}
	d.injector = injector
	return injector, nil
}

func (d *deps) close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.injector == nil {
		return
	}
	if err := d.injector.Close(); err != nil {
		slog.Error("Failed to close persistence backend", "error", err)
	}
	d.injector = nil
}

// NewRootCommand creates the top-level Cobra command hosting the server and
// timer subcommands.
func NewRootCommand(ctx context.Context, open InjectorFunc) *cobra.Command {
	d := &deps{open: open}

	cmd := &cobra.Command{
		Use:   "timeflow",
		Short: "Track time spent on activities and review daily summaries.",
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			d.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newServeCommand(ctx, d),
		newStartCommand(ctx, d),
		newStopCommand(ctx, d),
		newStatusCommand(ctx, d),
		newSummaryCommand(ctx, d),
		newEntriesCommand(ctx, d),
		newCategoriesCommand(ctx, d),
	)

	return cmd
}

// ExecuteCommand executes the root command against the configured backend.
func ExecuteCommand(ctx context.Context, cfg *config.Config) error {
	cmd := NewRootCommand(ctx, func(ctx context.Context) (*dependency.Injector, error) {
		return dependency.NewInjector(ctx, cfg)
	})
	return cmd.Execute()
}

// Main is used by cmd/timeflow/main.go to keep wiring contained in one package.
func Main(ctx context.Context, cfg *config.Config) {
	if err := ExecuteCommand(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
