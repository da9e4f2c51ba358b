package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/timeflow/backend/internal/infra/dependency"
)

func newServeCommand(ctx context.Context, d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			injector, err := d.get(ctx)
			if err != nil {
				return err
			}
			cfg := injector.Config

			slog.Info("Starting TimeFlow API",
				"environment", cfg.Server.Environment,
				"host", cfg.Server.Host,
				"port", cfg.Server.Port,
				"driver", cfg.Persistence.Driver,
			)

			engine := injector.Router.Setup(cfg.Server.Environment)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{
				Addr:         addr,
				Handler:      engine,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			go sweepRateLimiter(ctx, injector, cfg.RateLimit.Window)

			serveErr := make(chan error, 1)
			go func() {
				slog.Info("Server listening", "address", addr)
				serveErr <- srv.ListenAndServe()
			}()

			select {
			case err := <-serveErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			slog.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			slog.Info("Server exited properly")
			return nil
		},
	}
}

// sweepRateLimiter drops expired rate limit entries once per window.
func sweepRateLimiter(ctx context.Context, injector *dependency.Injector, window time.Duration) {
	if injector.RateLimiter == nil || window <= 0 {
		return
	}

	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			injector.RateLimiter.Cleanup()
		}
	}
}
