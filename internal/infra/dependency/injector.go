// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timeflow/backend/config"
	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/application/usecase/category"
	"github.com/timeflow/backend/internal/application/usecase/summary"
	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	"github.com/timeflow/backend/internal/application/usecase/timer"
	"github.com/timeflow/backend/internal/infra/cache"
	"github.com/timeflow/backend/internal/infra/db"
	"github.com/timeflow/backend/internal/infra/server/router"
	"github.com/timeflow/backend/internal/integration/adapters"
	"github.com/timeflow/backend/internal/integration/entrypoint/controller"
	"github.com/timeflow/backend/internal/integration/entrypoint/middleware"
	"github.com/timeflow/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Clock       adapter.Clock
	Provider    adapter.PersistenceProvider
	Categories  *category.Store
	TimeEntries *timeentry.Store
	Timer       *timer.Manager
	Summary     *summary.Aggregator
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// Unless cfg.Persistence.Lazy is set, the backend is opened immediately.
func NewInjector(ctx context.Context, cfg *config.Config) (*Injector, error) {
	clock := adapters.NewSystemClock(cfg.Timer.Location())

	open := func(ctx context.Context) (adapter.PersistenceProvider, error) {
		return OpenProvider(ctx, cfg, clock)
	}

	var provider adapter.PersistenceProvider
	if cfg.Persistence.Lazy {
		provider = persistence.NewLazyProvider(open)
		slog.Info("Persistence provider will connect on first use", "driver", cfg.Persistence.Driver)
	} else {
		var err error
		if provider, err = open(ctx); err != nil {
			return nil, err
		}
	}

	return NewInjectorWithProvider(cfg, provider, clock), nil
}

// NewInjectorWithProvider wires the stores, use cases and HTTP layer over
// an already opened provider.
func NewInjectorWithProvider(cfg *config.Config, provider adapter.PersistenceProvider, clock adapter.Clock) *Injector {
	// Create stores and use cases
	categoryStore := category.NewStore(provider, clock)
	timeEntryStore := timeentry.NewStore(provider, clock)
	timerManager := timer.NewManager(timeEntryStore)
	aggregator := summary.NewAggregator(timeEntryStore, categoryStore)

	// Create controllers
	healthController := controller.NewHealthController(provider.Ping, cfg.Persistence.Driver)
	categoryController := controller.NewCategoryController(categoryStore)
	timeEntryController := controller.NewTimeEntryController(timeEntryStore, clock, cfg.Timer.ListLimit)
	timerController := controller.NewTimerController(timerManager, clock)
	summaryController := controller.NewSummaryController(aggregator, clock)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var writeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		writeRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		timeEntryController,
		timerController,
		summaryController,
		writeRateLimiter,
	)

	return &Injector{
		Config:      cfg,
		Clock:       clock,
		Provider:    provider,
		Categories:  categoryStore,
		TimeEntries: timeEntryStore,
		Timer:       timerManager,
		Summary:     aggregator,
		RateLimiter: writeRateLimiter,
		Router:      r,
	}
}

// Close releases the persistence backend.
func (i *Injector) Close() error {
	return i.Provider.Close()
}

// OpenProvider connects to the configured backend, prepares its schema and
// seeds the default categories when enabled.
func OpenProvider(ctx context.Context, cfg *config.Config, clock adapter.Clock) (adapter.PersistenceProvider, error) {
	var provider adapter.PersistenceProvider

	switch cfg.Persistence.Driver {
	case config.DriverMemory:
		provider = persistence.NewMemoryProvider()

	case config.DriverSQLite, config.DriverPostgres:
		conn, err := db.NewConnection(ctx, cfg.Persistence.Driver, &cfg.Database)
		if err != nil {
			return nil, err
		}
		gormProvider := persistence.NewGormProvider(conn)
		if err := gormProvider.Migrate(ctx); err != nil {
			_ = gormProvider.Close()
			return nil, err
		}
		slog.Info("Database migrations completed successfully")
		provider = gormProvider

	case config.DriverRedis:
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		provider = persistence.NewRedisProvider(client, cfg.Redis.KeyPrefix)

	default:
		return nil, fmt.Errorf("unknown persistence driver %q", cfg.Persistence.Driver)
	}

	if cfg.Persistence.Seed {
		if _, err := category.NewStore(provider, clock).Seed(ctx); err != nil {
			_ = provider.Close()
			return nil, err
		}
	}

	return provider, nil
}
