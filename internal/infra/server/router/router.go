// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/timeflow/backend/internal/integration/entrypoint/controller"
	"github.com/timeflow/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	categoryController  *controller.CategoryController
	timeEntryController *controller.TimeEntryController
	timerController     *controller.TimerController
	summaryController   *controller.SummaryController
	writeRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	timeEntryController *controller.TimeEntryController,
	timerController *controller.TimerController,
	summaryController *controller.SummaryController,
	writeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:    healthController,
		categoryController:  categoryController,
		timeEntryController: timeEntryController,
		timerController:     timerController,
		summaryController:   summaryController,
		writeRateLimiter:    writeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.RequestID())

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	limit := r.writeLimit()

	v1 := r.engine.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", limit, r.categoryController.Create)
			categories.GET("/by-name/:name", r.categoryController.GetByName)
			categories.GET("/:id", r.categoryController.Get)
			categories.PATCH("/:id", limit, r.categoryController.Update)
			categories.DELETE("/:id", limit, r.categoryController.Delete)
		}

		timeEntries := v1.Group("/time-entries")
		{
			timeEntries.GET("", r.timeEntryController.List)
			timeEntries.POST("", limit, r.timeEntryController.Create)
			timeEntries.GET("/:id", r.timeEntryController.Get)
			timeEntries.PATCH("/:id", limit, r.timeEntryController.Update)
			timeEntries.DELETE("/:id", limit, r.timeEntryController.Delete)
		}

		timer := v1.Group("/timer")
		{
			timer.GET("", r.timerController.Get)
			timer.POST("/start", limit, r.timerController.Start)
			timer.POST("/stop", limit, r.timerController.Stop)
		}

		v1.GET("/summary", r.summaryController.Get)
	}
}

// writeLimit returns the rate limiting handler for mutating routes.
func (r *Router) writeLimit() gin.HandlerFunc {
	if r.writeRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.writeRateLimiter.Middleware()
}
