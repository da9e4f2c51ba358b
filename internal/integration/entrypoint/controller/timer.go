package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/application/usecase/timer"
	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/entrypoint/dto"
)

// TimerController handles timer endpoints.
type TimerController struct {
	manager *timer.Manager
	clock   adapter.Clock
}

// NewTimerController creates a new timer controller instance.
func NewTimerController(manager *timer.Manager, clock adapter.Clock) *TimerController {
	return &TimerController{
		manager: manager,
		clock:   clock,
	}
}

// Get handles GET /timer requests.
func (c *TimerController) Get(ctx *gin.Context) {
	active, err := c.manager.Active(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimerResponse(active, c.clock.Now()))
}

// Start handles POST /timer/start requests.
// A running timer is stopped first.
func (c *TimerController) Start(ctx *gin.Context) {
	var req dto.StartTimerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTimerFields),
			Details: err.Error(),
		})
		return
	}

	started, err := c.manager.Start(ctx.Request.Context(), req.ActivityName, req.Category)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTimerResponse(started, c.clock.Now()))
}

// Stop handles POST /timer/stop requests.
func (c *TimerController) Stop(ctx *gin.Context) {
	stopped, err := c.manager.Stop(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeEntryResponse(stopped, c.clock.Now().Location()))
}
