package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/application/usecase/summary"
	"github.com/timeflow/backend/internal/integration/entrypoint/dto"
)

// SummaryController handles daily summary endpoints.
type SummaryController struct {
	aggregator *summary.Aggregator
	clock      adapter.Clock
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(aggregator *summary.Aggregator, clock adapter.Clock) *SummaryController {
	return &SummaryController{
		aggregator: aggregator,
		clock:      clock,
	}
}

// Get handles GET /summary requests. The date defaults to today.
func (c *SummaryController) Get(ctx *gin.Context) {
	date, ok := parseDate(ctx, c.clock.Now())
	if !ok {
		return
	}

	daily, err := c.aggregator.Summarize(ctx.Request.Context(), date)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDailySummaryResponse(daily))
}
