package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	"github.com/timeflow/backend/internal/domain/entity"
	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/entrypoint/dto"
)

// TimeEntryController handles time entry endpoints.
type TimeEntryController struct {
	store        *timeentry.Store
	clock        adapter.Clock
	defaultLimit int
}

// NewTimeEntryController creates a new time entry controller instance.
// defaultLimit caps list responses when no limit is requested.
func NewTimeEntryController(store *timeentry.Store, clock adapter.Clock, defaultLimit int) *TimeEntryController {
	return &TimeEntryController{
		store:        store,
		clock:        clock,
		defaultLimit: defaultLimit,
	}
}

// List handles GET /time-entries requests.
// With ?date=YYYY-MM-DD only that day's entries are returned.
func (c *TimeEntryController) List(ctx *gin.Context) {
	limit := c.defaultLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid limit",
				Code:  string(domainerror.ErrCodeInvalidLimit),
			})
			return
		}
		limit = parsed
	}

	now := c.clock.Now()
	var (
		entries []*entity.TimeEntry
		err     error
	)
	if ctx.Query("date") != "" {
		date, ok := parseDate(ctx, now)
		if !ok {
			return
		}
		entries, err = c.store.EntriesForDate(ctx.Request.Context(), date)
		if err == nil && limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
	} else {
		entries, err = c.store.List(ctx.Request.Context(), limit)
	}
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeEntryListResponse(entries, now.Location()))
}

// Get handles GET /time-entries/:id requests.
func (c *TimeEntryController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	entry, err := c.store.Get(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry, c.clock.Now().Location()))
}

// Create handles POST /time-entries requests.
func (c *TimeEntryController) Create(ctx *gin.Context) {
	var req dto.CreateTimeEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTimeEntryFields),
			Details: err.Error(),
		})
		return
	}

	entry, err := c.store.Create(ctx.Request.Context(), timeentry.CreateTimeEntryInput{
		ActivityName: req.ActivityName,
		Category:     req.Category,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsActive:     req.IsActive,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry, c.clock.Now().Location()))
}

// Update handles PATCH /time-entries/:id requests.
func (c *TimeEntryController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTimeEntryFields),
		})
		return
	}

	entry, err := c.store.Update(ctx.Request.Context(), id, timeentry.UpdateTimeEntryInput{
		ActivityName: req.ActivityName,
		Category:     req.Category,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry, c.clock.Now().Location()))
}

// Delete handles DELETE /time-entries/:id requests.
// It responds with the removed entry.
func (c *TimeEntryController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	entry, err := c.store.Delete(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry, c.clock.Now().Location()))
}
