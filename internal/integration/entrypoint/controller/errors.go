package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/entrypoint/dto"
	"github.com/timeflow/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var (
		categoryErr    *domainerror.CategoryError
		entryErr       *domainerror.TimeEntryError
		timerErr       *domainerror.TimerError
		persistenceErr *domainerror.PersistenceError
	)

	switch {
	case errors.As(err, &categoryErr):
		ctx.JSON(statusForCategoryError(categoryErr.Code), dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
	case errors.As(err, &entryErr):
		ctx.JSON(statusForTimeEntryError(entryErr.Code), dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
	case errors.As(err, &timerErr):
		ctx.JSON(statusForTimerError(timerErr.Code), dto.ErrorResponse{
			Error: timerErr.Message,
			Code:  string(timerErr.Code),
		})
	case errors.As(err, &persistenceErr):
		slog.Error("Persistence backend unavailable",
			"error", err,
			"path", ctx.FullPath(),
			"request_id", middleware.GetRequestID(ctx),
		)
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Storage backend is unavailable",
			Code:  string(persistenceErr.Code),
		})
	default:
		slog.Error("Unhandled error",
			"error", err,
			"path", ctx.FullPath(),
			"request_id", middleware.GetRequestID(ctx),
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// statusForCategoryError maps category error codes to HTTP status codes.
func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// statusForTimeEntryError maps time entry error codes to HTTP status codes.
func statusForTimeEntryError(code domainerror.TimeEntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeTimeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeActiveTimerExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// statusForTimerError maps timer error codes to HTTP status codes.
func statusForTimerError(code domainerror.TimerErrorCode) int {
	switch code {
	case domainerror.ErrCodeNoActiveTimer:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// parseID reads the :id path parameter. It writes a 400 response and
// returns false when the parameter is not a positive integer.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid ID format",
			Code:  string(domainerror.ErrCodeInvalidID),
		})
		return 0, false
	}
	return id, true
}

// parseDate reads the date query parameter in now's location, defaulting to now.
// It writes a 400 response and returns false on a malformed date.
func parseDate(ctx *gin.Context, now time.Time) (time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return now, true
	}

	date, err := time.ParseInLocation(dto.DateLayout, raw, now.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid date format",
			Code:    string(domainerror.ErrCodeInvalidDate),
			Details: "expected YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return date, true
}
