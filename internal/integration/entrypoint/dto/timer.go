package dto

import (
	"time"

	"github.com/timeflow/backend/internal/domain/entity"
)

// StartTimerRequest represents the request body for starting a timer.
type StartTimerRequest struct {
	ActivityName string `json:"activity_name" binding:"required"`
	Category     string `json:"category" binding:"required"`
}

// TimerResponse represents the running timer state.
type TimerResponse struct {
	Active         bool               `json:"active"`
	Entry          *TimeEntryResponse `json:"entry"`
	ElapsedSeconds int64              `json:"elapsed_seconds"`
	ElapsedLabel   string             `json:"elapsed_label,omitempty"`
}

// ToTimerResponse converts the active entry, which may be nil, to a TimerResponse.
func ToTimerResponse(active *entity.TimeEntry, now time.Time) TimerResponse {
	if active == nil {
		return TimerResponse{}
	}

	entry := ToTimeEntryResponse(active, now.Location())
	elapsed := active.Elapsed(now)
	if elapsed < 0 {
		elapsed = 0
	}
	return TimerResponse{
		Active:         true,
		Entry:          &entry,
		ElapsedSeconds: int64(elapsed / time.Second),
		ElapsedLabel:   entity.FormatElapsed(elapsed),
	}
}
