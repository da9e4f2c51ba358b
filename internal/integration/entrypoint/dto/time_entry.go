package dto

import (
	"time"

	"github.com/timeflow/backend/internal/domain/entity"
)

// CreateTimeEntryRequest represents the request body for manual entry creation.
type CreateTimeEntryRequest struct {
	ActivityName string     `json:"activity_name" binding:"required"`
	Category     string     `json:"category" binding:"required"`
	StartTime    time.Time  `json:"start_time" binding:"required"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	IsActive     bool       `json:"is_active,omitempty"`
}

// UpdateTimeEntryRequest represents the request body for entry update.
type UpdateTimeEntryRequest struct {
	ActivityName *string    `json:"activity_name,omitempty"`
	Category     *string    `json:"category,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
}

// TimeEntryResponse represents a single time entry in API responses.
type TimeEntryResponse struct {
	ID            int64      `json:"id"`
	ActivityName  string     `json:"activity_name"`
	Category      string     `json:"category"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Duration      int        `json:"duration"`
	DurationLabel string     `json:"duration_label"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TimeEntryListResponse represents the response for listing time entries.
type TimeEntryListResponse struct {
	TimeEntries []TimeEntryResponse `json:"time_entries"`
}

// ToTimeEntryResponse converts a domain TimeEntry entity to a TimeEntryResponse DTO.
// Times are rendered in loc.
func ToTimeEntryResponse(e *entity.TimeEntry, loc *time.Location) TimeEntryResponse {
	var endTime *time.Time
	if e.EndTime != nil {
		t := e.EndTime.In(loc)
		endTime = &t
	}

	return TimeEntryResponse{
		ID:            e.ID,
		ActivityName:  e.ActivityName,
		Category:      e.Category,
		StartTime:     e.StartTime.In(loc),
		EndTime:       endTime,
		Duration:      e.Duration,
		DurationLabel: entity.FormatMinutes(e.Duration),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt.In(loc),
		UpdatedAt:     e.UpdatedAt.In(loc),
	}
}

// ToTimeEntryListResponse converts a list of time entries to a TimeEntryListResponse.
func ToTimeEntryListResponse(entries []*entity.TimeEntry, loc *time.Location) TimeEntryListResponse {
	response := TimeEntryListResponse{
		TimeEntries: make([]TimeEntryResponse, len(entries)),
	}
	for i, e := range entries {
		response.TimeEntries[i] = ToTimeEntryResponse(e, loc)
	}
	return response
}
