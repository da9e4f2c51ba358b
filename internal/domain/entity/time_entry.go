// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"
)

// TimeEntry column names, shared by every persistence provider.
const (
	TimeEntryColumnID           = "id"
	TimeEntryColumnActivityName = "activity_name"
	TimeEntryColumnCategory     = "category"
	TimeEntryColumnStartTime    = "start_time"
	TimeEntryColumnEndTime      = "end_time"
	TimeEntryColumnDuration     = "duration"
	TimeEntryColumnIsActive     = "is_active"
)

// TimeEntry represents a span of time spent on an activity.
// A running timer is a TimeEntry with IsActive set and no EndTime.
type TimeEntry struct {
	ID           int64
	ActivityName string
	Category     string     // References Category.Name
	StartTime    time.Time
	EndTime      *time.Time // Nil while the timer is running
	Duration     int        // Whole minutes, derived from StartTime and EndTime
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PrimaryKey returns the time entry ID.
func (e *TimeEntry) PrimaryKey() int64 {
	return e.ID
}

// ColumnValue returns the value stored under the given column name.
// A missing end time is reported as nil.
func (e *TimeEntry) ColumnValue(column string) (any, bool) {
	switch column {
	case TimeEntryColumnID:
		return e.ID, true
	case TimeEntryColumnActivityName:
		return e.ActivityName, true
	case TimeEntryColumnCategory:
		return e.Category, true
	case TimeEntryColumnStartTime:
		return e.StartTime, true
	case TimeEntryColumnEndTime:
		if e.EndTime == nil {
			return nil, true
		}
		return *e.EndTime, true
	case TimeEntryColumnDuration:
		return int64(e.Duration), true
	case TimeEntryColumnIsActive:
		return e.IsActive, true
	default:
		return nil, false
	}
}

// IsCompleted reports whether the entry has been stopped.
func (e *TimeEntry) IsCompleted() bool {
	return !e.IsActive && e.EndTime != nil
}

// Complete stamps the end time and derives the duration.
func (e *TimeEntry) Complete(end time.Time) {
	e.EndTime = &end
	e.Duration = DurationMinutes(e.StartTime, end)
	e.IsActive = false
}

// Elapsed returns the time between StartTime and EndTime, or now for a running entry.
func (e *TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.EndTime != nil {
		return e.EndTime.Sub(e.StartTime)
	}
	return now.Sub(e.StartTime)
}

// DurationMinutes returns the span between start and end in whole minutes,
// rounding half a minute up. Precision is milliseconds.
func DurationMinutes(start, end time.Time) int {
	ms := end.Sub(start).Milliseconds()
	return int(math.Floor(float64(ms)/float64(time.Minute/time.Millisecond) + 0.5))
}

// SameCalendarDay reports whether t falls on the calendar day of date,
// evaluated in date's location.
func SameCalendarDay(t, date time.Time) bool {
	ty, tm, td := t.In(date.Location()).Date()
	dy, dm, dd := date.Date()
	return ty == dy && tm == dm && td == dd
}

// StartOfDay returns midnight of date's calendar day in date's location.
func StartOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}
