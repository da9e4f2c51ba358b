// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/timeflow/backend/internal/domain/entity"
)

// TimeEntryModel represents the time_entries table in the database.
// Timestamps are stored in UTC so range filters compare consistently.
type TimeEntryModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ActivityName string     `gorm:"type:varchar(200);not null" json:"activity_name"`
	Category     string     `gorm:"type:varchar(50);not null;index" json:"category"`
	StartTime    time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Duration     int        `gorm:"not null;default:0" json:"duration"`
	IsActive     bool       `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName returns the table name for the TimeEntryModel.
func (TimeEntryModel) TableName() string {
	return "time_entries"
}

// ToEntity converts a TimeEntryModel to a domain TimeEntry entity.
func (m *TimeEntryModel) ToEntity() *entity.TimeEntry {
	var endTime *time.Time
	if m.EndTime != nil {
		t := m.EndTime.UTC()
		endTime = &t
	}

	return &entity.TimeEntry{
		ID:           m.ID,
		ActivityName: m.ActivityName,
		Category:     m.Category,
		StartTime:    m.StartTime.UTC(),
		EndTime:      endTime,
		Duration:     m.Duration,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

// TimeEntryFromEntity creates a TimeEntryModel from a domain TimeEntry entity.
func TimeEntryFromEntity(entry *entity.TimeEntry) *TimeEntryModel {
	var endTime *time.Time
	if entry.EndTime != nil {
		t := entry.EndTime.UTC()
		endTime = &t
	}

	return &TimeEntryModel{
		ID:           entry.ID,
		ActivityName: entry.ActivityName,
		Category:     entry.Category,
		StartTime:    entry.StartTime.UTC(),
		EndTime:      endTime,
		Duration:     entry.Duration,
		IsActive:     entry.IsActive,
		CreatedAt:    entry.CreatedAt.UTC(),
		UpdatedAt:    entry.UpdatedAt.UTC(),
	}
}
