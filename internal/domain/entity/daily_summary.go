// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// DailySummary aggregates the completed time entries of one calendar day.
type DailySummary struct {
	Date              time.Time      // Midnight of the summarized day
	TotalMinutes      int
	CategoryBreakdown map[string]int // Category name -> minutes
	EntryCount        int
	Categories        []CategoryShare // Breakdown sorted by minutes, largest first
}

// CategoryShare represents one category's portion of a daily summary.
type CategoryShare struct {
	Name        string
	DisplayName string
	Color       string
	Icon        string
	Minutes     int
	Percentage  float64
}
