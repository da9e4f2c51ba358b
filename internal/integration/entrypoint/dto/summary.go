package dto

import (
	"github.com/timeflow/backend/internal/domain/entity"
)

// DateLayout is the format of date query parameters and summary dates.
const DateLayout = "2006-01-02"

// CategoryShareResponse represents one category's portion of a day.
type CategoryShareResponse struct {
	Name         string  `json:"name"`
	DisplayName  string  `json:"display_name"`
	Color        string  `json:"color"`
	Icon         string  `json:"icon"`
	Minutes      int     `json:"minutes"`
	MinutesLabel string  `json:"minutes_label"`
	Percentage   float64 `json:"percentage"`
}

// DailySummaryResponse represents the summary of one day.
type DailySummaryResponse struct {
	Date              string                  `json:"date"`
	TotalMinutes      int                     `json:"total_minutes"`
	TotalLabel        string                  `json:"total_label"`
	CategoryBreakdown map[string]int          `json:"category_breakdown"`
	EntryCount        int                     `json:"entry_count"`
	Categories        []CategoryShareResponse `json:"categories"`
}

// ToDailySummaryResponse converts a domain DailySummary to a DailySummaryResponse DTO.
func ToDailySummaryResponse(s *entity.DailySummary) DailySummaryResponse {
	shares := make([]CategoryShareResponse, len(s.Categories))
	for i, c := range s.Categories {
		shares[i] = CategoryShareResponse{
			Name:         c.Name,
			DisplayName:  c.DisplayName,
			Color:        c.Color,
			Icon:         c.Icon,
			Minutes:      c.Minutes,
			MinutesLabel: entity.FormatMinutes(c.Minutes),
			Percentage:   c.Percentage,
		}
	}

	return DailySummaryResponse{
		Date:              s.Date.Format(DateLayout),
		TotalMinutes:      s.TotalMinutes,
		TotalLabel:        entity.FormatMinutes(s.TotalMinutes),
		CategoryBreakdown: s.CategoryBreakdown,
		EntryCount:        s.EntryCount,
		Categories:        shares,
	}
}
