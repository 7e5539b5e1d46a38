package dto

import (
	"github.com/ifcampus/meal-gateway/internal/mealstatus"
	"github.com/ifcampus/meal-gateway/internal/models"
)

// MenuItem is one meal slot of the day screen, already classified so the UI
// only renders: the badge tells how to paint it, the action which button to
// offer.
type MenuItem struct {
	Meal      *models.Meal            `json:"meal,omitempty"`
	Menu      *models.MenuDay         `json:"menu"`
	Status    mealstatus.Status       `json:"status"`
	Action    mealstatus.Action       `json:"action"`
	Badge     mealstatus.Presentation `json:"badge"`
	TimeRange string                  `json:"timeRange,omitempty"`
}

// DayMenusResponse is the full day screen: the slider header text, the drift
// from today, whether stepping further is allowed, and the four (or more)
// classified slots.
type DayMenusResponse struct {
	Date           string     `json:"date"`
	DateText       string     `json:"dateText"`
	DriftDays      float64    `json:"driftDays"`
	HasPreviousDay bool       `json:"hasPreviousDay"`
	HasNextDay     bool       `json:"hasNextDay"`
	HasMenus       bool       `json:"hasMenus"`
	Items          []MenuItem `json:"items"`
}
