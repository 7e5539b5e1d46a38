package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ifcampus/meal-gateway/internal/models"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

// remote is the slice of the upstream gateway the repositories need.
type remote interface {
	Get(ctx context.Context, token, path string) ([]json.RawMessage, error)
	Post(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error)
	Put(ctx context.Context, token, path string, body interface{}) ([]json.RawMessage, error)
}

// MealRepository reads meal and menu data from the upstream API.
type MealRepository struct {
	gw remote
}

// NewMealRepository constructs a meal repository over the upstream gateway.
func NewMealRepository(gw remote) *MealRepository {
	return &MealRepository{gw: gw}
}

// menuWithMeal matches the day-menu rows as served upstream: the menu fields
// at the top level with the meal definition nested under "meal".
type menuWithMeal struct {
	models.MenuDay
	Meal *models.Meal `json:"meal"`
}

// MenusByDate lists the menus published for the given ISO date.
func (r *MealRepository) MenusByDate(ctx context.Context, token, date string) ([]models.MenuEntry, error) {
	items, err := r.gw.Get(ctx, token, fmt.Sprintf("/all/menus-today?date=%s", date))
	if err != nil {
		return nil, err
	}

	entries := make([]models.MenuEntry, 0, len(items))
	for _, raw := range items {
		var row menuWithMeal
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "unexpected menu payload")
		}
		menu := row.MenuDay
		entries = append(entries, models.MenuEntry{Meal: row.Meal, Menu: &menu})
	}
	return entries, nil
}

// allowedMealRow is one entry of the allowed-meals listing; only the nested
// meal definition matters here.
type allowedMealRow struct {
	Meal models.Meal `json:"meal"`
}

// AllowedMeals lists the meals the student is entitled to reserve.
func (r *MealRepository) AllowedMeals(ctx context.Context, token string) ([]models.Meal, error) {
	items, err := r.gw.Get(ctx, token, "/student/schedulings/allows-meal-by-day")
	if err != nil {
		return nil, err
	}

	meals := make([]models.Meal, 0, len(items))
	for _, raw := range items {
		var row allowedMealRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "unexpected allowed-meal payload")
		}
		meals = append(meals, row.Meal)
	}
	return meals, nil
}
