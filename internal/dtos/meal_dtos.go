package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/models"
)

type CreateMealRequest struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`

	Name    string `json:"name" validate:"required,min=2,max=150"`
	Slot    string `json:"slot" validate:"required,oneof=Breakfast Lunch Dinner Snack 'All Meals'"`
	Diet    string `json:"diet" validate:"required,oneof=Vegetarian Non-Vegetarian Both Vegan Jain"`
	Cuisine string `json:"cuisine,omitempty" validate:"omitempty,max=50"`

	MaxServings *int     `json:"max_servings,omitempty" validate:"omitempty,min=1"`
	Features    []string `json:"features,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateMealRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Slot    *string `json:"slot,omitempty" validate:"omitempty,oneof=Breakfast Lunch Dinner Snack 'All Meals'"`
	Diet    *string `json:"diet,omitempty" validate:"omitempty,oneof=Vegetarian Non-Vegetarian Both Vegan Jain"`
	Cuisine *string `json:"cuisine,omitempty" validate:"omitempty,max=50"`

	MaxServings *int      `json:"max_servings,omitempty" validate:"omitempty,min=1"`
	Subscribers *int      `json:"subscribers,omitempty" validate:"omitempty,min=0"`
	Features    *[]string `json:"features,omitempty" validate:"omitempty,max=20,dive,max=100"`
	IsActive    *bool     `json:"is_active,omitempty"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// MealStatsResponse mirrors the dashboard's catering summary tiles.
type MealStatsResponse struct {
	Total         int `json:"total"`
	Available     int `json:"available"`
	Vegetarian    int `json:"vegetarian"`
	NonVegetarian int `json:"non_vegetarian"`
}

// UpsertMenuRequest replaces one property's menu for the week containing
// Date (today when omitted). The week is normalized to its Monday.
type UpsertMenuRequest struct {
	PropertyID uuid.UUID         `json:"property_id" validate:"required"`
	Date       *time.Time        `json:"date,omitempty"`
	Weekly     models.WeeklyMenu `json:"weekly"`
}

// MenuResponse always carries the resolved week start so a client can tell
// which week an empty menu belongs to.
type MenuResponse struct {
	WeekStart time.Time    `json:"week_start"`
	Menu      *models.Menu `json:"menu"`
}
