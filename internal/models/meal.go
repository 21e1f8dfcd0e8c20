package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a catering offering an owner serves, optionally tied to one
// property. Subscribers tracks how many tenants are on it.
type Meal struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"` // nil = all properties

	Name    string       `json:"name"`
	Slot    MealSlotType `json:"slot"`
	Diet    DietType     `json:"diet"`
	Cuisine string       `json:"cuisine,omitempty"`

	MaxServings *int     `json:"max_servings,omitempty"` // nil = unlimited
	Subscribers int      `json:"subscribers"`
	Features    []string `json:"features,omitempty"`

	IsActive    bool   `json:"is_active"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available reports whether the meal can take another subscriber.
func (m *Meal) Available() bool {
	if !m.IsActive {
		return false
	}
	if m.MaxServings == nil {
		return true
	}
	return m.Subscribers < *m.MaxServings
}

// DayMenu lists the dishes served in each slot of one day.
type DayMenu struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
}

type WeeklyMenu struct {
	Monday    DayMenu `json:"monday"`
	Tuesday   DayMenu `json:"tuesday"`
	Wednesday DayMenu `json:"wednesday"`
	Thursday  DayMenu `json:"thursday"`
	Friday    DayMenu `json:"friday"`
	Saturday  DayMenu `json:"saturday"`
	Sunday    DayMenu `json:"sunday"`
}

// Menu is one property's meal schedule for one week. WeekStart is always
// the Monday of that week at midnight UTC; storage enforces one menu per
// property per week.
type Menu struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	WeekStart  time.Time  `json:"week_start"`
	Weekly     WeeklyMenu `json:"weekly"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
