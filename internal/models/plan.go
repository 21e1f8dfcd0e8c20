package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a subscription tier. AllowedModules gates feature routes for
// owners on this plan.
type Plan struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PriceMonthly   float64   `json:"price_monthly"`
	AllowedModules []string  `json:"allowed_modules"`
	MaxProperties  int       `json:"max_properties"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasModule reports whether the plan includes the given module key.
func (p *Plan) HasModule(module string) bool {
	for _, m := range p.AllowedModules {
		if m == module {
			return true
		}
	}
	return false
}
