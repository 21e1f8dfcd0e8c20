package models

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"` // Cook, Cleaner, Warden, Security, Manager
	Salary     float64   `json:"salary"`
	JoiningDate time.Time `json:"joining_date"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
