package models

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a SaaS account holder managing one or more PG properties.
type Owner struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         RoleType   `json:"role"`
	PGName       string     `json:"pg_name"`
	PlanID       *uuid.UUID `json:"plan_id,omitempty"`
	PlanName     string     `json:"plan_name,omitempty"`
	PlanActiveAt *time.Time `json:"plan_active_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
