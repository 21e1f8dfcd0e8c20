package models

import (
	"time"

	"github.com/google/uuid"
)

type Complaint struct {
	ID         uuid.UUID           `json:"id"`
	OwnerID    uuid.UUID           `json:"owner_id"`
	PropertyID uuid.UUID           `json:"property_id"`
	TenantID   *uuid.UUID          `json:"tenant_id,omitempty"`
	Title      string              `json:"title"`
	Description string             `json:"description"`
	Category   string              `json:"category"` // Maintenance, Food, Cleanliness, Noise, Other
	Priority   string              `json:"priority"` // Low, Medium, High
	Status     ComplaintStatusType `json:"status"`
	ResolvedAt *time.Time          `json:"resolved_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
