package dtos

import (
	"github.com/google/uuid"
)

type CreateComplaintRequest struct {
	PropertyID  uuid.UUID  `json:"property_id" validate:"required"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Title       string     `json:"title" validate:"required,min=3,max=150"`
	Description string     `json:"description" validate:"required,min=5,max=2000"`
	Category    string     `json:"category" validate:"required,oneof=Maintenance Food Cleanliness Noise Other"`
	Priority    string     `json:"priority" validate:"required,oneof=Low Medium High"`
}

type UpdateComplaintRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=5,max=2000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=Maintenance Food Cleanliness Noise Other"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=Open 'In Progress' Resolved"`
}
