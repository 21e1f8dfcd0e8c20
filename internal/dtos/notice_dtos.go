package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoticeRequest struct {
	PropertyID    *uuid.UUID `json:"property_id,omitempty"`
	Title         string     `json:"title" validate:"required,min=3,max=150"`
	Body          string     `json:"body" validate:"required,min=5,max=5000"`
	Audience      string     `json:"audience" validate:"required,oneof=all tenants staff"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type UpdateNoticeRequest struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Body          *string    `json:"body,omitempty" validate:"omitempty,min=5,max=5000"`
	Audience      *string    `json:"audience,omitempty" validate:"omitempty,oneof=all tenants staff"`
	EffectiveFrom *time.Time `json:"effective_from,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
