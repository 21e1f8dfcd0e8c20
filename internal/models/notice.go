package models

import (
	"time"

	"github.com/google/uuid"
)

type Notice struct {
	ID            uuid.UUID          `json:"id"`
	OwnerID       uuid.UUID          `json:"owner_id"`
	PropertyID    *uuid.UUID         `json:"property_id,omitempty"` // nil = all properties
	Title         string             `json:"title"`
	Body          string             `json:"body"`
	Audience      NoticeAudienceType `json:"audience"`
	EffectiveFrom time.Time          `json:"effective_from"`
	ExpiresAt     *time.Time         `json:"expires_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
