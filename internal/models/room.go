package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID               uuid.UUID      `json:"id"`
	PropertyID       uuid.UUID      `json:"property_id"`
	OwnerID          uuid.UUID      `json:"owner_id"`
	RoomNumber       string         `json:"room_number"`
	RoomType         string         `json:"room_type"` // Single, Double, Triple, Dormitory
	Floor            int            `json:"floor"`
	Capacity         int            `json:"capacity"`
	CurrentOccupancy int            `json:"current_occupancy"`
	Rent             float64        `json:"rent"`
	SecurityDeposit  float64        `json:"security_deposit"`
	Status           RoomStatusType `json:"status"`
	Amenities        []string       `json:"amenities"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
