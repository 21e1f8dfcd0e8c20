package dtos

import (
	"github.com/google/uuid"
)

type CreatePropertyRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=150"`
	Address   string   `json:"address" validate:"required,min=5,max=255"`
	City      string   `json:"city" validate:"required,min=2,max=100"`
	State     string   `json:"state" validate:"required,min=2,max=100"`
	Pincode   string   `json:"pincode" validate:"required,min=5,max=10"`
	Amenities []string `json:"amenities,omitempty"`
}

type UpdatePropertyRequest struct {
	Name      *string   `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Address   *string   `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	City      *string   `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
	State     *string   `json:"state,omitempty" validate:"omitempty,min=2,max=100"`
	Pincode   *string   `json:"pincode,omitempty" validate:"omitempty,min=5,max=10"`
	Amenities *[]string `json:"amenities,omitempty"`
	IsActive  *bool     `json:"is_active,omitempty"`
}

// PropertyStatsResponse is the occupancy summary for one property.
type PropertyStatsResponse struct {
	PropertyID     uuid.UUID `json:"property_id"`
	TotalRooms     int       `json:"total_rooms"`
	AvailableRooms int       `json:"available_rooms"`
	TotalBeds      int       `json:"total_beds"`
	OccupiedBeds   int       `json:"occupied_beds"`
	ActiveTenants  int       `json:"active_tenants"`
}

type CreateRoomRequest struct {
	PropertyID      uuid.UUID `json:"property_id" validate:"required"`
	RoomNumber      string    `json:"room_number" validate:"required,min=1,max=20"`
	RoomType        string    `json:"room_type" validate:"required,oneof=Single Double Triple Dormitory"`
	Floor           int       `json:"floor" validate:"min=0,max=50"`
	Capacity        int       `json:"capacity" validate:"required,min=1,max=20"`
	Rent            float64   `json:"rent" validate:"required,gt=0"`
	SecurityDeposit float64   `json:"security_deposit" validate:"min=0"`
	Amenities       []string  `json:"amenities,omitempty"`
}

type UpdateRoomRequest struct {
	RoomNumber      *string   `json:"room_number,omitempty" validate:"omitempty,min=1,max=20"`
	RoomType        *string   `json:"room_type,omitempty" validate:"omitempty,oneof=Single Double Triple Dormitory"`
	Floor           *int      `json:"floor,omitempty" validate:"omitempty,min=0,max=50"`
	Capacity        *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=20"`
	Rent            *float64  `json:"rent,omitempty" validate:"omitempty,gt=0"`
	SecurityDeposit *float64  `json:"security_deposit,omitempty" validate:"omitempty,min=0"`
	Status          *string   `json:"status,omitempty" validate:"omitempty,oneof=Available Occupied Maintenance"`
	Amenities       *[]string `json:"amenities,omitempty"`
}
