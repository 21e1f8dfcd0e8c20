package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string    `json:"phone" validate:"required,min=10,max=15"`
	Role        string    `json:"role" validate:"required,oneof=Cook Cleaner Warden Security Manager"`
	Salary      float64   `json:"salary" validate:"required,gt=0"`
	JoiningDate time.Time `json:"joining_date" validate:"required"`
}

type UpdateStaffRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role     *string  `json:"role,omitempty" validate:"omitempty,oneof=Cook Cleaner Warden Security Manager"`
	Salary   *float64 `json:"salary,omitempty" validate:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active,omitempty"`
}
