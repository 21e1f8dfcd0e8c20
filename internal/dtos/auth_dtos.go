package dtos

import (
	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/models"
)

type RegisterOwnerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	PGName   string `json:"pg_name" validate:"required,min=2,max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	Owner       OwnerProfile `json:"owner"`
}

type OwnerProfile struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Role     string    `json:"role"`
	PGName   string    `json:"pg_name"`
	PlanName string    `json:"plan_name,omitempty"`
}

func NewOwnerProfileFromModel(o *models.Owner) OwnerProfile {
	return OwnerProfile{
		ID:       o.ID,
		Name:     o.Name,
		Email:    o.Email,
		Phone:    o.Phone,
		Role:     string(o.Role),
		PGName:   o.PGName,
		PlanName: o.PlanName,
	}
}

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	PGName *string `json:"pg_name,omitempty" validate:"omitempty,min=2,max=150"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
