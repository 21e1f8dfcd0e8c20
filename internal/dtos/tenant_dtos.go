package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/models"
)

type CreateTenantRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`
	RoomID     uuid.UUID `json:"room_id" validate:"required"`

	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Gender     string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Occupation string `json:"occupation" validate:"omitempty,max=100"`

	RentAmount      float64 `json:"rent_amount" validate:"required,gt=0"`
	SecurityDeposit float64 `json:"security_deposit" validate:"min=0"`

	JoiningDate time.Time `json:"joining_date" validate:"required"`
	Notes       string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateTenantRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Gender     *string `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	Occupation *string `json:"occupation,omitempty" validate:"omitempty,max=100"`

	RentAmount      *float64 `json:"rent_amount,omitempty" validate:"omitempty,gt=0"`
	SecurityDeposit *float64 `json:"security_deposit,omitempty" validate:"omitempty,min=0"`

	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive 'Notice Period' Left"`
	LeavingDate *time.Time `json:"leaving_date,omitempty"`
	Notes       *string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// OverridePaymentStatusRequest forces a tenant's derived payment label,
// for corrections the record-driven reconciler cannot express (e.g. a cash
// settlement recorded elsewhere). The next record write re-derives it.
type OverridePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=Paid Pending Overdue"`
}

// TenantDetailResponse is the tenant view with its finance records attached.
// Statuses reflect a reconcile run at read time.
type TenantDetailResponse struct {
	Tenant  *models.Tenant    `json:"tenant"`
	Records []*models.Payment `json:"records"`
}
