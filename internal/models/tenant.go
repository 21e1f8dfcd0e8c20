package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a paying occupant of a room. PaymentStatus and DepositStatus are
// derived fields owned by the finance reconciler; everything else is edited
// directly. Tenant rows carry a row_version because reconciliation uses
// conditional writes.
type Tenant struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	PropertyID uuid.UUID `json:"property_id"`
	RoomID     uuid.UUID `json:"room_id"`

	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender"`
	Occupation string `json:"occupation"`

	RentAmount      float64 `json:"rent_amount"`
	SecurityDeposit float64 `json:"security_deposit"`

	JoiningDate time.Time  `json:"joining_date"`
	LeavingDate *time.Time `json:"leaving_date,omitempty"`

	Status        TenantStatusType        `json:"status"`
	PaymentStatus TenantPaymentStatusType `json:"payment_status"`
	DepositStatus DepositStatusType       `json:"deposit_status"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Versioned
}

func (t *Tenant) GetID() string { return t.ID.String() }
