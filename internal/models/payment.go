package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one incoming finance record (rent, deposit, utility, other
// income) referencing a tenant. BillingPeriod is the first day of the month
// the record bills for; the store enforces uniqueness on
// (tenant_id, category, billing_period) so bulk generation stays idempotent
// under concurrent runs.
type Payment struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	PropertyID uuid.UUID `json:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id"`

	Category      PaymentCategoryType `json:"category"`
	Amount        float64             `json:"amount"`
	Status        RecordStatusType    `json:"status"`
	DueDate       time.Time           `json:"due_date"`
	PaidDate      *time.Time          `json:"paid_date,omitempty"`
	BillingPeriod time.Time           `json:"billing_period"`

	Method      string `json:"method,omitempty"` // Razorpay, Cash, Bank Transfer, UPI
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PeriodOf truncates a due date to its billing period (first of the month).
func PeriodOf(dueDate time.Time) time.Time {
	return time.Date(dueDate.Year(), dueDate.Month(), 1, 0, 0, 0, 0, time.UTC)
}
