package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is one outgoing finance record. Staff salary is modeled as an
// expense with category "Staff Salary" and a staff reference; it never feeds
// tenant payment-status reconciliation.
type Expense struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	PropertyID uuid.UUID  `json:"property_id"`
	StaffID    *uuid.UUID `json:"staff_id,omitempty"`

	Category      ExpenseCategoryType `json:"category"`
	Amount        float64             `json:"amount"`
	Status        RecordStatusType    `json:"status"`
	Date          time.Time           `json:"date"`
	BillingPeriod time.Time           `json:"billing_period"`

	PaidTo        string `json:"paid_to"`
	PaymentMethod string `json:"payment_method"` // Cash, UPI, Bank Transfer, Cheque, Card
	Description   string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
