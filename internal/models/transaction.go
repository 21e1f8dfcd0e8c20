package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a subscription billing event for an owner account
// (plan purchases through the payment gateway). Distinct from tenant-facing
// Payment records.
type Transaction struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	PlanName string  `json:"plan_name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	Status TransactionStatusType `json:"status"`
	Method string                `json:"method"` // Razorpay, Bank Transfer, Other

	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`

	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
