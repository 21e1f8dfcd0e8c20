package dtos

import (
	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=50"`
	PriceMonthly   float64  `json:"price_monthly" validate:"min=0"`
	AllowedModules []string `json:"allowed_modules" validate:"required,min=1"`
	MaxProperties  int      `json:"max_properties" validate:"required,min=1"`
}

type UpdatePlanRequest struct {
	PriceMonthly   *float64  `json:"price_monthly,omitempty" validate:"omitempty,min=0"`
	AllowedModules *[]string `json:"allowed_modules,omitempty" validate:"omitempty,min=1"`
	MaxProperties  *int      `json:"max_properties,omitempty" validate:"omitempty,min=1"`
	IsActive       *bool     `json:"is_active,omitempty"`
}

type CreateOrderRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PlanName string  `json:"plan_name"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	Verified bool   `json:"verified"`
	PlanName string `json:"plan_name,omitempty"`
	Message  string `json:"message"`
}
