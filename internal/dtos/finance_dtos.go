package dtos

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/models"
)

type CreateFinanceRecordRequest struct {
	PropertyID uuid.UUID `json:"property_id" validate:"required"`

	// Kind selects the ledger side: "income" records need a tenant,
	// "expense" records may reference staff (salary) or a payee.
	Kind     string     `json:"kind" validate:"required,oneof=income expense"`
	Category string     `json:"category" validate:"required,min=2,max=50"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	StaffID  *uuid.UUID `json:"staff_id,omitempty"`

	Amount  float64   `json:"amount" validate:"required,gt=0"`
	Status  string    `json:"status" validate:"required,oneof=pending paid overdue failed"`
	DueDate time.Time `json:"due_date" validate:"required"`

	PaidTo      string `json:"paid_to,omitempty" validate:"omitempty,max=150"`
	Method      string `json:"method,omitempty" validate:"omitempty,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateFinanceRecordRequest struct {
	Amount   *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Status   *string    `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue failed"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	PaidDate *time.Time `json:"paid_date,omitempty"`

	Method      *string `json:"method,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// GenerateRecordsRequest selects the billing month for bulk generation,
// optionally narrowed to one property. Month and year are explicit so a
// missed month can be backfilled.
type GenerateRecordsRequest struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	Month      int        `json:"month" validate:"required,min=1,max=12"`
	Year       int        `json:"year" validate:"required,min=2000,max=2100"`
}

type GenerateRecordsResponse struct {
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Period  string `json:"period"` // YYYY-MM
}

// FinanceRecordDTO is the consolidated ledger row shown in the finance list:
// payments and expenses flattened into a single shape with a display status.
type FinanceRecordDTO struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`

	Kind     string `json:"kind"` // income or expense
	Category string `json:"category"`

	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	EntityName string     `json:"entity_name"`
	EntityType string     `json:"entity_type"` // tenant, staff, vendor

	Amount   float64    `json:"amount"`
	Status   string     `json:"status"` // Pending, Paid, Overdue, Failed
	DueDate  time.Time  `json:"due_date"`
	PaidDate *time.Time `json:"paid_date,omitempty"`

	Method      string    `json:"method,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayStatus capitalizes a stored record status for presentation
// ("pending" -> "Pending"). Stored statuses stay lowercase.
func DisplayStatus(s models.RecordStatusType) string {
	str := string(s)
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + strings.ToLower(str[1:])
}

func NewFinanceRecordFromPayment(p *models.Payment, tenantName string) FinanceRecordDTO {
	tid := p.TenantID
	return FinanceRecordDTO{
		ID:          p.ID,
		PropertyID:  p.PropertyID,
		Kind:        "income",
		Category:    string(p.Category),
		EntityID:    &tid,
		EntityName:  tenantName,
		EntityType:  "tenant",
		Amount:      p.Amount,
		Status:      DisplayStatus(p.Status),
		DueDate:     p.DueDate,
		PaidDate:    p.PaidDate,
		Method:      p.Method,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func NewFinanceRecordFromExpense(e *models.Expense, staffName string) FinanceRecordDTO {
	entityName := e.PaidTo
	entityType := "vendor"
	if e.StaffID != nil {
		entityName = staffName
		entityType = "staff"
	}
	return FinanceRecordDTO{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Kind:        "expense",
		Category:    string(e.Category),
		EntityID:    e.StaffID,
		EntityName:  entityName,
		EntityType:  entityType,
		Amount:      e.Amount,
		Status:      DisplayStatus(e.Status),
		DueDate:     e.Date,
		Method:      e.PaymentMethod,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// FinanceStatsResponse summarizes the ledger for a dashboard period.
type FinanceStatsResponse struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetBalance     float64 `json:"net_balance"`
	PendingIncome  float64 `json:"pending_income"`
	OverdueIncome  float64 `json:"overdue_income"`
	PendingRecords int     `json:"pending_records"`
	OverdueRecords int     `json:"overdue_records"`
}
