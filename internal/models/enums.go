package models

import "strings"

/*──────────────────────────────────────────────────────────────────────────────
  Primary enums
──────────────────────────────────────────────────────────────────────────────*/

// RecordStatusType is the canonical status of a persisted finance record
// (payment or expense). Always stored lowercase.
type RecordStatusType string

const (
	RecordStatusPending RecordStatusType = "pending"
	RecordStatusPaid    RecordStatusType = "paid"
	RecordStatusOverdue RecordStatusType = "overdue"
	RecordStatusFailed  RecordStatusType = "failed"
)

// NormalizeRecordStatus lowercases a status coming from a client. The
// casing boundary matters: records carry lowercase statuses, tenants carry
// capitalized derived labels.
func NormalizeRecordStatus(s string) RecordStatusType {
	return RecordStatusType(strings.ToLower(strings.TrimSpace(s)))
}

// TenantPaymentStatusType is the derived, capitalized label on a tenant.
type TenantPaymentStatusType string

const (
	TenantPaymentPaid    TenantPaymentStatusType = "Paid"
	TenantPaymentPending TenantPaymentStatusType = "Pending"
	TenantPaymentOverdue TenantPaymentStatusType = "Overdue"
)

type DepositStatusType string

const (
	DepositPaid    DepositStatusType = "Paid"
	DepositPending DepositStatusType = "Pending"
)

type TenantStatusType string

const (
	TenantStatusActive       TenantStatusType = "Active"
	TenantStatusInactive     TenantStatusType = "Inactive"
	TenantStatusNoticePeriod TenantStatusType = "Notice Period"
	TenantStatusLeft         TenantStatusType = "Left"
)

type PaymentCategoryType string

const (
	CategoryRent            PaymentCategoryType = "Rent"
	CategorySecurityDeposit PaymentCategoryType = "Security Deposit"
	CategoryUtility         PaymentCategoryType = "Utility"
	CategoryOtherIncome     PaymentCategoryType = "Other Income"
)

// ReconcilableCategories are the payment categories that feed the tenant
// payment-status reconciliation.
var ReconcilableCategories = []PaymentCategoryType{CategoryRent, CategorySecurityDeposit}

func IsReconcilableCategory(c PaymentCategoryType) bool {
	return c == CategoryRent || c == CategorySecurityDeposit
}

type ExpenseCategoryType string

const (
	ExpenseGroceries   ExpenseCategoryType = "Groceries"
	ExpenseElectricity ExpenseCategoryType = "Electricity Bill"
	ExpenseWater       ExpenseCategoryType = "Water Bill"
	ExpenseGas         ExpenseCategoryType = "Gas Bill"
	ExpenseInternet    ExpenseCategoryType = "Internet Bill"
	ExpenseStaffSalary ExpenseCategoryType = "Staff Salary"
	ExpenseRepairs     ExpenseCategoryType = "Repairs"
	ExpenseMaintenance ExpenseCategoryType = "Maintenance"
	ExpenseCleaning    ExpenseCategoryType = "Cleaning Supplies"
	ExpenseOther       ExpenseCategoryType = "Other"
)

type MealSlotType string

const (
	MealSlotBreakfast MealSlotType = "Breakfast"
	MealSlotLunch     MealSlotType = "Lunch"
	MealSlotDinner    MealSlotType = "Dinner"
	MealSlotSnack     MealSlotType = "Snack"
	MealSlotAll       MealSlotType = "All Meals"
)

type DietType string

const (
	DietVegetarian    DietType = "Vegetarian"
	DietNonVegetarian DietType = "Non-Vegetarian"
	DietBoth          DietType = "Both"
	DietVegan         DietType = "Vegan"
	DietJain          DietType = "Jain"
)

type RoomStatusType string

const (
	RoomStatusAvailable   RoomStatusType = "Available"
	RoomStatusOccupied    RoomStatusType = "Occupied"
	RoomStatusMaintenance RoomStatusType = "Maintenance"
	RoomStatusReserved    RoomStatusType = "Reserved"
)

type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleOwner RoleType = "owner"
)

type ComplaintStatusType string

const (
	ComplaintOpen       ComplaintStatusType = "Open"
	ComplaintInProgress ComplaintStatusType = "In Progress"
	ComplaintResolved   ComplaintStatusType = "Resolved"
)

type NoticeAudienceType string

const (
	NoticeAudienceAll     NoticeAudienceType = "all"
	NoticeAudienceTenants NoticeAudienceType = "tenants"
	NoticeAudienceStaff   NoticeAudienceType = "staff"
)

type TransactionStatusType string

const (
	TransactionPending   TransactionStatusType = "pending"
	TransactionCompleted TransactionStatusType = "completed"
	TransactionFailed    TransactionStatusType = "failed"
)
