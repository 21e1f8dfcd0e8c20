package routes

// API route paths.
const (
	Health = "/api/v1/health"

	AuthRegister       = "/api/v1/auth/register"
	AuthLogin          = "/api/v1/auth/login"
	AuthMe             = "/api/v1/auth/me"
	AuthChangePassword = "/api/v1/auth/change-password"

	Properties    = "/api/v1/properties"
	PropertyByID  = "/api/v1/properties/{propertyID}"
	PropertyStats = "/api/v1/properties/{propertyID}/stats"

	Rooms    = "/api/v1/properties/{propertyID}/rooms"
	RoomByID = "/api/v1/rooms/{roomID}"

	Tenants             = "/api/v1/tenants"
	TenantByID          = "/api/v1/tenants/{tenantID}"
	TenantPaymentStatus = "/api/v1/tenants/{tenantID}/payment-status"

	Staff     = "/api/v1/staff"
	StaffByID = "/api/v1/staff/{staffID}"

	FinanceRecords         = "/api/v1/finance/records"
	FinanceRecordByID      = "/api/v1/finance/records/{recordID}"
	FinanceStats           = "/api/v1/finance/stats"
	FinanceGenerateRent    = "/api/v1/finance/generate-rent"
	FinanceGenerateSalary  = "/api/v1/finance/generate-salary"
	FinanceReconcileTenant = "/api/v1/finance/tenants/{tenantID}/reconcile"

	Meals     = "/api/v1/meals"
	MealStats = "/api/v1/meals/stats"
	MealByID  = "/api/v1/meals/{mealID}"
	Menu      = "/api/v1/menu"

	Complaints    = "/api/v1/complaints"
	ComplaintByID = "/api/v1/complaints/{complaintID}"

	Notices    = "/api/v1/notices"
	NoticeByID = "/api/v1/notices/{noticeID}"

	Plans         = "/api/v1/plans"
	AdminPlans    = "/api/v1/admin/plans"
	AdminPlanByID = "/api/v1/admin/plans/{planID}"

	BillingOrders       = "/api/v1/billing/orders"
	BillingVerify       = "/api/v1/billing/verify"
	BillingTransactions = "/api/v1/billing/transactions"
)
