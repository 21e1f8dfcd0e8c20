package constants

// Module keys gated by subscription plans. Every feature route group is
// registered under exactly one of these.
const (
	ModuleDashboard  = "dashboard"
	ModuleProperties = "properties"
	ModuleRooms      = "rooms"
	ModuleTenants    = "tenants"
	ModuleStaff      = "staff"
	ModuleFinance    = "finance"
	ModuleMeals      = "meals"
	ModuleComplaints = "complaints"
	ModuleNotices    = "notices"
	ModuleBilling    = "billing"
)

// AllModules is the catalog order shown to admins when editing plans.
var AllModules = []string{
	ModuleDashboard,
	ModuleProperties,
	ModuleRooms,
	ModuleTenants,
	ModuleStaff,
	ModuleFinance,
	ModuleMeals,
	ModuleComplaints,
	ModuleNotices,
	ModuleBilling,
}

// Billing-period day-of-month defaults
const (
	RentDueDayOfMonth   = 10
	SalaryDueDayOfMonth = 28
)

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Plan-module cache in the gating middleware
const PlanAccessCacheTTLMinutes = 5
