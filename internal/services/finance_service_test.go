package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/utils"
)

func TestGenerateRentCreatesOneRecordPerActiveTenant(t *testing.T) {
	ownerID := uuid.New()
	active1 := activeTenant(0)
	active1.OwnerID = ownerID
	active1.RentAmount = 8000
	active2 := activeTenant(0)
	active2.OwnerID = ownerID
	active2.RentAmount = 9500
	left := activeTenant(0)
	left.OwnerID = ownerID
	left.Status = models.TenantStatusLeft

	tenantRepo := newFakeTenantRepo(active1, active2, left)
	paymentRepo := newFakePaymentRepo()
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	asOf := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	resp, err := svc.GenerateRent(context.Background(), ownerID, nil, asOf)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Created)
	require.Equal(t, 0, resp.Skipped)
	require.Equal(t, "2026-03", resp.Period)

	records, err := paymentRepo.ListByTenantAndCategories(context.Background(), active1.ID, models.ReconcilableCategories)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	require.Equal(t, models.CategoryRent, rec.Category)
	require.Equal(t, models.RecordStatusPending, rec.Status)
	require.Equal(t, 8000.0, rec.Amount)
	require.Equal(t, constants.RentDueDayOfMonth, rec.DueDate.Day())
	require.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), rec.BillingPeriod)
}

func TestGenerateRentScopedToProperty(t *testing.T) {
	ownerID := uuid.New()
	inScope := activeTenant(0)
	inScope.OwnerID = ownerID
	inScope.RentAmount = 8000
	outOfScope := activeTenant(0)
	outOfScope.OwnerID = ownerID
	outOfScope.RentAmount = 9500

	tenantRepo := newFakeTenantRepo(inScope, outOfScope)
	paymentRepo := newFakePaymentRepo()
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GenerateRent(context.Background(), ownerID, &inScope.PropertyID, asOf)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Created)
	require.Equal(t, "2024-06", resp.Period)

	billed, _ := paymentRepo.ListByTenantAndCategories(context.Background(), inScope.ID, models.ReconcilableCategories)
	require.Len(t, billed, 1)
	require.Equal(t, time.Date(2024, time.June, constants.RentDueDayOfMonth, 0, 0, 0, 0, time.UTC), billed[0].DueDate)

	unbilled, _ := paymentRepo.ListByTenantAndCategories(context.Background(), outOfScope.ID, models.ReconcilableCategories)
	require.Empty(t, unbilled)
}

func TestGenerateSalaryScopedToProperty(t *testing.T) {
	ownerID := uuid.New()
	cook := &models.Staff{
		ID: uuid.New(), OwnerID: ownerID, PropertyID: uuid.New(),
		Name: "Ramesh Kumar", Salary: 15000, IsActive: true,
	}
	warden := &models.Staff{
		ID: uuid.New(), OwnerID: ownerID, PropertyID: uuid.New(),
		Name: "Suresh Pillai", Salary: 18000, IsActive: true,
	}

	expenseRepo := newFakeExpenseRepo()
	svc := newTestFinanceService(newFakeTenantRepo(), newFakeStaffRepo(cook, warden), newFakePaymentRepo(), expenseRepo)

	resp, err := svc.GenerateSalary(context.Background(), ownerID, &cook.PropertyID,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Created)

	expenses, _ := expenseRepo.ListByOwner(context.Background(), ownerID)
	require.Len(t, expenses, 1)
	require.Equal(t, "Ramesh Kumar", expenses[0].PaidTo)
}

func TestGenerateRentRerunSkipsExistingPeriod(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID
	tenant.RentAmount = 7000

	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo()
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	asOf := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	first, err := svc.GenerateRent(context.Background(), ownerID, nil, asOf)
	require.NoError(t, err)
	require.Equal(t, 1, first.Created)

	second, err := svc.GenerateRent(context.Background(), ownerID, nil, asOf.AddDate(0, 0, 20))
	require.NoError(t, err)
	require.Equal(t, 0, second.Created)
	require.Equal(t, 1, second.Skipped)

	records, _ := paymentRepo.ListByTenantAndCategories(context.Background(), tenant.ID, models.ReconcilableCategories)
	require.Len(t, records, 1)
}

func TestGenerateRentReconcilesBilledTenants(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID
	tenant.PaymentStatus = models.TenantPaymentPaid

	tenantRepo := newFakeTenantRepo(tenant)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	_, err := svc.GenerateRent(context.Background(), ownerID, nil, time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPending, got.PaymentStatus)
}

func TestGenerateRentNoActiveTenants(t *testing.T) {
	svc := newTestFinanceService(newFakeTenantRepo(), newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	_, err := svc.GenerateRent(context.Background(), uuid.New(), nil, time.Now())
	require.ErrorIs(t, err, utils.ErrNoActiveTenants)
}

func TestGenerateSalaryCreatesAndSkips(t *testing.T) {
	ownerID := uuid.New()
	cook := &models.Staff{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Name:     "Ramesh Kumar",
		Role:     "Cook",
		Salary:   15000,
		IsActive: true,
	}
	inactive := &models.Staff{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    "Former Warden",
		Salary:  12000,
	}

	expenseRepo := newFakeExpenseRepo()
	svc := newTestFinanceService(newFakeTenantRepo(), newFakeStaffRepo(cook, inactive), newFakePaymentRepo(), expenseRepo)

	asOf := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GenerateSalary(context.Background(), ownerID, nil, asOf)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Created)
	require.Equal(t, 0, resp.Skipped)

	expenses, err := expenseRepo.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	e := expenses[0]
	require.Equal(t, models.ExpenseStaffSalary, e.Category)
	require.Equal(t, 15000.0, e.Amount)
	require.Equal(t, "Ramesh Kumar", e.PaidTo)
	require.Equal(t, constants.SalaryDueDayOfMonth, e.Date.Day())

	rerun, err := svc.GenerateSalary(context.Background(), ownerID, nil, asOf)
	require.NoError(t, err)
	require.Equal(t, 0, rerun.Created)
	require.Equal(t, 1, rerun.Skipped)
}

func TestGenerateSalaryNoActiveStaff(t *testing.T) {
	svc := newTestFinanceService(newFakeTenantRepo(), newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	_, err := svc.GenerateSalary(context.Background(), uuid.New(), nil, time.Now())
	require.ErrorIs(t, err, utils.ErrNoActiveStaff)
}

func TestCreateIncomeRecordRequiresTenant(t *testing.T) {
	svc := newTestFinanceService(newFakeTenantRepo(), newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	_, err := svc.CreateRecord(context.Background(), uuid.New(), dtos.CreateFinanceRecordRequest{
		Kind:     "income",
		Category: string(models.CategoryRent),
		Amount:   5000,
		Status:   "pending",
		DueDate:  time.Now(),
	})

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, 400, appErr.StatusCode)
}

func TestCreateIncomeRecordReconcilesTenant(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID
	tenant.PaymentStatus = models.TenantPaymentPaid

	tenantRepo := newFakeTenantRepo(tenant)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	_, err := svc.CreateRecord(context.Background(), ownerID, dtos.CreateFinanceRecordRequest{
		Kind:       "income",
		PropertyID: tenant.PropertyID,
		TenantID:   &tenant.ID,
		Category:   string(models.CategoryRent),
		Amount:     5000,
		Status:     "overdue",
		DueDate:    time.Now(),
	})
	require.NoError(t, err)

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentOverdue, got.PaymentStatus)
}

func TestStatsBucketsByStatus(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID

	paid := rentRecord(tenant, models.RecordStatusPaid)
	paid.Amount = 8000
	pending := rentRecord(tenant, models.RecordStatusPending)
	pending.Amount = 6000
	overdue := rentRecord(tenant, models.RecordStatusOverdue)
	overdue.Amount = 4000

	staffID := uuid.New()
	paidExpense := &models.Expense{
		ID: uuid.New(), OwnerID: ownerID, StaffID: &staffID,
		Category: models.ExpenseStaffSalary, Amount: 15000, Status: models.RecordStatusPaid,
	}
	pendingExpense := &models.Expense{
		ID: uuid.New(), OwnerID: ownerID,
		Category: models.ExpenseGroceries, Amount: 2000, Status: models.RecordStatusPending,
	}

	svc := newTestFinanceService(
		newFakeTenantRepo(tenant),
		newFakeStaffRepo(),
		newFakePaymentRepo(paid, pending, overdue),
		newFakeExpenseRepo(paidExpense, pendingExpense),
	)

	stats, err := svc.Stats(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, 8000.0, stats.TotalIncome)
	require.Equal(t, 15000.0, stats.TotalExpenses)
	require.Equal(t, -7000.0, stats.NetBalance)
	require.Equal(t, 6000.0, stats.PendingIncome)
	require.Equal(t, 4000.0, stats.OverdueIncome)
	require.Equal(t, 1, stats.PendingRecords)
	require.Equal(t, 1, stats.OverdueRecords)
}

func TestListRecordsMergesAndPaginates(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID

	p1 := rentRecord(tenant, models.RecordStatusPaid)
	p1.OwnerID = ownerID
	p1.DueDate = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	p2 := rentRecord(tenant, models.RecordStatusPending)
	p2.OwnerID = ownerID
	p2.DueDate = time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	staffID := uuid.New()
	e1 := &models.Expense{
		ID: uuid.New(), OwnerID: ownerID, StaffID: &staffID,
		Category: models.ExpenseStaffSalary, Amount: 15000,
		Status: models.RecordStatusPaid,
		Date:   time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC),
	}

	svc := newTestFinanceService(
		newFakeTenantRepo(tenant),
		newFakeStaffRepo(&models.Staff{ID: staffID, OwnerID: ownerID, Name: "Ramesh Kumar", IsActive: true}),
		newFakePaymentRepo(p1, p2),
		newFakeExpenseRepo(e1),
	)

	page1, total, err := svc.ListRecords(context.Background(), ownerID, "", 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page1, 2)
	// Newest due date first.
	require.Equal(t, p2.DueDate, page1[0].DueDate)
	require.Equal(t, e1.Date, page1[1].DueDate)
	require.Equal(t, "Ramesh Kumar", page1[1].EntityName)

	page2, _, err := svc.ListRecords(context.Background(), ownerID, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	require.Equal(t, p1.DueDate, page2[0].DueDate)

	rentOnly, rentTotal, err := svc.ListRecords(context.Background(), ownerID, "Rent", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, rentTotal)
	require.Len(t, rentOnly, 2)
	for _, rec := range rentOnly {
		require.Equal(t, string(models.CategoryRent), rec.Category)
	}
}

func TestListRecordsSalaryAndExpenseAliases(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID

	rent := rentRecord(tenant, models.RecordStatusPaid)
	rent.OwnerID = ownerID

	staffID := uuid.New()
	salary := &models.Expense{
		ID: uuid.New(), OwnerID: ownerID, StaffID: &staffID,
		Category: models.ExpenseStaffSalary, Amount: 15000, Status: models.RecordStatusPaid,
	}
	groceries := &models.Expense{
		ID: uuid.New(), OwnerID: ownerID,
		Category: models.ExpenseGroceries, Amount: 2000, Status: models.RecordStatusPending,
		PaidTo: "City Provisions",
	}

	svc := newTestFinanceService(
		newFakeTenantRepo(tenant),
		newFakeStaffRepo(&models.Staff{ID: staffID, OwnerID: ownerID, Name: "Ramesh Kumar", IsActive: true}),
		newFakePaymentRepo(rent),
		newFakeExpenseRepo(salary, groceries),
	)

	salaries, total, err := svc.ListRecords(context.Background(), ownerID, "Salary", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, string(models.ExpenseStaffSalary), salaries[0].Category)

	others, total, err := svc.ListRecords(context.Background(), ownerID, "Expense", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, string(models.ExpenseGroceries), others[0].Category)
	require.Equal(t, "City Provisions", others[0].EntityName)
}

func TestCreateRecordDuplicatePeriodConflict(t *testing.T) {
	ownerID := uuid.New()
	tenant := activeTenant(0)
	tenant.OwnerID = ownerID

	svc := newTestFinanceService(newFakeTenantRepo(tenant), newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	req := dtos.CreateFinanceRecordRequest{
		Kind:       "income",
		PropertyID: tenant.PropertyID,
		TenantID:   &tenant.ID,
		Category:   string(models.CategoryRent),
		Amount:     5000,
		Status:     "pending",
		DueDate:    time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.CreateRecord(context.Background(), ownerID, req)
	require.NoError(t, err)

	_, err = svc.CreateRecord(context.Background(), ownerID, req)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, 409, appErr.StatusCode)
	require.Equal(t, utils.ErrCodeConflict, appErr.Code)
}
