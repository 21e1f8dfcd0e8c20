package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mansionmuse/backend/internal/models"
)

func activeTenant(deposit float64) *models.Tenant {
	return &models.Tenant{
		ID:              uuid.New(),
		OwnerID:         uuid.New(),
		PropertyID:      uuid.New(),
		RoomID:          uuid.New(),
		Name:            "Asha Verma",
		SecurityDeposit: deposit,
		Status:          models.TenantStatusActive,
		PaymentStatus:   models.TenantPaymentPending,
		DepositStatus:   models.DepositPending,
	}
}

func rentRecord(t *models.Tenant, status models.RecordStatusType) *models.Payment {
	return &models.Payment{
		ID:       uuid.New(),
		OwnerID:  t.OwnerID,
		TenantID: t.ID,
		Category: models.CategoryRent,
		Amount:   t.RentAmount,
		Status:   status,
	}
}

func depositRecord(t *models.Tenant, status models.RecordStatusType) *models.Payment {
	return &models.Payment{
		ID:       uuid.New(),
		OwnerID:  t.OwnerID,
		TenantID: t.ID,
		Category: models.CategorySecurityDeposit,
		Amount:   t.SecurityDeposit,
		Status:   status,
	}
}

func TestReconcileAllPaidWithDeposit(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(
		rentRecord(tenant, models.RecordStatusPaid),
		depositRecord(tenant, models.RecordStatusPaid),
	)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, err := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	require.Equal(t, models.TenantPaymentPaid, got.PaymentStatus)
	require.Equal(t, models.DepositPaid, got.DepositStatus)
	require.Equal(t, 1, tenantRepo.statusWrites)
}

func TestReconcileUnpaidDepositKeepsTenantPending(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(
		rentRecord(tenant, models.RecordStatusPaid),
		depositRecord(tenant, models.RecordStatusPending),
	)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPending, got.PaymentStatus)
	require.Equal(t, models.DepositPending, got.DepositStatus)
}

func TestReconcileOverdueBeatsEverything(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(
		rentRecord(tenant, models.RecordStatusOverdue),
		depositRecord(tenant, models.RecordStatusPending),
	)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentOverdue, got.PaymentStatus)
	require.Equal(t, models.DepositPending, got.DepositStatus)
}

func TestReconcileNoDepositOwedIgnoresDepositGate(t *testing.T) {
	// SecurityDeposit of zero means the deposit check never blocks Paid,
	// even though no deposit record exists.
	tenant := activeTenant(0)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(rentRecord(tenant, models.RecordStatusPaid))
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPaid, got.PaymentStatus)
	require.Equal(t, models.DepositPending, got.DepositStatus)
}

func TestReconcileRecordStatusCaseInsensitive(t *testing.T) {
	tenant := activeTenant(5000)
	dep := depositRecord(tenant, models.RecordStatusType("PAID"))
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(rentRecord(tenant, models.RecordStatusType("Paid")), dep)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPaid, got.PaymentStatus)
	require.Equal(t, models.DepositPaid, got.DepositStatus)
}

func TestReconcileIsIdempotent(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(
		rentRecord(tenant, models.RecordStatusPaid),
		depositRecord(tenant, models.RecordStatusPaid),
	)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))
	require.Equal(t, 1, tenantRepo.statusWrites)

	// Second pass derives the same labels and must not write at all.
	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))
	require.Equal(t, 1, tenantRepo.statusWrites)
}

func TestReconcileMissingTenantIsNoOp(t *testing.T) {
	tenantRepo := newFakeTenantRepo()
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), newFakePaymentRepo(), newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), uuid.New()))
	require.Zero(t, tenantRepo.statusWrites)
}

func TestReconcileRetriesOnVersionConflict(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	tenantRepo.failFirstStatusWrite = true
	paymentRepo := newFakePaymentRepo(
		rentRecord(tenant, models.RecordStatusPaid),
		depositRecord(tenant, models.RecordStatusPaid),
	)
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	require.NoError(t, svc.ReconcileTenantStatus(context.Background(), tenant.ID))

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPaid, got.PaymentStatus)
	require.Equal(t, models.DepositPaid, got.DepositStatus)
	require.Equal(t, 1, tenantRepo.statusWrites)
}

func TestHandleRecordChangedIgnoresNonReconcilableCategories(t *testing.T) {
	tenant := activeTenant(5000)
	tenantRepo := newFakeTenantRepo(tenant)
	paymentRepo := newFakePaymentRepo(rentRecord(tenant, models.RecordStatusPaid), depositRecord(tenant, models.RecordStatusPaid))
	svc := newTestFinanceService(tenantRepo, newFakeStaffRepo(), paymentRepo, newFakeExpenseRepo())

	err := svc.HandleRecordChanged(context.Background(), FinancialRecordChanged{
		TenantID: tenant.ID,
		Category: models.CategoryUtility,
	})
	require.NoError(t, err)
	require.Zero(t, tenantRepo.statusWrites)

	got, _ := tenantRepo.GetByID(context.Background(), tenant.ID)
	require.Equal(t, models.TenantPaymentPending, got.PaymentStatus)
}

func TestDeriveDepositPaidNeedsEveryDepositRecordPaid(t *testing.T) {
	tenant := activeTenant(5000)
	records := []*models.Payment{
		depositRecord(tenant, models.RecordStatusPaid),
		depositRecord(tenant, models.RecordStatusPending),
	}

	pay, dep := deriveTenantStatuses(tenant, records)
	require.Equal(t, models.DepositPending, dep)
	require.Equal(t, models.TenantPaymentPending, pay)
}

func TestDeriveDepositLabelNeverReverts(t *testing.T) {
	// Once Paid, the deposit label stays Paid even if a deposit record is
	// later reopened; only the payment label reacts.
	tenant := activeTenant(5000)
	tenant.DepositStatus = models.DepositPaid
	records := []*models.Payment{depositRecord(tenant, models.RecordStatusPending)}

	pay, dep := deriveTenantStatuses(tenant, records)
	require.Equal(t, models.DepositPaid, dep)
	require.Equal(t, models.TenantPaymentPending, pay)
}

func TestDeriveNoRecordsMeansPaid(t *testing.T) {
	tenant := activeTenant(0)
	pay, dep := deriveTenantStatuses(tenant, nil)
	require.Equal(t, models.TenantPaymentPaid, pay)
	require.Equal(t, models.DepositPending, dep)
}
