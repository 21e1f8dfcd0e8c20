package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

const statusWriteRetries = 3

// errStatusUnchanged aborts the retry loop when a fresh read shows nothing
// to persist.
var errStatusUnchanged = errors.New("tenant status unchanged")

// FinancialRecordChanged is raised whenever a finance record referencing a
// tenant is created, updated or deleted. Reconciliation listens on it so no
// write path has to remember to resync tenant status by hand.
type FinancialRecordChanged struct {
	TenantID uuid.UUID
	Category models.PaymentCategoryType
}

// HandleRecordChanged reconciles the tenant's derived statuses if the changed
// record is of a category that feeds them. Utility and other-income records
// are ignored.
func (s *FinanceService) HandleRecordChanged(ctx context.Context, ev FinancialRecordChanged) error {
	if !models.IsReconcilableCategory(ev.Category) {
		return nil
	}
	return s.ReconcileTenantStatus(ctx, ev.TenantID)
}

// ReconcileTenantStatus recomputes a tenant's payment_status and
// deposit_status from its rent and deposit records and persists them only
// when they changed. A missing tenant is a silent no-op: records can outlive
// their tenant briefly during deletion.
//
// Writes go through the row_version guard so a concurrent reconcile or
// tenant edit never clobbers this update; on conflict the loop re-reads and
// re-derives before trying again.
func (s *FinanceService) ReconcileTenantStatus(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	records, err := s.paymentRepo.ListByTenantAndCategories(ctx, tenantID, models.ReconcilableCategories)
	if err != nil {
		return err
	}

	newPay, newDep := deriveTenantStatuses(tenant, records)
	if tenant.PaymentStatus == newPay && tenant.DepositStatus == newDep {
		return nil
	}

	err = repositories.WithRetry(
		ctx,
		statusWriteRetries,
		tenant.GetID(),
		func(ctx context.Context, id string) (*models.Tenant, error) {
			uid, pErr := uuid.Parse(id)
			if pErr != nil {
				return nil, pErr
			}
			return s.tenantRepo.GetByID(ctx, uid)
		},
		s.tenantRepo.UpdateStatusIfVersion,
		func(cur *models.Tenant) error {
			recs, rErr := s.paymentRepo.ListByTenantAndCategories(ctx, cur.ID, models.ReconcilableCategories)
			if rErr != nil {
				return rErr
			}
			pay, dep := deriveTenantStatuses(cur, recs)
			if cur.PaymentStatus == pay && cur.DepositStatus == dep {
				return errStatusUnchanged
			}
			cur.PaymentStatus = pay
			cur.DepositStatus = dep
			return nil
		},
	)
	if err != nil {
		if errors.Is(err, errStatusUnchanged) || errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	utils.Logger.Debugf("Reconciled tenant %s: payment_status=%s deposit_status=%s", tenantID, newPay, newDep)
	return nil
}

// deriveTenantStatuses computes the capitalized tenant labels from lowercase
// record statuses. Status comparison is case-insensitive on the record side.
//
// The deposit label only ever moves Pending -> Paid here, and only when the
// tenant actually owes a deposit and every deposit record is paid. A tenant
// with no deposit owed keeps whatever label it has; the deposit partition is
// vacuous for it.
//
// Payment label precedence: overdue beats everything, then an unpaid deposit
// or any pending record, then Paid.
func deriveTenantStatuses(t *models.Tenant, records []*models.Payment) (models.TenantPaymentStatusType, models.DepositStatusType) {
	var deposits []*models.Payment
	for _, r := range records {
		if r.Category == models.CategorySecurityDeposit {
			deposits = append(deposits, r)
		}
	}

	depositPaid := len(deposits) > 0
	for _, d := range deposits {
		if !strings.EqualFold(string(d.Status), string(models.RecordStatusPaid)) {
			depositPaid = false
			break
		}
	}

	dep := t.DepositStatus
	if depositPaid && t.SecurityDeposit > 0 && dep != models.DepositPaid {
		dep = models.DepositPaid
	}

	pay := models.TenantPaymentPaid
	if t.SecurityDeposit > 0 && dep == models.DepositPending {
		pay = models.TenantPaymentPending
	}

	var anyOverdue, anyPending bool
	for _, r := range records {
		switch models.NormalizeRecordStatus(string(r.Status)) {
		case models.RecordStatusOverdue:
			anyOverdue = true
		case models.RecordStatusPending:
			anyPending = true
		}
	}
	if anyOverdue {
		pay = models.TenantPaymentOverdue
	} else if anyPending {
		pay = models.TenantPaymentPending
	}

	return pay, dep
}
