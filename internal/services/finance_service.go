package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

// FinanceService owns the money ledger: tenant payments, expenses, staff
// salaries, bulk monthly generation, and the derived tenant status
// reconciliation in finance_reconciler.go.
type FinanceService struct {
	ownerRepo   repositories.OwnerRepository
	tenantRepo  repositories.TenantRepository
	staffRepo   repositories.StaffRepository
	paymentRepo repositories.PaymentRepository
	expenseRepo repositories.ExpenseRepository
	email       *EmailService
}

func NewFinanceService(
	ownerRepo repositories.OwnerRepository,
	tenantRepo repositories.TenantRepository,
	staffRepo repositories.StaffRepository,
	paymentRepo repositories.PaymentRepository,
	expenseRepo repositories.ExpenseRepository,
	email *EmailService,
) *FinanceService {
	return &FinanceService{
		ownerRepo:   ownerRepo,
		tenantRepo:  tenantRepo,
		staffRepo:   staffRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		email:       email,
	}
}

func (s *FinanceService) CreateRecord(ctx context.Context, ownerID uuid.UUID, req dtos.CreateFinanceRecordRequest) (*dtos.FinanceRecordDTO, error) {
	status := models.NormalizeRecordStatus(req.Status)
	now := time.Now()

	if req.Kind == "income" {
		if req.TenantID == nil {
			return nil, &utils.AppError{
				StatusCode: 400, Code: utils.ErrCodeValidation,
				Message: "tenant_id is required for income records",
			}
		}
		tenant, err := s.tenantRepo.GetByID(ctx, *req.TenantID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, utils.ErrNotFound
			}
			return nil, err
		}

		p := &models.Payment{
			ID:            uuid.New(),
			OwnerID:       ownerID,
			PropertyID:    req.PropertyID,
			TenantID:      tenant.ID,
			Category:      models.PaymentCategoryType(req.Category),
			Amount:        req.Amount,
			Status:        status,
			DueDate:       req.DueDate,
			BillingPeriod: models.PeriodOf(req.DueDate),
			Method:        req.Method,
			Description:   req.Description,
		}
		if status == models.RecordStatusPaid {
			p.PaidDate = &now
		}
		if err := s.paymentRepo.Create(ctx, p); err != nil {
			return nil, recordCreateError(err)
		}

		if err := s.HandleRecordChanged(ctx, FinancialRecordChanged{TenantID: tenant.ID, Category: p.Category}); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to reconcile tenant %s after record create", tenant.ID)
		}
		if status == models.RecordStatusPaid {
			s.email.SendRentPaymentConfirmation(tenant, p)
		}

		dto := dtos.NewFinanceRecordFromPayment(p, tenant.Name)
		return &dto, nil
	}

	// expense
	var staffName string
	if req.StaffID != nil {
		staff, err := s.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, utils.ErrNotFound
			}
			return nil, err
		}
		staffName = staff.Name
	}

	e := &models.Expense{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		PropertyID:    req.PropertyID,
		StaffID:       req.StaffID,
		Category:      models.ExpenseCategoryType(req.Category),
		Amount:        req.Amount,
		Status:        status,
		Date:          req.DueDate,
		BillingPeriod: models.PeriodOf(req.DueDate),
		PaidTo:        req.PaidTo,
		PaymentMethod: req.Method,
		Description:   req.Description,
	}
	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, recordCreateError(err)
	}

	dto := dtos.NewFinanceRecordFromExpense(e, staffName)
	return &dto, nil
}

// recordCreateError maps the billing-period unique violation to a 409 so a
// double-submitted record does not surface as an internal error.
func recordCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &utils.AppError{
			StatusCode: 409, Code: utils.ErrCodeConflict,
			Message: "A record for this billing period already exists",
			Err:     err,
		}
	}
	return err
}

func (s *FinanceService) UpdateRecord(ctx context.Context, id uuid.UUID, kind string, req dtos.UpdateFinanceRecordRequest) (*dtos.FinanceRecordDTO, error) {
	if kind == "income" {
		return s.updatePayment(ctx, id, req)
	}
	return s.updateExpense(ctx, id, req)
}

func (s *FinanceService) updatePayment(ctx context.Context, id uuid.UUID, req dtos.UpdateFinanceRecordRequest) (*dtos.FinanceRecordDTO, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	wasPaid := p.Status == models.RecordStatusPaid
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.Status != nil {
		p.Status = models.NormalizeRecordStatus(*req.Status)
	}
	if req.DueDate != nil {
		p.DueDate = *req.DueDate
		p.BillingPeriod = models.PeriodOf(*req.DueDate)
	}
	if req.PaidDate != nil {
		p.PaidDate = req.PaidDate
	}
	if req.Method != nil {
		p.Method = *req.Method
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if p.Status == models.RecordStatusPaid && p.PaidDate == nil {
		now := time.Now()
		p.PaidDate = &now
	}

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := s.HandleRecordChanged(ctx, FinancialRecordChanged{TenantID: p.TenantID, Category: p.Category}); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to reconcile tenant %s after record update", p.TenantID)
	}

	tenant, tErr := s.tenantRepo.GetByID(ctx, p.TenantID)
	tenantName := ""
	if tErr == nil {
		tenantName = tenant.Name
		if !wasPaid && p.Status == models.RecordStatusPaid {
			s.email.SendRentPaymentConfirmation(tenant, p)
		}
	}

	dto := dtos.NewFinanceRecordFromPayment(p, tenantName)
	return &dto, nil
}

func (s *FinanceService) updateExpense(ctx context.Context, id uuid.UUID, req dtos.UpdateFinanceRecordRequest) (*dtos.FinanceRecordDTO, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	wasPaid := e.Status == models.RecordStatusPaid
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.Status != nil {
		e.Status = models.NormalizeRecordStatus(*req.Status)
	}
	if req.DueDate != nil {
		e.Date = *req.DueDate
		e.BillingPeriod = models.PeriodOf(*req.DueDate)
	}
	if req.Method != nil {
		e.PaymentMethod = *req.Method
	}
	if req.Description != nil {
		e.Description = *req.Description
	}

	if err := s.expenseRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	staffName := ""
	if e.StaffID != nil {
		if staff, sErr := s.staffRepo.GetByID(ctx, *e.StaffID); sErr == nil {
			staffName = staff.Name
			if !wasPaid && e.Status == models.RecordStatusPaid && e.Category == models.ExpenseStaffSalary {
				s.email.SendSalaryCredit(staff, e)
			}
		}
	}

	dto := dtos.NewFinanceRecordFromExpense(e, staffName)
	return &dto, nil
}

func (s *FinanceService) DeleteRecord(ctx context.Context, id uuid.UUID, kind string) error {
	if kind == "income" {
		p, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return utils.ErrNotFound
			}
			return err
		}
		if err := s.paymentRepo.Delete(ctx, id); err != nil {
			return err
		}
		if rErr := s.HandleRecordChanged(ctx, FinancialRecordChanged{TenantID: p.TenantID, Category: p.Category}); rErr != nil {
			utils.Logger.WithError(rErr).Errorf("Failed to reconcile tenant %s after record delete", p.TenantID)
		}
		return nil
	}

	err := s.expenseRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// ListRecords returns the consolidated ledger for an owner: payments and
// expenses flattened, newest due date first, paginated in memory. Entity
// names are resolved per record with a memo so each tenant or staff member
// is fetched at most once. An empty category means no filter.
func (s *FinanceService) ListRecords(ctx context.Context, ownerID uuid.UUID, category string, page, limit int) ([]dtos.FinanceRecordDTO, int, error) {
	payments, err := s.paymentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	expenses, err := s.expenseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	tenantNames := map[uuid.UUID]string{}
	staffNames := map[uuid.UUID]string{}

	records := make([]dtos.FinanceRecordDTO, 0, len(payments)+len(expenses))
	for _, p := range payments {
		name, ok := tenantNames[p.TenantID]
		if !ok {
			if t, tErr := s.tenantRepo.GetByID(ctx, p.TenantID); tErr == nil {
				name = t.Name
			}
			tenantNames[p.TenantID] = name
		}
		records = append(records, dtos.NewFinanceRecordFromPayment(p, name))
	}
	for _, e := range expenses {
		name := ""
		if e.StaffID != nil {
			cached, ok := staffNames[*e.StaffID]
			if !ok {
				if st, sErr := s.staffRepo.GetByID(ctx, *e.StaffID); sErr == nil {
					cached = st.Name
				}
				staffNames[*e.StaffID] = cached
			}
			name = cached
		}
		records = append(records, dtos.NewFinanceRecordFromExpense(e, name))
	}

	if category != "" {
		filtered := records[:0]
		for _, rec := range records {
			if matchesCategoryFilter(rec, category) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].DueDate.After(records[j].DueDate)
	})

	total := len(records)
	start := (page - 1) * limit
	if start >= total {
		return []dtos.FinanceRecordDTO{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return records[start:end], total, nil
}

// matchesCategoryFilter resolves a ledger list filter value. "Salary" and
// "Expense" are umbrella filters: the first targets staff salary expenses,
// the second every expense that is not one. Anything else matches the
// record's category verbatim, case-insensitively.
func matchesCategoryFilter(rec dtos.FinanceRecordDTO, category string) bool {
	switch {
	case strings.EqualFold(category, "Salary"):
		return strings.EqualFold(rec.Category, string(models.ExpenseStaffSalary))
	case strings.EqualFold(category, "Expense"):
		return rec.Kind == "expense" && !strings.EqualFold(rec.Category, string(models.ExpenseStaffSalary))
	default:
		return strings.EqualFold(rec.Category, category)
	}
}

func (s *FinanceService) Stats(ctx context.Context, ownerID uuid.UUID) (*dtos.FinanceStatsResponse, error) {
	payments, err := s.paymentRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var stats dtos.FinanceStatsResponse
	for _, p := range payments {
		switch p.Status {
		case models.RecordStatusPaid:
			stats.TotalIncome += p.Amount
		case models.RecordStatusPending:
			stats.PendingIncome += p.Amount
			stats.PendingRecords++
		case models.RecordStatusOverdue:
			stats.OverdueIncome += p.Amount
			stats.OverdueRecords++
		}
	}
	for _, e := range expenses {
		if e.Status == models.RecordStatusPaid {
			stats.TotalExpenses += e.Amount
		}
	}
	stats.NetBalance = stats.TotalIncome - stats.TotalExpenses
	return &stats, nil
}

// GenerateRent creates one pending rent record per active tenant for the
// month containing asOf, optionally narrowed to one property. Reruns are
// harmless: the storage-level uniqueness on (tenant, category, billing
// period) makes each insert idempotent, and already-billed tenants are
// counted as skipped.
func (s *FinanceService) GenerateRent(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, asOf time.Time) (*dtos.GenerateRecordsResponse, error) {
	filter := repositories.TenantFilter{OwnerID: &ownerID, PropertyID: propertyID}
	tenants, err := s.tenantRepo.ListByStatus(ctx, filter, models.TenantStatusActive)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, utils.ErrNoActiveTenants
	}

	dueDate := time.Date(asOf.Year(), asOf.Month(), constants.RentDueDayOfMonth, 0, 0, 0, 0, time.UTC)
	period := models.PeriodOf(dueDate)

	resp := &dtos.GenerateRecordsResponse{Period: period.Format("2006-01")}
	for _, tenant := range tenants {
		p := &models.Payment{
			ID:            uuid.New(),
			OwnerID:       tenant.OwnerID,
			PropertyID:    tenant.PropertyID,
			TenantID:      tenant.ID,
			Category:      models.CategoryRent,
			Amount:        tenant.RentAmount,
			Status:        models.RecordStatusPending,
			DueDate:       dueDate,
			BillingPeriod: period,
			Description:   fmt.Sprintf("Rent for %s", period.Format("January 2006")),
		}
		created, cErr := s.paymentRepo.CreateIfAbsent(ctx, p)
		if cErr != nil {
			return nil, cErr
		}
		if !created {
			resp.Skipped++
			continue
		}
		resp.Created++
		if rErr := s.ReconcileTenantStatus(ctx, tenant.ID); rErr != nil {
			utils.Logger.WithError(rErr).Errorf("Failed to reconcile tenant %s after rent generation", tenant.ID)
		}
	}

	utils.Logger.Infof("Rent generation for owner %s: %d created, %d skipped (%s)",
		ownerID, resp.Created, resp.Skipped, resp.Period)
	return resp, nil
}

// GenerateSalary creates one pending salary expense per active staff member
// for the month containing asOf, optionally narrowed to one property.
// Salary records never touch tenant status.
func (s *FinanceService) GenerateSalary(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID, asOf time.Time) (*dtos.GenerateRecordsResponse, error) {
	staff, err := s.staffRepo.ListActive(ctx, repositories.StaffFilter{OwnerID: &ownerID, PropertyID: propertyID})
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, utils.ErrNoActiveStaff
	}

	dueDate := time.Date(asOf.Year(), asOf.Month(), constants.SalaryDueDayOfMonth, 0, 0, 0, 0, time.UTC)
	period := models.PeriodOf(dueDate)

	resp := &dtos.GenerateRecordsResponse{Period: period.Format("2006-01")}
	for _, member := range staff {
		staffID := member.ID
		e := &models.Expense{
			ID:            uuid.New(),
			OwnerID:       member.OwnerID,
			PropertyID:    member.PropertyID,
			StaffID:       &staffID,
			Category:      models.ExpenseStaffSalary,
			Amount:        member.Salary,
			Status:        models.RecordStatusPending,
			Date:          dueDate,
			BillingPeriod: period,
			PaidTo:        member.Name,
			Description:   fmt.Sprintf("Salary for %s", period.Format("January 2006")),
		}
		created, cErr := s.expenseRepo.CreateIfAbsent(ctx, e)
		if cErr != nil {
			return nil, cErr
		}
		if created {
			resp.Created++
		} else {
			resp.Skipped++
		}
	}

	utils.Logger.Infof("Salary generation for owner %s: %d created, %d skipped (%s)",
		ownerID, resp.Created, resp.Skipped, resp.Period)
	return resp, nil
}

// GenerateRentForAllOwners walks every owner and generates the current
// month's rent records. Owners without active tenants are skipped.
func (s *FinanceService) GenerateRentForAllOwners(ctx context.Context, asOf time.Time) {
	s.forEachOwner(ctx, "rent", func(ownerID uuid.UUID) error {
		_, err := s.GenerateRent(ctx, ownerID, nil, asOf)
		return err
	})
}

// GenerateSalaryForAllOwners walks every owner and generates the current
// month's salary records. Owners without active staff are skipped.
func (s *FinanceService) GenerateSalaryForAllOwners(ctx context.Context, asOf time.Time) {
	s.forEachOwner(ctx, "salary", func(ownerID uuid.UUID) error {
		_, err := s.GenerateSalary(ctx, ownerID, nil, asOf)
		return err
	})
}

func (s *FinanceService) forEachOwner(ctx context.Context, label string, fn func(ownerID uuid.UUID) error) {
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		owners, total, err := s.ownerRepo.List(ctx, pageSize, offset)
		if err != nil {
			utils.Logger.Errorf("Scheduled %s generation: listing owners failed: %v", label, err)
			return
		}
		for _, o := range owners {
			if err := fn(o.ID); err != nil {
				if errors.Is(err, utils.ErrNoActiveTenants) || errors.Is(err, utils.ErrNoActiveStaff) {
					continue
				}
				utils.Logger.Errorf("Scheduled %s generation for owner %s failed: %v", label, o.ID, err)
			}
		}
		if offset+pageSize >= total || len(owners) == 0 {
			return
		}
	}
}
