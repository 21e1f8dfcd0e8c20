package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

// TenantService handles tenant onboarding, lifecycle and departure. It leans
// on the finance service for the records created at move-in and for status
// reconciliation.
type TenantService struct {
	tenantRepo   repositories.TenantRepository
	roomRepo     repositories.RoomRepository
	propertyRepo repositories.PropertyRepository
	paymentRepo  repositories.PaymentRepository
	finance      *FinanceService
	email        *EmailService
}

func NewTenantService(
	tenantRepo repositories.TenantRepository,
	roomRepo repositories.RoomRepository,
	propertyRepo repositories.PropertyRepository,
	paymentRepo repositories.PaymentRepository,
	finance *FinanceService,
	email *EmailService,
) *TenantService {
	return &TenantService{
		tenantRepo:   tenantRepo,
		roomRepo:     roomRepo,
		propertyRepo: propertyRepo,
		paymentRepo:  paymentRepo,
		finance:      finance,
		email:        email,
	}
}

// Onboard creates the tenant, bumps room occupancy, and opens the joining
// month's rent record plus a deposit record when a deposit is owed. The
// tenant's derived statuses are reconciled once the records exist.
func (s *TenantService) Onboard(ctx context.Context, ownerID uuid.UUID, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if room.CurrentOccupancy >= room.Capacity {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Room is already at full capacity",
		}
	}
	if room.Status == models.RoomStatusMaintenance {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Room is under maintenance",
		}
	}

	depositStatus := models.DepositPending
	if req.SecurityDeposit == 0 {
		// Nothing owed, nothing pending.
		depositStatus = models.DepositPaid
	}

	tenant := &models.Tenant{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		PropertyID:      req.PropertyID,
		RoomID:          req.RoomID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Occupation:      req.Occupation,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		JoiningDate:     req.JoiningDate,
		Status:          models.TenantStatusActive,
		PaymentStatus:   models.TenantPaymentPending,
		DepositStatus:   depositStatus,
		Notes:           req.Notes,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	if err := s.roomRepo.AdjustOccupancy(ctx, room.ID, +1); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to bump occupancy for room %s", room.ID)
	}

	s.createMoveInRecords(ctx, tenant)

	if err := s.finance.ReconcileTenantStatus(ctx, tenant.ID); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to reconcile tenant %s after onboarding", tenant.ID)
	}

	pgName := ""
	if prop, pErr := s.propertyRepo.GetByID(ctx, tenant.PropertyID); pErr == nil {
		pgName = prop.Name
	}
	s.email.SendTenantWelcome(tenant, pgName)

	return s.getFresh(ctx, tenant.ID)
}

// createMoveInRecords opens the joining month's rent and, when owed, the
// security deposit record. Both are pending and idempotent per billing
// period.
func (s *TenantService) createMoveInRecords(ctx context.Context, tenant *models.Tenant) {
	period := models.PeriodOf(tenant.JoiningDate)

	rent := &models.Payment{
		ID:            uuid.New(),
		OwnerID:       tenant.OwnerID,
		PropertyID:    tenant.PropertyID,
		TenantID:      tenant.ID,
		Category:      models.CategoryRent,
		Amount:        tenant.RentAmount,
		Status:        models.RecordStatusPending,
		DueDate:       tenant.JoiningDate,
		BillingPeriod: period,
		Description:   fmt.Sprintf("Rent for %s", period.Format("January 2006")),
	}
	if _, err := s.paymentRepo.CreateIfAbsent(ctx, rent); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to create move-in rent record for tenant %s", tenant.ID)
	}

	if tenant.SecurityDeposit > 0 {
		deposit := &models.Payment{
			ID:            uuid.New(),
			OwnerID:       tenant.OwnerID,
			PropertyID:    tenant.PropertyID,
			TenantID:      tenant.ID,
			Category:      models.CategorySecurityDeposit,
			Amount:        tenant.SecurityDeposit,
			Status:        models.RecordStatusPending,
			DueDate:       tenant.JoiningDate,
			BillingPeriod: period,
			Description:   "Security deposit",
		}
		if _, err := s.paymentRepo.CreateIfAbsent(ctx, deposit); err != nil {
			utils.Logger.WithError(err).Errorf("Failed to create deposit record for tenant %s", tenant.ID)
		}
	}
}

// GetDetail reconciles first so the returned statuses reflect the records
// being shown next to them.
func (s *TenantService) GetDetail(ctx context.Context, id uuid.UUID) (*dtos.TenantDetailResponse, error) {
	if err := s.finance.ReconcileTenantStatus(ctx, id); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to reconcile tenant %s on detail view", id)
	}

	tenant, err := s.getFresh(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.paymentRepo.ListByTenantAndCategories(ctx, id, []models.PaymentCategoryType{
		models.CategoryRent, models.CategorySecurityDeposit, models.CategoryUtility, models.CategoryOtherIncome,
	})
	if err != nil {
		return nil, err
	}

	return &dtos.TenantDetailResponse{Tenant: tenant, Records: records}, nil
}

func (s *TenantService) List(ctx context.Context, f repositories.TenantFilter, page, limit int) ([]*models.Tenant, int, error) {
	return s.tenantRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.getFresh(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Gender != nil {
		tenant.Gender = *req.Gender
	}
	if req.Occupation != nil {
		tenant.Occupation = *req.Occupation
	}
	if req.RentAmount != nil {
		tenant.RentAmount = *req.RentAmount
	}
	if req.SecurityDeposit != nil {
		tenant.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Status != nil {
		tenant.Status = models.TenantStatusType(*req.Status)
	}
	if req.LeavingDate != nil {
		tenant.LeavingDate = req.LeavingDate
	}
	if req.Notes != nil {
		tenant.Notes = *req.Notes
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	// A deposit amount change can flip the derived labels.
	if req.SecurityDeposit != nil {
		if rErr := s.finance.ReconcileTenantStatus(ctx, id); rErr != nil {
			utils.Logger.WithError(rErr).Errorf("Failed to reconcile tenant %s after update", id)
		}
	}

	return s.getFresh(ctx, id)
}

// OverridePaymentStatus forces the derived payment label. The write goes
// through the same version guard as the reconciler, so a concurrent
// reconcile cannot silently undo the override mid-flight; the next record
// change re-derives as usual.
func (s *TenantService) OverridePaymentStatus(ctx context.Context, id uuid.UUID, status models.TenantPaymentStatusType) (*models.Tenant, error) {
	if _, err := s.getFresh(ctx, id); err != nil {
		return nil, err
	}

	err := repositories.WithRetry(
		ctx,
		3,
		id.String(),
		func(ctx context.Context, rawID string) (*models.Tenant, error) {
			uid, pErr := uuid.Parse(rawID)
			if pErr != nil {
				return nil, pErr
			}
			return s.tenantRepo.GetByID(ctx, uid)
		},
		s.tenantRepo.UpdateStatusIfVersion,
		func(cur *models.Tenant) error {
			cur.PaymentStatus = status
			return nil
		},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.getFresh(ctx, id)
}

// Depart removes the tenant, frees up the room slot and sends the checkout
// mail. Finance records are kept for the owner's books.
func (s *TenantService) Depart(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.getFresh(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.roomRepo.AdjustOccupancy(ctx, tenant.RoomID, -1); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to release occupancy for room %s", tenant.RoomID)
	}

	pgName := ""
	if prop, pErr := s.propertyRepo.GetByID(ctx, tenant.PropertyID); pErr == nil {
		pgName = prop.Name
	}
	s.email.SendTenantDeparture(tenant, pgName)
	return nil
}

func (s *TenantService) getFresh(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}
