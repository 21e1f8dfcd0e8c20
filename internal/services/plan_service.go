package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/middleware"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

// PlanService manages subscription plans and answers the plan gate's access
// lookups. It satisfies middleware.PlanAccessProvider.
type PlanService struct {
	planRepo  repositories.PlanRepository
	ownerRepo repositories.OwnerRepository
}

func NewPlanService(planRepo repositories.PlanRepository, ownerRepo repositories.OwnerRepository) *PlanService {
	return &PlanService{planRepo: planRepo, ownerRepo: ownerRepo}
}

func (s *PlanService) CreatePlan(ctx context.Context, req dtos.CreatePlanRequest) (*models.Plan, error) {
	existing, err := s.planRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "A plan with this name already exists",
		}
	}

	plan := &models.Plan{
		ID:             uuid.New(),
		Name:           req.Name,
		PriceMonthly:   req.PriceMonthly,
		AllowedModules: req.AllowedModules,
		MaxProperties:  req.MaxProperties,
		IsActive:       true,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	return s.planRepo.ListAll(ctx)
}

func (s *PlanService) UpdatePlan(ctx context.Context, id uuid.UUID, req dtos.UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if req.PriceMonthly != nil {
		plan.PriceMonthly = *req.PriceMonthly
	}
	if req.AllowedModules != nil {
		plan.AllowedModules = *req.AllowedModules
	}
	if req.MaxProperties != nil {
		plan.MaxProperties = *req.MaxProperties
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	err := s.planRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// PlanAccessForOwner resolves the owner's current plan into the gate's view
// of it. An owner with no plan assigned is treated as inactive.
func (s *PlanService) PlanAccessForOwner(ctx context.Context, ownerID string) (middleware.PlanAccess, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return middleware.PlanAccess{}, err
	}

	owner, err := s.ownerRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.PlanAccess{}, nil
		}
		return middleware.PlanAccess{}, err
	}
	if owner.PlanID == nil || owner.PlanActiveAt == nil {
		return middleware.PlanAccess{}, nil
	}

	plan, err := s.planRepo.GetByID(ctx, *owner.PlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.PlanAccess{}, nil
		}
		return middleware.PlanAccess{}, err
	}

	return middleware.PlanAccess{
		Active:  plan.IsActive && owner.IsActive,
		Modules: plan.AllowedModules,
	}, nil
}
