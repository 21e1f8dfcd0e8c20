package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	ownerRepo    repositories.OwnerRepository
	planRepo     repositories.PlanRepository
	roomRepo     repositories.RoomRepository
	tenantRepo   repositories.TenantRepository
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	ownerRepo repositories.OwnerRepository,
	planRepo repositories.PlanRepository,
	roomRepo repositories.RoomRepository,
	tenantRepo repositories.TenantRepository,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		ownerRepo:    ownerRepo,
		planRepo:     planRepo,
		roomRepo:     roomRepo,
		tenantRepo:   tenantRepo,
	}
}

func (s *PropertyService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreatePropertyRequest) (*models.Property, error) {
	if err := s.checkPropertyLimit(ctx, ownerID); err != nil {
		return nil, err
	}

	p := &models.Property{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Amenities: req.Amenities,
		IsActive:  true,
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// checkPropertyLimit enforces the plan's max_properties cap. Owners without
// a plan are handled upstream by the plan gate; a missing plan here just
// means no cap to enforce.
func (s *PropertyService) checkPropertyLimit(ctx context.Context, ownerID uuid.UUID) error {
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil || owner.PlanID == nil {
		return nil
	}
	plan, err := s.planRepo.GetByID(ctx, *owner.PlanID)
	if err != nil {
		return nil
	}

	count, err := s.propertyRepo.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}
	if count >= plan.MaxProperties {
		return &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodePlanUpgradeRequired,
			Message:    "Property limit reached for your plan",
		}
	}
	return nil
}

func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) List(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*models.Property, int, error) {
	return s.propertyRepo.ListByOwnerID(ctx, ownerID, limit, (page-1)*limit)
}

func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Pincode != nil {
		p.Pincode = *req.Pincode
	}
	if req.Amenities != nil {
		p.Amenities = *req.Amenities
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Stats summarizes occupancy for one property's dashboard card.
func (s *PropertyService) Stats(ctx context.Context, id uuid.UUID) (*dtos.PropertyStatsResponse, error) {
	property, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms, _, err := s.roomRepo.List(ctx, repositories.RoomFilter{PropertyID: &property.ID}, 1000, 0)
	if err != nil {
		return nil, err
	}

	stats := &dtos.PropertyStatsResponse{PropertyID: property.ID}
	for _, rm := range rooms {
		stats.TotalRooms++
		stats.TotalBeds += rm.Capacity
		stats.OccupiedBeds += rm.CurrentOccupancy
		if rm.Status == models.RoomStatusAvailable {
			stats.AvailableRooms++
		}
	}

	active, err := s.tenantRepo.ListByStatus(ctx, repositories.TenantFilter{PropertyID: &property.ID}, models.TenantStatusActive)
	if err != nil {
		return nil, err
	}
	stats.ActiveTenants = len(active)

	return stats, nil
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.propertyRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
