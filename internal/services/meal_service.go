package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

// MealService owns the catering catalog and each property's weekly menu.
type MealService struct {
	mealRepo     repositories.MealRepository
	menuRepo     repositories.MenuRepository
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	email        *EmailService
}

func NewMealService(
	mealRepo repositories.MealRepository,
	menuRepo repositories.MenuRepository,
	tenantRepo repositories.TenantRepository,
	propertyRepo repositories.PropertyRepository,
	email *EmailService,
) *MealService {
	return &MealService{
		mealRepo:     mealRepo,
		menuRepo:     menuRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		email:        email,
	}
}

// StartOfWeek returns the Monday of t's week at midnight UTC. Menus are
// keyed by this value.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *MealService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreateMealRequest) (*models.Meal, error) {
	m := &models.Meal{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Slot:        models.MealSlotType(req.Slot),
		Diet:        models.DietType(req.Diet),
		Cuisine:     req.Cuisine,
		MaxServings: req.MaxServings,
		Features:    req.Features,
		IsActive:    true,
		Description: req.Description,
	}
	if err := s.mealRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) GetByID(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	m, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MealService) List(ctx context.Context, f repositories.MealFilter, page, limit int) ([]*models.Meal, int, error) {
	return s.mealRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *MealService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateMealRequest) (*models.Meal, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Slot != nil {
		m.Slot = models.MealSlotType(*req.Slot)
	}
	if req.Diet != nil {
		m.Diet = models.DietType(*req.Diet)
	}
	if req.Cuisine != nil {
		m.Cuisine = *req.Cuisine
	}
	if req.MaxServings != nil {
		m.MaxServings = req.MaxServings
	}
	if req.Subscribers != nil {
		m.Subscribers = *req.Subscribers
	}
	if req.Features != nil {
		m.Features = *req.Features
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if req.Description != nil {
		m.Description = *req.Description
	}

	if err := s.mealRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MealService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.mealRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// Stats summarizes the catalog for the dashboard tiles.
func (s *MealService) Stats(ctx context.Context, ownerID uuid.UUID) (*dtos.MealStatsResponse, error) {
	meals, _, err := s.mealRepo.List(ctx, repositories.MealFilter{OwnerID: &ownerID}, 1000, 0)
	if err != nil {
		return nil, err
	}

	var stats dtos.MealStatsResponse
	for _, m := range meals {
		stats.Total++
		if m.Available() {
			stats.Available++
		}
		switch m.Diet {
		case models.DietVegetarian:
			stats.Vegetarian++
		case models.DietNonVegetarian:
			stats.NonVegetarian++
		}
	}
	return &stats, nil
}

// GetMenu returns the property's menu for the week containing date. A week
// with no menu yet is not an error: the response carries a nil menu and the
// resolved week start.
func (s *MealService) GetMenu(ctx context.Context, ownerID, propertyID uuid.UUID, date time.Time) (*dtos.MenuResponse, error) {
	weekStart := StartOfWeek(date)
	menu, err := s.menuRepo.GetForWeek(ctx, ownerID, propertyID, weekStart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &dtos.MenuResponse{WeekStart: weekStart}, nil
		}
		return nil, err
	}
	return &dtos.MenuResponse{WeekStart: weekStart, Menu: menu}, nil
}

// UpsertMenu replaces the property's menu for the requested week and mails
// the new schedule to the property's active tenants, best effort.
func (s *MealService) UpsertMenu(ctx context.Context, ownerID uuid.UUID, req dtos.UpsertMenuRequest) (*models.Menu, error) {
	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, utils.ErrNotFound
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	menu := &models.Menu{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		PropertyID: req.PropertyID,
		WeekStart:  StartOfWeek(date),
		Weekly:     req.Weekly,
	}
	if err := s.menuRepo.Upsert(ctx, menu); err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.ListByStatus(ctx,
		repositories.TenantFilter{OwnerID: &ownerID, PropertyID: &req.PropertyID}, models.TenantStatusActive)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to list tenants for menu notification, property %s", req.PropertyID)
	} else {
		for _, tenant := range tenants {
			s.email.SendMenuUpdated(tenant, property.Name, menu.WeekStart)
		}
	}

	return menu, nil
}
