package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

type StaffService struct {
	staffRepo repositories.StaffRepository
}

func NewStaffService(staffRepo repositories.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

func (s *StaffService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreateStaffRequest) (*models.Staff, error) {
	member := &models.Staff{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		IsActive:    true,
	}
	if err := s.staffRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *StaffService) List(ctx context.Context, f repositories.StaffFilter, page, limit int) ([]*models.Staff, int, error) {
	return s.staffRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateStaffRequest) (*models.Staff, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.Salary != nil {
		member.Salary = *req.Salary
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.staffRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
