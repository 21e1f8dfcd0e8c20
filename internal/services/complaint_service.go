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

type ComplaintService struct {
	complaintRepo repositories.ComplaintRepository
}

func NewComplaintService(complaintRepo repositories.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo}
}

func (s *ComplaintService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreateComplaintRequest) (*models.Complaint, error) {
	c := &models.Complaint{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      models.ComplaintOpen,
	}
	if err := s.complaintRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	c, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) List(ctx context.Context, f repositories.ComplaintFilter, page, limit int) ([]*models.Complaint, int, error) {
	return s.complaintRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *ComplaintService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateComplaintRequest) (*models.Complaint, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.Status != nil {
		newStatus := models.ComplaintStatusType(*req.Status)
		if newStatus == models.ComplaintResolved && c.Status != models.ComplaintResolved {
			now := time.Now()
			c.ResolvedAt = &now
		}
		c.Status = newStatus
	}

	if err := s.complaintRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.complaintRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
