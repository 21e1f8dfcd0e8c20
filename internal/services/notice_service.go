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

type NoticeService struct {
	noticeRepo repositories.NoticeRepository
}

func NewNoticeService(noticeRepo repositories.NoticeRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo}
}

func (s *NoticeService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreateNoticeRequest) (*models.Notice, error) {
	n := &models.Notice{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		PropertyID:    req.PropertyID,
		Title:         req.Title,
		Body:          req.Body,
		Audience:      models.NoticeAudienceType(req.Audience),
		EffectiveFrom: req.EffectiveFrom,
		ExpiresAt:     req.ExpiresAt,
	}
	if err := s.noticeRepo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoticeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	n, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NoticeService) List(ctx context.Context, f repositories.NoticeFilter, page, limit int) ([]*models.Notice, int, error) {
	return s.noticeRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *NoticeService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateNoticeRequest) (*models.Notice, error) {
	n, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Body != nil {
		n.Body = *req.Body
	}
	if req.Audience != nil {
		n.Audience = models.NoticeAudienceType(*req.Audience)
	}
	if req.EffectiveFrom != nil {
		n.EffectiveFrom = *req.EffectiveFrom
	}
	if req.ExpiresAt != nil {
		n.ExpiresAt = req.ExpiresAt
	}

	if err := s.noticeRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoticeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.noticeRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
