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

type RoomService struct {
	roomRepo     repositories.RoomRepository
	propertyRepo repositories.PropertyRepository
}

func NewRoomService(roomRepo repositories.RoomRepository, propertyRepo repositories.PropertyRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo, propertyRepo: propertyRepo}
}

func (s *RoomService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreateRoomRequest) (*models.Room, error) {
	if _, err := s.propertyRepo.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	rm := &models.Room{
		ID:              uuid.New(),
		PropertyID:      req.PropertyID,
		OwnerID:         ownerID,
		RoomNumber:      req.RoomNumber,
		RoomType:        req.RoomType,
		Floor:           req.Floor,
		Capacity:        req.Capacity,
		Rent:            req.Rent,
		SecurityDeposit: req.SecurityDeposit,
		Status:          models.RoomStatusAvailable,
		Amenities:       req.Amenities,
	}
	if err := s.roomRepo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	rm, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) List(ctx context.Context, f repositories.RoomFilter, page, limit int) ([]*models.Room, int, error) {
	return s.roomRepo.List(ctx, f, limit, (page-1)*limit)
}

func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateRoomRequest) (*models.Room, error) {
	rm, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		rm.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		rm.RoomType = *req.RoomType
	}
	if req.Floor != nil {
		rm.Floor = *req.Floor
	}
	if req.Capacity != nil {
		if *req.Capacity < rm.CurrentOccupancy {
			return nil, &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    "Capacity cannot be lower than current occupancy",
			}
		}
		rm.Capacity = *req.Capacity
	}
	if req.Rent != nil {
		rm.Rent = *req.Rent
	}
	if req.SecurityDeposit != nil {
		rm.SecurityDeposit = *req.SecurityDeposit
	}
	if req.Status != nil {
		rm.Status = models.RoomStatusType(*req.Status)
	}
	if req.Amenities != nil {
		rm.Amenities = *req.Amenities
	}

	if err := s.roomRepo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	rm, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rm.CurrentOccupancy > 0 {
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Room still has tenants assigned",
		}
	}
	err = s.roomRepo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}
