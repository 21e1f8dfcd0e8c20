package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/config"
	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/middleware"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

type AuthService struct {
	cfg       *config.Config
	ownerRepo repositories.OwnerRepository
	email     *EmailService
}

func NewAuthService(cfg *config.Config, ownerRepo repositories.OwnerRepository, email *EmailService) *AuthService {
	return &AuthService{cfg: cfg, ownerRepo: ownerRepo, email: email}
}

func (s *AuthService) Register(ctx context.Context, req dtos.RegisterOwnerRequest) (*dtos.OwnerProfile, error) {
	existing, err := s.ownerRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "An account with this email already exists",
			Err:        utils.ErrEmailExists,
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	owner := &models.Owner{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.RoleOwner,
		PGName:       req.PGName,
		IsActive:     true,
	}
	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}

	s.email.SendOwnerWelcome(owner)

	profile := dtos.NewOwnerProfileFromModel(owner)
	return &profile, nil
}

func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	owner, err := s.ownerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !owner.IsActive {
		return nil, invalidCredentials()
	}
	if !utils.CheckPasswordHash(req.Password, owner.PasswordHash) {
		return nil, invalidCredentials()
	}

	token, err := middleware.GenerateAccessToken(
		s.cfg.RSAPrivateKey, owner.ID.String(), string(owner.Role), s.cfg.AccessTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	return &dtos.LoginResponse{
		AccessToken: token,
		Owner:       dtos.NewOwnerProfileFromModel(owner),
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*dtos.OwnerProfile, error) {
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	profile := dtos.NewOwnerProfileFromModel(owner)
	return &profile, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req dtos.UpdateProfileRequest) (*dtos.OwnerProfile, error) {
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		owner.Name = *req.Name
	}
	if req.Phone != nil {
		owner.Phone = *req.Phone
	}
	if req.PGName != nil {
		owner.PGName = *req.PGName
	}

	if err := s.ownerRepo.Update(ctx, owner); err != nil {
		return nil, err
	}
	profile := dtos.NewOwnerProfileFromModel(owner)
	return &profile, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, ownerID uuid.UUID, req dtos.ChangePasswordRequest) error {
	owner, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, owner.PasswordHash) {
		return invalidCredentials()
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	owner.PasswordHash = hash
	return s.ownerRepo.Update(ctx, owner)
}

func invalidCredentials() error {
	return &utils.AppError{
		StatusCode: http.StatusUnauthorized,
		Code:       utils.ErrCodeInvalidCredentials,
		Message:    "Invalid email or password",
		Err:        utils.ErrInvalidCredentials,
	}
}
