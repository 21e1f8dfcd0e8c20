package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var authValidate = validator.New()

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// POST /api/v1/auth/register
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	profile, err := c.authService.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, profile)
}

// POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/auth/me
func (c *AuthController) MeHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := c.authService.GetProfile(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// PUT /api/v1/auth/me
func (c *AuthController) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	profile, err := c.authService.UpdateProfile(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// POST /api/v1/auth/change-password
func (c *AuthController) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	if err := c.authService.ChangePassword(r.Context(), ownerID, req); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Password updated"})
}
