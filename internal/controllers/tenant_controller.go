package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var tenantValidate = validator.New()

type TenantController struct {
	tenantService *services.TenantService
}

func NewTenantController(s *services.TenantService) *TenantController {
	return &TenantController{tenantService: s}
}

// POST /api/v1/tenants
func (c *TenantController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := tenantValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	tenant, err := c.tenantService.Onboard(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// GET /api/v1/tenants
func (c *TenantController) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	f := repositories.TenantFilter{OwnerID: &ownerID}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property_id", nil, err)
			return
		}
		f.PropertyID = &pid
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.TenantStatusType(raw)
		f.Status = &status
	}
	if raw := r.URL.Query().Get("payment_status"); raw != "" {
		ps := models.TenantPaymentStatusType(raw)
		f.PaymentStatus = &ps
	}
	if raw := r.URL.Query().Get("search"); raw != "" {
		f.Search = &raw
	}

	tenants, total, err := c.tenantService.List(r.Context(), f, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: tenants, Page: page, Limit: limit, Total: total,
	})
}

// GET /api/v1/tenants/{tenantID}
func (c *TenantController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	detail, err := c.tenantService.GetDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// PUT /api/v1/tenants/{tenantID}
func (c *TenantController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	var req dtos.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := tenantValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	tenant, err := c.tenantService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// PATCH /api/v1/tenants/{tenantID}/payment-status
func (c *TenantController) OverridePaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	var req dtos.OverridePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := tenantValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	tenant, err := c.tenantService.OverridePaymentStatus(r.Context(), id, models.TenantPaymentStatusType(req.PaymentStatus))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// DELETE /api/v1/tenants/{tenantID}
func (c *TenantController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	if err := c.tenantService.Depart(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Tenant checked out"})
}
