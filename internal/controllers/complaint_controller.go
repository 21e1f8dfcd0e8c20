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

var complaintValidate = validator.New()

type ComplaintController struct {
	complaintService *services.ComplaintService
}

func NewComplaintController(s *services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: s}
}

// POST /api/v1/complaints
func (c *ComplaintController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := complaintValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	complaint, err := c.complaintService.Create(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, complaint)
}

// GET /api/v1/complaints
func (c *ComplaintController) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	f := repositories.ComplaintFilter{OwnerID: &ownerID}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property_id", nil, err)
			return
		}
		f.PropertyID = &pid
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.ComplaintStatusType(raw)
		f.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		f.Priority = &raw
	}

	complaints, total, err := c.complaintService.List(r.Context(), f, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: complaints, Page: page, Limit: limit, Total: total,
	})
}

// PUT /api/v1/complaints/{complaintID}
func (c *ComplaintController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "complaintID")
	if !ok {
		return
	}

	var req dtos.UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := complaintValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	complaint, err := c.complaintService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, complaint)
}

// DELETE /api/v1/complaints/{complaintID}
func (c *ComplaintController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "complaintID")
	if !ok {
		return
	}

	if err := c.complaintService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Complaint deleted"})
}
