package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var noticeValidate = validator.New()

type NoticeController struct {
	noticeService *services.NoticeService
}

func NewNoticeController(s *services.NoticeService) *NoticeController {
	return &NoticeController{noticeService: s}
}

// POST /api/v1/notices
func (c *NoticeController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := noticeValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	notice, err := c.noticeService.Create(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, notice)
}

// GET /api/v1/notices
func (c *NoticeController) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	f := repositories.NoticeFilter{OwnerID: &ownerID}
	if raw := r.URL.Query().Get("audience"); raw != "" {
		audience := models.NoticeAudienceType(raw)
		f.Audience = &audience
	}
	if r.URL.Query().Get("active") == "true" {
		f.ActiveOnly = true
	}

	notices, total, err := c.noticeService.List(r.Context(), f, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: notices, Page: page, Limit: limit, Total: total,
	})
}

// PUT /api/v1/notices/{noticeID}
func (c *NoticeController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "noticeID")
	if !ok {
		return
	}

	var req dtos.UpdateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := noticeValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	notice, err := c.noticeService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notice)
}

// DELETE /api/v1/notices/{noticeID}
func (c *NoticeController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "noticeID")
	if !ok {
		return
	}

	if err := c.noticeService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Notice deleted"})
}
