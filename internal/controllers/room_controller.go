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

var roomValidate = validator.New()

type RoomController struct {
	roomService *services.RoomService
}

func NewRoomController(s *services.RoomService) *RoomController {
	return &RoomController{roomService: s}
}

// POST /api/v1/rooms
func (c *RoomController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := roomValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	rm, err := c.roomService.Create(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rm)
}

// GET /api/v1/rooms
func (c *RoomController) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	f := repositories.RoomFilter{OwnerID: &ownerID}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid property_id", nil, err)
			return
		}
		f.PropertyID = &pid
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.RoomStatusType(raw)
		f.Status = &status
	}
	if raw := r.URL.Query().Get("room_type"); raw != "" {
		f.RoomType = &raw
	}

	rooms, total, err := c.roomService.List(r.Context(), f, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: rooms, Page: page, Limit: limit, Total: total,
	})
}

// GET /api/v1/rooms/{roomID}
func (c *RoomController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "roomID")
	if !ok {
		return
	}

	rm, err := c.roomService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rm)
}

// PUT /api/v1/rooms/{roomID}
func (c *RoomController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "roomID")
	if !ok {
		return
	}

	var req dtos.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := roomValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	rm, err := c.roomService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rm)
}

// DELETE /api/v1/rooms/{roomID}
func (c *RoomController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "roomID")
	if !ok {
		return
	}

	if err := c.roomService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Room deleted"})
}
