package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var mealValidate = validator.New()

type MealController struct {
	mealService *services.MealService
}

func NewMealController(s *services.MealService) *MealController {
	return &MealController{mealService: s}
}

// POST /api/v1/meals
func (c *MealController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := mealValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	meal, err := c.mealService.Create(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, meal)
}

// GET /api/v1/meals
func (c *MealController) ListHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	f := repositories.MealFilter{OwnerID: &ownerID}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		if pid, err := uuid.Parse(raw); err == nil {
			f.PropertyID = &pid
		}
	}
	if raw := r.URL.Query().Get("diet"); raw != "" {
		diet := models.DietType(raw)
		f.Diet = &diet
	}
	if r.URL.Query().Get("active") == "true" {
		f.ActiveOnly = true
	}
	if raw := r.URL.Query().Get("search"); raw != "" {
		f.Search = &raw
	}

	meals, total, err := c.mealService.List(r.Context(), f, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: meals, Page: page, Limit: limit, Total: total,
	})
}

// GET /api/v1/meals/stats
func (c *MealController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := c.mealService.Stats(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GET /api/v1/meals/{mealID}
func (c *MealController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "mealID")
	if !ok {
		return
	}

	meal, err := c.mealService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, meal)
}

// PUT /api/v1/meals/{mealID}
func (c *MealController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "mealID")
	if !ok {
		return
	}

	var req dtos.UpdateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := mealValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	meal, err := c.mealService.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, meal)
}

// DELETE /api/v1/meals/{mealID}
func (c *MealController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "mealID")
	if !ok {
		return
	}

	if err := c.mealService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Meal deleted"})
}

// GET /api/v1/menu?property_id=...&date=...
func (c *MealController) GetMenuHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(r.URL.Query().Get("property_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "property_id is required", nil, err)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, pErr := time.Parse("2006-01-02", raw)
		if pErr != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "date must be YYYY-MM-DD", nil, pErr)
			return
		}
		date = parsed
	}

	resp, err := c.mealService.GetMenu(r.Context(), ownerID, propertyID, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/menu
func (c *MealController) UpsertMenuHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.UpsertMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := mealValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	menu, err := c.mealService.UpsertMenu(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, menu)
}
