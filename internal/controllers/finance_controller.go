package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var financeValidate = validator.New()

type FinanceController struct {
	financeService *services.FinanceService
}

func NewFinanceController(s *services.FinanceService) *FinanceController {
	return &FinanceController{financeService: s}
}

// recordKind reads ?kind, defaulting to income. Anything that is not
// "expense" is treated as income.
func recordKind(r *http.Request) string {
	if r.URL.Query().Get("kind") == "expense" {
		return "expense"
	}
	return "income"
}

// POST /api/v1/finance/records
func (c *FinanceController) CreateRecordHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateFinanceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := financeValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	record, err := c.financeService.CreateRecord(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, record)
}

// GET /api/v1/finance/records
func (c *FinanceController) ListRecordsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	category := r.URL.Query().Get("category")
	records, total, err := c.financeService.ListRecords(r.Context(), ownerID, category, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: records, Page: page, Limit: limit, Total: total,
	})
}

// PUT /api/v1/finance/records/{recordID}?kind=income|expense
func (c *FinanceController) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "recordID")
	if !ok {
		return
	}

	var req dtos.UpdateFinanceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := financeValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	record, err := c.financeService.UpdateRecord(r.Context(), id, recordKind(r), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

// DELETE /api/v1/finance/records/{recordID}?kind=income|expense
func (c *FinanceController) DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "recordID")
	if !ok {
		return
	}

	if err := c.financeService.DeleteRecord(r.Context(), id, recordKind(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Record deleted"})
}

// GET /api/v1/finance/stats
func (c *FinanceController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := c.financeService.Stats(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// generateRequest decodes the bulk-generation body: the billing month and
// year, plus an optional property scope.
func generateRequest(w http.ResponseWriter, r *http.Request) (dtos.GenerateRecordsRequest, time.Time, bool) {
	var req dtos.GenerateRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return req, time.Time{}, false
	}
	if err := financeValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return req, time.Time{}, false
	}
	return req, time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC), true
}

// POST /api/v1/finance/generate-rent
func (c *FinanceController) GenerateRentHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	req, asOf, ok := generateRequest(w, r)
	if !ok {
		return
	}

	resp, err := c.financeService.GenerateRent(r.Context(), ownerID, req.PropertyID, asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/finance/generate-salary
func (c *FinanceController) GenerateSalaryHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	req, asOf, ok := generateRequest(w, r)
	if !ok {
		return
	}

	resp, err := c.financeService.GenerateSalary(r.Context(), ownerID, req.PropertyID, asOf)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/finance/tenants/{tenantID}/reconcile
func (c *FinanceController) ReconcileTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	if err := c.financeService.ReconcileTenantStatus(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Tenant status reconciled"})
}
