package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/services"
	"github.com/mansionmuse/backend/internal/utils"
)

var billingValidate = validator.New()

type BillingController struct {
	planService    *services.PlanService
	billingService *services.BillingService
}

func NewBillingController(planService *services.PlanService, billingService *services.BillingService) *BillingController {
	return &BillingController{planService: planService, billingService: billingService}
}

// GET /api/v1/plans
func (c *BillingController) ListPlansHandler(w http.ResponseWriter, r *http.Request) {
	plans, err := c.planService.ListPlans(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// POST /api/v1/admin/plans
func (c *BillingController) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := billingValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	plan, err := c.planService.CreatePlan(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, plan)
}

// PUT /api/v1/admin/plans/{planID}
func (c *BillingController) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "planID")
	if !ok {
		return
	}

	var req dtos.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := billingValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	plan, err := c.planService.UpdatePlan(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, plan)
}

// DELETE /api/v1/admin/plans/{planID}
func (c *BillingController) DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "planID")
	if !ok {
		return
	}

	if err := c.planService.DeletePlan(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Plan deleted"})
}

// POST /api/v1/billing/orders
func (c *BillingController) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := billingValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	order, err := c.billingService.CreateOrder(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// POST /api/v1/billing/verify
func (c *BillingController) VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}

	var req dtos.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := billingValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return
	}

	resp, err := c.billingService.VerifyPayment(r.Context(), ownerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !resp.Verified {
		utils.RespondWithJSON(w, http.StatusBadRequest, resp)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/billing/transactions
func (c *BillingController) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromRequest(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	txns, total, err := c.billingService.ListTransactions(r.Context(), ownerID, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PaginatedResponse{
		Data: txns, Page: page, Limit: limit, Total: total,
	})
}
