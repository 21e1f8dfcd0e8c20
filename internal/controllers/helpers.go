package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/middleware"
	"github.com/mansionmuse/backend/internal/utils"
)

// ownerIDFromRequest pulls the authenticated user's ID out of the request
// context. Writes a 401 and returns false when it is missing or malformed.
func ownerIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing userID in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in context", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path variable. Writes a 400 and returns false on
// failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name+" in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service-layer sentinel errors onto HTTP responses
// and defers everything else to HandleAppError.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil)
	case errors.Is(err, utils.ErrNoActiveTenants):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No active tenants found", nil)
	case errors.Is(err, utils.ErrNoActiveStaff):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No active staff found", nil)
	case errors.Is(err, utils.ErrExternalServiceFailure):
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Upstream service failed", nil, err)
	default:
		utils.HandleAppError(w, err)
	}
}

// parsePagination reads ?page and ?limit with sane defaults and caps.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = constants.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return page, limit
}
