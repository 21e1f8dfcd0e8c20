package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/cors"
	"github.com/stretchr/testify/require"

	"github.com/mansionmuse/backend/internal/config"
)

func preflight(t *testing.T, cfg *config.Config, method string) *httptest.ResponseRecorder {
	t.Helper()
	handler := cors.New(corsOptions(cfg)).Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tenants/abc/payment-status", nil)
	req.Header.Set("Origin", "https://app.mansionmuse.app")
	req.Header.Set("Access-Control-Request-Method", method)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSPreflightAllowsPatch(t *testing.T) {
	rec := preflight(t, &config.Config{}, http.MethodPatch)
	allowed := rec.Header().Get("Access-Control-Allow-Methods")
	require.True(t, strings.Contains(allowed, http.MethodPatch), "Allow-Methods was %q", allowed)
}

func TestCORSPreflightAllowsPatchInHighSecurityMode(t *testing.T) {
	rec := preflight(t, &config.Config{LDFlag_CORSHighSecurity: true}, http.MethodPatch)
	allowed := rec.Header().Get("Access-Control-Allow-Methods")
	require.True(t, strings.Contains(allowed, http.MethodPatch), "Allow-Methods was %q", allowed)
	require.Equal(t, "https://app.mansionmuse.app", rec.Header().Get("Access-Control-Allow-Origin"))
}
