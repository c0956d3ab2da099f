package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/errors"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- WriteJSON ---

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteJSON_FlatPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request"})

	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, "Invalid request", raw["message"])
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, Response{Data: "ok"})

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw, "error")

	rec = httptest.NewRecorder()
	WriteJSON(rec, http.StatusBadRequest, Response{Error: &ErrorResponse{Code: "ERR", Message: "msg"}})

	raw = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw, "data")
}

// --- SetAllow ---

func TestSetAllow_JoinsMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAllow(rec, http.MethodGet, http.MethodHead)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

// --- WriteError ---

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/42", nil)

	WriteError(rec, req, apperrors.NotFound("product", "42"), testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, `product "42" not found`, resp.Error.Message)
}

func TestWriteError_MethodNotAllowed_SetsAllowHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/products", nil)

	WriteError(rec, req, apperrors.MethodNotAllowed(http.MethodDelete, http.MethodGet), testLogger())

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, rec).Error.Code)
}

func TestWriteError_Sentinels(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", fmt.Errorf("page: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"rate limited", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", fmt.Errorf("something unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Error.Code)
		})
	}
}

func TestWriteError_UnknownError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, fmt.Errorf("open /etc/catalog.json: permission denied"), testLogger())

	resp := decode(t, rec)
	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.NotFound("product", "xyz"), testLogger())

	assert.Equal(t, "corr-123", decode(t, rec).Error.RequestID)
}

func TestWriteError_NoCorrelationID_OmitsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.NotContains(t, raw["error"], "request_id")
}
