package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrMethodNotAllowed,
		ErrTooManyRequests, ErrInternal, ErrServiceUnavail,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("catalog file unreadable")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "catalog file unreadable")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructors ---

func TestNotFound(t *testing.T) {
	err := NotFound("product", "ceramic-mug")
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, `product "ceramic-mug" not found`, err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("Invalid request")
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMethodNotAllowed(t *testing.T) {
	err := MethodNotAllowed(http.MethodGet, http.MethodPost)
	assert.Equal(t, "METHOD_NOT_ALLOWED", err.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, err.Status)
	assert.Equal(t, []string{"POST"}, err.Allow)
	assert.Contains(t, err.Message, "GET")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)
}

func TestTooManyRequests(t *testing.T) {
	err := TooManyRequests("too many requests")
	assert.Equal(t, "RATE_LIMITED", err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
}

func TestServiceUnavailable(t *testing.T) {
	err := ServiceUnavailable("storefront: circuit open")
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrServiceUnavail)
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestWrap_PreservesChain(t *testing.T) {
	err := Wrap(ErrNotFound, "lookup product 7")
	require.Error(t, err)
	assert.Equal(t, "lookup product 7: resource not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- HTTPStatus ---

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product", "1"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("handler: %w", InvalidInput("bad")), http.StatusBadRequest},
		{"sentinel not found", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel invalid", ErrInvalidInput, http.StatusBadRequest},
		{"sentinel method", ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"sentinel rate limit", ErrTooManyRequests, http.StatusTooManyRequests},
		{"sentinel unavailable", ErrServiceUnavail, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
