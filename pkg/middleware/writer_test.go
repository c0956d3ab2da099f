package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecorder struct {
	*httptest.ResponseRecorder
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestStatusRecorder(t *testing.T) {
	t.Run("defaults to 200 on implicit write", func(t *testing.T) {
		rec := newStatusRecorder(httptest.NewRecorder())
		n, err := rec.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, rec.statusCode)
		assert.Equal(t, 5, rec.bytes)
	})

	t.Run("keeps the first status", func(t *testing.T) {
		rec := newStatusRecorder(httptest.NewRecorder())
		rec.WriteHeader(http.StatusMethodNotAllowed)
		rec.WriteHeader(http.StatusOK)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.statusCode)
	})

	t.Run("flush delegates", func(t *testing.T) {
		under := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
		rec := newStatusRecorder(under)
		rec.Flush()
		assert.True(t, under.flushed)
	})

	t.Run("unwrap returns underlying writer", func(t *testing.T) {
		under := httptest.NewRecorder()
		assert.Same(t, under, newStatusRecorder(under).Unwrap())
	})
}

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSONError(rr, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "RATE_LIMITED", body["error"]["code"])
	assert.Equal(t, "too many requests", body["error"]["message"])
}
