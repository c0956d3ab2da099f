package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      5 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func newTestBreaker(name string, cfgFn func(*CircuitBreakerConfig)) *CircuitBreakerClient {
	cfg := testCBConfig(name)
	if cfgFn != nil {
		cfgFn(&cfg)
	}
	return NewCircuitBreakerClient(New(DefaultConfig(5*time.Second)), cfg, testLogger())
}

func statusServer(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func trip(t *testing.T, cb *CircuitBreakerClient, url string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, _ = cb.Do(context.Background(), newRequest(t, http.MethodGet, url, http.NoBody))
	}
}

func TestCircuitBreaker_DefaultConfig(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("storefront")
	assert.Equal(t, "storefront", cfg.Name)
	assert.Equal(t, uint32(1), cfg.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0.5, cfg.FailureRatio)
	assert.Equal(t, uint32(5), cfg.MinRequests)
}

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	server := statusServer(t, http.StatusOK, nil)
	cb := newTestBreaker("test-closed", nil)

	resp, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_ServerErrorIsTyped(t *testing.T) {
	server := statusServer(t, http.StatusBadGateway, nil)
	cb := newTestBreaker("test-typed", nil)

	_, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadGateway, srvErr.StatusCode)
	assert.Contains(t, srvErr.Body, "nope")
}

func TestCircuitBreaker_TripsAndRejects(t *testing.T) {
	var hits atomic.Int32
	server := statusServer(t, http.StatusInternalServerError, &hits)
	cb := newTestBreaker("test-trip", nil)

	trip(t, cb, server.URL)
	require.Equal(t, gobreaker.StateOpen, cb.State())
	before := hits.Load()

	for i := 0; i < 3; i++ {
		_, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
		assert.ErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the server")
}

func TestCircuitBreaker_HalfOpenToClosedRecovery(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cb := newTestBreaker("test-recovery", func(c *CircuitBreakerConfig) {
		c.Timeout = 100 * time.Millisecond
	})

	trip(t, cb, server.URL)
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)
	failing.Store(false)

	resp, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_4xxNotCountedAsFailure(t *testing.T) {
	server := statusServer(t, http.StatusBadRequest, nil)
	cb := newTestBreaker("test-4xx", nil)

	for i := 0; i < 5; i++ {
		resp, err := cb.Do(context.Background(), newRequest(t, http.MethodPost, server.URL, http.NoBody))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_CallerCancellationNotCountedAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	cb := newTestBreaker("test-cancel", nil)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()
		_, err := cb.Do(ctx, newRequest(t, http.MethodGet, server.URL, http.NoBody))
		require.Error(t, err)
		cancel()
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_WithFallback_InvokedWhenOpen(t *testing.T) {
	server := statusServer(t, http.StatusInternalServerError, nil)

	var fallbackCalled atomic.Bool
	cb := newTestBreaker("test-fallback", nil).WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		fallbackCalled.Store(true)
		return &http.Response{StatusCode: http.StatusServiceUnavailable, Body: http.NoBody}, nil
	})

	trip(t, cb, server.URL)

	resp, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
	require.NoError(t, err)
	assert.True(t, fallbackCalled.Load())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCircuitBreaker_WithFallback_NotInvokedWhenClosed(t *testing.T) {
	server := statusServer(t, http.StatusOK, nil)

	var fallbackCalled atomic.Bool
	cb := newTestBreaker("test-fallback-closed", nil).WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		fallbackCalled.Store(true)
		return nil, fmt.Errorf("fallback error")
	})

	resp, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.False(t, fallbackCalled.Load())
}

func TestCircuitBreaker_WithFallback_FallbackErrorPropagated(t *testing.T) {
	server := statusServer(t, http.StatusInternalServerError, nil)

	cb := newTestBreaker("test-fallback-err", nil).WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		return nil, fmt.Errorf("fallback failed: %w", err)
	})

	trip(t, cb, server.URL)

	_, err := cb.Do(context.Background(), newRequest(t, http.MethodGet, server.URL, http.NoBody))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback failed")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}
