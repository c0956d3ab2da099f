package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/catalog"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/health"
)

// =============================================================================
// Test helpers
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testProductService(t *testing.T) *service.ProductService {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return service.NewProductService(c, testLogger())
}

func testCheckoutService() *service.CheckoutService {
	return service.NewCheckoutService(nil, testLogger(),
		service.WithSleeper(func(time.Duration) {}),
		service.WithOrderIDGenerator(func() string { return "ab12cd34" }),
	)
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return NewRouter(ctx,
		testProductService(t),
		testCheckoutService(),
		health.NewHandler(),
		RouterConfig{
			Environment:           "test",
			CORSAllowedOrigins:    []string{"https://shop.example"},
			CatalogRateLimitRPS:   1000,
			CatalogRateLimitBurst: 1000,
		},
		testLogger(),
	)
}
