package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/health"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/middleware"
)

// ServiceName labels metrics and spans emitted by the router.
const ServiceName = "storefront"

// catalogMaxAge is the Cache-Control max-age for catalog responses, in seconds.
const catalogMaxAge = 60

// RouterConfig carries the settings the router needs from the service config.
type RouterConfig struct {
	Environment           string
	CORSAllowedOrigins    []string
	PprofAllowedCIDRs     []string
	CatalogRateLimitRPS   float64
	CatalogRateLimitBurst int
}

// NewRouter creates a chi router with all storefront routes registered. ctx
// bounds the rate limiter's background cleanup.
func NewRouter(
	ctx context.Context,
	productService *service.ProductService,
	checkoutService *service.CheckoutService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Catalog API endpoints
	productHandler := NewProductHandler(productService, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	r.Route("/api/products", func(r chi.Router) {
		r.Use(middleware.CORS(corsCfg))
		r.Use(middleware.RateLimit(ctx, cfg.CatalogRateLimitRPS, cfg.CatalogRateLimitBurst, logger))
		r.Use(middleware.CacheControl(catalogMaxAge))

		r.Get("/", productHandler.ListProducts)
		r.Get("/{ref}", productHandler.GetProduct)
	})

	// Checkout answers every method itself so non-POST requests get the
	// checkout 405 body instead of chi's.
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	r.With(middleware.NoStore).HandleFunc("/api/checkout", checkoutHandler.Checkout)

	return r
}
