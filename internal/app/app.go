package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/catalog"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/config"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/event"
	handler "github.com/Design-Arena-Gens/agentic-a37cca32/internal/handler/http"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/health"
	pkgkafka "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/kafka"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/tracing"
)

// Version is reported on traces.
const Version = "0.1.0"

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	producer       *pkgkafka.Producer
	checkout       *service.CheckoutService
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// Kafka is optional: without brokers no order events are published.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    handler.ServiceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Load the product catalog.
	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		slog.Int("products", products.Len()),
		slog.String("path", cfg.CatalogPath),
	)

	healthHandler := health.NewHandler()

	// Initialize Kafka producer. A nil publisher disables order events.
	var (
		producer *pkgkafka.Producer
		events   service.OrderEventPublisher
	)
	if cfg.KafkaEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewProducer(producer, cfg.KafkaOrdersTopic, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaOrdersTopic),
		)
	} else {
		logger.Info("kafka disabled, order events will not be published")
	}

	// Build the dependency graph.
	productService := service.NewProductService(products, logger)
	checkoutService := service.NewCheckoutService(events, logger)

	healthHandler.RegisterCritical("catalog", productService.Ready)

	// HTTP router.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	router := handler.NewRouter(bgCtx, productService, checkoutService, healthHandler, handler.RouterConfig{
		Environment:           cfg.Environment,
		CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
		PprofAllowedCIDRs:     cfg.PprofAllowedCIDRs,
		CatalogRateLimitRPS:   cfg.CatalogRateLimitRPS,
		CatalogRateLimitBurst: cfg.CatalogRateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		producer:       producer,
		checkout:       checkoutService,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
		stopBackground: stopBackground,
	}, nil
}

// Handler returns the HTTP handler serving all routes.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. In-flight checkouts and their
// order events finish before the producer closes.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.stopBackground()
	a.checkout.Wait()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
