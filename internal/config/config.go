package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"3000"`

	// Catalog. Empty means the embedded product list.
	CatalogPath string `env:"CATALOG_PATH"`

	// Kafka. No brokers means order events are not published.
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrdersTopic string   `env:"KAFKA_TOPIC_ORDERS" envDefault:"storefront.order.placed"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	PprofAllowedCIDRs  []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Per-IP limits on the catalog endpoints.
	CatalogRateLimitRPS   float64 `env:"CATALOG_RATE_LIMIT_RPS" envDefault:"20"`
	CatalogRateLimitBurst int     `env:"CATALOG_RATE_LIMIT_BURST" envDefault:"40"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// KafkaEnabled reports whether order events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	if c.CatalogRateLimitRPS <= 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT_RPS must be positive, got %v", c.CatalogRateLimitRPS)
	}
	if c.CatalogRateLimitBurst < 1 {
		return fmt.Errorf("CATALOG_RATE_LIMIT_BURST must be at least 1, got %d", c.CatalogRateLimitBurst)
	}
	if c.KafkaEnabled() && c.KafkaOrdersTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC_ORDERS is required when KAFKA_BROKERS is set")
	}
	return nil
}

// ShopConfig holds configuration for the terminal shop client. Variables are
// read with the SHOP_ prefix.
type ShopConfig struct {
	APIURL         string        `env:"API_URL" envDefault:"http://localhost:3000"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"warn"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// LoadShop reads the shop client configuration from SHOP_* variables.
func LoadShop() (*ShopConfig, error) {
	cfg := &ShopConfig{}
	if err := pkgconfig.LoadWithPrefix(cfg, "SHOP_"); err != nil {
		return nil, fmt.Errorf("load shop config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("SHOP_API_URL is required")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("SHOP_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}
