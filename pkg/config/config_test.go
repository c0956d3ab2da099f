package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int      `env:"TEST_CFG_PORT" envDefault:"3000"`
	LogLevel string   `env:"TEST_CFG_LOG_LEVEL" envDefault:"info"`
	Brokers  []string `env:"TEST_CFG_BROKERS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_LOG_LEVEL", "debug")
	t.Setenv("TEST_CFG_BROKERS", "kafka-1:9092,kafka-2:9092")

	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type requiredConfig struct {
	Endpoint string `env:"TEST_CFG_ENDPOINT,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type prefixedConfig struct {
	APIURL  string        `env:"API_URL" envDefault:"http://localhost:3000"`
	Timeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Setenv("API_URL", "http://ignored:1")

	var cfg prefixedConfig
	err := LoadWithPrefix(&cfg, "TESTSHOP_")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadWithPrefix_ReadsPrefixedVars(t *testing.T) {
	t.Setenv("TESTSHOP_API_URL", "http://shop.internal:8080")
	t.Setenv("TESTSHOP_REQUEST_TIMEOUT", "2s")

	var cfg prefixedConfig
	err := LoadWithPrefix(&cfg, "TESTSHOP_")

	require.NoError(t, err)
	assert.Equal(t, "http://shop.internal:8080", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadWithPrefix_InvalidDuration(t *testing.T) {
	t.Setenv("TESTSHOP_REQUEST_TIMEOUT", "soon")

	var cfg prefixedConfig
	err := LoadWithPrefix(&cfg, "TESTSHOP_")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse TESTSHOP_ config")
}
