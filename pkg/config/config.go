package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// Upstream swap network (relayer)
	RelayerBaseURL   string
	RelayerWSURL     string
	RelayerAuthToken string
	RelayerTimeout   time.Duration
	SourceTag        string

	// Authorization handshake
	PrepareTTL        time.Duration
	TimestampMaxAge   time.Duration
	TimestampMaxSkew  time.Duration
	DefaultTokenLabel string

	// Prepared-order store
	StoreMode     string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Completion monitor
	MonitorEnabled      bool
	MonitorPollInterval time.Duration
	MonitorEventsEnable bool

	// Storage
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Relayer defaults
		RelayerBaseURL:   getEnvOrDefault("RELAYER_BASE_URL", "https://api.1inch.dev/fusion-plus"),
		RelayerWSURL:     getEnvOrDefault("RELAYER_WS_URL", ""),
		RelayerAuthToken: os.Getenv("RELAYER_AUTH_TOKEN"),
		RelayerTimeout:   getDurationOrDefault("RELAYER_TIMEOUT", 30*time.Second),
		SourceTag:        getEnvOrDefault("SOURCE_TAG", "fusion-gateway"),

		// Handshake defaults
		PrepareTTL:        getDurationOrDefault("PREPARE_TTL", 15*time.Minute),
		TimestampMaxAge:   getDurationOrDefault("TIMESTAMP_MAX_AGE", 10*time.Minute),
		TimestampMaxSkew:  getDurationOrDefault("TIMESTAMP_MAX_SKEW", 1*time.Minute),
		DefaultTokenLabel: getEnvOrDefault("DEFAULT_TOKEN_SYMBOL", "USDC"),

		// Store defaults
		StoreMode:     getEnvOrDefault("STORE_MODE", "memory"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getIntOrDefault("REDIS_DB", 0),

		// Monitor defaults
		MonitorEnabled:      getBoolOrDefault("MONITOR_ENABLED", true),
		MonitorPollInterval: getDurationOrDefault("MONITOR_POLL_INTERVAL", 1*time.Second),
		MonitorEventsEnable: getBoolOrDefault("MONITOR_EVENTS_ENABLED", false),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "fusion"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "fusion123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "fusion_gateway"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.RelayerBaseURL == "" {
		return fmt.Errorf("RELAYER_BASE_URL cannot be empty")
	}

	if c.StoreMode != "memory" && c.StoreMode != "redis" {
		return fmt.Errorf("STORE_MODE must be 'memory' or 'redis', got %q", c.StoreMode)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'console', got %q", c.StorageMode)
	}

	if c.PrepareTTL <= 0 {
		return fmt.Errorf("PREPARE_TTL must be positive, got %s", c.PrepareTTL)
	}

	if c.TimestampMaxAge <= 0 || c.TimestampMaxAge > c.PrepareTTL {
		return fmt.Errorf("TIMESTAMP_MAX_AGE must be positive and no larger than PREPARE_TTL, got %s", c.TimestampMaxAge)
	}

	if c.MonitorPollInterval <= 0 {
		return fmt.Errorf("MONITOR_POLL_INTERVAL must be positive, got %s", c.MonitorPollInterval)
	}

	if c.MonitorEventsEnable && c.RelayerWSURL == "" {
		return fmt.Errorf("MONITOR_EVENTS_ENABLED requires RELAYER_WS_URL")
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
