package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"oneof=dev staging prod test"`
	ServiceName string `validate:"required"`
	Version     string `validate:"required"`
	APIKey      string // optional; when set, /api routes require X-API-Key

	// Simulation limits
	SimWorkers     int           `validate:"min=0"` // 0 = one per CPU
	SweepCacheSize int           `validate:"min=1"`
	SweepCacheTTL  time.Duration `validate:"min=1s"`
	MaxPlayers     int           `validate:"min=1"`
	MaxGames       int           `validate:"min=1"`
	PresetsPath    string        `validate:"required"`

	// HTTP hardening
	TrustedProxies    []string      `validate:"dive,ip"`
	RateLimitRequests int           `validate:"min=1"`
	RateLimitWindow   time.Duration `validate:"min=1s"`
	MaxBodyBytes      int64         `validate:"min=1"`
	SweepStepBudget   int64         `validate:"min=1"` // per client per RateLimitWindow
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment: strings.ToLower(getEnv(EnvEnvironment, DefaultEnvironment)),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		APIKey:      getEnv(EnvAPIKey, ""),

		SimWorkers:     getEnvAsInt(EnvSimWorkers, DefaultSimWorkers),
		SweepCacheSize: getEnvAsInt(EnvSweepCacheSize, DefaultSweepCacheSize),
		SweepCacheTTL:  getEnvAsDuration(EnvSweepCacheTTL, DefaultSweepCacheTTL),
		MaxPlayers:     getEnvAsInt(EnvMaxPlayers, DefaultMaxPlayers),
		MaxGames:       getEnvAsInt(EnvMaxGames, DefaultMaxGames),
		PresetsPath:    getEnv(EnvPresetsPath, DefaultPresetsPath),

		TrustedProxies:    getEnvAsList(EnvTrustedProxies),
		RateLimitRequests: getEnvAsInt(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvAsDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		MaxBodyBytes:      DefaultMaxBodyBytes,
		SweepStepBudget:   getEnvAsInt64(EnvSweepStepBudget, DefaultSweepStepBudget),
	}

	portStr := getEnv(EnvPort, DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsInt64 is getEnvAsInt for budgets that overflow 32 bits
func getEnvAsInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable such as "15m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
