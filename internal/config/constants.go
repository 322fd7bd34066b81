package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvEnvironment       = "ENVIRONMENT"
	EnvServiceName       = "SERVICE_NAME"
	EnvVersion           = "VERSION"
	EnvAPIKey            = "API_KEY"
	EnvSimWorkers        = "SIM_WORKERS"
	EnvSweepCacheSize    = "SWEEP_CACHE_SIZE"
	EnvSweepCacheTTL     = "SWEEP_CACHE_TTL"
	EnvMaxPlayers        = "MAX_PLAYERS"
	EnvMaxGames          = "MAX_GAMES"
	EnvPresetsPath       = "PRESETS_PATH"
	EnvTrustedProxies    = "TRUSTED_PROXIES"
	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvSweepStepBudget   = "SWEEP_STEP_BUDGET"
)

// Default values
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "ruinsim"
	DefaultVersion           = "dev"
	DefaultSimWorkers        = 0
	DefaultSweepCacheSize    = 64
	DefaultSweepCacheTTL     = 15 * time.Minute
	DefaultMaxPlayers        = 100000
	DefaultMaxGames          = 1000000
	DefaultPresetsPath       = "configs/presets.json"
	DefaultRateLimitRequests = 1000
	DefaultRateLimitWindow   = 5 * time.Minute
	DefaultMaxBodyBytes      = 1 << 20 // 1MB

	// DefaultSweepStepBudget is the worst-case player-steps (players x games x 49)
	// one client may request per rate-limit window: about 100 default sweeps.
	DefaultSweepStepBudget int64 = 5_000_000_000
)
