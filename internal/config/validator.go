package config

import (
	"fmt"
	"runtime"
)

// Warning thresholds
const (
	// largeSweepSteps flags limits where one sweep may run for minutes
	largeSweepSteps = 10_000_000_000
)

// ValidateEnvWithWarnings returns advisory warnings for a loaded config.
// None of them stop the server.
func ValidateEnvWithWarnings(cfg *Config) []string {
	var warnings []string

	if cfg.APIKey == "" && cfg.Environment == EnvironmentProd {
		warnings = append(warnings, "API_KEY is not set in prod - the simulation API is open to anyone who can reach it")
	}

	if cfg.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if steps := int64(cfg.MaxPlayers) * int64(cfg.MaxGames); steps >= largeSweepSteps {
		warnings = append(warnings, fmt.Sprintf("MAX_PLAYERS x MAX_GAMES allows %d coin flips per probability - a single sweep may run for minutes", steps))
	}

	if cpus := runtime.NumCPU(); cfg.SimWorkers > cpus {
		warnings = append(warnings, fmt.Sprintf("SIM_WORKERS=%d exceeds the %d available CPUs", cfg.SimWorkers, cpus))
	}

	return warnings
}

// Values checked by ValidateEnvWithWarnings
const (
	EnvironmentProd = "prod"
	ExampleAPIKey   = "generate_with_openssl_rand_hex_32"
)
