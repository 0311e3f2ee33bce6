// Package config provides the configuration management for the factorcalc application.
// This file contains environment variable utilities for configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - FACTORCALC_NUMBER: Decimal integer to factorize (string)
//   - FACTORCALC_ALGO: Algorithm to use (string: fermat, rho, parallel, all)
//   - FACTORCALC_PORT: Port for server mode (string)
//   - FACTORCALC_TIMEOUT: Factorization timeout (duration: "5m", "30s")
//   - FACTORCALC_WORKERS: Goroutine count for parallel strategies (int)
//   - FACTORCALC_ROUNDS: Miller-Rabin witness rounds (int)
//   - FACTORCALC_FERMAT_WINDOW: Difference-of-squares candidate window (int)
//   - FACTORCALC_RHO_ITERATIONS: Pollard rho iteration cap (int)
//   - FACTORCALC_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - FACTORCALC_JSON: Enable JSON output (bool)
//   - FACTORCALC_VERBOSE: Enable verbose output (bool)
//   - FACTORCALC_QUIET: Enable quiet mode (bool)
//   - FACTORCALC_ISPRIME: Enable primality-test mode (bool)
//   - FACTORCALC_NEXTPRIME: Enable next-prime mode (bool)
//   - FACTORCALC_NO_COLOR: Disable colored output (bool)
//   - FACTORCALC_OUTPUT: Output file path (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "workers") {
		config.Workers = getEnvInt("WORKERS", config.Workers)
	}
	if !isFlagSet(fs, "rounds") {
		config.MillerRabinRounds = getEnvInt("ROUNDS", config.MillerRabinRounds)
	}
	if !isFlagSet(fs, "fermat-window") {
		config.FermatWindow = getEnvInt("FERMAT_WINDOW", config.FermatWindow)
	}
	if !isFlagSet(fs, "rho-iterations") {
		config.RhoIterations = getEnvInt("RHO_ITERATIONS", config.RhoIterations)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") {
		config.Number = getEnvString("NUMBER", config.Number)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "d") && !isFlagSet(fs, "details") {
		config.Details = getEnvBool("DETAILS", config.Details)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "isprime") {
		config.PrimeMode = getEnvBool("ISPRIME", config.PrimeMode)
	}
	if !isFlagSet(fs, "nextprime") {
		config.NextPrimeMode = getEnvBool("NEXTPRIME", config.NextPrimeMode)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
