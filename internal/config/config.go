// Package config provides the configuration management for the factorcalc
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/primelab/factorcalc/internal/errors"
	"github.com/primelab/factorcalc/internal/factor"
)

const (
	// EnvPrefix is the prefix for all environment variables used by factorcalc.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "FACTORCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultNumber is the default number to factorize. Its decomposition
	// (3^2 x 307 x 5399 x 102068809) mixes a repeated small prime with
	// progressively larger factors, exercising the recursive splitting path.
	DefaultNumber = "1522605027922533"
	// DefaultTimeout is the default factorization timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "all"
	// DefaultMillerRabinRounds is the default number of Miller-Rabin witness rounds.
	DefaultMillerRabinRounds = 40
	// DefaultFermatWindow is the default number of candidates scanned by the
	// difference-of-squares search before giving up.
	DefaultFermatWindow = 1000
	// DefaultRhoIterations is the default iteration cap for a single Pollard
	// rho walk (0 means unbounded).
	DefaultRhoIterations = 100_000
)

// AppConfig aggregates the application's configuration parameters, parsed from
// command-line flags. It encapsulates all settings that control the execution,
// from the number to factorize, to the tuning parameters of the divisor
// searches.
type AppConfig struct {
	// Number is the decimal representation of the integer to factorize.
	Number string
	// Verbose, if true, instructs the application to display the full factor list.
	Verbose bool
	// Details, if true, provides a detailed report including performance metrics.
	Details bool
	// Timeout sets the maximum duration for the factorization.
	Timeout time.Duration
	// Algo specifies the algorithm to use ("all", "fermat", "rho", "parallel").
	Algo string
	// Workers is the number of goroutines used by the parallel strategies.
	// Zero selects runtime.NumCPU().
	Workers int
	// MillerRabinRounds is the number of witness rounds for primality testing.
	MillerRabinRounds int
	// FermatWindow caps the number of candidates scanned by the
	// difference-of-squares search.
	FermatWindow int
	// RhoIterations caps a single Pollard rho walk (0 = unbounded).
	RhoIterations int
	// PrimeMode, if true, only tests the number for primality instead of
	// factorizing it.
	PrimeMode bool
	// NextPrimeMode, if true, finds the smallest prime strictly greater than
	// the number instead of factorizing it.
	NextPrimeMode bool
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool

	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses progress bars, banners, and informational messages.
	Quiet bool
	// Completion, if set, generates shell completion script for the specified shell.
	// Valid values are: "bash", "zsh", "fish", "powershell".
	Completion string
}

// ToFactorOptions converts the application configuration into factor.Options
// for use by the divisor-search strategies.
func (c AppConfig) ToFactorOptions() factor.Options {
	return factor.Options{
		MillerRabinRounds:   c.MillerRabinRounds,
		Workers:             c.Workers,
		FermatMaxCandidates: c.FermatWindow,
		RhoMaxIterations:    c.RhoIterations,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the chosen
// algorithm is supported.
//
// Parameters:
//   - availableAlgos: A slice of strings listing the valid algorithm names
//     (e.g., ["fermat", "rho", "parallel"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.MillerRabinRounds < 1 {
		return apperrors.NewConfigError("Miller-Rabin round count must be at least 1: %d", c.MillerRabinRounds)
	}
	if c.FermatWindow < 1 {
		return apperrors.NewConfigError("Fermat candidate window must be at least 1: %d", c.FermatWindow)
	}
	if c.RhoIterations < 0 {
		return apperrors.NewConfigError("rho iteration cap cannot be negative: %d", c.RhoIterations)
	}
	if c.PrimeMode && c.NextPrimeMode {
		return apperrors.NewConfigError("-isprime and -nextprime are mutually exclusive")
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != "all" && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values, and
// handles the parsing process. After parsing, it performs validation on the
// resulting configuration.
//
// The function is designed to be testable by allowing the input arguments and
// output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableAlgos: A slice of valid algorithm names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to use: 'all' (default) or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Number, "n", DefaultNumber, "Decimal integer to factorize.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full factor list (can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display performance details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the factorization.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.Workers, "workers", 0, "Number of goroutines for parallel strategies (0 = all CPUs).")
	fs.IntVar(&config.MillerRabinRounds, "rounds", DefaultMillerRabinRounds, "Number of Miller-Rabin witness rounds.")
	fs.IntVar(&config.FermatWindow, "fermat-window", DefaultFermatWindow, "Candidate window for the difference-of-squares search.")
	fs.IntVar(&config.RhoIterations, "rho-iterations", DefaultRhoIterations, "Iteration cap for a single Pollard rho walk (0 = unbounded).")
	fs.BoolVar(&config.PrimeMode, "isprime", false, "Only test the number for primality.")
	fs.BoolVar(&config.NextPrimeMode, "nextprime", false, "Find the smallest prime strictly greater than the number.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")

	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Number = strings.TrimSpace(config.Number)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
