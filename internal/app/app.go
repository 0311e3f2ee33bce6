package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/primelab/factorcalc/internal/cli"
	"github.com/primelab/factorcalc/internal/config"
	apperrors "github.com/primelab/factorcalc/internal/errors"
	"github.com/primelab/factorcalc/internal/factor"
	"github.com/primelab/factorcalc/internal/orchestration"
	"github.com/primelab/factorcalc/internal/server"
	"github.com/primelab/factorcalc/internal/service"
	"github.com/primelab/factorcalc/internal/ui"
)

// Application represents the factorcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (CLI, server, primality testing).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the divisor-search strategy implementations.
	// Uses the interface type for better testability and dependency injection.
	Factory factor.StrategyFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := factor.GlobalFactory()
	availableAlgos := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "factorcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (completion, server, primality
// test, next-prime search, or factorization).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Handle completion script generation
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Primality-test mode
	if a.Config.PrimeMode {
		return a.runPrimeTest(ctx, out)
	}

	// Next-prime mode
	if a.Config.NextPrimeMode {
		return a.runNextPrime(ctx, out)
	}

	// Standard CLI factorization mode
	return a.runFactorize(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableAlgos := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableAlgos); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// primalityAlgo resolves the strategy used for primality queries.
// The primality test itself is strategy-independent, but the service API
// is keyed by strategy name, so "all" falls back to the parallel strategy.
func (a *Application) primalityAlgo() string {
	if a.Config.Algo == "all" {
		return "parallel"
	}
	return a.Config.Algo
}

// runPrimeTest tests the configured number for primality and reports the
// verdict along with its confidence level.
func (a *Application) runPrimeTest(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	svc := service.NewFactorizationService(a.Factory, a.Config, 0)
	startTime := time.Now()
	verdict, err := svc.IsPrime(ctx, a.primalityAlgo(), a.Config.Number)
	duration := time.Since(startTime)
	if err != nil {
		return apperrors.HandleFactorizationError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}

	if a.Config.JSONOutput {
		return printJSON(out, primeJSON{
			N:          a.Config.Number,
			Prime:      verdict.Prime,
			Confidence: string(verdict.Confidence),
			Duration:   duration.String(),
		})
	}
	if a.Config.Quiet {
		if verdict.Prime {
			fmt.Fprintln(out, "prime")
		} else {
			fmt.Fprintln(out, "composite")
		}
		return apperrors.ExitSuccess
	}

	if verdict.Prime {
		fmt.Fprintf(out, "\n%s%s%s is %sprime%s [confidence: %s]\n",
			cli.ColorMagenta(), a.Config.Number, cli.ColorReset(),
			cli.ColorGreen(), cli.ColorReset(), verdict.Confidence)
	} else {
		fmt.Fprintf(out, "\n%s%s%s is %scomposite%s [confidence: %s]\n",
			cli.ColorMagenta(), a.Config.Number, cli.ColorReset(),
			cli.ColorRed(), cli.ColorReset(), verdict.Confidence)
	}
	if a.Config.Details {
		fmt.Fprintf(out, "Verdict obtained in %s.\n", cli.FormatExecutionDuration(duration))
	}
	return apperrors.ExitSuccess
}

// runNextPrime finds the smallest prime strictly greater than the configured
// number.
func (a *Application) runNextPrime(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	svc := service.NewFactorizationService(a.Factory, a.Config, 0)
	startTime := time.Now()
	next, err := svc.NextPrime(ctx, a.primalityAlgo(), a.Config.Number)
	duration := time.Since(startTime)
	if err != nil {
		return apperrors.HandleFactorizationError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}

	if a.Config.JSONOutput {
		return printJSON(out, nextPrimeJSON{
			N:         a.Config.Number,
			NextPrime: next.String(),
			Duration:  duration.String(),
		})
	}
	if a.Config.Quiet {
		fmt.Fprintln(out, next.String())
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "\nNext prime after %s%s%s: %s%s%s\n",
		cli.ColorMagenta(), a.Config.Number, cli.ColorReset(),
		cli.ColorGreen(), next.String(), cli.ColorReset())
	if a.Config.Details {
		fmt.Fprintf(out, "Search completed in %s.\n", cli.FormatExecutionDuration(duration))
	}
	return apperrors.ExitSuccess
}

// runFactorize orchestrates the execution of the CLI factorization command.
func (a *Application) runFactorize(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	n, err := factor.ParseNumber(a.Config.Number)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid number %q: %v\n", a.Config.Number, err)
		return apperrors.ExitErrorConfig
	}

	// Get strategies to run
	factorizersToRun := cli.GetFactorizersToRun(a.Config, a.Factory)
	if len(factorizersToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No strategy available for algorithm %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(factorizersToRun, out)
	}

	// In quiet mode, use a discard writer for progress display
	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	// Execute factorizations
	results, err := orchestration.ExecuteFactorizations(ctx, factorizersToRun, n, a.Config, progressOut)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Internal error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	// Handle JSON output
	if a.Config.JSONOutput {
		return printJSONResults(results, out)
	}

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	return a.analyzeResultsWithOutput(results, n, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.FactorizationResult, n *big.Int, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Handle quiet mode for single result
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Factors)

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, n, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	// Use standard analysis for non-quiet mode
	exitCode := orchestration.AnalyzeComparisonResults(results, n, a.Config, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, n, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				cli.ColorGreen(), cli.ColorCyan(), outputCfg.OutputFile, cli.ColorReset())
		}
	}

	return exitCode
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findBestResult(results []orchestration.FactorizationResult) *orchestration.FactorizationResult {
	var bestResult *orchestration.FactorizationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.FactorizationResult, n *big.Int, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(n, res.Factors, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// jsonResult represents a single factorization result in JSON format.
type jsonResult struct {
	Algorithm string   `json:"algorithm"`
	Duration  string   `json:"duration"`
	Factors   []string `json:"factors,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// primeJSON represents a primality verdict in JSON format.
type primeJSON struct {
	N          string `json:"n"`
	Prime      bool   `json:"prime"`
	Confidence string `json:"confidence"`
	Duration   string `json:"duration"`
}

// nextPrimeJSON represents a next-prime search result in JSON format.
type nextPrimeJSON struct {
	N         string `json:"n"`
	NextPrime string `json:"next_prime"`
	Duration  string `json:"duration"`
}

// printJSONResults formats the factorization results as a JSON array and writes
// them to the output. This is useful for programmatic consumption of the results.
func printJSONResults(results []orchestration.FactorizationResult, out io.Writer) int {
	output := make([]jsonResult, len(results))
	for i, res := range results {
		jr := jsonResult{
			Algorithm: res.Name,
			Duration:  res.Duration.String(),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		} else {
			jr.Factors = make([]string, len(res.Factors))
			for j, f := range res.Factors {
				jr.Factors[j] = f.String()
			}
		}
		output[i] = jr
	}
	return printJSON(out, output)
}

func printJSON(out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
