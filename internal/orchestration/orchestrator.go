package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/primelab/factorcalc/internal/cli"
	"github.com/primelab/factorcalc/internal/config"
	apperrors "github.com/primelab/factorcalc/internal/errors"
	"github.com/primelab/factorcalc/internal/factor"
	"github.com/primelab/factorcalc/internal/parallel"
	"github.com/primelab/factorcalc/internal/ui"
)

// FactorizationResult encapsulates the outcome of a single factorization.
// It serves as a standardized container for results from different strategies,
// facilitating comparison and reporting.
type FactorizationResult struct {
	// Name is the identifier of the strategy used (e.g., "Pollard Rho").
	Name string
	// Factors are the ascending prime factors. It is nil if an error occurred.
	Factors []*big.Int
	// Duration is the time taken to complete the factorization.
	Duration time.Duration
	// Err contains any error that occurred during the factorization.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking search
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteFactorizations orchestrates the concurrent execution of one or more
// factorizations.
//
// Each strategy runs in its own goroutine and writes its outcome to a
// dedicated slot, so the returned slice matches the input order regardless of
// completion order. Strategy failures (exhaustion, timeout) are per-result and
// reported in FactorizationResult.Err; a panicking strategy is contained and
// surfaces as the function's error instead of tearing down the process.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - factorizers: A slice of strategies to execute.
//   - n: The number to factorize.
//   - cfg: The application configuration (search parameters, etc.).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []FactorizationResult: A slice containing the results of each factorization.
//   - error: The first worker panic, as a parallel.PanicError, or nil.
func ExecuteFactorizations(ctx context.Context, factorizers []factor.Factorizer, n *big.Int, cfg config.AppConfig, out io.Writer) ([]FactorizationResult, error) {
	results := make([]FactorizationResult, len(factorizers))
	progressChan := make(chan cli.StrategyUpdate, len(factorizers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(factorizers), out)

	var wg sync.WaitGroup
	var ec parallel.ErrorCollector
	for i, fz := range factorizers {
		idx, factorizer := i, fz
		wg.Add(1)
		go func() {
			defer wg.Done()
			startTime := time.Now()
			if err := parallel.Protect(func() error {
				factors, err := factorizer.Factorize(ctx, n, cfg.ToFactorOptions())
				results[idx] = FactorizationResult{
					Name: factorizer.Name(), Factors: factors, Duration: time.Since(startTime), Err: err,
				}
				return nil
			})(); err != nil {
				results[idx] = FactorizationResult{
					Name: factorizer.Name(), Duration: time.Since(startTime), Err: err,
				}
				ec.SetError(err)
			}
			progressChan <- cli.StrategyUpdate{StrategyIndex: idx, Value: 1.0}
		}()
	}

	wg.Wait()
	close(progressChan)
	displayWg.Wait()

	return results, ec.Err()
}

// equalFactorizations reports whether two factor lists are identical.
// Both lists are sorted ascending, so positional comparison suffices.
func equalFactorizations(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// AnalyzeComparisonResults processes the results from multiple strategies and
// generates a summary report.
//
// It sorts the results by execution time, validates consistency across
// successful factorizations, and displays a comparative table. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of factorization results to analyze.
//   - n: The number that was factorized.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []FactorizationResult, n *big.Int, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidFactors []*big.Int
	var firstValidDuration time.Duration
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sAlgorithm%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if firstValidFactors == nil {
				firstValidFactors = res.Factors
				firstValidDuration = res.Duration
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the factorization.\n")
		return apperrors.HandleFactorizationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && !equalFactorizations(res.Factors, firstValidFactors) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the strategies.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.")
	cli.DisplayResult(n, firstValidFactors, firstValidDuration, cfg.Verbose, cfg.Details, out)
	return apperrors.ExitSuccess
}
