// The cli package provides functions for building a command-line interface (CLI)
// for the factorization application. It handles the asynchronous display of
// search progress and formats the results for a clear and readable
// presentation.
package cli

//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/primelab/factorcalc/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the character threshold from which a factorization is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of characters to display at the
	// beginning and end of a truncated factorization.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Color functions return ANSI escape codes from the current theme.
// These provide backward compatibility while allowing theme switching.
// They delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorRed returns the error color from the current theme.
func ColorRed() string { return ui.GetCurrentTheme().Error }

// ColorGreen returns the success color from the current theme.
func ColorGreen() string { return ui.GetCurrentTheme().Success }

// ColorYellow returns the warning color from the current theme.
func ColorYellow() string { return ui.GetCurrentTheme().Warning }

// ColorBlue returns the primary color from the current theme.
func ColorBlue() string { return ui.GetCurrentTheme().Primary }

// ColorMagenta returns the info color from the current theme.
func ColorMagenta() string { return ui.GetCurrentTheme().Info }

// ColorCyan returns the secondary color from the current theme.
func ColorCyan() string { return ui.GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code from the current theme.
func ColorBold() string { return ui.GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return ui.GetCurrentTheme().Underline }

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// StrategyUpdate reports a progress change for one divisor-search strategy
// during a comparison run. Strategies do not expose fractional progress, so a
// strategy is either running (0.0) or complete (1.0).
type StrategyUpdate struct {
	// StrategyIndex identifies the strategy the update belongs to.
	StrategyIndex int
	// Value is the progress value (0.0 to 1.0).
	Value float64
}

// ProgressState encapsulates the aggregated progress of concurrent searches.
// It maintains the individual progress of each strategy and computes the
// average, which is essential for providing a consolidated progress view when
// multiple strategies are running in parallel.
type ProgressState struct {
	progresses    []float64
	numStrategies int
}

// NewProgressState creates and initializes a new ProgressState.
// It sets up the internal storage for tracking the progress of a specified
// number of strategies.
//
// Parameters:
//   - numStrategies: The number of strategies to track.
//
// Returns:
//   - *ProgressState: A pointer to the new progress state object.
func NewProgressState(numStrategies int) *ProgressState {
	return &ProgressState{
		progresses:    make([]float64, numStrategies),
		numStrategies: numStrategies,
	}
}

// Update records a new progress value for a specific strategy.
// The method ensures that updates are only applied for valid strategy indices.
//
// Parameters:
//   - index: The index of the strategy (0 to numStrategies-1).
//   - value: The progress value (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked strategies.
// This is used to display a single, consolidated progress bar to the user,
// representing the overall progress of the application.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numStrategies == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numStrategies)
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress manages the asynchronous display of a spinner and progress bar.
// It is designed to run in a dedicated goroutine and orchestrates the UI updates
// for the duration of the searches.
//
// The function's responsibilities include:
//   - Receiving progress updates from a channel.
//   - Aggregating these updates to compute the completed fraction.
//   - Displaying the elapsed time alongside the progress bar.
//   - Periodically refreshing the spinner and progress bar.
//   - Gracefully shutting down when the progress channel is closed.
//
// Parameters:
//   - wg: A WaitGroup to signal when the display routine is complete.
//   - progressChan: The channel receiving progress updates.
//   - numStrategies: The number of strategies contributing to the progress.
//   - out: The io.Writer to which the progress bar is rendered.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan StrategyUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	if numStrategies <= 0 {
		for range progressChan { // Drain the channel
		}
		return
	}

	state := NewProgressState(numStrategies)
	start := time.Now()
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				// Stop the spinner first to free the line
				if !spinnerStopped {
					s.Stop()
					spinnerStopped = true
				}

				// Display final 100% progress permanently by printing directly to output
				bar := progressBar(1.0, ProgressBarWidth)
				label := "Progress"
				if numStrategies > 1 {
					label = "Avg progress"
				}
				// Print the final progress line with a newline so it persists
				fmt.Fprintf(out, "%s: %6.2f%% [%s] elapsed: %s\n", label, 100.0, bar, FormatExecutionDuration(time.Since(start)))
				return
			}
			state.Update(update.StrategyIndex, update.Value)
		case <-ticker.C:
			avgProgress := state.CalculateAverage()
			bar := progressBar(avgProgress, ProgressBarWidth)
			label := "Progress"
			if numStrategies > 1 {
				label = "Avg progress"
			}
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] elapsed: %s", label, avgProgress*100, bar, FormatExecutionDuration(time.Since(start))))
		}
	}
}

// FormatFactorization renders a factor list in exponent form, grouping
// repeated primes (e.g. [2 2 2 3 3 5] becomes "2^3 x 3^2 x 5"). The input is
// assumed to be sorted ascending, as produced by the factorizer.
//
// Parameters:
//   - factors: The ascending prime factors.
//
// Returns:
//   - string: The formatted factorization.
func FormatFactorization(factors []*big.Int) string {
	if len(factors) == 0 {
		return ""
	}

	var builder strings.Builder
	i := 0
	for i < len(factors) {
		j := i
		for j < len(factors) && factors[j].Cmp(factors[i]) == 0 {
			j++
		}
		if i > 0 {
			builder.WriteString(" x ")
		}
		builder.WriteString(factors[i].String())
		if exp := j - i; exp > 1 {
			fmt.Fprintf(&builder, "^%d", exp)
		}
		i = j
	}
	return builder.String()
}

// countDistinct returns the number of distinct primes in a sorted factor list.
func countDistinct(factors []*big.Int) int {
	distinct := 0
	for i, f := range factors {
		if i == 0 || factors[i-1].Cmp(f) != 0 {
			distinct++
		}
	}
	return distinct
}

// DisplayResult formats and prints the final factorization result.
// It provides different levels of detail based on the verbose and details
// flags, including metadata like factor counts and the size of the largest
// prime factor. For very long factorizations, it truncates the output unless
// verbose is true.
//
// Parameters:
//   - n: The number that was factorized.
//   - factors: The ascending prime factors.
//   - duration: The time taken for the factorization.
//   - verbose: If true, prints the full factorization regardless of size.
//   - details: If true, prints detailed execution metrics.
//   - out: The io.Writer for the output.
func DisplayResult(n *big.Int, factors []*big.Int, duration time.Duration, verbose, details bool, out io.Writer) {
	fmt.Fprintf(out, "Found %s%d%s prime factors (%s%d%s distinct).\n",
		ColorCyan(), len(factors), ColorReset(),
		ColorCyan(), countDistinct(factors), ColorReset())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ColorBold(), ColorReset())
		durationStr := FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Search time           : %s%s%s\n", ColorGreen(), durationStr, ColorReset())
		fmt.Fprintf(out, "Input digits          : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprintf("%d", len(n.String()))), ColorReset())
		if len(factors) > 0 {
			largest := factors[len(factors)-1]
			fmt.Fprintf(out, "Largest factor digits : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprintf("%d", len(largest.String()))), ColorReset())
		}
	}

	expansion := FormatFactorization(factors)

	fmt.Fprintf(out, "\n%s--- Prime factorization ---%s\n", ColorBold(), ColorReset())
	if verbose || len(expansion) <= TruncationLimit {
		fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ColorMagenta(), formatNumberString(n.String()), ColorReset(), ColorGreen(), expansion, ColorReset())
	} else {
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s...%s%s\n",
			ColorMagenta(), formatNumberString(n.String()), ColorReset(),
			ColorGreen(), expansion[:DisplayEdges], expansion[len(expansion)-DisplayEdges:], ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full factorization)\n", ColorYellow(), ColorReset())
	}
}

// formatNumberString inserts thousand separators into a numeric string.
// Optimized to reduce memory allocations
//
// Parameters:
//   - s: The numeric string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	// Precise calculation of the required capacity to avoid reallocations
	numSeparators := (n - 1) / 3
	capacity := len(prefix) + n + numSeparators
	var builder strings.Builder
	builder.Grow(capacity)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])

	// Optimized loop with fewer function calls
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
