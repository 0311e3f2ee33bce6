// Package cli provides output utilities for exporting factorization results.
package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full factorization.
	Verbose bool
	// Details enables the detailed result analysis section.
	Details bool
}

// WriteResultToFile writes a factorization result to a file.
//
// Parameters:
//   - n: The number that was factorized.
//   - factors: The ascending prime factors.
//   - duration: The search duration.
//   - algo: The strategy name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(n *big.Int, factors []*big.Int, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Prime Factorization Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %s\n", n.String())
	fmt.Fprintf(file, "# Factors: %d\n", len(factors))
	fmt.Fprintf(file, "# Distinct: %d\n", countDistinct(factors))
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "%s = %s\n", n.String(), FormatFactorization(factors))

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line space-separated factor list suitable for scripting.
//
// Parameters:
//   - factors: The ascending prime factors.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(factors []*big.Int) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - factors: The ascending prime factors.
func DisplayQuietResult(out io.Writer, factors []*big.Int) {
	fmt.Fprintln(out, FormatQuietResult(factors))
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - n: The number that was factorized.
//   - factors: The ascending prime factors.
//   - duration: The search duration.
//   - algo: The strategy name.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, n *big.Int, factors []*big.Int, duration time.Duration, algo string, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, factors)
	} else {
		// Use standard display
		DisplayResult(n, factors, duration, config.Verbose, config.Details, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(n, factors, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}

	return nil
}
