package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/primelab/factorcalc/internal/config"
	"github.com/primelab/factorcalc/internal/factor"
)

// GetFactorizersToRun determines which strategies should be executed based on
// the configuration. Returns strategies in alphabetically sorted order for
// consistent, reproducible behavior.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The strategy factory to retrieve implementations from.
//
// Returns:
//   - []factor.Factorizer: A slice of strategies to execute.
func GetFactorizersToRun(cfg config.AppConfig, factory factor.StrategyFactory) []factor.Factorizer {
	if cfg.Algo == "all" {
		keys := factory.List() // List() returns sorted keys
		factorizers := make([]factor.Factorizer, 0, len(keys))
		for _, k := range keys {
			if fz, err := factory.Get(k); err == nil {
				factorizers = append(factorizers, fz)
			}
		}
		return factorizers
	}
	if fz, err := factory.Get(cfg.Algo); err == nil {
		return []factor.Factorizer{fz}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the target number, timeout, environment details, and search
// parameters.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Factorizing %s%s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), formatNumberString(cfg.Number), ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
	writeOut(out, "Search parameters: Miller-Rabin rounds=%s%d%s, Fermat window=%s%d%s candidates.\n",
		ColorCyan(), cfg.MillerRabinRounds, ColorReset(), ColorCyan(), cfg.FermatWindow, ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - factorizers: The slice of strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(factorizers []factor.Factorizer, out io.Writer) {
	var modeDesc string
	if len(factorizers) > 1 {
		modeDesc = "Parallel comparison of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single factorization with the %s%s%s strategy",
			ColorGreen(), factorizers[0].Name(), ColorReset())
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
//
// Parameters:
//   - out: The destination writer.
//   - format: The format string (see fmt.Printf).
//   - a: Arguments for the format string.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
