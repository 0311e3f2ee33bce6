// Package factor implements primality testing and integer factorization.
// This file contains configuration options for the factorization engine.
package factor

import "runtime"

// Default values applied by normalizeOptions when an option is zero.
const (
	// DefaultMillerRabinRounds is the number of independent Miller-Rabin
	// witness rounds. 40 rounds bound the false-positive probability by
	// 4^-40, far below the probability of a hardware fault.
	DefaultMillerRabinRounds = 40
	// DefaultFermatMaxCandidates bounds the difference-of-squares scan.
	// The search is only effective when both factors are close to sqrt(n),
	// so a small fixed window keeps the worst case predictable.
	DefaultFermatMaxCandidates = 1000
	// DefaultRhoMaxIterations caps each worker of the parallel rho race.
	// A worker whose polynomial offset cycles without success gives up
	// after this many steps instead of spinning forever.
	DefaultRhoMaxIterations = 100_000
)

// Options configures a factorization or primality query.
type Options struct {
	// MillerRabinRounds is the number of witness rounds for the
	// probabilistic primality test. Every call site uses this single
	// value; it must be >= 1 after normalization. If 0, the default (40)
	// is used.
	MillerRabinRounds int
	// Workers is the number of goroutines used by the parallel strategy
	// for both the rho race and the witness-partitioned primality test.
	// If 0, runtime.NumCPU() is used. Sequential strategies ignore it.
	Workers int
	// FermatMaxCandidates bounds the number of q candidates examined by
	// the difference-of-squares search. If 0, the default (1000) is used.
	FermatMaxCandidates int
	// RhoMaxIterations caps the number of rho steps per worker in the
	// parallel race. If 0, the default (100,000) is used. The sequential
	// rho search is unbounded and relies on context cancellation.
	RhoMaxIterations int
}

// normalizeOptions returns a copy of opts with default values filled in for
// zero values. This ensures consistent handling across all strategies.
//
// Parameters:
//   - opts: The options to normalize.
//
// Returns:
//   - Options: A normalized copy of opts with defaults applied.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.MillerRabinRounds <= 0 {
		normalized.MillerRabinRounds = DefaultMillerRabinRounds
	}
	if normalized.Workers <= 0 {
		normalized.Workers = runtime.NumCPU()
	}
	if normalized.FermatMaxCandidates <= 0 {
		normalized.FermatMaxCandidates = DefaultFermatMaxCandidates
	}
	if normalized.RhoMaxIterations <= 0 {
		normalized.RhoMaxIterations = DefaultRhoMaxIterations
	}
	return normalized
}
