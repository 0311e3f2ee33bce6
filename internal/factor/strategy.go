// Package factor implements primality testing and integer factorization for
// arbitrary-precision numbers. It exposes a `Factorizer` interface that
// abstracts the divisor-search algorithm, allowing different strategies
// (Difference of Squares, Pollard's Rho, Parallel Rho Race) to be used
// interchangeably. All strategies share the same recursive decomposition
// skeleton and the same Miller-Rabin primality core; they differ only in how
// they locate a single nontrivial divisor and whether that search is threaded.
package factor

//go:generate mockgen -source=strategy.go -destination=mocks/mock_strategy.go -package=mocks

import (
	"context"
	"math/big"
)

// Confidence qualifies a primality verdict. Miller-Rabin verdicts are
// inherently probabilistic (bounded error <= 4^-k for k independent
// witnesses); the engine never claims certainty for numbers above the small
// deterministic threshold unless compositeness was proven by an explicit
// divisor or Fermat witness.
type Confidence string

const (
	// ConfidenceDeterministic marks verdicts backed by an explicit proof:
	// trial division on small numbers, a found divisor, or a failed Fermat
	// congruence.
	ConfidenceDeterministic Confidence = "deterministic-small"
	// ConfidenceProbabilistic marks verdicts produced by Miller-Rabin rounds.
	ConfidenceProbabilistic Confidence = "probabilistic"
)

// Verdict is the result of a primality query.
type Verdict struct {
	// Prime reports whether the number was accepted as (probably) prime.
	Prime bool
	// Confidence indicates whether the verdict is a proof or a
	// probabilistic acceptance.
	Confidence Confidence
}

// Factorizer defines the public interface for a factorization strategy.
// It is the primary abstraction used by the application's orchestration and
// service layers to interact with the different divisor-search algorithms.
// All methods are safe for concurrent use and honor context cancellation.
type Factorizer interface {
	// Factorize computes the full prime factorization of n, ascending and
	// with multiplicity. The product of the returned factors equals n and
	// every factor independently passes IsPrime. Factorizing 0 or 1 yields
	// an empty list; a prime yields a single-element list.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - n: The non-negative number to factorize.
	//   - opts: Configuration options for the search.
	//
	// Returns:
	//   - []*big.Int: The ordered prime factors.
	//   - error: ErrSearchExhausted if every divisor search failed, or a
	//     context error if the operation was canceled.
	Factorize(ctx context.Context, n *big.Int, opts Options) ([]*big.Int, error)

	// IsPrime reports whether n is prime, together with the confidence of
	// the verdict.
	IsPrime(ctx context.Context, n *big.Int, opts Options) (Verdict, error)

	// FindDivisor locates one nontrivial divisor d of n with 1 < d < n
	// using the strategy's search algorithm. It returns ErrSearchExhausted
	// if the bounded search ran out of candidates.
	FindDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error)

	// NextPrime returns the smallest prime strictly greater than n.
	NextPrime(ctx context.Context, n *big.Int, opts Options) (*big.Int, error)

	// Name returns the display name of the divisor-search algorithm
	// (e.g., "Pollard's Rho").
	Name() string
}

// coreStrategy defines the internal interface for a pure divisor-search
// algorithm. The surrounding engine supplies primality testing, the recursive
// decomposition, metrics, and logging.
type coreStrategy interface {
	findDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error)
	Name() string
}

// witnessParallelizer is an optional interface implemented by strategies
// whose primality test distributes Miller-Rabin witness rounds across
// multiple workers. The engine falls back to the sequential test for
// strategies that do not implement it.
type witnessParallelizer interface {
	parallelPrimality() bool
}

// Product multiplies all factors together. It is the inverse of Factorize:
// for any successful factorization, Product(Factorize(n)) equals n. Callers
// can use it to verify the round-trip property.
//
// Parameters:
//   - factors: The factor list to multiply (may be empty).
//
// Returns:
//   - *big.Int: The product, or 1 for an empty list.
func Product(factors []*big.Int) *big.Int {
	p := big.NewInt(1)
	for _, f := range factors {
		p.Mul(p, f)
	}
	return p
}
