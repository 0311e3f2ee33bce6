package factor

//go:generate mockgen -source=factorize.go -destination=mocks/mock_factorizer.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	factorizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factorcalc_factorizations_total",
			Help: "The total number of factorizations processed",
		},
		[]string{"algorithm", "status"},
	)
	factorizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "factorcalc_factorization_duration_seconds",
			Help: "The duration of factorizations in seconds",
		},
		[]string{"algorithm"},
	)
)

// engine wraps a coreStrategy to add the cross-cutting concerns shared by
// every strategy: the primality core, the recursive decomposition, the
// trial-division fallback, and observability (metrics, tracing, logging).
// It is the implementation behind the Factorizer interface; the wrapped
// strategy only has to know how to find one divisor.
type engine struct {
	core coreStrategy
}

// NewFactorizer constructs a Factorizer around the given divisor-search
// strategy. It panics if core is nil, as a nil strategy indicates a
// programming error rather than a runtime condition.
//
// Parameters:
//   - core: The divisor-search algorithm to wrap.
//
// Returns:
//   - Factorizer: A fully assembled factorization engine.
func NewFactorizer(core coreStrategy) Factorizer {
	if core == nil {
		panic("factor: the coreStrategy implementation cannot be nil")
	}
	return &engine{core: core}
}

// Name returns the name of the wrapped divisor-search algorithm.
func (e *engine) Name() string {
	return e.core.Name()
}

// ParseNumber converts a base-10 numeral string into a number accepted by
// the engine. Leading and trailing whitespace is tolerated; signs, radix
// prefixes and any non-digit characters are not.
//
// Parameters:
//   - s: The numeral to parse.
//
// Returns:
//   - *big.Int: The parsed non-negative integer.
//   - error: ErrInvalidNumeral (wrapped with the offending input) if s is
//     not a valid non-negative base-10 integer.
func ParseNumber(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNumeral)
	}
	n, ok := new(big.Int).SetString(trimmed, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumeral, trimmed)
	}
	return n, nil
}

// IsPrime reports whether n is prime. Small numbers are settled
// deterministically; larger ones go through the structural pre-filter and
// then Miller-Rabin with opts.MillerRabinRounds independent witnesses.
// Strategies that support it (the parallel race) spread the witness rounds
// over opts.Workers goroutines.
func (e *engine) IsPrime(ctx context.Context, n *big.Int, opts Options) (Verdict, error) {
	if n == nil {
		return Verdict{}, fmt.Errorf("%w: nil number", ErrInvalidNumeral)
	}
	opts = normalizeOptions(opts)

	if v, decided := classifySmall(n); decided {
		return v, nil
	}
	if provenComposite(n) {
		return Verdict{Prime: false, Confidence: ConfidenceDeterministic}, nil
	}

	var passed bool
	var err error
	if wp, ok := e.core.(witnessParallelizer); ok && wp.parallelPrimality() && opts.Workers > 1 {
		passed, err = millerRabinParallel(ctx, n, opts.MillerRabinRounds, opts.Workers)
	} else {
		passed, err = millerRabin(ctx, n, opts.MillerRabinRounds)
	}
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{Prime: passed, Confidence: ConfidenceProbabilistic}, nil
}

// FindDivisor runs one divisor search without the recursive decomposition.
// It exposes the raw strategy contract for callers that only need a single
// split, and for tests.
func (e *engine) FindDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil number", ErrInvalidNumeral)
	}
	return e.core.findDivisor(ctx, n, normalizeOptions(opts))
}

// Factorize computes the ordered prime factorization of n.
// The factor list is ascending with multiplicity; its product equals n.
// Factorization of 0 or 1 yields an empty list, a prime yields itself. If a
// bounded search fails and no fallback applies, the error is
// ErrSearchExhausted rather than a partial or fabricated result.
func (e *engine) Factorize(ctx context.Context, n *big.Int, opts Options) (factors []*big.Int, err error) {
	if n == nil || n.Sign() < 0 {
		return nil, fmt.Errorf("%w: factorization requires a non-negative integer", ErrInvalidNumeral)
	}
	opts = normalizeOptions(opts)

	tracer := otel.Tracer("factor")
	ctx, span := tracer.Start(ctx, "Factorize")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		algoName := e.core.Name()
		factorizationsTotal.WithLabelValues(algoName, status).Inc()
		factorizationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Int("digits", len(n.Text(10))).
			Int("factors", len(factors)).
			Float64("duration", duration).
			Str("status", status).
			Msg("factorization completed")
	}()

	factors, err = e.factorizeRecursive(ctx, new(big.Int).Set(n), opts)
	if err != nil {
		return nil, err
	}
	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Cmp(factors[j]) < 0
	})
	return factors, nil
}

// factorizeRecursive is the divide-and-conquer skeleton shared by all
// strategies: primes are leaves, composites are split by one divisor search
// and both halves recurse. The function owns n and may hand it to the
// result slice.
func (e *engine) factorizeRecursive(ctx context.Context, n *big.Int, opts Options) ([]*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n.Cmp(one) <= 0 {
		return nil, nil
	}

	verdict, err := e.IsPrime(ctx, n, opts)
	if err != nil {
		return nil, err
	}
	if verdict.Prime {
		return []*big.Int{n}, nil
	}

	d, err := e.core.findDivisor(ctx, n, opts)
	if err != nil {
		if !errors.Is(err, ErrSearchExhausted) {
			return nil, err
		}
		// Bounded search gave up. For machine-word numbers plain trial
		// division is still tractable; beyond that the exhaustion is
		// surfaced to the caller as-is.
		if !n.IsUint64() {
			return nil, fmt.Errorf("no divisor found for a %d-digit composite: %w", len(n.Text(10)), ErrSearchExhausted)
		}
		// n is a known composite, so a proper factor exists below sqrt(n).
		d = new(big.Int).SetUint64(smallestFactor(n.Uint64()))
	}

	cofactor := new(big.Int).Quo(n, d)
	left, err := e.factorizeRecursive(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	right, err := e.factorizeRecursive(ctx, cofactor, opts)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// smallestFactor returns the least prime factor of n by trial division.
// Callers guarantee n is a composite, so the result is always < n.
func smallestFactor(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	for d := uint64(3); d <= n/d; d += 2 {
		if n%d == 0 {
			return d
		}
	}
	return n
}

// NextPrime returns the smallest prime strictly greater than n, probing
// upward and skipping even candidates.
func (e *engine) NextPrime(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil number", ErrInvalidNumeral)
	}
	opts = normalizeOptions(opts)

	if n.Cmp(two) < 0 {
		return big.NewInt(2), nil
	}

	candidate := new(big.Int).Add(n, one)
	if isEven(candidate) {
		candidate.Add(candidate, one)
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		verdict, err := e.IsPrime(ctx, candidate, opts)
		if err != nil {
			return nil, err
		}
		if verdict.Prime {
			return candidate, nil
		}
		candidate.Add(candidate, two)
	}
}
