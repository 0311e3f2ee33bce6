package factor

import (
	"context"
	"errors"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/primelab/factorcalc/internal/parallel"
)

// ParallelRhoRace runs several rho searches concurrently, each over a
// distinct polynomial f_i(v) = v^2 + (i+1) mod n so the workers explore
// decorrelated paths instead of duplicating each other's work. The first
// worker to find a nontrivial divisor wins the race through a single-slot
// result channel; the shared context is then canceled so the remaining
// workers stop instead of running to their iteration caps. Each worker is
// capped (RhoMaxIterations, default 100,000) to bound the wasted work of an
// offset that cycles without success.
//
// The strategy's primality test is parallel as well: Miller-Rabin witness
// rounds are partitioned into deterministic WitnessRanges and raced the same
// way (see millerRabinParallel).
type ParallelRhoRace struct{}

// Name returns the descriptive name of the algorithm.
func (s *ParallelRhoRace) Name() string {
	return "Parallel Rho Race"
}

// parallelPrimality marks the strategy as using the witness-partitioned
// Miller-Rabin test.
func (s *ParallelRhoRace) parallelPrimality() bool {
	return true
}

// findDivisor races opts.Workers rho searches against each other.
// Even n short-circuits to 2 without spawning workers. The outcome is the
// same factor set regardless of which worker wins: any divisor found is a
// valid divisor, and the recursive decomposition converges to the same
// multiset of primes.
func (s *ParallelRhoRace) findDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	opts = normalizeOptions(opts)

	if isEven(n) {
		return big.NewInt(2), nil
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, raceCtx := errgroup.WithContext(raceCtx)
	winner := make(chan *big.Int, 1)

	for i := 0; i < opts.Workers; i++ {
		offset := int64(i + 1)
		g.Go(parallel.Protect(func() error {
			// The shared operand is treated as read-only; each worker
			// mutates only its own copy.
			local := new(big.Int).Set(n)
			d, err := rhoSearch(raceCtx, local, offset, opts.RhoMaxIterations)
			if err != nil {
				// An exhausted worker or one stopped by the winner's
				// cancellation is not a failure of the race.
				if errors.Is(err, ErrSearchExhausted) || errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			select {
			case winner <- d:
				cancel() // first responder wins
			default:
			}
			return nil
		}))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	select {
	case d := <-winner:
		return d, nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrSearchExhausted
}
