package factor

import (
	"context"
	"math/big"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/primelab/factorcalc/internal/parallel"
)

// millerRabinParallel distributes the Miller-Rabin witness rounds across
// `workers` goroutines. The index space [0, rounds) is partitioned into
// deterministic, balanced WitnessRanges; each worker executes its range
// against thread-local copies of the shared operands and raises the shared
// compositeness flag the instant one of its rounds produces a proof. Workers
// poll the flag between rounds and stop early once it is set.
//
// The result is the negation of the flag after all workers have joined:
// absence of a compositeness proof from every worker implies probable
// primality, so workers never need to agree on a positive verdict.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - n: The candidate (odd, above the deterministic limit).
//   - rounds: The total number of witness rounds.
//   - workers: The number of goroutines to spread the rounds over.
//
// Returns:
//   - bool: true if no worker proved compositeness.
//   - error: A worker panic, randomness failure, or parent context error.
func millerRabinParallel(ctx context.Context, n *big.Int, rounds, workers int) (bool, error) {
	if workers <= 1 || rounds < 2 {
		return millerRabin(ctx, n, rounds)
	}

	ranges := PartitionWitnesses(rounds, workers)

	testCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var composite atomic.Bool
	g, testCtx := errgroup.WithContext(testCtx)

	for _, wr := range ranges {
		g.Go(parallel.Protect(func() error {
			// Thread-local copies: the shared handles stay read-only for
			// the duration of the race.
			local := new(big.Int).Set(n)
			nMinus1 := new(big.Int).Sub(local, one)
			d, s := decompose(nMinus1)

			for i := wr.Start; i < wr.End; i++ {
				if composite.Load() {
					return nil
				}
				select {
				case <-testCtx.Done():
					return nil
				default:
				}
				a, err := randomWitness(local)
				if err != nil {
					return err
				}
				if !millerRabinRound(local, nMinus1, d, s, a) {
					composite.Store(true)
					cancel() // no point finishing the other ranges
					return nil
				}
			}
			return nil
		}))
	}

	if err := g.Wait(); err != nil {
		return false, err
	}
	if composite.Load() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}
