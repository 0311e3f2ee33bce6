package factor

import (
	"context"
	"math/big"
)

// cancelCheckInterval controls how often the rho loop polls its context.
// Checking every iteration would cost a select per modular multiplication;
// every 256 steps keeps cancellation latency in the microsecond range.
const cancelCheckInterval = 256

// PollardRho is the classic single-threaded cycle-detection divisor search.
// It iterates x_{i+1} = x_i^2 + c mod n with Floyd's tortoise-and-hare
// scheme and extracts a divisor via gcd(|x - y|, n). Expected running time
// is proportional to n^(1/4), which makes it vastly more effective than the
// bounded Fermat scan for factors of unequal magnitude.
type PollardRho struct{}

// Name returns the descriptive name of the algorithm.
func (s *PollardRho) Name() string {
	return "Pollard's Rho"
}

// findDivisor searches for one nontrivial divisor of n. Even n
// short-circuits to 2. The search loop itself is unbounded (the mathematics
// terminates quickly in the overwhelming majority of cases) and relies on
// the context for cancellation. If the cycle collapses without producing a
// proper factor (gcd == n), the search reports ErrSearchExhausted and the
// caller may fall back to another method.
func (s *PollardRho) findDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	if isEven(n) {
		return big.NewInt(2), nil
	}
	return rhoSearch(ctx, n, 1, 0)
}

// rhoSearch runs the rho loop over f(v) = v^2 + offset mod n. A maxIterations
// of 0 means unbounded. It is shared by the sequential strategy (offset 1,
// unbounded) and the parallel race workers (distinct offsets, capped).
//
// Parameters:
//   - ctx: The context, polled every cancelCheckInterval steps.
//   - n: The odd composite to factor.
//   - offset: The additive constant of the polynomial, decorrelating
//     search paths across workers.
//   - maxIterations: The iteration cap, or 0 for no cap.
//
// Returns:
//   - *big.Int: A divisor d with 1 < d < n.
//   - error: ErrSearchExhausted if the cycle collapsed or the cap was
//     reached, or a context error.
func rhoSearch(ctx context.Context, n *big.Int, offset int64, maxIterations int) (*big.Int, error) {
	x := big.NewInt(2)
	y := big.NewInt(2)
	c := big.NewInt(offset)
	diff := new(big.Int)
	d := new(big.Int)

	step := func(v *big.Int) {
		v.Mul(v, v)
		v.Add(v, c)
		v.Mod(v, n)
	}

	for i := 0; maxIterations == 0 || i < maxIterations; i++ {
		if i%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		step(x)
		step(y)
		step(y)

		diff.Sub(x, y)
		diff.Abs(diff)
		d.GCD(nil, nil, diff, n)
		if d.Cmp(one) != 0 {
			if d.Cmp(n) == 0 {
				// Cycle collapsed without a proper factor; a retry
				// with a different offset may succeed.
				return nil, ErrSearchExhausted
			}
			return d, nil
		}
	}
	return nil, ErrSearchExhausted
}
