package factor

import (
	"context"
	"math/big"
)

// DifferenceOfSquares is the simplest divisor-search strategy: a Fermat
// factorization restricted to a small search window. It looks for
// q >= ceil(sqrt(n)) such that q^2 - n is a perfect square a^2, which gives
// n = (q+a)(q-a). The scan is deliberately bounded (FermatMaxCandidates,
// default 1000) to keep the worst case predictable; it is only effective
// when the two factors of n are close in magnitude.
type DifferenceOfSquares struct{}

// Name returns the descriptive name of the algorithm.
func (s *DifferenceOfSquares) Name() string {
	return "Difference of Squares (Fermat, bounded)"
}

// findDivisor searches for one nontrivial divisor of n.
// Even n short-circuits to 2. A perfect square yields its root immediately
// (the q = sqrt(n), a = 0 case of the identity). Otherwise q scans upward
// from ceil(sqrt(n)); candidate hits whose factor pair is trivial
// (q - a == 1, i.e. the pair (1, n)) are skipped and the scan continues.
func (s *DifferenceOfSquares) findDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	opts = normalizeOptions(opts)

	if isEven(n) {
		return big.NewInt(2), nil
	}

	root := new(big.Int).Sqrt(n)
	if new(big.Int).Mul(root, root).Cmp(n) == 0 {
		return root, nil
	}

	// For a non-square n, floor(sqrt(n)) + 1 == ceil(sqrt(n)).
	q := new(big.Int).Add(root, one)
	diff := new(big.Int)
	a := new(big.Int)
	square := new(big.Int)

	for i := 0; i < opts.FermatMaxCandidates; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		diff.Mul(q, q).Sub(diff, n)
		a.Sqrt(diff)
		if square.Mul(a, a).Cmp(diff) == 0 {
			d := new(big.Int).Sub(q, a)
			if d.Cmp(one) > 0 && d.Cmp(n) < 0 {
				return d, nil
			}
			// Trivial pair (1, n); keep scanning.
		}
		q.Add(q, one)
	}
	return nil, ErrSearchExhausted
}
