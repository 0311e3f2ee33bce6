//go:build gmp

// This file provides a GMP-backed rho strategy, conditionally compiled with
// the "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using math/big)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp
//
// The direct use of github.com/ncw/gmp in this file is intentional: routing
// every modular multiplication through an abstract big-integer interface
// would cost an indirection per rho step, which is exactly the hot path GMP
// is meant to speed up. Conversions to and from math/big happen only at the
// call boundary.

package factor

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	RegisterStrategy("rho-gmp", func() coreStrategy { return &RhoGMP{} })
}

// RhoGMP runs the sequential Pollard's rho search on gmp.Int arithmetic.
// It requires the 'gmp' build tag and libgmp installed on the system. The
// rho inner loop is dominated by modular multiplication of full-size
// operands, where GMP's assembly routines outperform math/big for large
// inputs; for small composites the CGO call overhead may make the plain
// strategy faster.
type RhoGMP struct{}

// Name returns the descriptive name of the algorithm.
func (s *RhoGMP) Name() string {
	return "Pollard's Rho (GMP)"
}

// findDivisor mirrors PollardRho.findDivisor with GMP arithmetic.
func (s *RhoGMP) findDivisor(ctx context.Context, n *big.Int, opts Options) (*big.Int, error) {
	if isEven(n) {
		return big.NewInt(2), nil
	}

	gn := new(gmp.Int).SetBytes(n.Bytes())
	x := gmp.NewInt(2)
	y := gmp.NewInt(2)
	c := gmp.NewInt(1)
	gOne := gmp.NewInt(1)
	diff := gmp.NewInt(0)
	d := gmp.NewInt(0)

	step := func(v *gmp.Int) {
		v.Mul(v, v)
		v.Add(v, c)
		v.Mod(v, gn)
	}

	for i := 0; ; i++ {
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
		if diff.Sign() == 0 {
			// Tortoise and hare met; the cycle holds no factor.
			return nil, ErrSearchExhausted
		}
		d.GCD(nil, nil, diff, gn)
		if d.Cmp(gOne) != 0 {
			if d.Cmp(gn) == 0 {
				return nil, ErrSearchExhausted
			}
			return new(big.Int).SetBytes(d.Bytes()), nil
		}
	}
}
