package factor

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// smallPrimes is the fixed trial-division table: the 24 odd primes from 3 to
// 97 inclusive. 2 is handled separately because even numbers are rejected
// before the table is consulted.
var smallPrimes = [...]int64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// deterministicLimit is the threshold below which primality is settled by
// plain trial division. Above it the engine only ever claims probable
// primality.
const deterministicLimit = 100

// Shared small constants. These are read-only; nothing in the package may
// mutate them.
var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// isEven reports whether n is even.
func isEven(n *big.Int) bool {
	return n.Bit(0) == 0
}

// classifySmall settles the cheap cases of the primality algorithm:
// n < 2, n in {2, 3}, even n, divisibility by (or equality with) a small
// prime, and deterministic trial division for n <= 100. The second return
// value reports whether a decisive verdict was reached.
func classifySmall(n *big.Int) (Verdict, bool) {
	if n.Cmp(two) < 0 {
		return Verdict{Prime: false, Confidence: ConfidenceDeterministic}, true
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return Verdict{Prime: true, Confidence: ConfidenceDeterministic}, true
	}
	if isEven(n) {
		return Verdict{Prime: false, Confidence: ConfidenceDeterministic}, true
	}

	rem := new(big.Int)
	p := new(big.Int)
	for _, sp := range smallPrimes {
		p.SetInt64(sp)
		if n.Cmp(p) == 0 {
			return Verdict{Prime: true, Confidence: ConfidenceDeterministic}, true
		}
		if rem.Mod(n, p).Sign() == 0 {
			return Verdict{Prime: false, Confidence: ConfidenceDeterministic}, true
		}
	}

	if n.IsInt64() && n.Int64() <= deterministicLimit {
		return Verdict{Prime: isPrimeTrialDivision(n.Int64()), Confidence: ConfidenceDeterministic}, true
	}
	return Verdict{}, false
}

// isPrimeTrialDivision settles primality of a small odd n by trial division
// up to sqrt(n), stepping by 2. Callers guarantee n is odd, > 3, and not
// divisible by any entry of smallPrimes; within the deterministic limit that
// makes the loop body unreachable, but the function stays honest for any odd
// input.
func isPrimeTrialDivision(n int64) bool {
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// decompose writes n-1 = d * 2^s with d odd.
//
// Parameters:
//   - nMinus1: The even number to decompose (n-1 for odd n > 2).
//
// Returns:
//   - *big.Int: The odd cofactor d.
//   - uint: The exponent s.
func decompose(nMinus1 *big.Int) (*big.Int, uint) {
	d := new(big.Int).Set(nMinus1)
	var s uint
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	return d, s
}

// randomWitness draws a uniform random base in [2, n-2] using crypto/rand.
// Callers guarantee n > 4 so the interval is non-empty.
func randomWitness(n *big.Int) (*big.Int, error) {
	limit := new(big.Int).Sub(n, three) // |[2, n-2]| = n-3
	a, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, fmt.Errorf("drawing Miller-Rabin witness: %w", err)
	}
	return a.Add(a, two), nil
}

// millerRabinRound executes one witness round. It computes y = a^d mod n and
// follows the squaring chain: the round passes if y ever reaches 1 or n-1 at
// the right position, and proves compositeness otherwise. A squaring that
// yields 1 exposes a nontrivial square root of unity, which is an immediate
// compositeness proof.
//
// Returns:
//   - bool: true if the round is inconclusive (n may be prime), false if n
//     is proven composite.
func millerRabinRound(n, nMinus1, d *big.Int, s uint, a *big.Int) bool {
	y := new(big.Int).Exp(a, d, n)
	if y.Cmp(one) == 0 || y.Cmp(nMinus1) == 0 {
		return true
	}
	for i := uint(1); i < s; i++ {
		y.Mul(y, y).Mod(y, n)
		if y.Cmp(one) == 0 {
			return false
		}
		if y.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// millerRabin runs the sequential Miller-Rabin test with the given number of
// independent witness rounds. n is accepted as probably prime only if every
// round is inconclusive; the false-positive probability is bounded by
// 4^-rounds. Callers guarantee n is odd and above the deterministic limit.
//
// Parameters:
//   - ctx: The context, checked between rounds.
//   - n: The candidate.
//   - rounds: The number of witness rounds (>= 1).
//
// Returns:
//   - bool: true if n passed every round.
//   - error: A context or randomness error.
func millerRabin(ctx context.Context, n *big.Int, rounds int) (bool, error) {
	nMinus1 := new(big.Int).Sub(n, one)
	d, s := decompose(nMinus1)

	for i := 0; i < rounds; i++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}
		a, err := randomWitness(n)
		if err != nil {
			return false, err
		}
		if !millerRabinRound(n, nMinus1, d, s, a) {
			return false, nil
		}
	}
	return true, nil
}
