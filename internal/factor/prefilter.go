package factor

import "math/big"

// provenComposite is the structural pre-filter: a cheap compositeness screen
// run before the expensive probabilistic test. It trial-divides by the small
// prime table and then evaluates Fermat's little theorem at base 2
// (2^(n-1) mod n == 1). A failed check proves compositeness outright; a pass
// is only a hint and never proof (Fermat pseudoprimes such as 341 pass the
// base-2 congruence), so Miller-Rabin still runs afterwards.
//
// Callers guarantee n is odd and greater than the small-prime table maximum.
//
// Parameters:
//   - n: The candidate to screen.
//
// Returns:
//   - bool: true if n is proven composite.
func provenComposite(n *big.Int) bool {
	rem := new(big.Int)
	p := new(big.Int)
	for _, sp := range smallPrimes {
		p.SetInt64(sp)
		if rem.Mod(n, p).Sign() == 0 && n.Cmp(p) != 0 {
			return true
		}
	}

	nMinus1 := new(big.Int).Sub(n, one)
	fermat := new(big.Int).Exp(two, nMinus1, n)
	return fermat.Cmp(one) != 0
}
