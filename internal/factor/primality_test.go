package factor

import (
	"context"
	"math/big"
	"testing"
)

// sieve returns primality ground truth for [0, limit] via Eratosthenes.
func sieve(limit int) []bool {
	isPrime := make([]bool, limit+1)
	for i := 2; i <= limit; i++ {
		isPrime[i] = true
	}
	for i := 2; i*i <= limit; i++ {
		if isPrime[i] {
			for j := i * i; j <= limit; j += i {
				isPrime[j] = false
			}
		}
	}
	return isPrime
}

func TestIsPrimeMatchesSieve(t *testing.T) {
	const limit = 10_000
	truth := sieve(limit)
	ctx := context.Background()

	for _, name := range GlobalFactory().List() {
		t.Run(name, func(t *testing.T) {
			fz := GlobalFactory().MustGet(name)
			for i := 0; i <= limit; i++ {
				v, err := fz.IsPrime(ctx, big.NewInt(int64(i)), Options{})
				if err != nil {
					t.Fatalf("IsPrime(%d) returned error: %v", i, err)
				}
				if v.Prime != truth[i] {
					t.Fatalf("IsPrime(%d) = %v, want %v", i, v.Prime, truth[i])
				}
			}
		})
	}
}

func TestIsPrimeConfidence(t *testing.T) {
	ctx := context.Background()
	fz := GlobalFactory().MustGet("rho")

	cases := []struct {
		name       string
		n          string
		prime      bool
		confidence Confidence
	}{
		{"zero", "0", false, ConfidenceDeterministic},
		{"one", "1", false, ConfidenceDeterministic},
		{"two", "2", true, ConfidenceDeterministic},
		{"small prime in table", "97", true, ConfidenceDeterministic},
		{"small composite", "91", false, ConfidenceDeterministic},
		{"even", "1000000", false, ConfidenceDeterministic},
		{"large prime", "104729", true, ConfidenceProbabilistic},
		{"mersenne prime", "170141183460469231731687303715884105727", true, ConfidenceProbabilistic},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseNumber(tc.n)
			if err != nil {
				t.Fatalf("ParseNumber(%q): %v", tc.n, err)
			}
			v, err := fz.IsPrime(ctx, n, Options{})
			if err != nil {
				t.Fatalf("IsPrime(%s): %v", tc.n, err)
			}
			if v.Prime != tc.prime {
				t.Errorf("IsPrime(%s).Prime = %v, want %v", tc.n, v.Prime, tc.prime)
			}
			if v.Confidence != tc.confidence {
				t.Errorf("IsPrime(%s).Confidence = %q, want %q", tc.n, v.Confidence, tc.confidence)
			}
		})
	}
}

// TestIsPrimeIdempotent verifies that repeated queries on the same number
// with the same round count produce the same verdict.
func TestIsPrimeIdempotent(t *testing.T) {
	ctx := context.Background()
	fz := GlobalFactory().MustGet("parallel")
	n, _ := ParseNumber("170141183460469231731687303715884105727")

	first, err := fz.IsPrime(ctx, n, Options{MillerRabinRounds: 25, Workers: 4})
	if err != nil {
		t.Fatalf("IsPrime: %v", err)
	}
	for i := 0; i < 10; i++ {
		v, err := fz.IsPrime(ctx, n, Options{MillerRabinRounds: 25, Workers: 4})
		if err != nil {
			t.Fatalf("IsPrime (repeat %d): %v", i, err)
		}
		if v != first {
			t.Fatalf("verdict changed between calls: %+v vs %+v", first, v)
		}
	}
}

// TestIsPrimeRejectsRSAModulus checks that a 512-bit semiprime with two
// 256-bit prime factors is classified composite.
func TestIsPrimeRejectsRSAModulus(t *testing.T) {
	ctx := context.Background()
	n, err := ParseNumber(rsaModulus512)
	if err != nil {
		t.Fatalf("ParseNumber: %v", err)
	}
	for _, name := range GlobalFactory().List() {
		fz := GlobalFactory().MustGet(name)
		v, err := fz.IsPrime(ctx, n, Options{Workers: 4})
		if err != nil {
			t.Fatalf("%s: IsPrime: %v", name, err)
		}
		if v.Prime {
			t.Errorf("%s: 512-bit semiprime accepted as prime", name)
		}
	}
}

func TestIsPrimeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fz := GlobalFactory().MustGet("rho")
	n, _ := ParseNumber("170141183460469231731687303715884105727")
	if _, err := fz.IsPrime(ctx, n, Options{}); err == nil {
		t.Fatal("expected a context error from a canceled context")
	}
}

func TestDecompose(t *testing.T) {
	cases := []struct {
		nMinus1 int64
		d       int64
		s       uint
	}{
		{4, 1, 2},
		{12, 3, 2},
		{96, 3, 5},
		{100, 25, 2},
	}
	for _, tc := range cases {
		d, s := decompose(big.NewInt(tc.nMinus1))
		if d.Int64() != tc.d || s != tc.s {
			t.Errorf("decompose(%d) = (%s, %d), want (%d, %d)", tc.nMinus1, d, s, tc.d, tc.s)
		}
	}
}

func TestRandomWitnessRange(t *testing.T) {
	n := big.NewInt(101)
	lo := big.NewInt(2)
	hi := big.NewInt(99) // n-2
	for i := 0; i < 500; i++ {
		a, err := randomWitness(n)
		if err != nil {
			t.Fatalf("randomWitness: %v", err)
		}
		if a.Cmp(lo) < 0 || a.Cmp(hi) > 0 {
			t.Fatalf("witness %s outside [2, n-2]", a)
		}
	}
}
