package factor

import (
	"context"
	"errors"
	"testing"
)

func TestParallelRaceFindsDivisor(t *testing.T) {
	cases := []string{
		"8051",
		"10403",
		"1000036000099",
		"9007199254740991",
	}
	s := &ParallelRhoRace{}
	ctx := context.Background()

	for _, c := range cases {
		n := mustParse(t, c)
		d, err := s.findDivisor(ctx, n, Options{Workers: 4})
		if err != nil {
			t.Fatalf("findDivisor(%s): %v", c, err)
		}
		assertNontrivialDivisor(t, n, d)
	}
}

func TestParallelRaceEvenShortCircuit(t *testing.T) {
	s := &ParallelRhoRace{}
	d, err := s.findDivisor(context.Background(), mustParse(t, "1000000"), Options{Workers: 4})
	if err != nil {
		t.Fatalf("findDivisor: %v", err)
	}
	if d.Int64() != 2 {
		t.Fatalf("findDivisor = %s, want 2", d)
	}
}

// TestParallelRaceTerminates verifies the acceptable failure mode on a hard
// input: every worker hits its iteration cap and the race reports
// ErrSearchExhausted instead of hanging.
func TestParallelRaceTerminates(t *testing.T) {
	s := &ParallelRhoRace{}
	n := mustParse(t, rsaModulus512)
	_, err := s.findDivisor(context.Background(), n, Options{Workers: 4, RhoMaxIterations: 500})
	if !errors.Is(err, ErrSearchExhausted) {
		t.Fatalf("findDivisor = %v, want ErrSearchExhausted", err)
	}
}

// TestParallelRaceConsistentOutcome runs the race repeatedly: any worker may
// win, but the recursive decomposition must always converge to the same
// factor multiset.
func TestParallelRaceConsistentOutcome(t *testing.T) {
	fz := NewFactorizer(&ParallelRhoRace{})
	ctx := context.Background()
	n := mustParse(t, "1000036000099") // 1000003 x 1000033

	for i := 0; i < 5; i++ {
		factors, err := fz.Factorize(ctx, n, Options{Workers: 4})
		if err != nil {
			t.Fatalf("Factorize (run %d): %v", i, err)
		}
		if len(factors) != 2 || factors[0].String() != "1000003" || factors[1].String() != "1000033" {
			t.Fatalf("run %d: got %v, want [1000003 1000033]", i, factors)
		}
	}
}

func TestParallelRaceParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &ParallelRhoRace{}
	n := mustParse(t, rsaModulus512)
	_, err := s.findDivisor(ctx, n, Options{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("findDivisor = %v, want context.Canceled", err)
	}
}

func TestMillerRabinParallelAgreesWithSequential(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		n     string
		prime bool
	}{
		{"170141183460469231731687303715884105727", true}, // 2^127 - 1
		{"104729", true},
		{rsaModulus512, false},
	}

	for _, tc := range cases {
		got, err := millerRabinParallel(ctx, mustParse(t, tc.n), 40, 7)
		if err != nil {
			t.Fatalf("millerRabinParallel(%s): %v", tc.n, err)
		}
		if got != tc.prime {
			t.Errorf("millerRabinParallel(%s) = %v, want %v", tc.n, got, tc.prime)
		}
	}
}
