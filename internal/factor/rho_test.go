package factor

import (
	"context"
	"testing"
)

func TestRhoFindsDivisor(t *testing.T) {
	cases := []string{
		"8051",          // 83 x 97
		"10403",         // 101 x 103
		"1000036000099", // 1000003 x 1000033
		"9007199254740991",
		"600851475143",
	}
	s := &PollardRho{}
	ctx := context.Background()

	for _, c := range cases {
		n, _ := ParseNumber(c)
		d, err := s.findDivisor(ctx, n, Options{})
		if err != nil {
			t.Fatalf("findDivisor(%s): %v", c, err)
		}
		assertNontrivialDivisor(t, n, d)
	}
}

func TestRhoEvenShortCircuit(t *testing.T) {
	s := &PollardRho{}
	d, err := s.findDivisor(context.Background(), mustParse(t, "123456"), Options{})
	if err != nil {
		t.Fatalf("findDivisor: %v", err)
	}
	if d.Int64() != 2 {
		t.Fatalf("findDivisor = %s, want 2", d)
	}
}

func TestRhoCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &PollardRho{}
	n := mustParse(t, rsaModulus512)
	if _, err := s.findDivisor(ctx, n, Options{}); err != context.Canceled {
		t.Fatalf("findDivisor = %v, want context.Canceled", err)
	}
}

func TestRhoSearchIterationCap(t *testing.T) {
	// A 512-bit semiprime is out of reach for a few thousand rho steps;
	// the capped search must terminate with ErrSearchExhausted, not hang.
	n := mustParse(t, rsaModulus512)
	_, err := rhoSearch(context.Background(), n, 1, 2000)
	if err != ErrSearchExhausted {
		t.Fatalf("rhoSearch = %v, want ErrSearchExhausted", err)
	}
}
