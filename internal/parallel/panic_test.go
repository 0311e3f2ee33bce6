package parallel

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestProtectPassesThroughResults(t *testing.T) {
	if err := Protect(func() error { return nil })(); err != nil {
		t.Fatalf("Protect(nil-returning fn) = %v", err)
	}

	boom := errors.New("boom")
	if err := Protect(func() error { return boom })(); err != boom {
		t.Fatalf("Protect = %v, want boom", err)
	}
}

func TestProtectConvertsPanic(t *testing.T) {
	err := Protect(func() error { panic("worker exploded") })()

	var pe PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Protect = %v, want a PanicError", err)
	}
	if !strings.Contains(pe.Error(), "worker exploded") {
		t.Errorf("PanicError message %q does not carry the panic value", pe.Error())
	}
}

// TestProtectFailsGroup verifies the integration with errgroup: a panicking
// worker fails the whole group at the join point instead of crashing the
// process.
func TestProtectFailsGroup(t *testing.T) {
	var g errgroup.Group
	g.Go(Protect(func() error { return nil }))
	g.Go(Protect(func() error { panic("racing worker died") }))

	err := g.Wait()
	var pe PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Wait = %v, want a PanicError", err)
	}
}
