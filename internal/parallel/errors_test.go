package parallel

import (
	"errors"
	"sync"
	"testing"
)

func TestErrorCollectorKeepsFirstError(t *testing.T) {
	var ec ErrorCollector

	first := errors.New("first")
	ec.SetError(first)
	ec.SetError(errors.New("second"))

	if ec.Err() != first {
		t.Fatalf("Err() = %v, want the first recorded error", ec.Err())
	}
}

func TestErrorCollectorIgnoresNil(t *testing.T) {
	var ec ErrorCollector
	ec.SetError(nil)
	if ec.Err() != nil {
		t.Fatalf("Err() = %v, want nil", ec.Err())
	}

	boom := errors.New("boom")
	ec.SetError(nil)
	ec.SetError(boom)
	if ec.Err() != boom {
		t.Fatalf("Err() = %v, want boom", ec.Err())
	}
}

func TestErrorCollectorConcurrent(t *testing.T) {
	var ec ErrorCollector
	var wg sync.WaitGroup

	errs := make([]error, 64)
	for i := range errs {
		errs[i] = errors.New("worker error")
	}

	wg.Add(len(errs))
	for i := range errs {
		go func(e error) {
			defer wg.Done()
			ec.SetError(e)
		}(errs[i])
	}
	wg.Wait()

	got := ec.Err()
	if got == nil {
		t.Fatal("no error recorded")
	}
	found := false
	for _, e := range errs {
		if got == e {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("recorded error %v is not one of the submitted errors", got)
	}
}
