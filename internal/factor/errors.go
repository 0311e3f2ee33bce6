package factor

import "errors"

var (
	// ErrSearchExhausted is returned when a bounded divisor search ran out
	// of candidates or iterations without finding a nontrivial divisor. It
	// is an explicit result, never silently converted into a fake factor:
	// callers must not mistake a failed factorization for a successful one.
	ErrSearchExhausted = errors.New("divisor search exhausted")

	// ErrInvalidNumeral is returned by ParseNumber when the input is not a
	// valid non-negative base-10 integer.
	ErrInvalidNumeral = errors.New("input is not a valid non-negative integer")
)
