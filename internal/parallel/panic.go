package parallel

import "fmt"

// PanicError wraps a recovered panic value so that a worker crash surfaces
// at the join point as an ordinary error instead of tearing down the process
// or, worse, silently vanishing and letting the caller return a partial
// result.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
}

// Error returns the error message for a PanicError.
func (e PanicError) Error() string {
	return fmt.Sprintf("worker panicked: %v", e.Value)
}

// Protect wraps fn so that a panic inside it is recovered and converted into
// a PanicError. The returned function is suitable for errgroup.Group.Go:
// the panic of any worker fails the whole group rather than crashing it.
//
// Parameters:
//   - fn: The worker body to protect.
//
// Returns:
//   - func() error: The protected worker body.
func Protect(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = PanicError{Value: r}
			}
		}()
		return fn()
	}
}
