// Package parallel provides small utilities shared by the engine's
// concurrent searches: first-error collection and panic containment for
// worker goroutines.
package parallel

import "sync"

// ErrorCollector records the first error reported by a group of goroutines.
// It is safe for concurrent use.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	var wg sync.WaitGroup
//	wg.Add(workers)
//	for i := 0; i < workers; i++ {
//	    go func() {
//	        defer wg.Done()
//	        ec.SetError(work())
//	    }()
//	}
//	wg.Wait()
//	return ec.Err()
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if no error has been recorded yet. Nil errors are
// ignored. Safe to call from multiple goroutines.
func (c *ErrorCollector) SetError(err error) {
	if err != nil {
		c.once.Do(func() {
			c.err = err
		})
	}
}

// Err returns the first recorded error, or nil. It should be called after
// all contributing goroutines have finished.
func (c *ErrorCollector) Err() error {
	return c.err
}
