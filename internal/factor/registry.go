package factor

// Note: StrategyFactory's Register() uses the unexported coreStrategy type,
// which makes the interface unsuitable for mockgen. Use DefaultFactory or
// hand-written spies in tests instead.

import (
	"fmt"
	"sort"
	"sync"
)

// StrategyFactory is an interface for creating Factorizer instances.
// It allows flexible strategy instantiation and registration, enabling
// dependency injection and easier testing.
type StrategyFactory interface {
	// Create creates a fresh Factorizer instance by name.
	// Returns an error if the strategy is not registered.
	Create(name string) (Factorizer, error)

	// Get returns a cached Factorizer instance by name.
	// Returns an error if the strategy is not registered.
	Get(name string) (Factorizer, error)

	// List returns a sorted list of registered strategy names.
	List() []string

	// Register adds a new strategy to the factory.
	Register(name string, creator func() coreStrategy) error

	// GetAll returns a map of all registered factorizers.
	GetAll() map[string]Factorizer
}

// DefaultFactory is the default implementation of StrategyFactory.
// It maintains a thread-safe registry of strategy creators and caches
// Factorizer instances for reuse.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreStrategy
	factorizers map[string]Factorizer
}

// NewDefaultFactory creates a new DefaultFactory with the standard
// divisor-search strategies pre-registered.
//
// Pre-registered strategies:
//   - "fermat": Difference of Squares (bounded Fermat scan)
//   - "rho": Pollard's Rho (sequential)
//   - "parallel": Parallel Rho Race (threaded rho + parallel witnesses)
//
// Returns:
//   - *DefaultFactory: A new factory with the default strategies registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreStrategy),
		factorizers: make(map[string]Factorizer),
	}

	_ = f.Register("fermat", func() coreStrategy { return &DifferenceOfSquares{} })
	_ = f.Register("rho", func() coreStrategy { return &PollardRho{} })
	_ = f.Register("parallel", func() coreStrategy { return &ParallelRhoRace{} })

	return f
}

// Register adds a new strategy to the factory. The creator function is
// called lazily when the strategy is first requested. Registering an
// existing name replaces the previous creator and drops its cached instance.
//
// Parameters:
//   - name: The unique identifier of the strategy.
//   - creator: A function producing a new coreStrategy instance.
func (f *DefaultFactory) Register(name string, creator func() coreStrategy) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.factorizers, name)
	return nil
}

// Create creates a fresh Factorizer by name. Unlike Get(), it always
// builds a new instance without caching.
//
// Parameters:
//   - name: The name of the strategy to create.
//
// Returns:
//   - Factorizer: A new Factorizer instance.
//   - error: An error if the strategy is not registered.
func (f *DefaultFactory) Create(name string) (Factorizer, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return NewFactorizer(creator()), nil
}

// Get returns a Factorizer by name. Instances are cached and reused for
// subsequent calls with the same name; this is the preferred accessor for
// most use cases.
//
// Parameters:
//   - name: The name of the strategy to retrieve.
//
// Returns:
//   - Factorizer: The cached or newly created instance.
//   - error: An error if the strategy is not registered.
func (f *DefaultFactory) Get(name string) (Factorizer, error) {
	f.mu.RLock()
	if fz, exists := f.factorizers[name]; exists {
		f.mu.RUnlock()
		return fz, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if fz, exists := f.factorizers[name]; exists {
		return fz, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}

	fz := NewFactorizer(creator())
	f.factorizers[name] = fz
	return fz, nil
}

// List returns all registered strategy names, sorted alphabetically for
// consistent ordering.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a map of all registered factorizers, lazily initializing
// any that have not been created yet. The returned map is a copy.
func (f *DefaultFactory) GetAll() map[string]Factorizer {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.factorizers[name]; !exists {
			f.factorizers[name] = NewFactorizer(creator())
		}
	}

	result := make(map[string]Factorizer, len(f.factorizers))
	for name, fz := range f.factorizers {
		result[name] = fz
	}
	return result
}

// MustGet is like Get but panics if the strategy is not registered. Useful
// in initialization code where a missing strategy is a programming error.
func (f *DefaultFactory) MustGet(name string) Factorizer {
	fz, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("factor: required strategy not found: %s", name))
	}
	return fz
}

// Has reports whether a strategy with the given name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// globalFactory is the default global factory instance.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the global factory instance. This is a convenience
// for applications that do not need multiple factories.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterStrategy registers a strategy in the global factory.
func RegisterStrategy(name string, creator func() coreStrategy) error {
	return globalFactory.Register(name, creator)
}
