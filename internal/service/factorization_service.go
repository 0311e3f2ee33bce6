package service

//go:generate mockgen -source=factorization_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"math/big"

	"github.com/primelab/factorcalc/internal/config"
	"github.com/primelab/factorcalc/internal/factor"
)

var (
	// ErrInputTooLarge is returned when the input exceeds the configured
	// maximum digit count.
	ErrInputTooLarge = errors.New("maximum input size exceeded")
)

// Service defines the interface for factorization services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Factorize computes the ascending prime factorization of the given
	// decimal number using the named strategy.
	Factorize(ctx context.Context, algoName, number string) ([]*big.Int, error)

	// IsPrime tests the given decimal number for primality using the named
	// strategy's primality configuration.
	IsPrime(ctx context.Context, algoName, number string) (factor.Verdict, error)

	// NextPrime returns the smallest prime strictly greater than the given
	// decimal number.
	NextPrime(ctx context.Context, algoName, number string) (*big.Int, error)
}

// FactorizationService handles the core logic for factorizing integers.
// It centralizes input parsing, size validation, strategy retrieval, and
// execution options. Implements the Service interface.
type FactorizationService struct {
	factory   factor.StrategyFactory
	config    config.AppConfig
	maxDigits int
}

// Ensure FactorizationService implements Service interface.
var _ Service = (*FactorizationService)(nil)

// NewFactorizationService creates a new instance of FactorizationService.
//
// Parameters:
//   - factory: The factory to retrieve strategies from.
//   - cfg: The application configuration.
//   - maxDigits: The maximum allowed decimal digit count (0 for no limit).
func NewFactorizationService(factory factor.StrategyFactory, cfg config.AppConfig, maxDigits int) *FactorizationService {
	return &FactorizationService{
		factory:   factory,
		config:    cfg,
		maxDigits: maxDigits,
	}
}

// parseInput converts a decimal string into a validated *big.Int, enforcing
// the configured digit limit before any expensive arithmetic runs.
func (s *FactorizationService) parseInput(number string) (*big.Int, error) {
	n, err := factor.ParseNumber(number)
	if err != nil {
		return nil, err
	}
	if s.maxDigits > 0 && len(n.Text(10)) > s.maxDigits {
		return nil, ErrInputTooLarge
	}
	return n, nil
}

// Factorize retrieves the requested strategy and computes the prime
// factorization with the configured options. It also performs validation on
// the input number.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - algoName: The name of the strategy to use.
//   - number: The decimal representation of the integer to factorize.
//
// Returns:
//   - []*big.Int: The ascending prime factors.
//   - error: An error if validation or factorization fails.
func (s *FactorizationService) Factorize(ctx context.Context, algoName, number string) ([]*big.Int, error) {
	n, err := s.parseInput(number)
	if err != nil {
		return nil, err
	}
	fz, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}
	return fz.Factorize(ctx, n, s.config.ToFactorOptions())
}

// IsPrime retrieves the requested strategy and tests the input for primality
// with the configured options.
func (s *FactorizationService) IsPrime(ctx context.Context, algoName, number string) (factor.Verdict, error) {
	n, err := s.parseInput(number)
	if err != nil {
		return factor.Verdict{}, err
	}
	fz, err := s.factory.Get(algoName)
	if err != nil {
		return factor.Verdict{}, err
	}
	return fz.IsPrime(ctx, n, s.config.ToFactorOptions())
}

// NextPrime retrieves the requested strategy and returns the smallest prime
// strictly greater than the input.
func (s *FactorizationService) NextPrime(ctx context.Context, algoName, number string) (*big.Int, error) {
	n, err := s.parseInput(number)
	if err != nil {
		return nil, err
	}
	fz, err := s.factory.Get(algoName)
	if err != nil {
		return nil, err
	}
	return fz.NextPrime(ctx, n, s.config.ToFactorOptions())
}
