package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primelab/factorcalc/internal/config"
	"github.com/primelab/factorcalc/internal/factor"
)

func newTestService(maxDigits int) *FactorizationService {
	cfg := config.AppConfig{
		MillerRabinRounds: 20,
		FermatWindow:      100,
		RhoIterations:     50_000,
	}
	return NewFactorizationService(factor.NewDefaultFactory(), cfg, maxDigits)
}

func TestNewFactorizationService(t *testing.T) {
	svc := newTestService(100)
	require.NotNil(t, svc)
	assert.NotNil(t, svc.factory)
	assert.Equal(t, 100, svc.maxDigits)
}

func TestServiceFactorize(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	factors, err := svc.Factorize(ctx, "rho", "91")
	require.NoError(t, err)
	require.Len(t, factors, 2)
	assert.Equal(t, "7", factors[0].String())
	assert.Equal(t, "13", factors[1].String())
}

func TestServiceFactorizeUnknownAlgorithm(t *testing.T) {
	svc := newTestService(100)
	_, err := svc.Factorize(context.Background(), "unknown", "91")
	assert.Error(t, err)
}

func TestServiceFactorizeInvalidInput(t *testing.T) {
	svc := newTestService(100)
	for _, input := range []string{"", "abc", "-15", "12.5"} {
		_, err := svc.Factorize(context.Background(), "rho", input)
		assert.ErrorIs(t, err, factor.ErrInvalidNumeral, "input %q", input)
	}
}

func TestServiceFactorizeInputTooLarge(t *testing.T) {
	svc := newTestService(3)
	_, err := svc.Factorize(context.Background(), "rho", "1234")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	// At the limit is still accepted.
	_, err = svc.Factorize(context.Background(), "rho", "997")
	assert.NoError(t, err)
}

func TestServiceFactorizeNoDigitLimit(t *testing.T) {
	svc := newTestService(0)
	factors, err := svc.Factorize(context.Background(), "rho", "600851475143")
	require.NoError(t, err)
	assert.Equal(t, "6857", factors[len(factors)-1].String())
}

func TestServiceIsPrime(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	v, err := svc.IsPrime(ctx, "parallel", "104729")
	require.NoError(t, err)
	assert.True(t, v.Prime)

	v, err = svc.IsPrime(ctx, "parallel", "104730")
	require.NoError(t, err)
	assert.False(t, v.Prime)
}

func TestServiceNextPrime(t *testing.T) {
	svc := newTestService(100)
	ctx := context.Background()

	p, err := svc.NextPrime(ctx, "rho", "14")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(17), p)

	p, err = svc.NextPrime(ctx, "rho", "0")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), p)
}

func TestServiceCanceledContext(t *testing.T) {
	svc := newTestService(100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Factorize(ctx, "rho", "600851475143")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
