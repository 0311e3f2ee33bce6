package orchestration

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/primelab/factorcalc/internal/cli"
	"github.com/primelab/factorcalc/internal/config"
	apperrors "github.com/primelab/factorcalc/internal/errors"
	"github.com/primelab/factorcalc/internal/factor"
	"github.com/primelab/factorcalc/internal/parallel"
	"github.com/primelab/factorcalc/internal/ui"
)

func useNoColorTheme(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		MillerRabinRounds: 20,
		FermatWindow:      100,
		RhoIterations:     50_000,
	}
}

func mk(vals ...int64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestExecuteFactorizations(t *testing.T) {
	useNoColorTheme(t)

	factory := factor.NewDefaultFactory()
	factorizers := cli.GetFactorizersToRun(config.AppConfig{Algo: "all"}, factory)
	if len(factorizers) < 3 {
		t.Fatalf("expected at least 3 strategies, got %d", len(factorizers))
	}

	var out bytes.Buffer
	results, err := ExecuteFactorizations(context.Background(), factorizers, big.NewInt(91), testConfig(), &out)
	if err != nil {
		t.Fatalf("ExecuteFactorizations() error = %v", err)
	}

	if len(results) != len(factorizers) {
		t.Fatalf("got %d results; want %d", len(results), len(factorizers))
	}
	want := mk(7, 13)
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s failed: %v", res.Name, res.Err)
			continue
		}
		if !equalFactorizations(res.Factors, want) {
			t.Errorf("%s returned %v; want %v", res.Name, res.Factors, want)
		}
		if res.Name == "" {
			t.Error("result is missing its strategy name")
		}
	}
}

func TestExecuteFactorizationsCanceled(t *testing.T) {
	useNoColorTheme(t)

	factory := factor.NewDefaultFactory()
	factorizers := cli.GetFactorizersToRun(config.AppConfig{Algo: "rho"}, factory)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	results, err := ExecuteFactorizations(ctx, factorizers, big.NewInt(600851475143), testConfig(), &out)
	if err != nil {
		t.Fatalf("cancellation is a per-result error, not a worker crash: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected an error from the canceled factorization")
	}
}

// crashingFactorizer simulates a strategy whose worker dies mid-search.
// Only Factorize and Name are reachable from ExecuteFactorizations; the
// embedded interface covers the rest.
type crashingFactorizer struct{ factor.Factorizer }

func (crashingFactorizer) Name() string { return "Crashing" }

func (crashingFactorizer) Factorize(ctx context.Context, n *big.Int, opts factor.Options) ([]*big.Int, error) {
	panic("corrupted search state")
}

func TestExecuteFactorizationsWorkerPanic(t *testing.T) {
	useNoColorTheme(t)

	factory := factor.NewDefaultFactory()
	rho, err := factory.Get("rho")
	if err != nil {
		t.Fatalf("Get(rho) failed: %v", err)
	}
	factorizers := []factor.Factorizer{crashingFactorizer{}, rho}

	var out bytes.Buffer
	results, err := ExecuteFactorizations(context.Background(), factorizers, big.NewInt(91), testConfig(), &out)
	if err == nil {
		t.Fatal("expected the worker panic to surface at the join point")
	}
	var pe parallel.PanicError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v; want a parallel.PanicError", err)
	}

	// The crash is recorded against its own slot and does not disturb the
	// healthy strategy.
	if results[0].Err == nil || results[0].Name != "Crashing" {
		t.Errorf("crashed slot = %+v; want named result with an error", results[0])
	}
	if results[1].Err != nil {
		t.Fatalf("healthy strategy failed: %v", results[1].Err)
	}
	if !equalFactorizations(results[1].Factors, mk(7, 13)) {
		t.Errorf("healthy strategy returned %v; want [7 13]", results[1].Factors)
	}
}

func TestEqualFactorizations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		a, b  []*big.Int
		equal bool
	}{
		{"identical", mk(2, 3, 5), mk(2, 3, 5), true},
		{"different length", mk(2, 3), mk(2, 3, 5), false},
		{"different values", mk(2, 3, 5), mk(2, 3, 7), false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := equalFactorizations(tt.a, tt.b); got != tt.equal {
				t.Errorf("equalFactorizations() = %v; want %v", got, tt.equal)
			}
		})
	}
}

func TestAnalyzeComparisonResultsSuccess(t *testing.T) {
	useNoColorTheme(t)

	results := []FactorizationResult{
		{Name: "Pollard Rho", Factors: mk(7, 13), Duration: time.Millisecond},
		{Name: "Fermat", Factors: mk(7, 13), Duration: 2 * time.Millisecond},
	}

	var out bytes.Buffer
	code := AnalyzeComparisonResults(results, big.NewInt(91), testConfig(), &out)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d; want %d", code, apperrors.ExitSuccess)
	}
	for _, want := range []string{"Comparison Summary", "Pollard Rho", "Fermat", "✅ Success", "All valid results are consistent", "7 x 13"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestAnalyzeComparisonResultsMismatch(t *testing.T) {
	useNoColorTheme(t)

	results := []FactorizationResult{
		{Name: "Pollard Rho", Factors: mk(7, 13), Duration: time.Millisecond},
		{Name: "Fermat", Factors: mk(91), Duration: 2 * time.Millisecond},
	}

	var out bytes.Buffer
	code := AnalyzeComparisonResults(results, big.NewInt(91), testConfig(), &out)
	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d; want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(out.String(), "inconsistency") {
		t.Errorf("mismatch message missing:\n%s", out.String())
	}
}

func TestAnalyzeComparisonResultsPartialFailure(t *testing.T) {
	useNoColorTheme(t)

	// One strategy exhausting its search space does not fail the run as long
	// as another succeeds.
	results := []FactorizationResult{
		{Name: "Fermat", Err: factor.ErrSearchExhausted, Duration: time.Millisecond},
		{Name: "Pollard Rho", Factors: mk(71, 839, 1471, 6857), Duration: 2 * time.Millisecond},
	}

	var out bytes.Buffer
	code := AnalyzeComparisonResults(results, big.NewInt(600851475143), testConfig(), &out)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d; want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "❌ Failure") {
		t.Errorf("failure row missing:\n%s", out.String())
	}
}

func TestAnalyzeComparisonResultsAllFailed(t *testing.T) {
	useNoColorTheme(t)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []FactorizationResult{
				{Name: "Pollard Rho", Err: tt.err, Duration: time.Millisecond},
			}

			var out bytes.Buffer
			code := AnalyzeComparisonResults(results, big.NewInt(91), testConfig(), &out)
			if code != tt.expected {
				t.Errorf("exit code = %d; want %d", code, tt.expected)
			}
			if !strings.Contains(out.String(), "No strategy could complete") {
				t.Errorf("global failure message missing:\n%s", out.String())
			}
		})
	}
}
