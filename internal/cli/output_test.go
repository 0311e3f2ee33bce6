package cli

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/primelab/factorcalc/internal/ui"
)

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	factors := []*big.Int{big.NewInt(2), big.NewInt(2), big.NewInt(5)}
	if got := FormatQuietResult(factors); got != "2 2 5" {
		t.Errorf("FormatQuietResult() = %q; want %q", got, "2 2 5")
	}
	if got := FormatQuietResult(nil); got != "" {
		t.Errorf("FormatQuietResult(nil) = %q; want empty", got)
	}
}

func TestWriteResultToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.txt")
	n := big.NewInt(360)
	factors := []*big.Int{big.NewInt(2), big.NewInt(2), big.NewInt(2), big.NewInt(3), big.NewInt(3), big.NewInt(5)}

	err := WriteResultToFile(n, factors, time.Millisecond, "rho", OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	for _, want := range []string{"# Algorithm: rho", "# N: 360", "# Factors: 6", "# Distinct: 3", "360 = 2^3 x 3^2 x 5"} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}
}

func TestWriteResultToFileNoPath(t *testing.T) {
	// An empty output path is a no-op, not an error.
	if err := WriteResultToFile(big.NewInt(6), nil, 0, "rho", OutputConfig{}); err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}
}

func TestDisplayResultWithConfigQuiet(t *testing.T) {
	var out bytes.Buffer
	factors := []*big.Int{big.NewInt(7), big.NewInt(13)}

	err := DisplayResultWithConfig(&out, big.NewInt(91), factors, time.Millisecond, "rho", OutputConfig{Quiet: true})
	if err != nil {
		t.Fatalf("DisplayResultWithConfig: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "7 13" {
		t.Errorf("quiet output = %q; want %q", got, "7 13")
	}
}

func TestDisplayResultWithConfigFile(t *testing.T) {
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(prev)

	path := filepath.Join(t.TempDir(), "result.txt")
	var out bytes.Buffer
	factors := []*big.Int{big.NewInt(7), big.NewInt(13)}

	err := DisplayResultWithConfig(&out, big.NewInt(91), factors, time.Millisecond, "rho", OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("DisplayResultWithConfig: %v", err)
	}
	if !strings.Contains(out.String(), "Result saved to") {
		t.Errorf("save confirmation missing:\n%s", out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}
