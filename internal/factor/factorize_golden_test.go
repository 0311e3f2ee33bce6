package factor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// GoldenData represents the structure of our golden file entries.
type GoldenData struct {
	N       string   `json:"n"`
	Factors []string `json:"factors"`
}

func TestStrategiesAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "factorizations_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run cmd/generate-golden/main.go'?", err)
	}
	defer file.Close()

	var cases []GoldenData
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}

	strategies := map[string]Factorizer{
		"DifferenceOfSquares": NewFactorizer(&DifferenceOfSquares{}),
		"PollardRho":          NewFactorizer(&PollardRho{}),
		"ParallelRhoRace":     NewFactorizer(&ParallelRhoRace{}),
	}

	ctx := context.Background()

	for name, fz := range strategies {
		fz := fz
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				tc := tc
				t.Run(fmt.Sprintf("N=%s", tc.N), func(t *testing.T) {
					n := mustParse(t, tc.N)
					got, err := fz.Factorize(ctx, n, Options{Workers: 4})
					if err != nil {
						t.Fatalf("Factorization failed for N=%s: %v", tc.N, err)
					}
					if len(got) != len(tc.Factors) {
						t.Fatalf("Mismatch for N=%s.\nExpected: %v\nGot:      %v", tc.N, tc.Factors, got)
					}
					for i := range got {
						if got[i].String() != tc.Factors[i] {
							t.Fatalf("Mismatch for N=%s at index %d.\nExpected: %v\nGot:      %v", tc.N, i, tc.Factors, got)
						}
					}
				})
			}
		})
	}
}
