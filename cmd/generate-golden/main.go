// Command generate-golden regenerates the golden factorization fixtures used
// by the strategy tests. The reference factorizations are produced by a plain
// trial-division oracle so the fixtures stay independent of the strategies
// under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	N       string   `json:"n"`
	Factors []string `json:"factors"`
}

func main() {
	outputDir := flag.String("out", "internal/factor/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "factorizations_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Generate factorizations for a set of interesting cases:
	// - Small primes, prime powers, and highly composite numbers
	// - Mersenne and Fermat primes
	// - Semiprimes with balanced and unbalanced factors
	// - A prime square and a deep prime power

	targets := []string{
		"2", "3", "4", "6", "12", "91", "97", "360", "1001",
		"65537", "123456",
		"600851475143", "1522605027922533",
		"999999999989", "10403", "104729", "2147483647",
		"9007199254740991", "1000000016000000063",
		"1099511627776", "847288609443", "10968163441",
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, s := range targets {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			fmt.Fprintf(os.Stderr, "Invalid target %q\n", s)
			os.Exit(1)
		}
		factors := trialDivide(n)
		strs := make([]string, len(factors))
		for i, f := range factors {
			strs[i] = f.String()
		}
		data = append(data, GoldenData{
			N:       s,
			Factors: strs,
		})
		fmt.Printf("Factored %s into %d primes\n", s, len(factors))
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// trialDivide factors n by exhaustive trial division using math/big.
// This serves as our "Oracle" using the standard library. It is slow for
// numbers with large prime factors, which bounds the set of fixture targets.
func trialDivide(n *big.Int) []*big.Int {
	var (
		factors []*big.Int
		zero    = new(big.Int)
		one     = big.NewInt(1)
		two     = big.NewInt(2)
		rem     = new(big.Int)
		sq      = new(big.Int)
	)

	n = new(big.Int).Set(n)
	d := big.NewInt(2)
	for {
		if sq.Mul(d, d); sq.Cmp(n) > 0 {
			break
		}
		if rem.Mod(n, d); rem.Cmp(zero) == 0 {
			factors = append(factors, new(big.Int).Set(d))
			n.Div(n, d)
			continue
		}
		if d.Cmp(two) == 0 {
			d.Add(d, one)
		} else {
			d.Add(d, two)
		}
	}
	if n.Cmp(one) > 0 {
		factors = append(factors, n)
	}
	return factors
}
