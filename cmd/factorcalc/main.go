// Command factorcalc is an arbitrary-precision integer factorization and
// primality testing tool. It supports several divisor-search strategies,
// a comparison mode that races them against each other, and an HTTP server
// mode exposing the same operations over a JSON API.
package main

import (
	"context"
	"os"

	"github.com/primelab/factorcalc/internal/app"
	apperrors "github.com/primelab/factorcalc/internal/errors"
)

func main() {
	// Handle version flag before any config parsing so it works in any position.
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
