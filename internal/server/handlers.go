package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/primelab/factorcalc/internal/factor"
	"github.com/primelab/factorcalc/internal/service"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleAlgorithms returns the list of available divisor-search strategies.
// It queries the internal registry and returns the keys as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	algorithms := s.factory.List()

	response := map[string]any{
		"algorithms": algorithms,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleFactorize processes requests to factorize integers.
// It parses the query parameters 'n' (the number) and 'algo' (the strategy),
// executes the factorization, and returns the result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleFactorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, algo, err := parseNumberParams(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	// Create a context with timeout for the factorization
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	factors, err := s.service.Factorize(ctx, algo, n)
	duration := time.Since(start)

	if s.handleServiceError(w, err) {
		return
	}

	resp := buildFactorizeResponse(n, algo, factors, duration, err)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleIsPrime processes primality-test requests.
// It parses the query parameters 'n' and 'algo', runs the primality test, and
// returns the verdict with its confidence qualifier in JSON format.
func (s *Server) handleIsPrime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, algo, err := parseNumberParams(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	verdict, err := s.service.IsPrime(ctx, algo, n)
	duration := time.Since(start)

	if s.handleServiceError(w, err) {
		return
	}

	resp := PrimeResponse{
		N:         n,
		Duration:  duration.String(),
		Algorithm: algo,
	}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Prime = verdict.Prime
		resp.Confidence = string(verdict.Confidence)
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleNextPrime processes next-prime requests.
// It parses the query parameter 'n' and returns the smallest prime strictly
// greater than it in JSON format.
func (s *Server) handleNextPrime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, algo, err := parseNumberParams(r)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	p, err := s.service.NextPrime(ctx, algo, n)
	duration := time.Since(start)

	if s.handleServiceError(w, err) {
		return
	}

	resp := NextPrimeResponse{
		N:        n,
		Duration: duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.NextPrime = p.String()
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// parseNumberParams extracts and validates the number parameters from the request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - n: The raw decimal number string (validated as non-empty only; full
//     numeral validation happens in the service).
//   - algo: The strategy name (defaults to "rho" if not specified).
//   - err: A ParamParseError if validation fails, nil otherwise.
func parseNumberParams(r *http.Request) (n, algo string, err error) {
	n = r.URL.Query().Get("n")
	if n == "" {
		return "", "", ParamParseError{
			Message:    "Missing 'n' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	algo = r.URL.Query().Get("algo")
	if algo == "" {
		algo = "rho" // Default strategy
	}

	return n, algo, nil
}

// handleServiceError maps well-known service failures to client errors.
// It reports whether the request has already been answered.
func (s *Server) handleServiceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrInputTooLarge):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed size (%d digits). This limit prevents resource exhaustion.", s.securityConfig.MaxDigits))
		return true
	case errors.Is(err, factor.ErrInvalidNumeral):
		s.writeErrorResponse(w, http.StatusBadRequest,
			"Invalid 'n' parameter: must be a non-negative decimal integer")
		return true
	}
	return false
}

// writeParseError converts a parameter parsing failure into an error response.
func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	if parseErr, ok := err.(ParamParseError); ok {
		s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
	} else {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	}
}

// buildFactorizeResponse constructs the response struct for a factorization.
//
// Parameters:
//   - n: The decimal number that was factorized.
//   - algo: The strategy name used.
//   - factors: The prime factors (may be nil if an error occurred).
//   - duration: The time taken for the factorization.
//   - err: Any error that occurred during factorization.
//
// Returns:
//   - FactorizeResponse: The constructed response struct.
func buildFactorizeResponse(n, algo string, factors []*big.Int, duration time.Duration, err error) FactorizeResponse {
	resp := FactorizeResponse{
		N:         n,
		Duration:  duration.String(),
		Algorithm: algo,
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Factors = make([]string, len(factors))
		for i, f := range factors {
			resp.Factors[i] = f.String()
		}
	}

	return resp
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
