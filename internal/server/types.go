package server

// FactorizeResponse represents the standardized JSON response for a
// factorization request. Factors are encoded as decimal strings because they
// routinely exceed the range of JSON numbers.
type FactorizeResponse struct {
	// N is the decimal representation of the number that was factorized.
	N string `json:"n"`
	// Factors are the ascending prime factors. Omitted if an error occurred.
	Factors []string `json:"factors,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the factorization failed.
	Error string `json:"error,omitempty"`
	// Algorithm is the name of the strategy used for the divisor search.
	Algorithm string `json:"algorithm"`
}

// PrimeResponse represents the standardized JSON response for a primality request.
type PrimeResponse struct {
	// N is the decimal representation of the number that was tested.
	N string `json:"n"`
	// Prime reports the verdict of the primality test.
	Prime bool `json:"prime"`
	// Confidence qualifies the verdict ("deterministic-small" or "probabilistic").
	Confidence string `json:"confidence,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the test failed.
	Error string `json:"error,omitempty"`
	// Algorithm is the name of the strategy whose configuration was used.
	Algorithm string `json:"algorithm"`
}

// NextPrimeResponse represents the standardized JSON response for a next-prime request.
type NextPrimeResponse struct {
	// N is the decimal representation of the starting number.
	N string `json:"n"`
	// NextPrime is the smallest prime strictly greater than N.
	NextPrime string `json:"next_prime,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Error contains the error message if the search failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParamParseError represents a parameter parsing error with HTTP status.
type ParamParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParamParseError) Error() string {
	return e.Message
}
