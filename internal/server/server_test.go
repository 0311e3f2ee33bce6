package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primelab/factorcalc/internal/config"
	"github.com/primelab/factorcalc/internal/factor"
	"github.com/primelab/factorcalc/internal/logging"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Port:              "8080",
		MillerRabinRounds: 20,
		FermatWindow:      100,
		RhoIterations:     50_000,
	}
}

// newTestServer builds a server with a permissive rate limiter so tests are
// not throttled.
func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 100_000})
	t.Cleanup(rl.Stop)
	opts = append([]Option{
		WithRateLimiter(rl),
		WithLogger(logging.NewLogger(testWriter{t}, "server-test")),
	}, opts...)
	return NewServer(factor.NewDefaultFactory(), testConfig(), opts...)
}

// testWriter routes server log output through the test log.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleAlgorithms(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/algorithms")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Algorithms []string `json:"algorithms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Algorithms, "fermat")
	assert.Contains(t, body.Algorithms, "rho")
	assert.Contains(t, body.Algorithms, "parallel")
}

func TestHandleFactorize(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/factorize?n=91&algo=rho")

	require.Equal(t, http.StatusOK, rec.Code)
	var body FactorizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "91", body.N)
	assert.Equal(t, "rho", body.Algorithm)
	assert.Equal(t, []string{"7", "13"}, body.Factors)
	assert.Empty(t, body.Error)
}

func TestHandleFactorizeDefaultsToRho(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/factorize?n=360")

	require.Equal(t, http.StatusOK, rec.Code)
	var body FactorizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rho", body.Algorithm)
	assert.Equal(t, []string{"2", "2", "2", "3", "3", "5"}, body.Factors)
}

func TestHandleFactorizeBadRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		target string
	}{
		{"missing n", "/factorize"},
		{"invalid numeral", "/factorize?n=abc"},
		{"negative numeral", "/factorize?n=-15"},
		{"unknown algorithm", "/factorize?n=91&algo=nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.target)
			if tt.name == "unknown algorithm" {
				// Strategy lookup failures surface in the response body, not
				// as an HTTP error.
				require.Equal(t, http.StatusOK, rec.Code)
				var body FactorizeResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleFactorizeInputTooLarge(t *testing.T) {
	s := newTestServer(t, WithMaxDigits(3))
	rec := doRequest(s, http.MethodGet, "/factorize?n=1234")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "maximum allowed size")
}

func TestHandleIsPrime(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/isprime?n=97")
	require.Equal(t, http.StatusOK, rec.Code)
	var body PrimeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Prime)
	assert.Equal(t, string(factor.ConfidenceDeterministic), body.Confidence)

	rec = doRequest(s, http.MethodGet, "/isprime?n=104729")
	require.Equal(t, http.StatusOK, rec.Code)
	body = PrimeResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Prime)
	assert.Equal(t, string(factor.ConfidenceProbabilistic), body.Confidence)

	rec = doRequest(s, http.MethodGet, "/isprime?n=104730")
	require.Equal(t, http.StatusOK, rec.Code)
	body = PrimeResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Prime)
}

func TestHandleNextPrime(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/nextprime?n=14")

	require.Equal(t, http.StatusOK, rec.Code)
	var body NextPrimeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "17", body.NextPrime)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{"/factorize?n=91", "/isprime?n=91", "/nextprime?n=91", "/health", "/algorithms", "/metrics"} {
		rec := doRequest(s, http.MethodPost, target)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "POST %s", target)
	}
}

func TestHandleMetrics(t *testing.T) {
	s := newTestServer(t)
	// Generate some traffic first so counters exist.
	doRequest(s, http.MethodGet, "/factorize?n=91")

	rec := doRequest(s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "factorcalc_requests_total")
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/factorize", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithTimeouts(t *testing.T) {
	custom := DefaultServerTimeouts()
	custom.RequestTimeout = 42
	s := newTestServer(t, WithTimeouts(custom))
	assert.Equal(t, custom.RequestTimeout, s.timeouts.RequestTimeout)
}
