package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter enforces a fixed-window request budget per client IP.
// A single factorization request can pin a CPU core for its full timeout, so
// the per-client budget is deliberately small; cheap read-only endpoints such
// as /health and /metrics can be exempted so probes and scrapers are never
// throttled by a client hammering /factorize.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientWindow
	rate     int           // budget per window
	window   time.Duration // window duration
	exempt   map[string]struct{}
	cleanup  time.Duration
	stopChan chan struct{}
}

// clientWindow tracks the remaining budget of a single client and the time
// at which that budget resets.
type clientWindow struct {
	remaining int
	resetAt   time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the per-client budget of search requests within a
	// one-minute window. Default: 60.
	RequestsPerMinute int
	// ExemptPaths lists endpoints that bypass the limiter entirely.
	// Default: /health and /metrics.
	ExemptPaths []string
	// CleanupInterval is how often expired client windows are dropped.
	// Default: 5 minutes.
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default limiter configuration:
// 60 requests per minute per client, with the liveness and metrics endpoints
// exempt.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		ExemptPaths:       []string{"/health", "/metrics"},
		CleanupInterval:   5 * time.Minute,
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
//
// Parameters:
//   - config: The rate limiter configuration.
//
// Returns:
//   - *RateLimiter: A new rate limiter instance.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		rate:     config.RequestsPerMinute,
		window:   time.Minute,
		exempt:   make(map[string]struct{}, len(config.ExemptPaths)),
		cleanup:  config.CleanupInterval,
		stopChan: make(chan struct{}),
	}
	for _, p := range config.ExemptPaths {
		rl.exempt[p] = struct{}{}
	}

	go rl.cleanupLoop()

	return rl
}

// Allow consumes one unit of the client's budget, opening a fresh window if
// the previous one has expired. It reports false once the budget for the
// current window is spent.
//
// Parameters:
//   - clientIP: The client's IP address.
//
// Returns:
//   - bool: true if the request is allowed, false if rate limited.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, ok := rl.clients[clientIP]
	if !ok || now.After(client.resetAt) {
		rl.clients[clientIP] = &clientWindow{
			remaining: rl.rate - 1,
			resetAt:   now.Add(rl.window),
		}
		return true
	}

	if client.remaining > 0 {
		client.remaining--
		return true
	}

	return false
}

// cleanupLoop drops client windows that have been expired for a full extra
// window, bounding the map size against client address churn.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, client := range rl.clients {
				if now.Sub(client.resetAt) > rl.window {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopChan:
			return
		}
	}
}

// Stop stops the rate limiter's background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

// RateLimitMiddleware rejects requests from clients that have spent their
// window budget with 429 and a Retry-After hint. Exempt endpoints pass
// through untouched.
//
// Parameters:
//   - rl: The rate limiter to use.
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with rate limiting capability.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(rl.window.Seconds()))

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := rl.exempt[r.URL.Path]; ok {
			next(w, r)
			return
		}

		if !rl.Allow(getClientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Please try again later."}`))
			return
		}

		next(w, r)
	}
}

// getClientIP extracts the client IP address from the request, preferring
// proxy headers over the socket address so limits follow the original client
// through load balancers.
//
// The function follows this priority:
//  1. X-Forwarded-For header (first IP in the comma-separated list)
//  2. X-Real-IP header
//  3. RemoteAddr (with port stripped)
//
// Parameters:
//   - r: The HTTP request.
//
// Returns:
//   - string: The client IP address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return extractFirstIP(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return stripPort(r.RemoteAddr)
}

// extractFirstIP extracts the first IP address from a comma-separated list.
// In an X-Forwarded-For chain the first entry is the original client; later
// entries are intermediaries.
//
// Parameters:
//   - xff: A comma-separated list of IP addresses.
//
// Returns:
//   - string: The first IP address, trimmed of whitespace.
func extractFirstIP(xff string) string {
	if idx := strings.IndexByte(xff, ','); idx != -1 {
		return strings.TrimSpace(xff[:idx])
	}
	return strings.TrimSpace(xff)
}

// stripPort removes the port from an address string.
// It uses net.SplitHostPort for proper handling of both IPv4 and IPv6
// addresses.
//
// Examples:
//   - "127.0.0.1:8080" -> "127.0.0.1"
//   - "[::1]:8080" -> "::1"
//   - "192.168.1.1" -> "192.168.1.1" (no port)
//
// Parameters:
//   - addr: The address string, potentially with a port.
//
// Returns:
//   - string: The IP address without the port.
func stripPort(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// No port, or an unparsable address. Strip IPv6 brackets and use it
		// as the key.
		return strings.Trim(addr, "[]")
	}
	return host
}
