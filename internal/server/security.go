package server

import (
	"net/http"
	"strings"
)

// SecurityConfig holds configuration for security headers and input bounds.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers. The API is
	// read-only, so browser-based callers are safe to allow by default.
	EnableCORS bool
	// AllowedOrigins specifies allowed CORS origins. Use "*" for all origins.
	AllowedOrigins []string
	// AllowedMethods specifies allowed HTTP methods for CORS. Every endpoint
	// is a GET query, so only GET and preflight OPTIONS are needed.
	AllowedMethods []string
	// MaxDigits is the maximum allowed decimal digit count for the 'n'
	// parameter. Factorization cost grows with the operand, so unbounded
	// inputs would let a single request monopolize the server.
	// Default: 10_000 digits.
	MaxDigits int
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDigits:      10_000,
	}
}

// originAllowed returns the configured origin entry matching the request
// origin, or "" if the origin is not allowed. A "*" entry matches anything.
func (c SecurityConfig) originAllowed(origin string) string {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return allowed
		}
	}
	return ""
}

// SecurityMiddleware adds security headers to HTTP responses. The API serves
// only JSON, so the CSP denies everything and framing is refused outright:
//   - Content Security Policy (CSP)
//   - X-Content-Type-Options
//   - X-Frame-Options
//   - X-XSS-Protection
//   - Referrer-Policy
//   - CORS headers (if enabled)
//
// Parameters:
//   - config: The security configuration.
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with security headers.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if allowedOrigin := config.originAllowed(r.Header.Get("Origin")); allowedOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
			}

			// Preflight requests end here.
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}
