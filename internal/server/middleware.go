package server

import (
	"net/http"
	"time"

	"github.com/primelab/factorcalc/internal/logging"
)

// loggingMiddleware logs each request as a pair of structured events: one
// when the request arrives and one when the handler returns, carrying the
// search duration. Factorization requests can run for minutes, so the arrival
// event matters for seeing what the server is currently working on.
//
// Parameters:
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with logging capability.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Info("request received",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("client", getClientIP(r)))

		next(w, r)

		s.logger.Info("request completed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Dur("duration", time.Since(start)))
	}
}
