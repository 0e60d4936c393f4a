package main

import "net/http"

// rateLimitMiddleware enforces the global limiter. Scrapes are never limited.
func (s *server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		if !s.rateLimiter.Allow() {
			// Set headers before writing status/body
			w.Header().Set("Retry-After", "1")
			writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			s.metrics.reject("rate_limit")
			return
		}
		next.ServeHTTP(w, r)
	})
}
