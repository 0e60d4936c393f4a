package main

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// timingMiddleware records latency and logs every request. The exit hook is
// deferred so it also runs when the handler panics.
func (s *server) timingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		defer func() {
			rec := recover()
			// ErrAbortHandler is re-raised below so net/http drops the connection.
			aborted := rec == http.ErrAbortHandler
			if rec != nil && !aborted {
				s.log.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				// Once a header is out, the client keeps that status.
				if !rw.written {
					writeJSONError(rw, http.StatusInternalServerError, "Internal server error")
				}
			}

			elapsed := time.Since(start)
			s.metrics.observeLatency(r.Method, rw.statusCode, r.URL.Path, elapsed)

			if s.config.LogRequests {
				s.log.Info("request",
					zap.String("client_ip", getClientIP(r)),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Int("status", rw.statusCode),
					zap.String("duration", formatDuration(elapsed)),
					zap.String("request_id", r.Header.Get("X-Request-ID")),
				)
			}

			if aborted {
				panic(rec)
			}
		}()

		next.ServeHTTP(rw, r)
	})
}

// formatDuration renders seconds with four decimals, e.g. "0.0012s".
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.4fs", d.Seconds())
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
