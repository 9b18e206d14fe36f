package middleware

import (
	"net"
	"net/http"

	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
	"github.com/Jevon1999/api-presensi/internal/pkg/ratelimit"
)

// RateLimitByIP rejects clients that exceed their per-address budget.
func RateLimitByIP(limiter *ratelimit.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				response.TooManyRequests(w, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
