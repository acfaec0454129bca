package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/davidbz/gamehost/internal/observability"
)

// Limiter decides whether one more request under key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error)
}

// RateLimit rejects requests beyond max per window for each client address.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, window time.Duration, max int) Middleware {
	if limiter == nil || max <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			allowed, remaining, resetAt, err := limiter.Allow(ctx, clientKey(r), window, max)
			if err != nil {
				observability.FromContext(ctx).Warn("rate limiter unavailable", observability.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.Itoa(max))
			headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetAt).Seconds())
				if retryAfter < 0 {
					retryAfter = 0
				}
				headers.Set("Retry-After", strconv.Itoa(retryAfter))
				headers.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{
						"code":    "rate_limited",
						"message": "too many checkout attempts, try again shortly",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
