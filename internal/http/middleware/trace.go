package middleware

import (
	"net/http"
	"regexp"
	"time"

	"github.com/davidbz/gamehost/internal/observability"
)

const requestIDHeader = "X-Request-Id"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Trace tags every request with trace, span and request ids and logs its outcome.
// A well-formed inbound X-Request-Id is kept so client and server logs correlate.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			traceID := observability.GenerateTraceID()
			ctx = observability.WithTraceID(ctx, traceID)
			ctx = observability.WithSpanID(ctx, observability.GenerateSpanID())

			requestID := r.Header.Get(requestIDHeader)
			if !requestIDPattern.MatchString(requestID) {
				requestID = observability.GenerateRequestID()
			}
			ctx = observability.WithRequestID(ctx, requestID)

			w.Header().Set("X-Trace-Id", traceID)
			w.Header().Set(requestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			observability.FromContext(ctx).Info("request completed",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Int("status", rec.status),
				observability.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
