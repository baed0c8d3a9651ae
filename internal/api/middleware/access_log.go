package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку на каждый запрос
func AccessLog(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("%s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
				r.Method, r.URL.Path, rec.Status(), rec.bytes,
				time.Since(start).Milliseconds(), RequestIDFromContext(r.Context()))
		})
	}
}
