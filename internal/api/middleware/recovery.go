package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
)

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("%s %s - Panic recovered: request_id=%s, error=%v, stack=%s",
						r.Method, r.URL.Path, RequestIDFromContext(r.Context()), rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
