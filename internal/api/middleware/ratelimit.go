package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
)

const (
	msgTooManyRequests    = "demasiadas solicitudes, intenta de nuevo en unos minutos"
	msgLimiterUnavailable = "servicio temporalmente no disponible"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisRateLimiter ограничитель с фиксированным окном в Redis, общий для всех инстансов
type RedisRateLimiter struct {
	rdb      redis.Scripter
	limit    int
	window   time.Duration
	prefix   string
	failOpen bool
	logger   Logger
}

// NewRedisRateLimiter создает ограничитель: не больше limit запросов с одного IP за window
func NewRedisRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string, failOpen bool, logger Logger) *RedisRateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		prefix:   prefix,
		failOpen: failOpen,
		logger:   logger,
	}
}

// Middleware оборачивает обработчик. nil-ограничитель ничего не ограничивает.
func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.prefix + ":" + clientKey(r)

		count, err := rl.incr(r.Context(), key)
		if err != nil {
			rl.logger.Warn("%s %s - Rate limiter error: %v", r.Method, r.URL.Path, err)
			if rl.failOpen {
				next.ServeHTTP(w, r)
				return
			}
			handlers.RespondError(w, http.StatusServiceUnavailable, msgLimiterUnavailable)
			return
		}

		if count > int64(rl.limit) {
			rl.logger.Warn("%s %s - Rate limit exceeded: key=%s, count=%d", r.Method, r.URL.Path, key, count)
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RedisRateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
