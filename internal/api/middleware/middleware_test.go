package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PawsBubbles-BookingService/pkg/authtoken"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*authtoken.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &authtoken.Claims{Sub: "admin-1", Email: "admin@pawsbubbles.co"}, nil
}

func TestAuth(t *testing.T) {
	var seen *authtoken.Claims
	h := Auth(stubVerifier{}, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		target string
		want   int
	}{
		{name: "bearer", header: "Bearer good", target: "/", want: http.StatusOK},
		{name: "query token", target: "/?access_token=good", want: http.StatusOK},
		{name: "wrong token", header: "Bearer bad", target: "/", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", target: "/?access_token=good", want: http.StatusUnauthorized},
		{name: "missing", target: "/", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, "admin-1", seen.Sub)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

// fakeScripter считает вызовы скрипта как INCR одного ключа
type fakeScripter struct {
	counts map[string]int64
	err    error
}

func (f *fakeScripter) run(keys []string) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[keys[0]]++
	return redis.NewCmdResult(f.counts[keys[0]], nil)
}

func (f *fakeScripter) Eval(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalShaRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("sha", nil)
}

func TestRedisRateLimiter(t *testing.T) {
	scripter := &fakeScripter{}
	h := NewRedisRateLimiter(scripter, 2, time.Minute, "rl:bookings", false, nopLogger{}).Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		r.RemoteAddr = "10.0.0.7:51234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, int64(3), scripter.counts["rl:bookings:10.0.0.7"])

	// другой клиент за прокси считается отдельно
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedisRateLimiter_RedisDown(t *testing.T) {
	down := &fakeScripter{err: errors.New("connection refused")}

	w := httptest.NewRecorder()
	NewRedisRateLimiter(down, 1, time.Minute, "", true, nopLogger{}).Middleware(okHandler).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	NewRedisRateLimiter(down, 1, time.Minute, "", false, nopLogger{}).Middleware(okHandler).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var disabled *RedisRateLimiter
	w = httptest.NewRecorder()
	disabled.Middleware(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RequestID, Recovery(nopLogger{}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"error":"error interno del servidor"}`, w.Body.String())
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://pawsbubbles.co"})(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/services", nil)
	r.Header.Set("Origin", "https://pawsbubbles.co")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://pawsbubbles.co", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/api/v1/services", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m))
	router.Handle("/api/v1/services/{serviceId}", okHandler).Methods(http.MethodGet)

	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/services/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/services/{serviceId}", "200")))
}

func TestStatusRecorder_Flushes(t *testing.T) {
	w := httptest.NewRecorder()
	rec := newStatusRecorder(w)

	_, _ = rec.Write([]byte("data: ping\n\n"))
	rec.Flush()

	assert.True(t, w.Flushed)
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.Same(t, w, rec.Unwrap())
}
