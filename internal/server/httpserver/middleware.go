package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/server/httpserver/handler"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/internal/telemetry/metric"
	"github.com/yndnr/tokmint/pkg/cmap"
	"github.com/yndnr/tokmint/pkg/token"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// RequestID adds a unique request ID to each request.
// An incoming X-Request-ID header is reused, and the trace ID of a W3C
// traceparent header is attached to the request logger.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				if id, err := token.GenerateString(8, token.Hex{}); err == nil {
					requestID = "req-" + id
				} else {
					requestID = "req-unknown"
				}
			}

			w.Header().Set("X-Request-ID", requestID)
			ctx := logger.WithRequestID(r.Context(), requestID)
			if traceID, ok := parseTraceparent(r.Header.Get("traceparent")); ok {
				ctx = logger.WithTraceID(ctx, traceID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseTraceparent extracts the trace ID from a version 00 traceparent
// header: 00-<32 hex trace id>-<16 hex parent id>-<2 hex flags>.
func parseTraceparent(h string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(h), "-")
	if len(parts) != 4 || parts[0] != "00" || len(parts[1]) != 32 || len(parts[2]) != 16 || len(parts[3]) != 2 {
		return "", false
	}
	for _, p := range parts[1:] {
		if !isLowerHex(p) {
			return "", false
		}
	}
	if strings.Trim(parts[1], "0") == "" || strings.Trim(parts[2], "0") == "" {
		return "", false
	}
	return parts[1], true
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Recover recovers from panics and returns 500 error.
func Recover(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithContext(r.Context()).Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
					)
					handler.WriteError(w, r, http.StatusInternalServerError, "TM-SYS-5000", "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// AccessLog logs each completed request and records request metrics.
func AccessLog(log logger.Logger, metrics *metric.Registry, clientIP *ClientIP) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			metrics.RecordRequest(r.Method, strconv.Itoa(wrapped.statusCode))
			metrics.ObserveRequestDuration(r.Method, duration.Seconds())

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", clientIP.Resolve(r),
			}

			l := log.WithContext(r.Context())
			switch {
			case wrapped.statusCode >= 500:
				l.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				l.Warn("request completed with client error", attrs...)
			default:
				l.Debug("request completed", attrs...)
			}
		})
	}
}

// DefaultLimiterIdleTimeout is how long RateLimit keeps an idle client's
// limiter.
const DefaultLimiterIdleTimeout = 10 * time.Minute

// RateLimitOption configures RateLimit.
type RateLimitOption func(*rateLimiter)

// WithClientIP sets how requests are attributed to clients. The default
// uses the peer address only.
func WithClientIP(c *ClientIP) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.clientIP = c
	}
}

// WithIdleTimeout sets how long an idle client's limiter is kept.
func WithIdleTimeout(d time.Duration) RateLimitOption {
	return func(rl *rateLimiter) {
		if d > 0 {
			rl.idle = d
		}
	}
}

// RateLimit applies per-client token bucket rate limiting.
func RateLimit(rps float64, burst int, opts ...RateLimitOption) Middleware {
	rl := newRateLimiter(rps, burst, opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(rl.clientIP.Resolve(r)) {
				w.Header().Set("Retry-After", "1")
				handler.WriteError(w, r, http.StatusTooManyRequests, "TM-SYS-4290", "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type rateLimiter struct {
	limit    rate.Limit
	burst    int
	idle     time.Duration
	clientIP *ClientIP
	now      func() time.Time

	clients   *cmap.Map[string, *clientLimiter]
	lastSweep atomic.Int64
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func newRateLimiter(rps float64, burst int, opts ...RateLimitOption) *rateLimiter {
	rl := &rateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    DefaultLimiterIdleTimeout,
		now:     time.Now,
		clients: cmap.New[string, *clientLimiter](),
	}
	for _, opt := range opts {
		opt(rl)
	}
	rl.lastSweep.Store(rl.now().UnixNano())
	return rl
}

func (rl *rateLimiter) allow(key string) bool {
	now := rl.now()
	rl.sweep(now)

	c := rl.clients.GetOrCreate(key, func() *clientLimiter {
		return &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

// sweep drops limiters not used within the idle timeout. At most one
// sweep runs per idle interval.
func (rl *rateLimiter) sweep(now time.Time) {
	last := rl.lastSweep.Load()
	if now.UnixNano()-last < int64(rl.idle) || !rl.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-rl.idle).UnixNano()
	var stale []string
	rl.clients.Range(func(key string, c *clientLimiter) bool {
		if c.lastSeen.Load() < cutoff {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		rl.clients.Delete(key)
	}
}

// Tokens runs the assembler for every request. Tokens with a header
// target are set on the response; all of them are stored in the request
// context for downstream handlers. A generation failure for one token
// is logged and does not fail the request.
func Tokens(registry *service.Registry, assembler *service.Assembler, log logger.Logger, now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := registry.Lookup(r.URL.Path)
			if scope == nil {
				next.ServeHTTP(w, r)
				return
			}

			results, err := assembler.Generate(r.Context(), scope, r.URL.Path, now())
			if err != nil {
				log.WithContext(r.Context()).Warn("token generation incomplete",
					"scope", scope.Location,
					"path", r.URL.Path,
					"error", err)
			}

			for _, res := range results {
				if res.Header != "" {
					w.Header().Set(res.Header, res.Value)
				}
			}

			ctx := service.ContextWithResults(r.Context(), results)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
