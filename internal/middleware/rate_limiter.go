// file: internal/middleware/rate_limiter.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimiterConfig holds per-IP limits
type RateLimiterConfig struct {
	Enabled bool
	// RequestsPerWindow applies to every API route
	RequestsPerWindow int
	// AuthRequestsPerWindow applies to login, registration and OAuth
	AuthRequestsPerWindow int
	Window                time.Duration
	HeadersEnabled        bool
}

// NewRateLimiterConfig maps the application rate limit settings
func NewRateLimiterConfig(cfg config.RateLimitConfig) *RateLimiterConfig {
	return &RateLimiterConfig{
		Enabled:               cfg.Enabled,
		RequestsPerWindow:     cfg.RequestsPerMin,
		AuthRequestsPerWindow: cfg.AuthPerMin,
		Window:                time.Minute,
		HeadersEnabled:        true,
	}
}

// RateLimitResult is the outcome of one fixed-window check
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// RateLimiter builds the global and authentication limiters. The global
// limiter is in-process (httprate); the authentication limiter counts in
// the shared cache so credential guessing is limited across instances.
type RateLimiter struct {
	cache   cache.Cache
	config  *RateLimiterConfig
	builder *response.Builder
	logger  *zap.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(c cache.Cache, cfg *RateLimiterConfig, builder *response.Builder, logger *zap.Logger) *RateLimiter {
	if cfg == nil {
		cfg = NewRateLimiterConfig(config.RateLimitConfig{})
	}
	return &RateLimiter{
		cache:   c,
		config:  cfg,
		builder: builder,
		logger:  logger,
	}
}

// Global limits every request by client IP
func (rl *RateLimiter) Global() func(http.Handler) http.Handler {
	if !rl.config.Enabled || rl.config.RequestsPerWindow <= 0 {
		return passthrough
	}
	return httprate.Limit(
		rl.config.RequestsPerWindow,
		rl.config.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			rl.reject(w, r, "global")
		}),
	)
}

// Auth limits credential endpoints by client IP and route
func (rl *RateLimiter) Auth() func(http.Handler) http.Handler {
	if !rl.config.Enabled || rl.config.AuthRequestsPerWindow <= 0 || rl.cache == nil {
		return passthrough
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := fmt.Sprintf("rate_limit:auth:%s:%s", getClientIP(r), r.URL.Path)
			result := rl.checkFixedWindow(r.Context(), key, rl.config.AuthRequestsPerWindow, rl.config.Window)
			rl.writeRateLimitHeaders(w, result)
			if !result.Allowed {
				rl.reject(w, r, "auth")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkFixedWindow counts requests in the current window. Get and Set are
// separate cache calls, so concurrent bursts may overshoot by a few requests.
func (rl *RateLimiter) checkFixedWindow(ctx context.Context, key string, limit int, window time.Duration) *RateLimitResult {
	now := time.Now()
	windowStart := now.Truncate(window)
	windowKey := fmt.Sprintf("%s:window:%d", key, windowStart.Unix())

	count := rl.getCount(ctx, windowKey)
	allowed := count < limit
	if allowed {
		count++
		if err := rl.cache.Set(ctx, windowKey, []byte(strconv.Itoa(count)), window); err != nil {
			rl.logger.Warn("Failed to record rate limit hit", zap.Error(err))
		}
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	resetTime := windowStart.Add(window)
	return &RateLimitResult{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: time.Until(resetTime),
	}
}

func (rl *RateLimiter) getCount(ctx context.Context, key string) int {
	value, found := rl.cache.Get(ctx, key)
	if !found {
		return 0
	}
	count, err := strconv.Atoi(string(value))
	if err != nil {
		return 0
	}
	return count
}

// writeRateLimitHeaders adds rate limit headers to response
func (rl *RateLimiter) writeRateLimitHeaders(w http.ResponseWriter, result *RateLimitResult) {
	if !rl.config.HeadersEnabled {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime.Unix(), 10))
	if !result.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
	}
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, limiter string) {
	rateLimitHits.WithLabelValues(limiter).Inc()
	GetRequestLogger(r.Context()).Warn("Rate limit exceeded",
		zap.String("limiter", limiter),
		zap.String("ip", getClientIP(r)),
	)
	rl.builder.WriteError(w, r, services.NewRateLimitError("Too many requests, please try again later"))
}

func passthrough(next http.Handler) http.Handler {
	return next
}
