// File: internal/middleware/security.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"learnhub/internal/response"
	"learnhub/internal/services"
)

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	// ContentSecurityPolicy applies to API responses. The Swagger UI is
	// served without it.
	ContentSecurityPolicy string
	EnableHSTS            bool
	HSTSMaxAge            time.Duration
	FrameOptions          string
	ReferrerPolicy        string
}

// DefaultSecurityConfig returns security headers suited to a JSON API
func DefaultSecurityConfig(production bool) *SecurityConfig {
	return &SecurityConfig{
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		EnableHSTS:            production,
		HSTSMaxAge:            365 * 24 * time.Hour,
		FrameOptions:          "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
}

// SecureHeaders sets the configured security headers on every response
func SecureHeaders(config *SecurityConfig) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultSecurityConfig(false)
	}
	hsts := fmt.Sprintf("max-age=%d; includeSubDomains", int(config.HSTSMaxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", config.FrameOptions)
			h.Set("Referrer-Policy", config.ReferrerPolicy)
			if config.ContentSecurityPolicy != "" && !strings.HasPrefix(r.URL.Path, "/swagger") {
				h.Set("Content-Security-Policy", config.ContentSecurityPolicy)
			}
			if config.EnableHSTS {
				h.Set("Strict-Transport-Security", hsts)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize rejects requests whose declared length exceeds limit and caps
// the readable body for the rest.
func MaxBodySize(limit int64, builder *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				builder.WriteError(w, r, &services.ServiceError{
					Type:       services.ErrorTypeValidation,
					Message:    "Request body too large",
					Code:       "BODY_TOO_LARGE",
					StatusCode: http.StatusRequestEntityTooLarge,
				})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
