// file: internal/middleware/context.go
package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"learnhub/internal/contextutils"

	"go.uber.org/zap"
)

// GetRequestLogger extracts the request-scoped logger from context
func GetRequestLogger(ctx context.Context) *zap.Logger {
	return contextutils.Logger(ctx, nil)
}

// GetRequestStart extracts the request start time from context
func GetRequestStart(ctx context.Context) time.Time {
	if start, ok := ctx.Value(RequestStartKey).(time.Time); ok {
		return start
	}
	return time.Now()
}

var fallbackSeq uint64

// generateFallbackID creates a fallback ID when UUID generation fails
func generateFallbackID(start time.Time) string {
	seq := atomic.AddUint64(&fallbackSeq, 1)
	return "req_" + start.Format("20060102150405") + "_" + strconv.FormatUint(seq, 10)
}

// getClientIP extracts the real client IP address. chi's RealIP runs first
// in the router, so RemoteAddr is usually already the client.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
