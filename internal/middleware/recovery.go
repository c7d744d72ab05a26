// File: internal/middleware/recovery.go
package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"learnhub/internal/contextutils"
	"learnhub/internal/response"
	"learnhub/internal/services"
	"learnhub/internal/utils/appinfo"

	"go.uber.org/zap"
)

// RecoveryConfig holds configuration for panic recovery middleware
type RecoveryConfig struct {
	EnableStackTrace bool
	MaxStackFrames   int
}

// DefaultRecoveryConfig returns production-ready recovery configuration
func DefaultRecoveryConfig() *RecoveryConfig {
	return &RecoveryConfig{
		EnableStackTrace: true,
		MaxStackFrames:   20,
	}
}

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// Recovery converts a panic into a 500 error body and logs the stack
func Recovery(config *RecoveryConfig, builder *response.Builder) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultRecoveryConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Let net/http abort the connection as it normally would
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.String("panic_type", fmt.Sprintf("%T", rec)),
					zap.String("method", r.Method),
					zap.String("url", r.URL.String()),
					zap.String("version", appinfo.GetVersion()),
					zap.Int("goroutines", runtime.NumGoroutine()),
				}
				if identity := contextutils.Identity(r.Context()); identity != nil {
					fields = append(fields, zap.String("account_id", identity.AccountID()))
				}
				if config.EnableStackTrace {
					fields = append(fields, zap.Any("stack_trace", captureStackTrace(config.MaxStackFrames)))
				}
				GetRequestLogger(r.Context()).Error("Panic recovered", fields...)

				builder.WriteError(w, r, services.NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// captureStackTrace captures the stack trace, skipping runtime frames
func captureStackTrace(maxFrames int) []StackFrame {
	pcs := make([]uintptr, maxFrames+8)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return nil
	}

	var frames []StackFrame
	callersFrames := runtime.CallersFrames(pcs[:n])
	for len(frames) < maxFrames {
		frame, more := callersFrames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			frames = append(frames, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return frames
}
