// file: internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"learnhub/internal/contextutils"
	"learnhub/internal/models"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"go.uber.org/zap"
)

// AuthConfig holds configuration for session authentication
type AuthConfig struct {
	// CookieName is the session cookie set on login and registration
	CookieName string
	// AllowBearer accepts "Authorization: Bearer" when no cookie is present
	AllowBearer       bool
	LogSuccessfulAuth bool
	LogFailedAuth     bool
}

// DefaultAuthConfig returns production-ready auth configuration
func DefaultAuthConfig() *AuthConfig {
	return &AuthConfig{
		CookieName:        "token",
		AllowBearer:       true,
		LogSuccessfulAuth: false,
		LogFailedAuth:     true,
	}
}

// AuthMiddleware resolves the session token into an Identity at the
// request boundary
type AuthMiddleware struct {
	config   *AuthConfig
	identity services.IdentityService
	builder  *response.Builder
	logger   *zap.Logger
}

// NewAuthMiddleware creates the session authentication middleware
func NewAuthMiddleware(
	config *AuthConfig,
	identity services.IdentityService,
	builder *response.Builder,
	logger *zap.Logger,
) *AuthMiddleware {
	if config == nil {
		config = DefaultAuthConfig()
	}
	return &AuthMiddleware{
		config:   config,
		identity: identity,
		builder:  builder,
		logger:   logger,
	}
}

// ===============================
// AUTHENTICATION
// ===============================

// Authenticate resolves the session. When required is false an absent or
// invalid token leaves the request anonymous.
func (am *AuthMiddleware) Authenticate(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestLogger := GetRequestLogger(ctx)

			token := am.extractToken(r)
			if token == "" {
				if required {
					am.builder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			identity, err := am.identity.Resolve(ctx, token)
			if err != nil {
				if !required && services.IsErrorType(err, services.ErrorTypeUnauthenticated) {
					next.ServeHTTP(w, r)
					return
				}
				if am.config.LogFailedAuth {
					requestLogger.Warn("Authentication failed",
						zap.Error(err),
						zap.String("path", r.URL.Path),
					)
				}
				am.builder.WriteError(w, r, err)
				return
			}

			if am.config.LogSuccessfulAuth {
				requestLogger.Info("Authentication successful",
					zap.String("account_id", identity.AccountID()),
					zap.String("role", string(identity.Role())),
				)
			}

			ctx = contextutils.WithIdentity(ctx, identity)
			ctx = contextutils.WithLogger(ctx, requestLogger.With(zap.String("account_id", identity.AccountID())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth requires a valid session
func (am *AuthMiddleware) RequireAuth() func(http.Handler) http.Handler {
	return am.Authenticate(true)
}

// OptionalAuth attaches the identity when a valid session is present
func (am *AuthMiddleware) OptionalAuth() func(http.Handler) http.Handler {
	return am.Authenticate(false)
}

// ===============================
// AUTHORIZATION
// ===============================

// RequireRole requires one of roles, answering 403 otherwise
func (am *AuthMiddleware) RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := contextutils.Identity(r.Context())
			if identity == nil {
				am.builder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
				return
			}

			for _, role := range roles {
				if identity.Role() == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			am.builder.WriteError(w, r, services.NewForbiddenError("Insufficient role").
				WithDetail("role", string(identity.Role())))
		})
	}
}

// RequireAdmin requires an admin session. Non-admin sessions get 401.
func (am *AuthMiddleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := contextutils.Identity(r.Context()).(models.AdminIdentity); !ok {
				GetRequestLogger(r.Context()).Warn("Admin route denied", zap.String("path", r.URL.Path))
				am.builder.WriteError(w, r, services.NewUnauthorizedError("Not authorized as admin"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken reads the session cookie, then the bearer header
func (am *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(am.config.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if !am.config.AllowBearer {
		return ""
	}
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
