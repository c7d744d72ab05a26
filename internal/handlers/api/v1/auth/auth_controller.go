// ===============================
// FILE: internal/handlers/api/v1/auth/auth_controller.go
// ===============================

package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/response"
	"learnhub/internal/services"
	"learnhub/internal/utils"

	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

// AuthController handles sign-up, sign-in and session endpoints
type AuthController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewAuthController creates a new authentication controller
func NewAuthController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *AuthController {
	return &AuthController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// AUTHENTICATION ENDPOINTS
// ===============================

// Register handles account registration - POST /api/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	logger := c.requestLogger(r, "register")

	var req services.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		logger.Warn("Invalid request body", zap.Error(err))
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	authResp, err := c.serviceCollection.Auth.Register(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.setSessionCookie(w, authResp.Token)
	logger.Info("Account registered", zap.String("role", string(authResp.Role)))

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":  "Registration successful",
		"role": authResp.Role,
		"user": authResp.Account,
	})
}

// Login handles sign-in - POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	logger := c.requestLogger(r, "login")

	var req services.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	authResp, err := c.serviceCollection.Auth.Login(ctx, &req)
	if err != nil {
		logger.Info("Login failed", zap.Error(err))
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.setSessionCookie(w, authResp.Token)

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":  "Login successful",
		"role": authResp.Role,
		"user": authResp.Account,
	})
}

// Logout clears the session cookie - POST /api/auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	cfg := c.serviceCollection.Config.Auth
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite(cfg.CookieSameSite),
	})

	c.responseBuilder.WriteOK(w, r, response.Payload{"msg": "Logged out"})
}

// Me returns the signed-in account - GET /api/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity := contextutils.Identity(r.Context())
	if identity == nil {
		c.responseBuilder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"role":    identity.Role(),
		"account": services.AccountOf(identity),
	})
}

// ===============================
// GOOGLE SIGN-IN
// ===============================

// GoogleLogin redirects to the Google consent screen - GET /api/auth/google/login
func (c *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	oauth := c.serviceCollection.OAuth
	if !oauth.Enabled() {
		c.responseBuilder.WriteError(w, r, services.NewServiceUnavailableError("Google sign-in is not configured"))
		return
	}

	state, err := utils.GenerateState()
	if err != nil {
		c.responseBuilder.WriteError(w, r, services.NewInternalError("Failed to start sign-in").WithCause(err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   c.serviceCollection.Config.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes Google sign-in - GET /api/auth/google/callback
func (c *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	logger := c.requestLogger(r, "google_callback")
	frontend := c.serviceCollection.Config.OAuth.FrontendURL

	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		logger.Warn("OAuth state mismatch")
		c.redirectWithError(w, r, frontend)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		c.redirectWithError(w, r, frontend)
		return
	}

	authResp, err := c.serviceCollection.OAuth.Exchange(ctx, code)
	if err != nil {
		logger.Warn("OAuth exchange failed", zap.Error(err))
		c.redirectWithError(w, r, frontend)
		return
	}

	c.setSessionCookie(w, authResp.Token)
	http.Redirect(w, r, frontendTarget(frontend), http.StatusTemporaryRedirect)
}

// ===============================
// HELPERS
// ===============================

func (c *AuthController) requestLogger(r *http.Request, endpoint string) *zap.Logger {
	return contextutils.Logger(r.Context(), c.logger).With(zap.String("endpoint", endpoint))
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, token string) {
	cfg := c.serviceCollection.Config.Auth
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite(cfg.CookieSameSite),
	})
}

func (c *AuthController) redirectWithError(w http.ResponseWriter, r *http.Request, frontend string) {
	target := frontendTarget(frontend)
	u, err := url.Parse(target)
	if err != nil {
		http.Redirect(w, r, "/?error=oauth_failed", http.StatusTemporaryRedirect)
		return
	}
	q := u.Query()
	q.Set("error", "oauth_failed")
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
}

func frontendTarget(frontend string) string {
	if frontend == "" {
		return "/"
	}
	return frontend
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
