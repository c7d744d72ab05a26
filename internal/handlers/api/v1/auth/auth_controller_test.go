package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/handlers/api/v1/apitest"
	"learnhub/internal/models"
	"learnhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	env := apitest.New(t)
	c := NewAuthController(env.Services, env.Logger, env.Builder)

	rec := httptest.NewRecorder()
	c.Register(rec, apitest.Request(http.MethodPost, "/api/auth/register", apitest.JSON(t, services.RegisterRequest{
		Name:     "Ada Learner",
		Email:    "ada@example.com",
		Password: "correct-horse",
	}), nil, nil))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
	body := apitest.Decode(t, rec)
	assert.Equal(t, string(models.RoleLearner), body["role"])
	assert.NotContains(t, rec.Body.String(), "correct-horse")

	identity, err := env.Services.Identity.Resolve(env.Ctx, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", identity.AccountEmail())

	rec = httptest.NewRecorder()
	c.Login(rec, apitest.Request(http.MethodPost, "/api/auth/login", apitest.JSON(t, services.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	}), nil, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, sessionCookie(rec))

	rec = httptest.NewRecorder()
	c.Login(rec, apitest.Request(http.MethodPost, "/api/auth/login", apitest.JSON(t, services.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	}), nil, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestRegister_DuplicateAndInvalid(t *testing.T) {
	env := apitest.New(t)
	c := NewAuthController(env.Services, env.Logger, env.Builder)
	req := services.RegisterRequest{Name: "Grace", Email: "grace@example.com", Password: "long-enough-pw", Role: models.RoleEducator}

	rec := httptest.NewRecorder()
	c.Register(rec, apitest.Request(http.MethodPost, "/", apitest.JSON(t, req), nil, nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	c.Register(rec, apitest.Request(http.MethodPost, "/", apitest.JSON(t, req), nil, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	c.Register(rec, apitest.Request(http.MethodPost, "/", apitest.JSON(t, map[string]string{"email": "bad"}), nil, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := apitest.New(t)
	rec := httptest.NewRecorder()

	NewAuthController(env.Services, env.Logger, env.Builder).Logout(rec, apitest.Request(http.MethodPost, "/", nil, nil, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestMe(t *testing.T) {
	env := apitest.New(t)
	c := NewAuthController(env.Services, env.Logger, env.Builder)
	educator := env.Educator()

	rec := httptest.NewRecorder()
	c.Me(rec, apitest.Request(http.MethodGet, "/", nil, educator, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := apitest.Decode(t, rec)
	assert.Equal(t, string(models.RoleEducator), body["role"])
	assert.Equal(t, educator.Educator.ID, body["account"].(map[string]interface{})["id"])

	rec = httptest.NewRecorder()
	c.Me(rec, apitest.Request(http.MethodGet, "/", nil, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoogleLogin_Disabled(t *testing.T) {
	env := apitest.New(t)
	rec := httptest.NewRecorder()

	NewAuthController(env.Services, env.Logger, env.Builder).GoogleLogin(rec, apitest.Request(http.MethodGet, "/", nil, nil, nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGoogleCallback_StateMismatchRedirects(t *testing.T) {
	env := apitest.New(t)
	req := apitest.Request(http.MethodGet, "/api/auth/google/callback?state=abc&code=xyz", nil, nil, nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "different"})
	rec := httptest.NewRecorder()

	NewAuthController(env.Services, env.Logger, env.Builder).GoogleCallback(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://localhost:5173?error=oauth_failed", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(rec))
}

func TestSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, sameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, sameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, sameSite(""))
}
