package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"learnhub/internal/handlers/api/v1/apitest"
	"learnhub/internal/models"
	"learnhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*apitest.Env, http.Handler) {
	t.Helper()
	env := apitest.New(t)
	return env, SetupRouter(Options{
		Services: env.Services,
		Builder:  env.Builder,
		Logger:   env.Logger,
	})
}

func serve(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, env *apitest.Env, identity models.Identity) string {
	t.Helper()
	token, err := env.Services.Tokens.SignToken(identity.AccountID(), identity.AccountEmail(), identity.Role())
	require.NoError(t, err)
	return token
}

func TestRouter_RegisterThenMe(t *testing.T) {
	_, h := newServer(t)

	rec := serve(h, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	rec = serve(h, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, string(models.RoleLearner), body["role"])
}

func TestRouter_RoleGuards(t *testing.T) {
	env, h := newServer(t)
	learner := tokenFor(t, env, env.Learner())
	educator := tokenFor(t, env, env.Educator())
	admin := tokenFor(t, env, env.Admin())

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"anonymous educator route", http.MethodGet, "/api/educator/courses", "", http.StatusUnauthorized},
		{"learner on educator route", http.MethodGet, "/api/educator/courses", learner, http.StatusForbidden},
		{"educator on educator route", http.MethodGet, "/api/educator/courses", educator, http.StatusOK},
		{"learner on admin route", http.MethodGet, "/api/admin/reports", learner, http.StatusUnauthorized},
		{"educator on admin route", http.MethodGet, "/api/admin/reports", educator, http.StatusUnauthorized},
		{"admin on admin route", http.MethodGet, "/api/admin/reports", admin, http.StatusOK},
		{"forged token", http.MethodGet, "/api/notifications", "forged", http.StatusUnauthorized},
		{"public catalogue", http.MethodGet, "/api/courses", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.method, tt.path, "", tt.token)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_CourseAccessEndpoint(t *testing.T) {
	env, h := newServer(t)
	owner := env.Educator()
	course := env.Course(owner.Educator.ID, models.CourseStatusApproved)
	learner := env.Learner()

	rec := serve(h, http.MethodGet, "/api/user/courseaccess/"+course.ID, "", tokenFor(t, env, learner))
	require.Equal(t, http.StatusForbidden, rec.Code)
	var denied map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &denied))
	assert.Equal(t, false, denied["courseAccess"])
	assert.Equal(t, services.ReasonCourseNotPurchased, denied["message"])

	rec = serve(h, http.MethodGet, "/api/user/courseaccess/"+course.ID, "", tokenFor(t, env, owner))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_Operations(t *testing.T) {
	_, h := newServer(t)

	rec := serve(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "learnhub_http_requests_total")

	rec = serve(h, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = serve(h, http.MethodPost, "/api/courses", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
