// Package apitest wires real services onto in-memory fakes for controller
// tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/contextutils"
	"learnhub/internal/media/mediatest"
	"learnhub/internal/models"
	"learnhub/internal/repositories"
	"learnhub/internal/repositories/repotest"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Env is a service collection backed by fakes
type Env struct {
	Ctx      context.Context
	Store    *repotest.Store
	Repos    *repositories.Collection
	Media    *mediatest.Storage
	Services *services.ServiceCollection
	Builder  *response.Builder
	Logger   *zap.Logger

	t   *testing.T
	seq int
}

// New builds an Env for t
func New(t *testing.T) *Env {
	t.Helper()

	store := repotest.New()
	e := &Env{
		Ctx:     context.Background(),
		Store:   store,
		Repos:   store.Collection(),
		Media:   mediatest.New(),
		Builder: response.NewBuilder(&response.Config{IncludeRequestID: true}, zap.NewNop()),
		Logger:  zap.NewNop(),
		t:       t,
	}

	svc, err := services.NewServiceCollection(services.Dependencies{
		Repositories: e.Repos,
		Storage:      e.Media,
		Cache:        cache.NewMemoryCache(100, 0, zap.NewNop()),
		Config:       Config(),
		Logger:       zap.NewNop(),
	})
	require.NoError(t, err)
	e.Services = svc
	return e
}

// Config returns a configuration suited to controller tests
func Config() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      strings.Repeat("s", 32),
			TokenExpiry:    time.Hour,
			CookieName:     "token",
			CookieSameSite: "lax",
			BCryptCost:     bcrypt.MinCost,
		},
		Cloudinary: config.CloudinaryConfig{RootFolder: "learnhub"},
		Cache:      config.CacheConfig{CourseTTL: time.Minute},
		Upload: config.UploadConfig{
			MaxMemory:      1 << 20,
			MaxRequestSize: 8 << 20,
			Concurrency:    2,
			ThumbnailWidth: 64,
		},
		OAuth: config.OAuthConfig{FrontendURL: "http://localhost:5173"},
	}
}

// ===============================
// SEEDING
// ===============================

// Educator stores a new educator and returns its identity
func (e *Env) Educator() models.EducatorIdentity {
	e.t.Helper()
	e.seq++
	educator := &models.Educator{Name: fmt.Sprintf("Educator %d", e.seq), Email: fmt.Sprintf("edu%d@example.com", e.seq)}
	require.NoError(e.t, e.Repos.Educator.Create(e.Ctx, educator))
	return e.EducatorIdentity(educator.ID)
}

// EducatorIdentity reloads an educator so its derived course list is current
func (e *Env) EducatorIdentity(id string) models.EducatorIdentity {
	e.t.Helper()
	educator, err := e.Repos.Educator.GetByID(e.Ctx, id)
	require.NoError(e.t, err)
	return models.EducatorIdentity{Educator: educator}
}

// Learner stores a new learner and returns its identity
func (e *Env) Learner() models.LearnerIdentity {
	e.t.Helper()
	e.seq++
	user := &models.User{Name: fmt.Sprintf("Learner %d", e.seq), Email: fmt.Sprintf("learner%d@example.com", e.seq)}
	require.NoError(e.t, e.Repos.User.Create(e.Ctx, user))
	return e.LearnerIdentity(user.ID)
}

// LearnerIdentity reloads a learner so its purchases are current
func (e *Env) LearnerIdentity(id string) models.LearnerIdentity {
	e.t.Helper()
	user, err := e.Repos.User.GetByID(e.Ctx, id)
	require.NoError(e.t, err)
	return models.LearnerIdentity{User: user}
}

// Admin stores the admin account and returns its identity
func (e *Env) Admin() models.AdminIdentity {
	e.t.Helper()
	admin := &models.Admin{Name: "Admin", Email: "admin@example.com"}
	require.NoError(e.t, e.Repos.Admin.Upsert(e.Ctx, admin))
	return models.AdminIdentity{Admin: admin}
}

// Course stores a course owned by educatorID
func (e *Env) Course(educatorID string, status models.CourseStatus) *models.Course {
	e.t.Helper()
	e.seq++
	course := &models.Course{
		EducatorID: educatorID,
		Title:      fmt.Sprintf("Course %d", e.seq),
		Category:   "programming",
		Status:     status,
	}
	require.NoError(e.t, e.Repos.Course.Create(e.Ctx, course))
	return course
}

// Purchase records a purchase without going through the service
func (e *Env) Purchase(userID, courseID string) {
	e.t.Helper()
	require.NoError(e.t, e.Repos.User.AddPurchase(e.Ctx, userID, courseID, time.Now()))
}

// ===============================
// REQUESTS
// ===============================

// Request builds a request carrying identity and route variables
func Request(method, target string, body io.Reader, identity models.Identity, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if identity != nil {
		req = req.WithContext(contextutils.WithIdentity(req.Context(), identity))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

// JSON encodes v as a request body
func JSON(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// Multipart builds a multipart body from form fields and file parts and
// returns it with its content type
func Multipart(t *testing.T, fields map[string]string, files map[string]string) (io.Reader, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

// Decode unmarshals a recorded response body
func Decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// ErrorType returns error.type of a recorded error body
func ErrorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := Decode(t, rec)
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, rec.Body.String())
	typ, _ := detail["type"].(string)
	return typ
}
