package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/media/mediatest"
	"learnhub/internal/models"
	"learnhub/internal/repositories"
	"learnhub/internal/repositories/repotest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// fixture wires real services onto the in-memory store and media fakes
type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *repotest.Store
	repos *repositories.Collection
	media *mediatest.Storage
	pub   *recordingPublisher
	cfg   *config.Config
	svc   *ServiceCollection
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repotest.New()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: store,
		repos: store.Collection(),
		media: mediatest.New(),
		pub:   &recordingPublisher{},
		cfg:   testConfig(),
	}

	svc, err := NewServiceCollection(Dependencies{
		Repositories: f.repos,
		Storage:      f.media,
		Cache:        cache.NewMemoryCache(100, 0, zap.NewNop()),
		Publisher:    f.pub,
		Config:       f.cfg,
		Logger:       zap.NewNop(),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   strings.Repeat("k", 32),
			TokenExpiry: time.Hour,
			BCryptCost:  bcrypt.MinCost,
		},
		Cloudinary: config.CloudinaryConfig{RootFolder: "learnhub"},
		Cache:      config.CacheConfig{CourseTTL: time.Minute},
		Upload:     config.UploadConfig{Concurrency: 2, ThumbnailWidth: 64},
	}
}

// ===============================
// SEEDING
// ===============================

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

func (f *fixture) educator() *models.Educator {
	f.t.Helper()
	n := f.next()
	e := &models.Educator{Name: fmt.Sprintf("Educator %d", n), Email: fmt.Sprintf("edu%d@example.com", n)}
	require.NoError(f.t, f.repos.Educator.Create(f.ctx, e))
	return e
}

func (f *fixture) learner() *models.User {
	f.t.Helper()
	n := f.next()
	u := &models.User{Name: fmt.Sprintf("Learner %d", n), Email: fmt.Sprintf("learner%d@example.com", n)}
	require.NoError(f.t, f.repos.User.Create(f.ctx, u))
	return u
}

func (f *fixture) course(educatorID string, status models.CourseStatus) *models.Course {
	f.t.Helper()
	c := &models.Course{
		EducatorID: educatorID,
		Title:      fmt.Sprintf("Course %d", f.next()),
		Status:     status,
	}
	require.NoError(f.t, f.repos.Course.Create(f.ctx, c))
	return c
}

// educatorID reloads the educator so derived course ids are current
func (f *fixture) educatorID(id string) models.Identity {
	f.t.Helper()
	e, err := f.repos.Educator.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return models.EducatorIdentity{Educator: e}
}

// learnerID reloads the learner so purchases are current
func (f *fixture) learnerID(id string) models.Identity {
	f.t.Helper()
	u, err := f.repos.User.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return models.LearnerIdentity{User: u}
}

func (f *fixture) admin() models.Identity {
	return models.AdminIdentity{Admin: &models.Admin{ID: "admin-1", Email: "admin@example.com"}}
}

func (f *fixture) purchase(userID, courseID string) {
	f.t.Helper()
	require.NoError(f.t, f.repos.User.AddPurchase(f.ctx, userID, courseID, time.Now()))
}

// addChapters adds chapters through the service; durations[i] lists the
// video durations of chapter i
func (f *fixture) addChapters(identity models.Identity, courseID string, durations ...[]float64) *AddChaptersResult {
	f.t.Helper()
	req := chaptersRequest(durations...)
	res, err := f.svc.Chapter.AddChapters(f.ctx, identity, courseID, req)
	require.NoError(f.t, err)
	return res
}

func chaptersRequest(durations ...[]float64) *AddChaptersRequest {
	var parts []string
	files := map[string]*FileUpload{}
	for i, chapter := range durations {
		var videos []string
		for j, d := range chapter {
			videos = append(videos, fmt.Sprintf(`{"title":"Video %d.%d","duration":%g}`, i+1, j+1, d))
			files[fmt.Sprintf("chapter-%d-video-%d", i, j)] = upload(fmt.Sprintf("c%d-v%d.mp4", i, j), "video-bytes")
		}
		parts = append(parts, fmt.Sprintf(`{"title":"Chapter %d","description":"d","videos":[%s]}`,
			i+1, strings.Join(videos, ",")))
	}
	return &AddChaptersRequest{
		ChaptersJSON: "[" + strings.Join(parts, ",") + "]",
		Files:        files,
	}
}

func upload(name, content string) *FileUpload {
	return &FileUpload{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

// ===============================
// FAKES
// ===============================

type published struct {
	UserID  string
	Payload interface{}
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingPublisher) Publish(userID string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{UserID: userID, Payload: payload})
}

func (p *recordingPublisher) Sent() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published{}, p.sent...)
}

func statusOf(err error) int {
	if err == nil {
		return 0
	}
	return GetServiceError(err).GetStatusCode()
}
