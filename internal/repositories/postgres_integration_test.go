//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const postgresPort = "5432/tcp"

func startPostgres(t *testing.T) *Collection {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     "learnhub",
			"POSTGRES_PASSWORD": "learnhub",
			"POSTGRES_DB":       "learnhub",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(postgresPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) }) //nolint:errcheck

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, postgresPort)
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		URL:                fmt.Sprintf("postgres://learnhub:learnhub@%s:%s/learnhub?sslmode=disable", host, port.Port()),
		MaxOpenConns:       5,
		MaxIdleConns:       2,
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		SlowQueryThreshold: time.Second,
		RunMigrations:      true,
	}

	manager, err := database.Connect(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	repos, err := NewCollection(manager, zap.NewNop())
	require.NoError(t, err)
	return repos
}

func seedCourse(t *testing.T, repos *Collection) (*models.Educator, *models.Course) {
	t.Helper()
	ctx := context.Background()

	educator := &models.Educator{Name: "Ada", Email: "ada@learnhub.dev", PasswordHash: "x"}
	require.NoError(t, repos.Educator.Create(ctx, educator))

	course := &models.Course{EducatorID: educator.ID, Title: "Go in practice"}
	require.NoError(t, repos.Course.Create(ctx, course))
	return educator, course
}

func TestPostgres_ReconcileTracksChapters(t *testing.T) {
	repos := startPostgres(t)
	ctx := context.Background()
	_, course := seedCourse(t, repos)

	chapters := []*models.Chapter{
		{CourseID: course.ID, Title: "Intro", Duration: 30, Videos: models.VideoList{
			{Title: "a", VideoURL: "u1", VideoPublicID: "p1", Duration: 10},
			{Title: "b", VideoURL: "u2", VideoPublicID: "p2", Duration: 20},
		}},
		{CourseID: course.ID, Title: "Basics", Duration: 5, Videos: models.VideoList{
			{Title: "c", VideoURL: "u3", VideoPublicID: "p3", Duration: 5},
		}},
	}

	err := repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := repos.Chapter.CreateMany(ctx, chapters); err != nil {
			return err
		}
		return repos.Course.Reconcile(ctx, course.ID)
	})
	require.NoError(t, err)

	got, err := repos.Course.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalSections)
	assert.Equal(t, 3, got.TotalLectures)
	assert.InDelta(t, 35.0, got.Duration, 0.001)
	assert.Equal(t, []string{chapters[0].ID, chapters[1].ID}, got.Chapters)

	n, err := repos.Chapter.DeleteByIDs(ctx, course.ID, []string{chapters[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, repos.Course.Reconcile(ctx, course.ID))

	got, err = repos.Course.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalSections)
	assert.Equal(t, 1, got.TotalLectures)
	assert.InDelta(t, 5.0, got.Duration, 0.001)
}

func TestPostgres_TransactionRollback(t *testing.T) {
	repos := startPostgres(t)
	ctx := context.Background()
	_, course := seedCourse(t, repos)

	boom := errors.New("boom")
	err := repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := repos.Chapter.CreateMany(ctx, []*models.Chapter{{CourseID: course.ID, Title: "lost"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	chapters, err := repos.Chapter.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestPostgres_ReviewUniqueness(t *testing.T) {
	repos := startPostgres(t)
	ctx := context.Background()
	_, course := seedCourse(t, repos)

	user := &models.User{Name: "Lin", Email: "lin@learnhub.dev"}
	require.NoError(t, repos.User.Create(ctx, user))

	require.NoError(t, repos.Review.Create(ctx, &models.Review{CourseID: course.ID, UserID: user.ID, Rating: 5}))
	err := repos.Review.Create(ctx, &models.Review{CourseID: course.ID, UserID: user.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPostgres_ReportDetailPopulatesTitles(t *testing.T) {
	repos := startPostgres(t)
	ctx := context.Background()
	educator, course := seedCourse(t, repos)

	comment := &models.Comment{CourseID: course.ID, UserID: educator.ID, Text: "spam"}
	require.NoError(t, repos.Comment.Create(ctx, comment))

	report := &models.Report{
		Description:  "abusive",
		CourseID:     &course.ID,
		CommentID:    &comment.ID,
		UserID:       "reporter",
		TargetUserID: &educator.ID,
	}
	require.NoError(t, repos.Report.Create(ctx, report))

	detail, err := repos.Report.GetDetail(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "spam", detail.CommentText)
	assert.Equal(t, "Go in practice", detail.CourseTitle)
	assert.Empty(t, detail.ChapterTitle)

	_, err = repos.Report.GetDetail(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
