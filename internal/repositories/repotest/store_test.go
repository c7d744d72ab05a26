package repotest

import (
	"context"
	"errors"
	"testing"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	store := New()
	repos := store.Collection()
	ctx := context.Background()

	educator := &models.Educator{Name: "Ada", Email: "ada@learnhub.dev"}
	require.NoError(t, repos.Educator.Create(ctx, educator))
	course := &models.Course{EducatorID: educator.ID, Title: "Go"}
	require.NoError(t, repos.Course.Create(ctx, course))

	boom := errors.New("boom")
	err := repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repos.Chapter.CreateMany(ctx, []*models.Chapter{{CourseID: course.ID, Title: "one"}}))
		require.NoError(t, repos.Course.Reconcile(ctx, course.ID))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.Chapters(course.ID))
	assert.Equal(t, 0, store.Course(course.ID).TotalSections)
	assert.Equal(t, 1, store.Rollbacks)
}

func TestFailOn_InjectsAndClears(t *testing.T) {
	store := New()
	repos := store.Collection()
	ctx := context.Background()

	boom := errors.New("boom")
	store.FailOn("Notification.Create", boom)
	assert.ErrorIs(t, repos.Notification.Create(ctx, &models.Notification{UserID: "u"}), boom)

	store.FailOn("Notification.Create", nil)
	assert.NoError(t, repos.Notification.Create(ctx, &models.Notification{UserID: "u"}))
	assert.Len(t, store.Notifications(), 1)
}

func TestEducatorCoursesDerivedFromAuthorship(t *testing.T) {
	store := New()
	repos := store.Collection()
	ctx := context.Background()

	educator := &models.Educator{Name: "Ada", Email: "ada@learnhub.dev"}
	require.NoError(t, repos.Educator.Create(ctx, educator))
	first := &models.Course{EducatorID: educator.ID, Title: "first"}
	second := &models.Course{EducatorID: educator.ID, Title: "second"}
	require.NoError(t, repos.Course.Create(ctx, first))
	require.NoError(t, repos.Course.Create(ctx, second))

	got, err := repos.Educator.GetByEmail(ctx, "ADA@learnhub.dev")
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, got.Courses)

	require.NoError(t, repos.Course.Delete(ctx, first.ID))
	got, err = repos.Educator.GetByID(ctx, educator.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, got.Courses)

	_, err = repos.Educator.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
