package services

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"

	"learnhub/internal/media"
	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngUpload(t *testing.T, width, height int) *FileUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, height/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &FileUpload{Filename: "cover.png", Size: int64(buf.Len()), Content: bytes.NewReader(buf.Bytes())}
}

func courseRequest(title string) *CreateCourseRequest {
	return &CreateCourseRequest{
		Title:       title,
		Description: "Learn things",
		Price:       19.99,
		Category:    "development",
		Level:       "beginner",
		Language:    "English",
	}
}

func TestCreateCourse_NormalizesThumbnail(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()

	course, err := f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go in Practice"), pngUpload(t, 200, 100))

	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPending, course.Status)
	assert.Equal(t, educator.ID, course.EducatorID)

	uploads := f.media.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, media.KindImage, uploads[0].Kind)
	assert.Equal(t, "learnhub/courses/thumbnails", uploads[0].Folder)
	assert.Equal(t, uploads[0].PublicID, course.ImagePublicID)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(uploads[0].Content))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestCreateCourse_Rejections(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()

	_, err := f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go"), nil)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go basics"), upload("cover.png", "not an image"))
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	educator.Restriction = 1
	_, err = f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go basics"), nil)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	assert.Empty(t, f.media.Uploads())
}

func TestCreateCourse_StoreFailureDiscardsThumbnail(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("Course.Create", errors.New("db down"))

	_, err := f.svc.Course.CreateCourse(f.ctx, f.educator(), courseRequest("Go basics"), pngUpload(t, 10, 10))

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Len(t, f.media.Uploads(), 1)
	assert.Empty(t, f.media.Live())
}

func TestEditCourse_ReplacesThumbnail(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()
	course, err := f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go basics"), pngUpload(t, 10, 10))
	require.NoError(t, err)
	oldThumb := course.ImagePublicID

	edited, err := f.svc.Course.EditCourse(f.ctx, f.educatorID(educator.ID), course.ID, courseRequest("Go advanced"), pngUpload(t, 20, 20))

	require.NoError(t, err)
	assert.Equal(t, "Go advanced", edited.Title)
	assert.NotEqual(t, oldThumb, edited.ImagePublicID)
	assert.Equal(t, []string{oldThumb}, f.media.Deleted())
	assert.Equal(t, []string{edited.ImagePublicID}, f.media.Live())
}

func TestEditCourse_NonOwner(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)

	_, err := f.svc.Course.EditCourse(f.ctx, f.educatorID(f.educator().ID), course.ID, courseRequest("Hijack"), nil)

	assert.Equal(t, http.StatusForbidden, statusOf(err))
}

// ===============================
// CATALOGUE CACHE
// ===============================

func TestCatalogue_InvalidatedByStatusChange(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusPending)

	listed, err := f.svc.Course.ListApproved(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	cached, err := f.svc.Course.GetCourse(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPending, cached.Status)

	// writes that bypass the service are not visible while cached
	require.NoError(t, f.repos.Course.UpdateStatus(f.ctx, course.ID, models.CourseStatusRejected))
	stale, err := f.svc.Course.GetCourse(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPending, stale.Status)

	_, err = f.svc.Course.UpdateStatus(f.ctx, course.ID, models.CourseStatusApproved)
	require.NoError(t, err)

	fresh, err := f.svc.Course.GetCourse(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusApproved, fresh.Status)

	listed, err = f.svc.Course.ListApproved(f.ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, course.ID, listed[0].ID)
}

func TestCatalogue_ChapterChangesInvalidateCourse(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	_, err := f.svc.Course.GetCourse(f.ctx, course.ID)
	require.NoError(t, err)
	f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10})

	fresh, err := f.svc.Course.GetCourse(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalSections)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusPending)

	_, err := f.svc.Course.UpdateStatus(f.ctx, course.ID, "published")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.svc.Course.UpdateStatus(f.ctx, "course-missing", models.CourseStatusApproved)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

// ===============================
// DELETION
// ===============================

func TestDeleteCourse_RemoteFailureIsCountedNotRolledBack(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10, 20}, []float64{5})
	failing := added.Chapters[1].Videos[0].VideoPublicID
	f.media.FailDelete(failing, errors.New("host unavailable"))
	commits := f.store.Commits

	res, err := f.svc.Course.DeleteCourse(f.ctx, f.educatorID(owner.ID), course.ID)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.DeletedResources)
	assert.Equal(t, 1, res.FailedResources)
	assert.Equal(t, 2, res.DeletedChapters)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], failing)

	assert.Nil(t, f.store.Course(course.ID))
	assert.Empty(t, f.store.Chapters(course.ID))
	assert.Equal(t, commits+1, f.store.Commits)
	assert.Zero(t, f.store.Rollbacks)
	assert.Equal(t, []string{failing}, f.media.Live())
}

func TestDeleteCourse_IncludesThumbnail(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()
	course, err := f.svc.Course.CreateCourse(f.ctx, educator, courseRequest("Go basics"), pngUpload(t, 10, 10))
	require.NoError(t, err)
	f.addChapters(f.educatorID(educator.ID), course.ID, []float64{3})

	res, err := f.svc.Course.DeleteCourse(f.ctx, f.admin(), course.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedResources)
	assert.Empty(t, f.media.Live())
}

func TestDeleteCourse_Denied(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	learner := f.learner()
	f.purchase(learner.ID, course.ID)

	for name, identity := range map[string]models.Identity{
		"other educator": f.educatorID(f.educator().ID),
		"learner":        f.learnerID(learner.ID),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Course.DeleteCourse(f.ctx, identity, course.ID)
			assert.Equal(t, http.StatusForbidden, statusOf(err))
		})
	}
	assert.NotNil(t, f.store.Course(course.ID))
}

func TestDeleteCourse_NotFoundForAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Course.DeleteCourse(f.ctx, f.admin(), "course-missing")

	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, "Course not found", GetServiceError(err).Message)
}

func TestDeleteCourse_StoreFailureKeepsEverything(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10})
	f.store.FailOn("Course.Delete", errors.New("lock timeout"))

	_, err := f.svc.Course.DeleteCourse(f.ctx, f.educatorID(owner.ID), course.ID)

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.NotNil(t, f.store.Course(course.ID))
	assert.Len(t, f.store.Chapters(course.ID), 1)
	assert.Empty(t, f.media.Deleted())
}
