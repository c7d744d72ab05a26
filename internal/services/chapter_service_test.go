package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChapters_ReconcilesCounters(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	res := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10, 20}, []float64{5})

	require.Len(t, res.Chapters, 2)
	assert.Equal(t, 2, res.Course.TotalSections)
	assert.Equal(t, 3, res.Course.TotalLectures)
	assert.Equal(t, 35.0, res.Course.Duration)
	assert.Len(t, res.Course.Chapters, 2)

	assert.Equal(t, 30.0, res.Chapters[0].Duration)
	for _, v := range res.Chapters[0].Videos {
		assert.NotEmpty(t, v.VideoURL)
		assert.Contains(t, v.VideoPublicID, "learnhub/courses/"+course.ID+"/chapters/")
	}
	assert.Len(t, f.media.Uploads(), 3)
	assert.Equal(t, 1, f.store.Commits)
}

func TestAddChapters_AppendsAfterExistingChapters(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10})
	res := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{4, 4})

	assert.Equal(t, 2, res.Course.TotalSections)
	assert.Equal(t, 3, res.Course.TotalLectures)
	assert.Equal(t, 18.0, res.Course.Duration)
	assert.Equal(t, 1, res.Chapters[0].Position)
}

func TestAddChapters_NonOwnerIsForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	other := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.educatorID(other.ID), course.ID, chaptersRequest([]float64{10}))

	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Empty(t, f.store.Chapters(course.ID))
	assert.Empty(t, f.media.Uploads())
}

func TestAddChapters_LearnerIsForbidden(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()
	f.purchase(learner.ID, course.ID)

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.learnerID(learner.ID), course.ID, chaptersRequest([]float64{10}))

	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Empty(t, f.media.Uploads())
}

func TestAddChapters_InvalidPayload(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	cases := map[string]*AddChaptersRequest{
		"empty":      {ChaptersJSON: ""},
		"not json":   {ChaptersJSON: "{oops"},
		"no items":   {ChaptersJSON: "[]"},
		"no videos":  {ChaptersJSON: `[{"title":"Intro","videos":[]}]`},
		"no title":   {ChaptersJSON: `[{"videos":[{"title":"v","duration":1}]}]`},
		"file gone":  {ChaptersJSON: `[{"title":"Intro","videos":[{"title":"v","duration":1}]}]`},
		"bad length": {ChaptersJSON: `[{"title":"Intro","videos":[{"title":"v","duration":-1}]}]`},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Chapter.AddChapters(f.ctx, f.educatorID(owner.ID), course.ID, req)
			assert.Equal(t, http.StatusBadRequest, statusOf(err))
		})
	}
	assert.Empty(t, f.media.Uploads())
}

func TestAddChapters_ReconcileFailureCompensates(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	f.store.FailOn("Course.Reconcile", errors.New("write conflict"))

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.educatorID(owner.ID), course.ID, chaptersRequest([]float64{10, 20}, []float64{5}))

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Empty(t, f.store.Chapters(course.ID))
	assert.Zero(t, f.store.Course(course.ID).TotalSections)
	assert.Len(t, f.media.Uploads(), 3)
	assert.Empty(t, f.media.Live())
	assert.Equal(t, 1, f.store.Rollbacks)
}

func TestAddChapters_UploadFailureCompensates(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	f.media.FailUpload("c1-v0.mp4", errors.New("quota exceeded"))

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.educatorID(owner.ID), course.ID, chaptersRequest([]float64{10, 20}, []float64{5}))

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Empty(t, f.store.Chapters(course.ID))
	assert.Empty(t, f.media.Live())
	assert.Zero(t, f.store.Commits)
}

func TestAddChapters_AdminCannotAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.admin(), "course-missing", chaptersRequest([]float64{1}))

	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Empty(t, f.media.Uploads())
}

// ===============================
// EDIT
// ===============================

func editJSON(videos ...string) string {
	list := ""
	for i, v := range videos {
		if i > 0 {
			list += ","
		}
		list += v
	}
	return fmt.Sprintf(`{"title":" Renamed ","description":"new","videos":[%s]}`, list)
}

func TestEditChapter_KeepsSubmittedVideos(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10})
	chapter := added.Chapters[0]
	original := chapter.Videos[0]

	edited, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, chapter.ID, &EditChapterRequest{
		ChapterJSON: editJSON(fmt.Sprintf(`{"title":"Same","duration":12,"videoUrl":%q,"videoPublicId":%q}`,
			original.VideoURL, original.VideoPublicID)),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Title)
	require.Len(t, edited.Videos, 1)
	assert.Equal(t, original.VideoURL, edited.Videos[0].VideoURL)
	assert.Equal(t, original.VideoPublicID, edited.Videos[0].VideoPublicID)
	assert.Len(t, f.media.Uploads(), 1)
	assert.Empty(t, f.media.Deleted())

	// the edit path reconciles counters too
	assert.Equal(t, 12.0, f.store.Course(course.ID).Duration)
}

func TestEditChapter_ReplacesAndDropsVideos(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10, 20})
	chapter := added.Chapters[0]
	first, second := chapter.Videos[0].VideoPublicID, chapter.Videos[1].VideoPublicID

	edited, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, chapter.ID, &EditChapterRequest{
		ChapterJSON: editJSON(`{"title":"Fresh","duration":7}`),
		Files:       map[string]*FileUpload{"video-0": upload("fresh.mp4", "new-bytes")},
	})

	require.NoError(t, err)
	require.Len(t, edited.Videos, 1)
	replacement := edited.Videos[0].VideoPublicID
	assert.NotEqual(t, first, replacement)

	deleted := f.media.Deleted()
	assert.Contains(t, deleted, first)
	assert.Contains(t, deleted, second)
	assert.Equal(t, []string{replacement}, f.media.Live())

	stored := f.store.Course(course.ID)
	assert.Equal(t, 1, stored.TotalLectures)
	assert.Equal(t, 7.0, stored.Duration)
}

func TestEditChapter_PositionWithoutFileNeedsExistingVideo(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10}).Chapters[0]

	_, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, chapter.ID, &EditChapterRequest{
		ChapterJSON: editJSON(`{"title":"Only url","duration":3,"videoUrl":"https://media.test/x"}`),
	})

	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Empty(t, f.media.Deleted())
}

func TestEditChapter_UnknownChapter(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	_, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, "chapter-missing", &EditChapterRequest{
		ChapterJSON: editJSON(`{"title":"New","duration":3}`),
		Files:       map[string]*FileUpload{"video-0": upload("new.mp4", "bytes")},
	})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Empty(t, f.media.Uploads())
}

// ===============================
// DELETE AND FETCH
// ===============================

func TestDeleteChapters_ReconcilesAndRemovesVideos(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10, 20}, []float64{5})

	res, err := f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(owner.ID), &DeleteChaptersRequest{
		CourseID:   course.ID,
		ChapterIDs: []string{added.Chapters[0].ID},
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.DeletedCount)
	assert.Equal(t, 2, res.VideosDeleted)
	assert.Zero(t, res.CloudinaryResults.Failed)

	stored := f.store.Course(course.ID)
	assert.Equal(t, 1, stored.TotalSections)
	assert.Equal(t, 1, stored.TotalLectures)
	assert.Equal(t, 5.0, stored.Duration)
	assert.Equal(t, []string{added.Chapters[1].ID}, stored.Chapters)
	assert.Equal(t, []string{added.Chapters[1].Videos[0].VideoPublicID}, f.media.Live())
}

func TestDeleteChapters_SecondCallIsNotFound(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10}, []float64{5})
	req := &DeleteChaptersRequest{CourseID: course.ID, ChapterIDs: []string{added.Chapters[0].ID}}

	_, err := f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(owner.ID), req)
	require.NoError(t, err)
	before := *f.store.Course(course.ID)

	_, err = f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(owner.ID), req)

	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, "No chapters found", GetServiceError(err).Message)
	after := f.store.Course(course.ID)
	assert.Equal(t, before.TotalSections, after.TotalSections)
	assert.Equal(t, before.TotalLectures, after.TotalLectures)
	assert.Equal(t, before.Duration, after.Duration)
}

func TestDeleteChapters_ValidationRunsFirst(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Chapter.DeleteChapters(f.ctx, nil, &DeleteChaptersRequest{CourseID: "c"})

	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestDeleteChapters_ReconcileFailureKeepsChapters(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	added := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10})
	f.store.FailOn("Course.Reconcile", errors.New("boom"))

	_, err := f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(owner.ID), &DeleteChaptersRequest{
		CourseID:   course.ID,
		ChapterIDs: []string{added.Chapters[0].ID},
	})

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Len(t, f.store.Chapters(course.ID), 1)
	assert.Empty(t, f.media.Deleted())
}

func TestGetChapter_RequiresPurchase(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10}).Chapters[0]
	learner := f.learner()

	_, err := f.svc.Chapter.GetChapter(f.ctx, f.learnerID(learner.ID), course.ID, chapter.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	f.purchase(learner.ID, course.ID)
	got, err := f.svc.Chapter.GetChapter(f.ctx, f.learnerID(learner.ID), course.ID, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, chapter.Videos, got.Videos)
}

func TestEditChapter_RejectsAssetsFromOtherChapters(t *testing.T) {
	f := newFixture(t)
	victim := f.educator()
	victimCourse := f.course(victim.ID, models.CourseStatusApproved)
	foreign := f.addChapters(f.educatorID(victim.ID), victimCourse.ID, []float64{10}).Chapters[0].Videos[0]

	editor := f.educator()
	course := f.course(editor.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(editor.ID), course.ID, []float64{5}).Chapters[0]
	own := chapter.Videos[0]

	tests := []struct {
		name  string
		video string
		files map[string]*FileUpload
	}{
		{
			name:  "replace",
			video: fmt.Sprintf(`{"title":"Swap","duration":4,"videoPublicId":%q}`, foreign.VideoPublicID),
			files: map[string]*FileUpload{"video-0": upload("swap.mp4", "new-bytes")},
		},
		{
			name: "keep",
			video: fmt.Sprintf(`{"title":"Keep","duration":4,"videoUrl":%q,"videoPublicId":%q}`,
				foreign.VideoURL, foreign.VideoPublicID),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(editor.ID), course.ID, chapter.ID, &EditChapterRequest{
				ChapterJSON: editJSON(tt.video),
				Files:       tt.files,
			})

			assert.Equal(t, http.StatusBadRequest, statusOf(err))
			assert.Empty(t, f.media.Deleted())
			assert.Contains(t, f.media.Live(), foreign.VideoPublicID)
		})
	}

	// the editor's chapter still holds only its own video
	res, err := f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(editor.ID), &DeleteChaptersRequest{
		CourseID:   course.ID,
		ChapterIDs: []string{chapter.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.VideosDeleted)
	assert.Equal(t, []string{own.VideoPublicID}, f.media.Deleted())
	assert.Contains(t, f.media.Live(), foreign.VideoPublicID)
}

func TestEditChapter_KeptVideoUsesStoredURL(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	original := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10}).Chapters[0]
	video := original.Videos[0]

	edited, err := f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, original.ID, &EditChapterRequest{
		ChapterJSON: editJSON(fmt.Sprintf(`{"title":"Keep","duration":10,"videoUrl":"https://elsewhere.test/v.mp4","videoPublicId":%q}`,
			video.VideoPublicID)),
	})

	require.NoError(t, err)
	require.Len(t, edited.Videos, 1)
	assert.Equal(t, video.VideoURL, edited.Videos[0].VideoURL)
	assert.Equal(t, video.VideoPublicID, edited.Videos[0].VideoPublicID)
}

func TestRestrictedEducatorCannotPublish(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(owner.ID), course.ID, []float64{10}).Chapters[0]
	require.NoError(t, f.repos.Educator.SetRestriction(f.ctx, owner.ID, 1))
	uploads := len(f.media.Uploads())

	_, err := f.svc.Chapter.AddChapters(f.ctx, f.educatorID(owner.ID), course.ID, chaptersRequest([]float64{3}))
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	_, err = f.svc.Chapter.EditChapter(f.ctx, f.educatorID(owner.ID), course.ID, chapter.ID, &EditChapterRequest{
		ChapterJSON: editJSON(`{"title":"New","duration":2}`),
		Files:       map[string]*FileUpload{"video-0": upload("new.mp4", "bytes")},
	})
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	_, err = f.svc.Course.EditCourse(f.ctx, f.educatorID(owner.ID), course.ID, courseRequest("Renamed"), nil)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Equal(t, ReasonAccountRestricted, GetServiceError(err).Message)

	assert.Len(t, f.media.Uploads(), uploads)
	assert.Empty(t, f.media.Deleted())

	// removing content stays possible
	_, err = f.svc.Chapter.DeleteChapters(f.ctx, f.educatorID(owner.ID), &DeleteChaptersRequest{
		CourseID:   course.ID,
		ChapterIDs: []string{chapter.ID},
	})
	assert.NoError(t, err)
}
