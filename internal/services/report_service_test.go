package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentReport seeds a course with a purchased learner's comment and a
// report about it filed by another learner.
func (f *fixture) commentReport(description string) (*models.Comment, *models.Report) {
	f.t.Helper()
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	author := f.learner()
	f.purchase(author.ID, course.ID)

	comment, err := f.svc.Comment.CreateComment(f.ctx, f.learnerID(author.ID), &CommentRequest{
		CourseID: course.ID,
		Text:     "buy my course instead",
	})
	require.NoError(f.t, err)

	report, err := f.svc.Report.CreateReport(f.ctx, f.learnerID(f.learner().ID), &ReportRequest{
		Description: description,
		CommentID:   comment.ID,
	})
	require.NoError(f.t, err)
	return comment, report
}

func TestCreateReport_ResolvesTargets(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()
	course := f.course(educator.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(educator.ID), course.ID, []float64{3}).Chapters[0]
	reporter := f.learnerID(f.learner().ID)

	byCourse, err := f.svc.Report.CreateReport(f.ctx, reporter, &ReportRequest{Description: "misleading", CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, educator.ID, models.StringValue(byCourse.TargetUserID))

	byChapter, err := f.svc.Report.CreateReport(f.ctx, reporter, &ReportRequest{Description: "broken", ChapterID: chapter.ID})
	require.NoError(t, err)
	assert.Equal(t, educator.ID, models.StringValue(byChapter.TargetUserID))
	assert.Equal(t, course.ID, models.StringValue(byChapter.CourseID))

	comment, byComment := f.commentReport("spam")
	assert.Equal(t, comment.UserID, models.StringValue(byComment.TargetUserID))
	assert.Equal(t, comment.CourseID, models.StringValue(byComment.CourseID))
}

func TestCreateReport_NeedsAReference(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Report.CreateReport(f.ctx, f.learnerID(f.learner().ID), &ReportRequest{Description: "vague"})

	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestCreateReport_UnknownComment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Report.CreateReport(f.ctx, f.learnerID(f.learner().ID), &ReportRequest{Description: "x", CommentID: "comment-missing"})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestReportAction_WarnKeepsReport(t *testing.T) {
	f := newFixture(t)
	comment, report := f.commentReport("spam links")

	msg, err := f.svc.Report.ReportAction(f.ctx, &ReportActionRequest{ReportID: report.ID, Status: ReportActionWarn})

	require.NoError(t, err)
	assert.Equal(t, "Warning sent to the content owner", msg)
	assert.NotNil(t, f.store.Report(report.ID))

	notifications := f.store.Notifications()
	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, comment.UserID, n.UserID)
	assert.True(t, strings.HasPrefix(n.Message, "Warning: your comment"))
	assert.True(t, strings.HasSuffix(n.Message, " Reason: spam links"))
	assert.Equal(t, comment.ID, models.StringValue(n.CommentID))

	sent := f.pub.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, comment.UserID, sent[0].UserID)
}

func TestReportAction_ResolveDeletesReport(t *testing.T) {
	f := newFixture(t)
	comment, report := f.commentReport("abuse")

	msg, err := f.svc.Report.ReportAction(f.ctx, &ReportActionRequest{ReportID: report.ID, Status: "resolved"})

	require.NoError(t, err)
	assert.Equal(t, "Report resolved and the content owner notified", msg)
	assert.Nil(t, f.store.Report(report.ID))

	notifications := f.store.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, comment.UserID, notifications[0].UserID)
	assert.True(t, strings.HasPrefix(notifications[0].Message, "Action taken: your comment"))
	assert.Len(t, f.pub.Sent(), 1)
	assert.Equal(t, 1, f.store.Commits)
}

func TestReportAction_NotificationFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	_, report := f.commentReport("abuse")
	f.store.FailOn("Notification.Create", errors.New("disk full"))

	_, err := f.svc.Report.ReportAction(f.ctx, &ReportActionRequest{ReportID: report.ID, Status: "resolved"})

	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.NotNil(t, f.store.Report(report.ID))
	assert.Empty(t, f.store.Notifications())
	assert.Empty(t, f.pub.Sent())
	assert.Equal(t, 1, f.store.Rollbacks)
}

func TestReportAction_UnknownReport(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Report.ReportAction(f.ctx, &ReportActionRequest{ReportID: "report-missing"})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestReportAction_MissingOwner(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	report := &models.Report{Description: "orphan", CourseID: models.StringPtr(course.ID), UserID: "u"}
	require.NoError(t, f.repos.Report.Create(f.ctx, report))

	_, err := f.svc.Report.ReportAction(f.ctx, &ReportActionRequest{ReportID: report.ID})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
	assert.Equal(t, "Reported content owner not found", GetServiceError(err).Message)
}

func TestComposeReportMessage_Precedence(t *testing.T) {
	detail := &models.ReportDetail{
		Report: models.Report{
			Description: "off topic",
			CourseID:    models.StringPtr("c"),
			ChapterID:   models.StringPtr("ch"),
		},
		ChapterTitle: "Intro",
		CourseTitle:  "Go 101",
	}

	assert.Equal(t,
		`Action taken: your chapter "Intro" was reported and has been moderated by an admin. Reason: off topic`,
		composeReportMessage(detail, false))

	detail.ChapterID = nil
	assert.Equal(t,
		`Warning: your course "Go 101" was reported and may be restricted. Reason: off topic`,
		composeReportMessage(detail, true))
}

// ===============================
// COMMENTS AND REVIEWS
// ===============================

func TestCreateComment_RequiresAccess(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)

	_, err := f.svc.Comment.CreateComment(f.ctx, f.learnerID(f.learner().ID), &CommentRequest{CourseID: course.ID, Text: "hi"})

	assert.Equal(t, http.StatusForbidden, statusOf(err))
}

func TestCreateComment_ChapterMustBelongToCourse(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)
	other := f.course(owner.ID, models.CourseStatusApproved)
	chapter := f.addChapters(f.educatorID(owner.ID), other.ID, []float64{1}).Chapters[0]

	_, err := f.svc.Comment.CreateComment(f.ctx, f.educatorID(owner.ID), &CommentRequest{
		CourseID:  course.ID,
		ChapterID: chapter.ID,
		Text:      "see chapter",
	})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestCreateReview_OncePerLearner(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()
	f.purchase(learner.ID, course.ID)
	user, err := f.repos.User.GetByID(f.ctx, learner.ID)
	require.NoError(t, err)

	_, err = f.svc.Review.CreateReview(f.ctx, user, &ReviewRequest{CourseID: course.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)

	_, err = f.svc.Review.CreateReview(f.ctx, user, &ReviewRequest{CourseID: course.ID, Rating: 1})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, "REVIEW_EXISTS", GetServiceError(err).Code)

	reviews, err := f.svc.Review.ListReviews(f.ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestCreateReview_RatingRange(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()

	_, err := f.svc.Review.CreateReview(f.ctx, learner, &ReviewRequest{CourseID: course.ID, Rating: 6})

	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}
