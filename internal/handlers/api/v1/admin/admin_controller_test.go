package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/handlers/api/v1/apitest"
	"learnhub/internal/handlers/api/v1/notifications"
	"learnhub/internal/models"
	"learnhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportCourse(t *testing.T, env *apitest.Env) (models.EducatorIdentity, *models.Report) {
	t.Helper()
	owner := env.Educator()
	course := env.Course(owner.Educator.ID, models.CourseStatusApproved)
	report, err := env.Services.Report.CreateReport(env.Ctx, env.Learner(), &services.ReportRequest{
		Description: "Spam",
		CourseID:    course.ID,
	})
	require.NoError(t, err)
	return owner, report
}

func TestReportAction_WarnKeepsReport(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)
	owner, report := reportCourse(t, env)

	rec := httptest.NewRecorder()
	c.ReportAction(rec, apitest.Request(http.MethodPatch, "/",
		apitest.JSON(t, services.ReportActionRequest{ReportID: report.ID, Status: "warn"}), env.Admin(), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Warning sent to the content owner", apitest.Decode(t, rec)["message"])
	assert.NotNil(t, env.Store.Report(report.ID))

	notes, err := env.Services.Notification.List(env.Ctx, owner.Educator.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Reason: Spam")
}

func TestReportAction_ResolveConsumesReport(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)
	owner, report := reportCourse(t, env)

	rec := httptest.NewRecorder()
	c.ReportAction(rec, apitest.Request(http.MethodPatch, "/",
		apitest.JSON(t, services.ReportActionRequest{ReportID: report.ID}), env.Admin(), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, env.Store.Report(report.ID))

	// the owner reads and acknowledges the notification
	nc := notifications.NewNotificationController(env.Services, env.Logger, env.Builder)
	ownerID := env.EducatorIdentity(owner.Educator.ID)
	rec = httptest.NewRecorder()
	nc.List(rec, apitest.Request(http.MethodGet, "/", nil, ownerID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	list := apitest.Decode(t, rec)["notifications"].([]interface{})
	require.Len(t, list, 1)
	id := list[0].(map[string]interface{})["id"].(string)

	rec = httptest.NewRecorder()
	nc.MarkRead(rec, apitest.Request(http.MethodDelete, "/", nil, ownerID, map[string]string{"id": id}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, env.Store.Notifications())
}

func TestReportAction_MissingReport(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)

	rec := httptest.NewRecorder()
	c.ReportAction(rec, apitest.Request(http.MethodPatch, "/",
		apitest.JSON(t, services.ReportActionRequest{ReportID: "nope"}), env.Admin(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	c.ReportAction(rec, apitest.Request(http.MethodPatch, "/", apitest.JSON(t, map[string]string{}), env.Admin(), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReports(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)
	reportCourse(t, env)

	rec := httptest.NewRecorder()
	c.ListReports(rec, apitest.Request(http.MethodGet, "/", nil, env.Admin(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, apitest.Decode(t, rec)["reports"], 1)
}

func TestSetUserRestriction(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)
	learner := env.Learner()

	rec := httptest.NewRecorder()
	c.SetUserRestriction(rec, apitest.Request(http.MethodPatch, "/",
		apitest.JSON(t, services.RestrictionRequest{Restricted: true, Reason: "abuse"}), env.Admin(),
		map[string]string{"userId": learner.User.ID}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, env.LearnerIdentity(learner.User.ID).User.Restriction)

	rec = httptest.NewRecorder()
	c.SetUserRestriction(rec, apitest.Request(http.MethodPatch, "/",
		apitest.JSON(t, services.RestrictionRequest{}), env.Admin(), map[string]string{"userId": "missing"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteComment(t *testing.T) {
	env := apitest.New(t)
	c := NewAdminController(env.Services, env.Logger, env.Builder)
	owner := env.Educator()
	course := env.Course(owner.Educator.ID, models.CourseStatusApproved)
	comment, err := env.Services.Comment.CreateComment(env.Ctx, env.EducatorIdentity(owner.Educator.ID), &services.CommentRequest{
		CourseID: course.ID,
		Text:     "Welcome to the course",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c.DeleteComment(rec, apitest.Request(http.MethodDelete, "/", nil, env.Admin(), map[string]string{"commentId": comment.ID}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	c.DeleteComment(rec, apitest.Request(http.MethodDelete, "/", nil, env.Admin(), map[string]string{"commentId": comment.ID}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
