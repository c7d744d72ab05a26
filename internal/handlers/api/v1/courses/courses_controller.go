// ===============================
// FILE: internal/handlers/api/v1/courses/courses_controller.go
// ===============================

package courses

import (
	"context"
	"net/http"
	"strings"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/models"
	"learnhub/internal/response"
	"learnhub/internal/services"
	"learnhub/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// CourseController handles catalogue, authoring and deletion of courses
type CourseController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewCourseController creates a new course controller
func NewCourseController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *CourseController {
	return &CourseController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ===============================
// CATALOGUE ENDPOINTS
// ===============================

// ListApproved returns the public catalogue - GET /api/courses
func (c *CourseController) ListApproved(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	courses, err := c.serviceCollection.Course.ListApproved(ctx)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"courses": courses})
}

// GetCourse returns one course - GET /api/course/{courseId}
func (c *CourseController) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	course, err := c.serviceCollection.Course.GetCourse(ctx, mux.Vars(r)["courseId"])
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"course": course})
}

// ListReviews returns a course's reviews - GET /api/course/{courseId}/reviews
func (c *CourseController) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviews, err := c.serviceCollection.Review.ListReviews(ctx, mux.Vars(r)["courseId"])
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"reviews": reviews})
}

// ListComments returns a course's comments - GET /api/course/{courseId}/comments
func (c *CourseController) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	comments, err := c.serviceCollection.Comment.ListComments(ctx, mux.Vars(r)["courseId"])
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"comments": comments})
}

// GetChapter returns a chapter to a learner or educator with course access
// - GET /api/course/{courseId}/chapter/{chapterId}
func (c *CourseController) GetChapter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vars := mux.Vars(r)
	chapter, err := c.serviceCollection.Chapter.GetChapter(ctx, contextutils.Identity(r.Context()), vars["courseId"], vars["chapterId"])
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"chapter": chapter})
}

// ===============================
// EDUCATOR ENDPOINTS
// ===============================

// CreateCourse stores a new course with an optional thumbnail
// - POST /api/educator/addcourse (multipart)
func (c *CourseController) CreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	educator, ok := c.educator(w, r)
	if !ok {
		return
	}

	req, image, release, err := c.parseCourseForm(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer release()

	course, err := c.serviceCollection.Course.CreateCourse(ctx, educator, req, image)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":    "Course created successfully",
		"course": course,
	})
}

// EditCourse replaces the course fields and optionally its thumbnail
// - PUT /api/educator/editcourse/{courseId} (multipart)
func (c *CourseController) EditCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	req, image, release, err := c.parseCourseForm(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer release()

	course, err := c.serviceCollection.Course.EditCourse(ctx, contextutils.Identity(r.Context()), mux.Vars(r)["courseId"], req, image)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":         "Course updated successfully",
		"course":      course,
		"courseImage": course.ImageURL,
	})
}

// ListMine returns the signed-in educator's courses - GET /api/educator/courses
func (c *CourseController) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	educator, ok := c.educator(w, r)
	if !ok {
		return
	}

	courses, err := c.serviceCollection.Course.ListByEducator(ctx, educator.ID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"courses": courses})
}

// DeleteCourse runs the course deletion flow for the owning educator or an
// admin - DELETE /api/educator/deletecourse/{courseId},
// DELETE /api/admin/deletecourse/{courseId}
func (c *CourseController) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	courseID := mux.Vars(r)["courseId"]
	result, err := c.serviceCollection.Course.DeleteCourse(ctx, contextutils.Identity(r.Context()), courseID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	contextutils.Logger(r.Context(), c.logger).Info("Course deleted",
		zap.String("course_id", courseID),
		zap.Int("deleted_chapters", result.DeletedChapters),
		zap.Int("failed_resources", result.FailedResources),
	)

	c.responseBuilder.WriteJSON(w, r, http.StatusOK, result)
}

// ===============================
// ADMIN ENDPOINTS
// ===============================

// UpdateStatus changes a course's moderation status
// - PATCH /api/admin/course/{courseId}/status
func (c *CourseController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req services.StatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	course, err := c.serviceCollection.Course.UpdateStatus(ctx, mux.Vars(r)["courseId"], req.Status)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":    "Course status updated",
		"course": course,
	})
}

// ===============================
// HELPERS
// ===============================

func (c *CourseController) educator(w http.ResponseWriter, r *http.Request) (*models.Educator, bool) {
	if id, ok := contextutils.Identity(r.Context()).(models.EducatorIdentity); ok {
		return id.Educator, true
	}
	c.responseBuilder.WriteError(w, r, services.NewForbiddenError(services.ReasonUnauthorizedAccess))
	return nil, false
}

func (c *CourseController) parseCourseForm(r *http.Request) (*services.CreateCourseRequest, *services.FileUpload, func(), error) {
	noop := func() {}
	if err := utils.ParseMultipart(r, c.serviceCollection.Config.Upload.MaxMemory); err != nil {
		return nil, nil, noop, err
	}

	price, err := utils.FormFloat(r, "price")
	if err != nil {
		return nil, nil, noop, err
	}

	files, release, err := utils.FormFiles(r)
	if err != nil {
		return nil, nil, noop, err
	}

	req := &services.CreateCourseRequest{
		Title:       utils.SanitizeString(r.FormValue("title")),
		Description: utils.SanitizeString(r.FormValue("description")),
		Price:       price,
		Category:    strings.TrimSpace(r.FormValue("category")),
		Level:       strings.TrimSpace(r.FormValue("level")),
		Language:    strings.TrimSpace(r.FormValue("language")),
	}
	return req, files["image"], release, nil
}
