// ===============================
// FILE: internal/handlers/api/v1/chapters/chapters_controller.go
// ===============================

package chapters

import (
	"context"
	"net/http"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/response"
	"learnhub/internal/services"
	"learnhub/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ChapterController handles chapter and video management for educators
type ChapterController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewChapterController creates a new chapter controller
func NewChapterController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *ChapterController {
	return &ChapterController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// AddChapters uploads videos and appends chapters to a course
// - POST /api/educator/addchapter/{courseId} (multipart)
func (c *ChapterController) AddChapters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	courseID := mux.Vars(r)["courseId"]
	logger := contextutils.Logger(r.Context(), c.logger).With(
		zap.String("endpoint", "add_chapters"),
		zap.String("course_id", courseID),
	)

	if err := utils.ParseMultipart(r, c.serviceCollection.Config.Upload.MaxMemory); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	files, release, err := utils.FormFiles(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer release()

	result, err := c.serviceCollection.Chapter.AddChapters(ctx, contextutils.Identity(r.Context()), courseID, &services.AddChaptersRequest{
		ChaptersJSON: r.FormValue("chapters"),
		Files:        files,
	})
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	logger.Info("Chapters added", zap.Int("chapters", len(result.Chapters)))

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":      "Chapters added successfully",
		"course":   result.Course,
		"chapters": result.Chapters,
	})
}

// EditChapter replaces a chapter's fields and videos
// - PUT /api/educator/editchapter/{courseId}/{chapterId} (multipart)
func (c *ChapterController) EditChapter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	vars := mux.Vars(r)

	if err := utils.ParseMultipart(r, c.serviceCollection.Config.Upload.MaxMemory); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	files, release, err := utils.FormFiles(r)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	defer release()

	chapter, err := c.serviceCollection.Chapter.EditChapter(ctx, contextutils.Identity(r.Context()), vars["courseId"], vars["chapterId"], &services.EditChapterRequest{
		ChapterJSON: r.FormValue("chapter"),
		Files:       files,
	})
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":     "Chapter updated successfully",
		"chapter": chapter,
	})
}

// DeleteChapters removes chapters and their videos
// - DELETE /api/educator/deletechapter
func (c *ChapterController) DeleteChapters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	var req services.DeleteChaptersRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	result, err := c.serviceCollection.Chapter.DeleteChapters(ctx, contextutils.Identity(r.Context()), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteJSON(w, r, http.StatusOK, result)
}
