package services

import (
	"context"
	"errors"
	"fmt"
	"path"

	"learnhub/internal/cache"
	"learnhub/internal/media"
	"learnhub/internal/models"
	"learnhub/internal/validation"

	"go.uber.org/zap"
)

// validateRequest runs struct validation and converts failures into a
// detailed validation error
func validateRequest(req interface{}) error {
	err := validation.ValidateStruct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make([]FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, FieldError{Field: fe.Field, Message: fe.Message, Code: fe.Tag})
		}
		return NewDetailedValidationError(fieldErrs.Error(), fields)
	}
	return NewValidationError("Invalid request", err)
}

// rejectRestricted stops restricted educators from publishing content
func rejectRestricted(identity models.Identity) error {
	if id, ok := identity.(models.EducatorIdentity); ok && id.Educator.IsRestricted() {
		return NewForbiddenError(ReasonAccountRestricted)
	}
	return nil
}

// ===============================
// MEDIA FOLDERS
// ===============================

func chapterFolder(root, courseID string) string {
	return path.Join(root, "courses", courseID, "chapters")
}

func thumbnailFolder(root string) string {
	return path.Join(root, "courses", "thumbnails")
}

func videoTargets(chapters []*models.Chapter) []media.Target {
	var targets []media.Target
	for _, ch := range chapters {
		for _, v := range ch.Videos {
			targets = append(targets, media.Target{PublicID: v.VideoPublicID, Kind: media.KindVideo})
		}
	}
	return targets
}

func assetTargets(assets []*media.Asset, kind media.Kind) []media.Target {
	targets := make([]media.Target, 0, len(assets))
	for _, a := range assets {
		targets = append(targets, media.Target{PublicID: a.PublicID, Kind: kind})
	}
	return targets
}

// ===============================
// COURSE CACHE KEYS
// ===============================

const catalogCacheKey = "courses:approved"

func courseCacheKey(courseID string) string {
	return fmt.Sprintf("course:%s", courseID)
}

// invalidateCourse drops the cached detail of courseID and the catalogue.
// Cache failures are logged only.
func invalidateCourse(ctx context.Context, c cache.Cache, logger *zap.Logger, courseID string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, courseCacheKey(courseID), catalogCacheKey); err != nil {
		logger.Warn("Failed to invalidate course cache",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
	}
}
