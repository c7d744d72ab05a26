package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/media"
	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

// courseService implements CourseService
type courseService struct {
	repos   *repositories.Collection
	access  AccessService
	storage media.Storage
	cache   cache.Cache
	logger  *zap.Logger

	rootFolder     string
	thumbnailWidth int
	concurrency    int
	cacheTTL       time.Duration
}

// NewCourseService creates the course service
func NewCourseService(
	repos *repositories.Collection,
	access AccessService,
	storage media.Storage,
	c cache.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) CourseService {
	return &courseService{
		repos:          repos,
		access:         access,
		storage:        storage,
		cache:          c,
		logger:         logger,
		rootFolder:     cfg.Cloudinary.RootFolder,
		thumbnailWidth: cfg.Upload.ThumbnailWidth,
		concurrency:    cfg.Upload.Concurrency,
		cacheTTL:       cfg.Cache.CourseTTL,
	}
}

// ===============================
// AUTHORING
// ===============================

// CreateCourse stores a new pending course owned by educator
func (s *courseService) CreateCourse(ctx context.Context, educator *models.Educator, req *CreateCourseRequest, image *FileUpload) (*models.Course, error) {
	if educator.IsRestricted() {
		return nil, NewForbiddenError(ReasonAccountRestricted)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		EducatorID: educator.ID,
		Status:     models.CourseStatusPending,
	}
	applyCourseFields(course, req)

	var thumb *media.Asset
	if image != nil {
		asset, err := s.uploadThumbnail(ctx, image)
		if err != nil {
			return nil, err
		}
		thumb = asset
		course.ImageURL = asset.URL
		course.ImagePublicID = asset.PublicID
	}

	if err := s.repos.Course.Create(ctx, course); err != nil {
		s.discardThumbnail(ctx, thumb)
		return nil, storeError(err, "Course")
	}

	invalidateCourse(ctx, s.cache, s.logger, course.ID)
	s.logger.Info("Course created",
		zap.String("course_id", course.ID),
		zap.String("educator_id", educator.ID),
	)
	return course, nil
}

// EditCourse updates the course fields and optionally replaces its
// thumbnail. The previous thumbnail is deleted once the update is stored.
func (s *courseService) EditCourse(ctx context.Context, identity models.Identity, courseID string, req *UpdateCourseRequest, image *FileUpload) (*models.Course, error) {
	decision, err := s.access.Check(ctx, identity, courseID)
	if err != nil {
		return nil, err
	}
	if !decision.CourseModify {
		return nil, NewForbiddenError(ReasonUnauthorizedAccess)
	}
	if err := rejectRestricted(identity); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	course, err := s.repos.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Course")
	}
	applyCourseFields(course, req)

	var (
		thumb     *media.Asset
		oldPublic = course.ImagePublicID
	)
	if image != nil {
		asset, err := s.uploadThumbnail(ctx, image)
		if err != nil {
			return nil, err
		}
		thumb = asset
		course.ImageURL = asset.URL
		course.ImagePublicID = asset.PublicID
	}

	if err := s.repos.Course.Update(ctx, course); err != nil {
		s.discardThumbnail(ctx, thumb)
		return nil, storeError(err, "Course")
	}

	if thumb != nil && oldPublic != "" {
		if err := s.storage.Delete(ctx, oldPublic, media.KindImage); err != nil {
			s.logger.Warn("Failed to delete previous thumbnail",
				zap.String("public_id", oldPublic),
				zap.Error(err),
			)
		}
	}

	invalidateCourse(ctx, s.cache, s.logger, courseID)
	return course, nil
}

func applyCourseFields(course *models.Course, req *CreateCourseRequest) {
	course.Title = strings.TrimSpace(req.Title)
	course.Description = req.Description
	course.Price = req.Price
	course.Category = strings.TrimSpace(req.Category)
	course.Level = strings.TrimSpace(req.Level)
	course.Language = strings.TrimSpace(req.Language)
}

func (s *courseService) uploadThumbnail(ctx context.Context, image *FileUpload) (*media.Asset, error) {
	normalized, err := media.NormalizeThumbnail(image.Content, s.thumbnailWidth)
	if err != nil {
		return nil, NewValidationError("Course image must be a valid image", err)
	}

	asset, err := s.storage.Upload(ctx, normalized, media.UploadOptions{
		Folder:   thumbnailFolder(s.rootFolder),
		Filename: image.Filename,
		Kind:     media.KindImage,
	})
	if err != nil {
		return nil, NewInternalError("Failed to upload course image: " + err.Error()).WithCause(err)
	}
	return asset, nil
}

func (s *courseService) discardThumbnail(ctx context.Context, thumb *media.Asset) {
	if thumb == nil {
		return
	}
	if err := s.storage.Delete(ctx, thumb.PublicID, media.KindImage); err != nil {
		s.logger.Warn("Failed to delete unused thumbnail",
			zap.String("public_id", thumb.PublicID),
			zap.Error(err),
		)
	}
}

// ===============================
// CATALOGUE
// ===============================

// GetCourse reads through the course cache
func (s *courseService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	key := courseCacheKey(courseID)
	if s.cache != nil {
		if cached, ok := cache.GetJSON[models.Course](ctx, s.cache, key); ok {
			return cached, nil
		}
	}

	course, err := s.repos.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Course")
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, course, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache course", zap.String("course_id", courseID), zap.Error(err))
		}
	}
	return course, nil
}

// ListApproved returns the public catalogue
func (s *courseService) ListApproved(ctx context.Context) ([]*models.Course, error) {
	if s.cache != nil {
		if cached, ok := cache.GetJSON[[]*models.Course](ctx, s.cache, catalogCacheKey); ok {
			return *cached, nil
		}
	}

	courses, err := s.repos.Course.ListByStatus(ctx, models.CourseStatusApproved)
	if err != nil {
		return nil, storeError(err, "Course")
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, catalogCacheKey, courses, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache catalogue", zap.Error(err))
		}
	}
	return courses, nil
}

// ListByEducator returns every course authored by educatorID
func (s *courseService) ListByEducator(ctx context.Context, educatorID string) ([]*models.Course, error) {
	courses, err := s.repos.Course.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, storeError(err, "Course")
	}
	return courses, nil
}

// ===============================
// DELETION AND MODERATION
// ===============================

// DeleteCourse removes the course and its chapters in one transaction and
// then deletes the thumbnail and every chapter video remotely. Remote
// failures are counted in the result and never undo the deletion.
func (s *courseService) DeleteCourse(ctx context.Context, identity models.Identity, courseID string) (*CourseDeletionResult, error) {
	var (
		course          *models.Course
		chapters        []*models.Chapter
		deletedChapters int
	)

	err := s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		switch identity.(type) {
		case models.EducatorIdentity:
			decision, err := s.access.Check(ctx, identity, courseID)
			if err != nil {
				return err
			}
			if !decision.CourseModify {
				return NewForbiddenError(ReasonUnauthorizedAccess)
			}
		case models.AdminIdentity:
		default:
			return NewForbiddenError(ReasonUnauthorizedAccess)
		}

		var err error
		course, err = s.repos.Course.GetByID(ctx, courseID)
		if err != nil {
			return storeError(err, "Course")
		}

		chapters, err = s.repos.Chapter.ListByCourse(ctx, courseID)
		if err != nil {
			return fmt.Errorf("failed to load chapters: %w", err)
		}

		deletedChapters, err = s.repos.Chapter.DeleteByCourse(ctx, courseID)
		if err != nil {
			return fmt.Errorf("failed to delete chapters: %w", err)
		}

		if err := s.repos.Course.Delete(ctx, courseID); err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Course deletion aborted",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return nil, storeError(err, "Course")
	}

	targets := videoTargets(chapters)
	if course.ImagePublicID != "" {
		targets = append(targets, media.Target{PublicID: course.ImagePublicID, Kind: media.KindImage})
	}
	res := media.BulkDelete(ctx, s.storage, targets, s.concurrency, s.logger)

	invalidateCourse(ctx, s.cache, s.logger, courseID)

	s.logger.Info("Course deleted",
		zap.String("course_id", courseID),
		zap.String("by_role", string(identity.Role())),
		zap.Int("chapters", deletedChapters),
		zap.Int("resources_deleted", res.Succeeded),
		zap.Int("resources_failed", res.Failed),
	)

	return &CourseDeletionResult{
		Success:          true,
		DeletedResources: res.Succeeded,
		FailedResources:  res.Failed,
		DeletedChapters:  deletedChapters,
		Errors:           res.Errors,
	}, nil
}

// UpdateStatus sets the moderation status of a course
func (s *courseService) UpdateStatus(ctx context.Context, courseID string, status models.CourseStatus) (*models.Course, error) {
	if !status.Valid() {
		return nil, NewValidationError(fmt.Sprintf("Invalid course status %q", status), nil)
	}

	if err := s.repos.Course.UpdateStatus(ctx, courseID, status); err != nil {
		return nil, storeError(err, "Course")
	}
	invalidateCourse(ctx, s.cache, s.logger, courseID)

	course, err := s.repos.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Course")
	}

	s.logger.Info("Course status changed",
		zap.String("course_id", courseID),
		zap.String("status", string(status)),
	)
	return course, nil
}
