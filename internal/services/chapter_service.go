package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/media"
	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// chapterService implements ChapterService
type chapterService struct {
	repos   *repositories.Collection
	access  AccessService
	storage media.Storage
	cache   cache.Cache
	logger  *zap.Logger

	rootFolder  string
	concurrency int
}

// NewChapterService creates the chapter and video manager
func NewChapterService(
	repos *repositories.Collection,
	access AccessService,
	storage media.Storage,
	c cache.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) ChapterService {
	concurrency := cfg.Upload.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &chapterService{
		repos:       repos,
		access:      access,
		storage:     storage,
		cache:       c,
		logger:      logger,
		rootFolder:  cfg.Cloudinary.RootFolder,
		concurrency: concurrency,
	}
}

// ===============================
// ADD CHAPTERS
// ===============================

// AddChapters uploads every video, then persists the chapters and
// reconciles the course counters in one transaction. Uploaded assets are
// deleted again if anything after the first upload fails.
func (s *chapterService) AddChapters(ctx context.Context, identity models.Identity, courseID string, req *AddChaptersRequest) (*AddChaptersResult, error) {
	if err := s.requireModify(ctx, identity, courseID); err != nil {
		return nil, err
	}
	if err := rejectRestricted(identity); err != nil {
		return nil, err
	}

	inputs, err := parseChapterInputs(req.ChaptersJSON)
	if err != nil {
		return nil, err
	}

	for i, ch := range inputs {
		for j := range ch.Videos {
			if req.Files[videoPartName(i, j)] == nil {
				return nil, NewValidationError(
					fmt.Sprintf("Missing video file for chapter %d, video %d", i+1, j+1), nil).
					WithDetail("field", videoPartName(i, j))
			}
		}
	}

	if _, err := s.repos.Course.GetByID(ctx, courseID); err != nil {
		return nil, storeError(err, "Course")
	}

	chapters, uploaded, err := s.uploadChapters(ctx, courseID, inputs, req.Files)
	if err != nil {
		s.compensate(ctx, courseID, uploaded)
		return nil, NewInternalError("Failed to upload videos: " + err.Error()).WithCause(err)
	}

	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repos.Chapter.CreateMany(ctx, chapters); err != nil {
			return fmt.Errorf("failed to create chapters: %w", err)
		}
		if err := s.repos.Course.Reconcile(ctx, courseID); err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to persist chapters",
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		s.compensate(ctx, courseID, uploaded)
		return nil, NewInternalError(err.Error()).WithCause(err)
	}

	invalidateCourse(ctx, s.cache, s.logger, courseID)

	course, err := s.repos.Course.GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Course")
	}

	s.logger.Info("Chapters added",
		zap.String("course_id", courseID),
		zap.Int("chapters", len(chapters)),
		zap.Int("videos", len(uploaded)),
	)

	return &AddChaptersResult{Course: course, Chapters: chapters}, nil
}

// uploadChapters fans the uploads out with at most s.concurrency in flight.
// It always returns every asset that was uploaded, even on failure.
func (s *chapterService) uploadChapters(ctx context.Context, courseID string, inputs []ChapterInput, files map[string]*FileUpload) ([]*models.Chapter, []*media.Asset, error) {
	chapters := make([]*models.Chapter, len(inputs))
	for i, in := range inputs {
		chapters[i] = &models.Chapter{
			CourseID:    courseID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Videos:      make(models.VideoList, len(in.Videos)),
		}
	}

	var (
		mu       sync.Mutex
		uploaded []*media.Asset
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	folder := chapterFolder(s.rootFolder, courseID)
	for i, in := range inputs {
		for j, v := range in.Videos {
			i, j, v := i, j, v
			file := files[videoPartName(i, j)]
			g.Go(func() error {
				asset, err := s.storage.Upload(gctx, file.Content, media.UploadOptions{
					Folder:   folder,
					Filename: file.Filename,
					Kind:     media.KindVideo,
				})
				if err != nil {
					return fmt.Errorf("chapter %d video %d: %w", i+1, j+1, err)
				}

				mu.Lock()
				uploaded = append(uploaded, asset)
				mu.Unlock()

				chapters[i].Videos[j] = models.Video{
					Title:         strings.TrimSpace(v.Title),
					VideoURL:      asset.URL,
					VideoPublicID: asset.PublicID,
					Duration:      v.Duration,
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, uploaded, err
	}

	for _, ch := range chapters {
		ch.Duration = ch.TotalDuration()
	}
	return chapters, uploaded, nil
}

func (s *chapterService) compensate(ctx context.Context, courseID string, uploaded []*media.Asset) {
	if len(uploaded) == 0 {
		return
	}
	res := media.BulkDelete(ctx, s.storage, assetTargets(uploaded, media.KindVideo), s.concurrency, s.logger)
	s.logger.Warn("Compensated chapter uploads",
		zap.String("course_id", courseID),
		zap.Int("deleted", res.Succeeded),
		zap.Int("failed", res.Failed),
	)
}

// ===============================
// EDIT CHAPTER
// ===============================

// EditChapter replaces a chapter. Positions with a new video-{i} part have
// their old asset deleted before the replacement is uploaded; positions
// without one keep a video already stored in this chapter. Asset ids are
// always resolved against the stored chapter.
func (s *chapterService) EditChapter(ctx context.Context, identity models.Identity, courseID, chapterID string, req *EditChapterRequest) (*models.Chapter, error) {
	if err := s.requireModify(ctx, identity, courseID); err != nil {
		return nil, err
	}
	if err := rejectRestricted(identity); err != nil {
		return nil, err
	}

	var input ChapterInput
	if err := json.Unmarshal([]byte(req.ChapterJSON), &input); err != nil {
		return nil, NewValidationError("Invalid chapter data", err)
	}
	if err := validateRequest(&input); err != nil {
		return nil, err
	}

	chapter, err := s.repos.Chapter.GetByID(ctx, courseID, chapterID)
	if err != nil {
		return nil, storeError(err, "Chapter")
	}

	stored := make(map[string]models.Video, len(chapter.Videos))
	for _, v := range chapter.Videos {
		if v.VideoPublicID != "" {
			stored[v.VideoPublicID] = v
		}
	}

	var (
		kept     = map[string]bool{}
		replaced = make([]string, len(input.Videos))
	)
	for i, v := range input.Videos {
		if v.VideoPublicID != "" {
			if _, ok := stored[v.VideoPublicID]; !ok {
				return nil, NewValidationError(
					fmt.Sprintf("Video %d references an asset that is not part of this chapter", i+1), nil)
			}
		}

		if req.Files[editPartName(i)] != nil {
			switch {
			case v.VideoPublicID != "":
				replaced[i] = v.VideoPublicID
			case i < len(chapter.Videos):
				replaced[i] = chapter.Videos[i].VideoPublicID
			}
			continue
		}

		if v.VideoURL == "" || v.VideoPublicID == "" {
			return nil, NewValidationError(
				fmt.Sprintf("Video %d needs a file or an existing videoUrl and videoPublicId", i+1), nil)
		}
		if kept[v.VideoPublicID] {
			return nil, NewValidationError(fmt.Sprintf("Video %d repeats an existing video", i+1), nil)
		}
		kept[v.VideoPublicID] = true
	}

	var (
		folder   = chapterFolder(s.rootFolder, courseID)
		videos   = make(models.VideoList, len(input.Videos))
		removed  = map[string]bool{}
		uploaded []*media.Asset
	)

	for i, v := range input.Videos {
		file := req.Files[editPartName(i)]
		if file == nil {
			existing := stored[v.VideoPublicID]
			videos[i] = models.Video{
				Title:         strings.TrimSpace(v.Title),
				VideoURL:      existing.VideoURL,
				VideoPublicID: existing.VideoPublicID,
				Duration:      v.Duration,
			}
			continue
		}

		if old := replaced[i]; old != "" && !kept[old] && !removed[old] {
			if err := s.storage.Delete(ctx, old, media.KindVideo); err != nil {
				s.logger.Warn("Failed to delete replaced video",
					zap.String("public_id", old),
					zap.Error(err),
				)
			}
			removed[old] = true
		}

		asset, err := s.storage.Upload(ctx, file.Content, media.UploadOptions{
			Folder:   folder,
			Filename: file.Filename,
			Kind:     media.KindVideo,
		})
		if err != nil {
			s.compensate(ctx, courseID, uploaded)
			return nil, NewInternalError("Failed to upload video: " + err.Error()).WithCause(err)
		}
		uploaded = append(uploaded, asset)

		videos[i] = models.Video{
			Title:         strings.TrimSpace(v.Title),
			VideoURL:      asset.URL,
			VideoPublicID: asset.PublicID,
			Duration:      v.Duration,
		}
	}

	var stale []media.Target
	for _, v := range chapter.Videos {
		if v.VideoPublicID == "" || kept[v.VideoPublicID] || removed[v.VideoPublicID] {
			continue
		}
		stale = append(stale, media.Target{PublicID: v.VideoPublicID, Kind: media.KindVideo})
	}

	chapter.Title = strings.TrimSpace(input.Title)
	chapter.Description = input.Description
	chapter.Videos = videos
	chapter.Duration = chapter.TotalDuration()

	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repos.Chapter.Update(ctx, chapter); err != nil {
			return fmt.Errorf("failed to update chapter: %w", err)
		}
		if err := s.repos.Course.Reconcile(ctx, courseID); err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		return nil
	})
	if err != nil {
		s.compensate(ctx, courseID, uploaded)
		return nil, NewInternalError(err.Error()).WithCause(err)
	}

	if len(stale) > 0 {
		res := media.BulkDelete(ctx, s.storage, stale, s.concurrency, s.logger)
		s.logger.Info("Removed videos dropped from chapter",
			zap.String("chapter_id", chapterID),
			zap.Int("deleted", res.Succeeded),
			zap.Int("failed", res.Failed),
		)
	}

	invalidateCourse(ctx, s.cache, s.logger, courseID)
	return chapter, nil
}

// ===============================
// DELETE CHAPTERS
// ===============================

// DeleteChapters removes chapters and reconciles the course in one
// transaction, then deletes their videos remotely on a best-effort basis.
func (s *chapterService) DeleteChapters(ctx context.Context, identity models.Identity, req *DeleteChaptersRequest) (*ChapterDeletionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireModify(ctx, identity, req.CourseID); err != nil {
		return nil, err
	}

	chapters, err := s.repos.Chapter.FindByIDs(ctx, req.CourseID, req.ChapterIDs)
	if err != nil {
		return nil, storeError(err, "Chapter")
	}
	if len(chapters) == 0 {
		return nil, NewNotFoundError("No chapters found")
	}

	ids := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		ids = append(ids, ch.ID)
	}

	var deleted int
	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repos.Chapter.DeleteByIDs(ctx, req.CourseID, ids)
		if err != nil {
			return fmt.Errorf("failed to delete chapters: %w", err)
		}
		deleted = n
		if err := s.repos.Course.Reconcile(ctx, req.CourseID); err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, NewInternalError(err.Error()).WithCause(err)
	}

	res := media.BulkDelete(ctx, s.storage, videoTargets(chapters), s.concurrency, s.logger)
	invalidateCourse(ctx, s.cache, s.logger, req.CourseID)

	s.logger.Info("Chapters deleted",
		zap.String("course_id", req.CourseID),
		zap.Int("chapters", deleted),
		zap.Int("videos_deleted", res.Succeeded),
		zap.Int("videos_failed", res.Failed),
	)

	return &ChapterDeletionResult{
		Success:           true,
		DeletedCount:      deleted,
		VideosDeleted:     res.Succeeded,
		CloudinaryResults: res,
	}, nil
}

// ===============================
// FETCH CHAPTER
// ===============================

// GetChapter returns a chapter to a learner who bought the course or to its educator
func (s *chapterService) GetChapter(ctx context.Context, identity models.Identity, courseID, chapterID string) (*models.Chapter, error) {
	if _, err := s.access.Check(ctx, identity, courseID); err != nil {
		return nil, err
	}

	chapter, err := s.repos.Chapter.GetByID(ctx, courseID, chapterID)
	if err != nil {
		return nil, storeError(err, "Chapter")
	}
	return chapter, nil
}

// ===============================
// HELPERS
// ===============================

func (s *chapterService) requireModify(ctx context.Context, identity models.Identity, courseID string) error {
	decision, err := s.access.Check(ctx, identity, courseID)
	if err != nil {
		return err
	}
	if !decision.CourseModify {
		return NewForbiddenError(ReasonUnauthorizedAccess)
	}
	return nil
}

func parseChapterInputs(raw string) ([]ChapterInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, NewValidationError("Chapters data is required", nil)
	}

	var inputs []ChapterInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, NewValidationError("Invalid chapters data", err)
	}
	if len(inputs) == 0 {
		return nil, NewValidationError("At least one chapter is required", nil)
	}

	for i := range inputs {
		if err := validateRequest(&inputs[i]); err != nil {
			se := GetServiceError(err)
			se.Message = fmt.Sprintf("Chapter %d: %s", i+1, se.Message)
			return nil, se
		}
	}
	return inputs, nil
}

func videoPartName(chapter, video int) string {
	return fmt.Sprintf("chapter-%d-video-%d", chapter, video)
}

func editPartName(video int) string {
	return fmt.Sprintf("video-%d", video)
}
