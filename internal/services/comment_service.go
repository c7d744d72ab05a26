// ===============================
// FILE: internal/services/comment_service.go
// ===============================

package services

import (
	"context"
	"errors"
	"strings"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

// commentService implements CommentService
type commentService struct {
	repos  *repositories.Collection
	access AccessService
	logger *zap.Logger
}

// NewCommentService creates the comment service
func NewCommentService(repos *repositories.Collection, access AccessService, logger *zap.Logger) CommentService {
	return &commentService{repos: repos, access: access, logger: logger}
}

// CreateComment posts a comment as a learner who bought the course or as its educator
func (s *commentService) CreateComment(ctx context.Context, identity models.Identity, req *CommentRequest) (*models.Comment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.access.Check(ctx, identity, req.CourseID); err != nil {
		return nil, err
	}

	if req.ChapterID != "" {
		if _, err := s.repos.Chapter.GetByID(ctx, req.CourseID, req.ChapterID); err != nil {
			return nil, storeError(err, "Chapter")
		}
	}

	comment := &models.Comment{
		CourseID:  req.CourseID,
		ChapterID: models.StringPtr(req.ChapterID),
		UserID:    identity.AccountID(),
		Text:      strings.TrimSpace(req.Text),
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, storeError(err, "Comment")
	}

	s.logger.Debug("Comment created",
		zap.String("comment_id", comment.ID),
		zap.String("course_id", comment.CourseID),
	)
	return comment, nil
}

// ListComments returns a course's comments, oldest first
func (s *commentService) ListComments(ctx context.Context, courseID string) ([]*models.Comment, error) {
	comments, err := s.repos.Comment.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Comment")
	}
	return comments, nil
}

// DeleteComment removes a comment; used by admins after a report
func (s *commentService) DeleteComment(ctx context.Context, commentID string) error {
	if err := s.repos.Comment.Delete(ctx, commentID); err != nil {
		return storeError(err, "Comment")
	}
	s.logger.Info("Comment deleted", zap.String("comment_id", commentID))
	return nil
}

// ===============================
// REVIEWS
// ===============================

type reviewService struct {
	repos  *repositories.Collection
	access AccessService
	logger *zap.Logger
}

// NewReviewService creates the review service
func NewReviewService(repos *repositories.Collection, access AccessService, logger *zap.Logger) ReviewService {
	return &reviewService{repos: repos, access: access, logger: logger}
}

// CreateReview rates a purchased course; one review per learner and course
func (s *reviewService) CreateReview(ctx context.Context, user *models.User, req *ReviewRequest) (*models.Review, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.access.Check(ctx, models.LearnerIdentity{User: user}, req.CourseID); err != nil {
		return nil, err
	}

	review := &models.Review{
		CourseID: req.CourseID,
		UserID:   user.ID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
	}
	if err := s.repos.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("You have already reviewed this course", "REVIEW_EXISTS")
		}
		return nil, storeError(err, "Review")
	}
	return review, nil
}

// ListReviews returns a course's reviews
func (s *reviewService) ListReviews(ctx context.Context, courseID string) ([]*models.Review, error) {
	reviews, err := s.repos.Review.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storeError(err, "Review")
	}
	return reviews, nil
}
