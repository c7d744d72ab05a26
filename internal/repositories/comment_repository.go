// internal/repositories/comment_repository.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"go.uber.org/zap"
)

// commentRepository implements CommentRepository on Postgres
type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = newID()
	}

	err := r.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO comments (id, course_id, chapter_id, user_id, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		comment.ID, comment.CourseID, comment.ChapterID, comment.UserID, comment.Text,
	).Scan(&comment.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create comment",
			zap.Error(err),
			zap.String("user_id", comment.UserID),
			zap.String("course_id", comment.CourseID),
		)
		return fmt.Errorf("failed to create comment: %w", mapError(err))
	}
	return nil
}

// GetByID retrieves a comment
func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT id, course_id, chapter_id, user_id, text, created_at FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.CourseID, &c.ChapterID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// ListByCourse returns a course's comments, oldest first
func (r *commentRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Comment, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT id, course_id, chapter_id, user_id, text, created_at
		 FROM comments WHERE course_id = $1 ORDER BY created_at`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CourseID, &c.ChapterID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return requireAffected(result)
}

// ===============================
// REVIEWS
// ===============================

// reviewRepository implements ReviewRepository on Postgres
type reviewRepository struct {
	*BaseRepository
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.Manager, logger *zap.Logger) ReviewRepository {
	return &reviewRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a review; the (course_id, user_id) constraint yields ErrDuplicate
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = newID()
	}

	err := r.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO reviews (id, course_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		review.ID, review.CourseID, review.UserID, review.Rating, review.Comment,
	).Scan(&review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", mapError(err))
	}
	return nil
}

// ListByCourse returns a course's reviews, newest first
func (r *reviewRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Review, error) {
	rows, err := r.conn(ctx).QueryContext(ctx,
		`SELECT id, course_id, user_id, rating, comment, created_at
		 FROM reviews WHERE course_id = $1 ORDER BY created_at DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.CourseID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	return reviews, rows.Err()
}
