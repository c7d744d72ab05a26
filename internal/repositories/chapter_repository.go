// file: internal/repositories/chapter_repository.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// chapterRepository implements ChapterRepository on Postgres
type chapterRepository struct {
	*BaseRepository
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *database.Manager, logger *zap.Logger) ChapterRepository {
	return &chapterRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const chapterColumns = `id, course_id, title, description, duration, videos, position, created_at, updated_at`

// CreateMany appends chapters after the course's current last position
func (r *chapterRepository) CreateMany(ctx context.Context, chapters []*models.Chapter) error {
	if len(chapters) == 0 {
		return nil
	}

	courseID := chapters[0].CourseID
	var next int
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM chapters WHERE course_id = $1`, courseID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read chapter position: %w", err)
	}

	query := `
		INSERT INTO chapters (id, course_id, title, description, duration, videos, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	for i, ch := range chapters {
		if ch.ID == "" {
			ch.ID = newID()
		}
		if ch.Videos == nil {
			ch.Videos = models.VideoList{}
		}
		ch.Position = next + i

		err := r.conn(ctx).QueryRowContext(ctx, query,
			ch.ID, ch.CourseID, ch.Title, ch.Description, ch.Duration, ch.Videos, ch.Position,
		).Scan(&ch.CreatedAt, &ch.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create chapter %q: %w", ch.Title, mapError(err))
		}
	}
	return nil
}

// GetByID retrieves a chapter that belongs to courseID
func (r *chapterRepository) GetByID(ctx context.Context, courseID, chapterID string) (*models.Chapter, error) {
	row := r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE id = $1 AND course_id = $2`, chapterID, courseID)
	ch, err := scanChapter(row)
	if err != nil {
		return nil, mapError(err)
	}
	return ch, nil
}

// GetByIDOnly retrieves a chapter regardless of course
func (r *chapterRepository) GetByIDOnly(ctx context.Context, chapterID string) (*models.Chapter, error) {
	row := r.conn(ctx).QueryRowContext(ctx, `SELECT `+chapterColumns+` FROM chapters WHERE id = $1`, chapterID)
	ch, err := scanChapter(row)
	if err != nil {
		return nil, mapError(err)
	}
	return ch, nil
}

// ListByCourse returns the course's chapters in order
func (r *chapterRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.Chapter, error) {
	return r.list(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE course_id = $1 ORDER BY position, created_at`, courseID)
}

// FindByIDs returns the subset of ids that exist in courseID
func (r *chapterRepository) FindByIDs(ctx context.Context, courseID string, ids []string) ([]*models.Chapter, error) {
	if len(ids) == 0 {
		return []*models.Chapter{}, nil
	}
	return r.list(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE course_id = $1 AND id = ANY($2) ORDER BY position`,
		courseID, pq.Array(ids))
}

// Update persists title, description, duration and videos
func (r *chapterRepository) Update(ctx context.Context, ch *models.Chapter) error {
	query := `
		UPDATE chapters SET title = $3, description = $4, duration = $5, videos = $6, updated_at = NOW()
		WHERE id = $1 AND course_id = $2
		RETURNING updated_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		ch.ID, ch.CourseID, ch.Title, ch.Description, ch.Duration, ch.Videos,
	).Scan(&ch.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// DeleteByIDs removes the listed chapters of courseID and reports how many matched
func (r *chapterRepository) DeleteByIDs(ctx context.Context, courseID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM chapters WHERE course_id = $1 AND id = ANY($2)`, courseID, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete chapters: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}

// DeleteByCourse removes every chapter of courseID
func (r *chapterRepository) DeleteByCourse(ctx context.Context, courseID string) (int, error) {
	result, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM chapters WHERE course_id = $1`, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete course chapters: %w", err)
	}
	n, err := result.RowsAffected()
	return int(n), err
}

func (r *chapterRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Chapter, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*models.Chapter{}
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

func scanChapter(row rowScanner) (*models.Chapter, error) {
	var ch models.Chapter
	err := row.Scan(
		&ch.ID, &ch.CourseID, &ch.Title, &ch.Description, &ch.Duration,
		&ch.Videos, &ch.Position, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
