// file: internal/repositories/course_repository.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// courseRepository implements CourseRepository on Postgres
type courseRepository struct {
	*BaseRepository
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *database.Manager, logger *zap.Logger) CourseRepository {
	return &courseRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const courseSelect = `
	SELECT c.id, c.educator_id, c.title, c.description, c.price, c.category, c.level,
		c.language, c.image_url, c.image_public_id, c.status, c.total_sections,
		c.total_lectures, c.duration, c.total_enrollment, c.created_at, c.updated_at,
		COALESCE((SELECT array_agg(ch.id ORDER BY ch.position, ch.created_at)
			FROM chapters ch WHERE ch.course_id = c.id), '{}')
	FROM courses c`

// reconcileQuery derives the counters from the chapters table so that add,
// edit and delete all converge on the same values.
const reconcileQuery = `
	UPDATE courses c SET
		total_sections = agg.sections,
		total_lectures = agg.lectures,
		duration = agg.duration,
		updated_at = NOW()
	FROM (
		SELECT COUNT(*) AS sections,
			COALESCE(SUM(jsonb_array_length(videos)), 0) AS lectures,
			COALESCE(SUM(duration), 0) AS duration
		FROM chapters WHERE course_id = $1
	) agg
	WHERE c.id = $1`

// ===============================
// BASIC CRUD OPERATIONS
// ===============================

// Create inserts a course, assigning an id when none is set
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = newID()
	}
	if course.Status == "" {
		course.Status = models.CourseStatusPending
	}
	course.Chapters = []string{}

	query := `
		INSERT INTO courses (
			id, educator_id, title, description, price, category, level,
			language, image_url, image_public_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		course.ID, course.EducatorID, course.Title, course.Description, course.Price,
		course.Category, course.Level, course.Language, course.ImageURL,
		course.ImagePublicID, course.Status,
	).Scan(&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", mapError(err))
	}

	r.logger.Info("Course created",
		zap.String("course_id", course.ID),
		zap.String("educator_id", course.EducatorID),
	)
	return nil
}

// GetByID retrieves a course with its ordered chapter ids
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	row := r.conn(ctx).QueryRowContext(ctx, courseSelect+` WHERE c.id = $1`, id)
	course, err := scanCourse(row)
	if err != nil {
		return nil, mapError(err)
	}
	return course, nil
}

// Update persists the course metadata and thumbnail
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses SET
			title = $2, description = $3, price = $4, category = $5, level = $6,
			language = $7, image_url = $8, image_public_id = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.conn(ctx).QueryRowContext(ctx, query,
		course.ID, course.Title, course.Description, course.Price, course.Category,
		course.Level, course.Language, course.ImageURL, course.ImagePublicID,
	).Scan(&course.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// UpdateStatus sets the moderation status
func (r *courseRepository) UpdateStatus(ctx context.Context, id string, status models.CourseStatus) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE courses SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update course status: %w", err)
	}
	return requireAffected(result)
}

// Delete removes the course document
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return requireAffected(result)
}

// ===============================
// LISTING
// ===============================

// ListByStatus returns courses in a moderation state, newest first
func (r *courseRepository) ListByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	return r.list(ctx, courseSelect+` WHERE c.status = $1 ORDER BY c.created_at DESC`, string(status))
}

// ListByEducator returns the educator's courses, newest first
func (r *courseRepository) ListByEducator(ctx context.Context, educatorID string) ([]*models.Course, error) {
	return r.list(ctx, courseSelect+` WHERE c.educator_id = $1 ORDER BY c.created_at DESC`, educatorID)
}

func (r *courseRepository) list(ctx context.Context, query, arg string) ([]*models.Course, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// ===============================
// COUNTERS
// ===============================

// Reconcile recomputes the aggregate counters from chapters
func (r *courseRepository) Reconcile(ctx context.Context, courseID string) error {
	result, err := r.conn(ctx).ExecContext(ctx, reconcileQuery, courseID)
	if err != nil {
		return fmt.Errorf("failed to reconcile course counters: %w", err)
	}
	return requireAffected(result)
}

// IncrementEnrollment bumps totalEnrollment by one
func (r *courseRepository) IncrementEnrollment(ctx context.Context, courseID string) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE courses SET total_enrollment = total_enrollment + 1 WHERE id = $1`, courseID)
	if err != nil {
		return fmt.Errorf("failed to increment enrollment: %w", err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.EducatorID, &c.Title, &c.Description, &c.Price, &c.Category, &c.Level,
		&c.Language, &c.ImageURL, &c.ImagePublicID, &c.Status, &c.TotalSections,
		&c.TotalLectures, &c.Duration, &c.TotalEnrollment, &c.CreatedAt, &c.UpdatedAt,
		pq.Array(&c.Chapters),
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
