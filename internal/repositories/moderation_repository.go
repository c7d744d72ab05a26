// file: internal/repositories/moderation_repository.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"
	"learnhub/internal/models"

	"go.uber.org/zap"
)

// ===============================
// REPORTS
// ===============================

// reportRepository implements ReportRepository on Postgres
type reportRepository struct {
	*BaseRepository
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.Manager, logger *zap.Logger) ReportRepository {
	return &reportRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const reportDetailSelect = `
	SELECT r.id, r.description, r.course_id, r.chapter_id, r.comment_id, r.user_id,
		r.target_user_id, r.created_at,
		COALESCE(cm.text, ''), COALESCE(ch.title, ''), COALESCE(co.title, '')
	FROM reports r
	LEFT JOIN comments cm ON cm.id = r.comment_id
	LEFT JOIN chapters ch ON ch.id = r.chapter_id
	LEFT JOIN courses co ON co.id = r.course_id`

// Create inserts a report
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = newID()
	}

	err := r.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO reports (id, description, course_id, chapter_id, comment_id, user_id, target_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		report.ID, report.Description, report.CourseID, report.ChapterID,
		report.CommentID, report.UserID, report.TargetUserID,
	).Scan(&report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", mapError(err))
	}
	return nil
}

// GetDetail loads a report with its references populated
func (r *reportRepository) GetDetail(ctx context.Context, id string) (*models.ReportDetail, error) {
	row := r.conn(ctx).QueryRowContext(ctx, reportDetailSelect+` WHERE r.id = $1`, id)
	detail, err := scanReportDetail(row)
	if err != nil {
		return nil, mapError(err)
	}
	return detail, nil
}

// List returns all open reports, oldest first
func (r *reportRepository) List(ctx context.Context) ([]*models.ReportDetail, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, reportDetailSelect+` ORDER BY r.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []*models.ReportDetail{}
	for rows.Next() {
		d, err := scanReportDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, d)
	}
	return reports, rows.Err()
}

// Delete removes a report
func (r *reportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return requireAffected(result)
}

func scanReportDetail(row rowScanner) (*models.ReportDetail, error) {
	var d models.ReportDetail
	err := row.Scan(
		&d.ID, &d.Description, &d.CourseID, &d.ChapterID, &d.CommentID, &d.UserID,
		&d.TargetUserID, &d.CreatedAt, &d.CommentText, &d.ChapterTitle, &d.CourseTitle,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ===============================
// NOTIFICATIONS
// ===============================

// notificationRepository implements NotificationRepository on Postgres
type notificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.Manager, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a notification
func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = newID()
	}

	err := r.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO notifications (id, user_id, message, course_id, chapter_id, comment_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		n.ID, n.UserID, n.Message, n.CourseID, n.ChapterID, n.CommentID,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", mapError(err))
	}
	return nil
}

// ListByUser returns the recipient's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT id, user_id, message, course_id, chapter_id, comment_id, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	out := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CourseID, &n.ChapterID, &n.CommentID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// Delete removes a notification owned by userID
func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.conn(ctx).ExecContext(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return requireAffected(result)
}
