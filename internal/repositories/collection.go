// file: internal/repositories/collection.go
package repositories

import (
	"context"
	"fmt"

	"learnhub/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User         UserRepository
	Educator     EducatorRepository
	Admin        AdminRepository
	Course       CourseRepository
	Chapter      ChapterRepository
	Comment      CommentRepository
	Review       ReviewRepository
	Report       ReportRepository
	Notification NotificationRepository

	// Tx scopes calls on any repository above to one transaction
	Tx Transactor

	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	collection := &Collection{
		User:         NewUserRepository(db, logger),
		Educator:     NewEducatorRepository(db, logger),
		Admin:        NewAdminRepository(db, logger),
		Course:       NewCourseRepository(db, logger),
		Chapter:      NewChapterRepository(db, logger),
		Comment:      NewCommentRepository(db, logger),
		Review:       NewReviewRepository(db, logger),
		Report:       NewReportRepository(db, logger),
		Notification: NewNotificationRepository(db, logger),
		Tx:           NewBaseRepository(db, logger),
		db:           db,
		logger:       logger,
	}

	logger.Info("Repository collection initialized successfully")
	return collection, nil
}

// HealthCheck reports database connectivity for the health endpoint
func (c *Collection) HealthCheck(ctx context.Context) *database.HealthStatus {
	return c.db.Health(ctx)
}
