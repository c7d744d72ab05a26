// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"learnhub/internal/models"
)

// ===============================
// TRANSACTIONS
// ===============================

// Transactor scopes repository calls to a single database transaction.
// Calls made with the ctx handed to fn join the transaction; fn returning
// an error rolls back every write made through it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ===============================
// ACCOUNT REPOSITORIES
// ===============================

// UserRepository defines the contract for learner data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogleID(ctx context.Context, userID, googleID string) error

	// Purchases and wishlist
	AddPurchase(ctx context.Context, userID, courseID string, at time.Time) error
	ToggleWishlist(ctx context.Context, userID, courseID string) (added bool, err error)
	RemoveFromWishlist(ctx context.Context, userID, courseID string) error

	SetRestriction(ctx context.Context, userID string, restriction int) error
}

// EducatorRepository defines the contract for educator data operations
type EducatorRepository interface {
	Create(ctx context.Context, educator *models.Educator) error
	GetByID(ctx context.Context, id string) (*models.Educator, error)
	GetByEmail(ctx context.Context, email string) (*models.Educator, error)
	SetRestriction(ctx context.Context, educatorID string, restriction int) error
}

// AdminRepository defines the contract for admin data operations
type AdminRepository interface {
	Upsert(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// ===============================
// COURSE CONTENT REPOSITORIES
// ===============================

// CourseRepository defines the contract for course data operations
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateStatus(ctx context.Context, id string, status models.CourseStatus) error
	Delete(ctx context.Context, id string) error

	ListByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error)
	ListByEducator(ctx context.Context, educatorID string) ([]*models.Course, error)

	// Reconcile recomputes totalSections, totalLectures and duration from
	// the course's current chapters in one statement.
	Reconcile(ctx context.Context, courseID string) error
	IncrementEnrollment(ctx context.Context, courseID string) error
}

// ChapterRepository defines the contract for chapter data operations
type ChapterRepository interface {
	// CreateMany appends chapters after the course's existing ones
	CreateMany(ctx context.Context, chapters []*models.Chapter) error
	GetByID(ctx context.Context, courseID, chapterID string) (*models.Chapter, error)
	GetByIDOnly(ctx context.Context, chapterID string) (*models.Chapter, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Chapter, error)
	FindByIDs(ctx context.Context, courseID string, ids []string) ([]*models.Chapter, error)
	Update(ctx context.Context, chapter *models.Chapter) error
	DeleteByIDs(ctx context.Context, courseID string, ids []string) (int, error)
	DeleteByCourse(ctx context.Context, courseID string) (int, error)
}

// ===============================
// ENGAGEMENT REPOSITORIES
// ===============================

// CommentRepository defines the contract for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines the contract for review data operations
type ReviewRepository interface {
	// Create returns ErrDuplicate when the user already reviewed the course
	Create(ctx context.Context, review *models.Review) error
	ListByCourse(ctx context.Context, courseID string) ([]*models.Review, error)
}

// ===============================
// MODERATION REPOSITORIES
// ===============================

// ReportRepository defines the contract for report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	// GetDetail loads a report with the referenced comment text and
	// chapter and course titles populated.
	GetDetail(ctx context.Context, id string) (*models.ReportDetail, error)
	List(ctx context.Context) ([]*models.ReportDetail, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the contract for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	// Delete removes a notification owned by userID
	Delete(ctx context.Context, id, userID string) error
}
