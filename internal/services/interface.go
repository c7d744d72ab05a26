// file: internal/services/interfaces.go
package services

import (
	"context"

	"learnhub/internal/config"
	"learnhub/internal/models"
)

// ===============================
// SESSION AND ACCESS
// ===============================

// IdentityService resolves a session token into an identity
type IdentityService interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// AccessService is the course-access gate
type AccessService interface {
	// Check returns the decision and, when access is denied, a Forbidden
	// error carrying the reason alongside the all-false decision.
	Check(ctx context.Context, identity models.Identity, courseID string) (CourseAccess, error)
}

// AuthService defines account sign-up and sign-in
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	SeedAdmin(ctx context.Context, cfg config.AdminConfig) error
}

// OAuthService defines Google sign-in for learners
type OAuthService interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*AuthResponse, error)
}

// ===============================
// COURSE CONTENT
// ===============================

// CourseService defines course authoring, catalogue and deletion
type CourseService interface {
	CreateCourse(ctx context.Context, educator *models.Educator, req *CreateCourseRequest, image *FileUpload) (*models.Course, error)
	EditCourse(ctx context.Context, identity models.Identity, courseID string, req *UpdateCourseRequest, image *FileUpload) (*models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	ListApproved(ctx context.Context) ([]*models.Course, error)
	ListByEducator(ctx context.Context, educatorID string) ([]*models.Course, error)
	DeleteCourse(ctx context.Context, identity models.Identity, courseID string) (*CourseDeletionResult, error)
	UpdateStatus(ctx context.Context, courseID string, status models.CourseStatus) (*models.Course, error)
}

// ChapterService defines chapter and video management
type ChapterService interface {
	AddChapters(ctx context.Context, identity models.Identity, courseID string, req *AddChaptersRequest) (*AddChaptersResult, error)
	EditChapter(ctx context.Context, identity models.Identity, courseID, chapterID string, req *EditChapterRequest) (*models.Chapter, error)
	DeleteChapters(ctx context.Context, identity models.Identity, req *DeleteChaptersRequest) (*ChapterDeletionResult, error)
	GetChapter(ctx context.Context, identity models.Identity, courseID, chapterID string) (*models.Chapter, error)
}

// ===============================
// LEARNER ENGAGEMENT
// ===============================

// PurchaseService defines purchases and the wishlist
type PurchaseService interface {
	Purchase(ctx context.Context, user *models.User, req *PurchaseRequest) ([]models.PurchaseRecord, error)
	ToggleWishlist(ctx context.Context, user *models.User, courseID string) (wishlist []string, added bool, err error)
}

// ReviewService defines course reviews
type ReviewService interface {
	CreateReview(ctx context.Context, user *models.User, req *ReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, courseID string) ([]*models.Review, error)
}

// CommentService defines course comments
type CommentService interface {
	CreateComment(ctx context.Context, identity models.Identity, req *CommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, courseID string) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// ===============================
// MODERATION
// ===============================

// ReportService defines reporting and the admin report action
type ReportService interface {
	CreateReport(ctx context.Context, identity models.Identity, req *ReportRequest) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.ReportDetail, error)
	ReportAction(ctx context.Context, req *ReportActionRequest) (string, error)
}

// NotificationService defines account notifications
type NotificationService interface {
	List(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	// Publish pushes an already committed notification to live sessions
	Publish(notification *models.Notification)
}

// AdminService defines account moderation
type AdminService interface {
	SetUserRestriction(ctx context.Context, userID string, req *RestrictionRequest) (*models.User, error)
}

// ===============================
// INFRASTRUCTURE
// ===============================

// NotificationPublisher delivers payloads to a user's open connections
type NotificationPublisher interface {
	Publish(userID string, payload interface{})
}

// EmailService sends account emails
type EmailService interface {
	SendEmail(ctx context.Context, req *SendEmailRequest) error
	SendRestrictionNotice(ctx context.Context, email, name string, restricted bool, reason string) error
}

// SendEmailRequest is a plain email
type SendEmailRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"required"`
	Body    string   `json:"body"`
}
