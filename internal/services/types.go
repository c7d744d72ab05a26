package services

import (
	"io"

	"learnhub/internal/media"
	"learnhub/internal/models"
)

// ===============================
// SHARED TYPES
// ===============================

// FileUpload is a binary part received with a multipart request
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

// CourseAccess is the decision returned by the course-access gate
type CourseAccess struct {
	CourseAccess bool `json:"courseAccess"`
	CourseModify bool `json:"courseModify"`
}

// ===============================
// AUTH TYPES
// ===============================

// RegisterRequest creates a learner or educator account
type RegisterRequest struct {
	Name          string      `json:"name" validate:"required,min=2,max=100"`
	Email         string      `json:"email" validate:"required,email"`
	Password      string      `json:"password" validate:"required,min=8,max=128"`
	Role          models.Role `json:"role" validate:"omitempty,oneof=user educator"`
	Bio           string      `json:"bio" validate:"max=2000"`
	TeachingFocus []string    `json:"teachingFocus"`
	Category      []string    `json:"category"`
}

// LoginRequest authenticates against the store selected by Role
type LoginRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=user educator admin"`
}

// AuthResponse carries the issued session token and the account
type AuthResponse struct {
	Token    string          `json:"-"`
	Role     models.Role     `json:"role"`
	Identity models.Identity `json:"-"`
	Account  interface{}     `json:"user"`
}

// ===============================
// COURSE TYPES
// ===============================

// CreateCourseRequest holds the course form fields
type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required"`
	Language    string  `json:"language" validate:"required"`
}

// UpdateCourseRequest replaces the editable course fields
type UpdateCourseRequest = CreateCourseRequest

// CourseDeletionResult is returned by the course deletion flow
type CourseDeletionResult struct {
	Success          bool     `json:"success"`
	DeletedResources int      `json:"deletedResources"`
	FailedResources  int      `json:"failedResources"`
	DeletedChapters  int      `json:"deletedChapters"`
	Errors           []string `json:"errors,omitempty"`
}

// ===============================
// CHAPTER TYPES
// ===============================

// VideoInput is the metadata for one video in a chapter payload
type VideoInput struct {
	Title         string  `json:"title" validate:"required"`
	Duration      float64 `json:"duration" validate:"gte=0"`
	VideoURL      string  `json:"videoUrl,omitempty"`
	VideoPublicID string  `json:"videoPublicId,omitempty"`
}

// ChapterInput is one chapter in an add or edit payload
type ChapterInput struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	Videos      []VideoInput `json:"videos" validate:"required,min=1,dive"`
}

// AddChaptersRequest carries the raw `chapters` form field and the video
// parts keyed chapter-{i}-video-{j}
type AddChaptersRequest struct {
	ChaptersJSON string
	Files        map[string]*FileUpload
}

// AddChaptersResult is returned after chapters are persisted
type AddChaptersResult struct {
	Course   *models.Course    `json:"course"`
	Chapters []*models.Chapter `json:"chapters"`
}

// EditChapterRequest carries the raw `chapter` form field and optional
// replacement parts keyed video-{i}
type EditChapterRequest struct {
	ChapterJSON string
	Files       map[string]*FileUpload
}

// DeleteChaptersRequest is the JSON body of the batch chapter delete
type DeleteChaptersRequest struct {
	CourseID   string   `json:"courseId" validate:"required"`
	ChapterIDs []string `json:"chapterIds" validate:"required,min=1,dive,required"`
}

// ChapterDeletionResult is returned by the batch chapter delete
type ChapterDeletionResult struct {
	Success           bool             `json:"success"`
	DeletedCount      int              `json:"deletedCount"`
	VideosDeleted     int              `json:"videosDeleted"`
	CloudinaryResults media.BulkResult `json:"cloudinaryResults"`
}

// ===============================
// ENGAGEMENT TYPES
// ===============================

// PurchaseRequest buys one or more courses
type PurchaseRequest struct {
	CourseIDs []string `json:"courseIds" validate:"required,min=1,dive,required"`
}

// ReviewRequest rates a purchased course
type ReviewRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"max=2000"`
}

// CommentRequest posts a comment on a course or chapter
type CommentRequest struct {
	CourseID  string `json:"courseId" validate:"required"`
	ChapterID string `json:"chapterId"`
	Text      string `json:"text" validate:"required,max=5000"`
}

// ===============================
// MODERATION TYPES
// ===============================

// ReportRequest files a complaint about a course, chapter or comment
type ReportRequest struct {
	Description string `json:"description" validate:"required,max=2000"`
	CourseID    string `json:"courseId"`
	ChapterID   string `json:"chapterId"`
	CommentID   string `json:"commentId"`
}

// ReportActionRequest consumes a report. Status "warn" keeps it.
type ReportActionRequest struct {
	ReportID string `json:"reportId" validate:"required"`
	Status   string `json:"status"`
}

// ReportActionWarn is the status value that keeps the report
const ReportActionWarn = "warn"

// RestrictionRequest sets or clears an account restriction
type RestrictionRequest struct {
	Restricted bool   `json:"restricted"`
	Reason     string `json:"reason" validate:"max=500"`
}

// StatusRequest changes a course's moderation status
type StatusRequest struct {
	Status models.CourseStatus `json:"status" validate:"required,oneof=pending approved rejected restricted"`
}
