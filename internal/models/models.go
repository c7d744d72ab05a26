// file: internal/models/models.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ===============================
// ROLES AND STATUSES
// ===============================

// Role identifies which account collection a session belongs to
type Role string

const (
	RoleLearner  Role = "user"
	RoleEducator Role = "educator"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleLearner, RoleEducator, RoleAdmin:
		return true
	}
	return false
}

// CourseStatus is the moderation state of a course
type CourseStatus string

const (
	CourseStatusPending    CourseStatus = "pending"
	CourseStatusApproved   CourseStatus = "approved"
	CourseStatusRejected   CourseStatus = "rejected"
	CourseStatusRestricted CourseStatus = "restricted"
)

// Valid reports whether s is one of the known course statuses
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusPending, CourseStatusApproved, CourseStatusRejected, CourseStatusRestricted:
		return true
	}
	return false
}

// ===============================
// ACCOUNTS
// ===============================

// PurchaseRecord is the ownership-by-purchase entry kept on a learner
type PurchaseRecord struct {
	CourseID     string    `json:"courseId" db:"course_id"`
	PurchaseDate time.Time `json:"purchaseDate" db:"purchase_date"`
}

// User is a learner account
type User struct {
	ID             string           `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Email          string           `json:"email" db:"email"`
	PasswordHash   string           `json:"-" db:"password_hash"`
	GoogleID       *string          `json:"-" db:"google_id"`
	ProfileImage   string           `json:"profileImage,omitempty" db:"profile_image"`
	Wishlist       []string         `json:"wishlist" db:"-"`
	PurchaseCourse []PurchaseRecord `json:"purchaseCourse" db:"-"`
	Restriction    int              `json:"restriction" db:"restriction"`
	Category       []string         `json:"category" db:"category"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// IsRestricted reports whether an admin restricted the account
func (u *User) IsRestricted() bool {
	return u.Restriction != 0
}

// Educator is a course author account
type Educator struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Bio           string    `json:"bio" db:"bio"`
	TeachingFocus []string  `json:"teachingFocus" db:"teaching_focus"`
	Courses       []string  `json:"courses" db:"-"`
	Restriction   int       `json:"restriction" db:"restriction"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// IsRestricted reports whether an admin restricted the account
func (e *Educator) IsRestricted() bool {
	return e.Restriction != 0
}

// Admin is a moderator account
type Admin struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ===============================
// COURSE CONTENT
// ===============================

// Course is the unit educators sell and learners purchase
type Course struct {
	ID              string       `json:"id" db:"id"`
	EducatorID      string       `json:"educator" db:"educator_id"`
	Title           string       `json:"title" db:"title"`
	Description     string       `json:"description" db:"description"`
	Price           float64      `json:"price" db:"price"`
	Category        string       `json:"category" db:"category"`
	Level           string       `json:"level" db:"level"`
	Language        string       `json:"language" db:"language"`
	ImageURL        string       `json:"imageUrl" db:"image_url"`
	ImagePublicID   string       `json:"imagePublicId" db:"image_public_id"`
	Status          CourseStatus `json:"status" db:"status"`
	Chapters        []string     `json:"chapters" db:"-"`
	TotalSections   int          `json:"totalSections" db:"total_sections"`
	TotalLectures   int          `json:"totalLectures" db:"total_lectures"`
	Duration        float64      `json:"duration" db:"duration"`
	TotalEnrollment int          `json:"totalEnrollment" db:"total_enrollment"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}

// Video is embedded in a chapter and points at a remote media asset
type Video struct {
	Title         string  `json:"title"`
	VideoURL      string  `json:"videoUrl"`
	VideoPublicID string  `json:"videoPublicId"`
	Duration      float64 `json:"duration"`
}

// VideoList is stored as a JSONB column
type VideoList []Video

// Value implements driver.Valuer
func (v VideoList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner
func (v *VideoList) Scan(value interface{}) error {
	if value == nil {
		*v = VideoList{}
		return nil
	}

	var raw []byte
	switch src := value.(type) {
	case []byte:
		raw = src
	case string:
		raw = []byte(src)
	default:
		return fmt.Errorf("cannot scan %T into VideoList", value)
	}
	return json.Unmarshal(raw, v)
}

// Chapter groups ordered videos inside a course
type Chapter struct {
	ID          string    `json:"id" db:"id"`
	CourseID    string    `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Duration    float64   `json:"duration" db:"duration"`
	Videos      VideoList `json:"videos" db:"videos"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TotalDuration sums the embedded video durations
func (c *Chapter) TotalDuration() float64 {
	var total float64
	for _, v := range c.Videos {
		total += v.Duration
	}
	return total
}

// ===============================
// ENGAGEMENT AND MODERATION
// ===============================

// Comment is a learner or educator remark on a course or chapter
type Comment struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	ChapterID *string   `json:"chapterId,omitempty" db:"chapter_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Review is a rating; one per (course, user)
type Review struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Report is a user complaint awaiting an admin action
type Report struct {
	ID           string    `json:"id" db:"id"`
	Description  string    `json:"description" db:"description"`
	CourseID     *string   `json:"courseId,omitempty" db:"course_id"`
	ChapterID    *string   `json:"chapterId,omitempty" db:"chapter_id"`
	CommentID    *string   `json:"commentId,omitempty" db:"comment_id"`
	UserID       string    `json:"userId" db:"user_id"`
	TargetUserID *string   `json:"targetUserId,omitempty" db:"target_user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ReportDetail is a report with the referenced content titles populated
type ReportDetail struct {
	Report
	CommentText  string `json:"commentText,omitempty"`
	ChapterTitle string `json:"chapterTitle,omitempty"`
	CourseTitle  string `json:"courseTitle,omitempty"`
}

// Notification is a message addressed to a single account
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	CourseID  *string   `json:"courseId,omitempty" db:"course_id"`
	ChapterID *string   `json:"chapterId,omitempty" db:"chapter_id"`
	CommentID *string   `json:"commentId,omitempty" db:"comment_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
