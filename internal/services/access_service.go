package services

import (
	"context"
	"strings"

	"learnhub/internal/models"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Gate failure reasons shown to the user as-is
const (
	ReasonUnauthorizedAccess = "Unauthorized Access"
	ReasonCourseNotPurchased = "Course not purchased"
	ReasonAccountRestricted  = "Your account is restricted"
)

type accessService struct {
	logger *zap.Logger
}

// NewAccessService creates the course-access gate
func NewAccessService(logger *zap.Logger) AccessService {
	return &accessService{logger: logger}
}

// Check decides access from the identity alone: authorship for educators,
// purchase records for learners.
func (s *accessService) Check(_ context.Context, identity models.Identity, courseID string) (CourseAccess, error) {
	var (
		decision CourseAccess
		reason   = ReasonUnauthorizedAccess
	)

	switch id := identity.(type) {
	case models.EducatorIdentity:
		decision.CourseModify = slices.ContainsFunc(id.Educator.Courses, func(c string) bool {
			return sameID(c, courseID)
		})
		decision.CourseAccess = decision.CourseModify
	case models.LearnerIdentity:
		decision.CourseAccess = slices.ContainsFunc(id.User.PurchaseCourse, func(p models.PurchaseRecord) bool {
			return sameID(p.CourseID, courseID)
		})
		reason = ReasonCourseNotPurchased
	case models.AdminIdentity, nil:
	}

	if !decision.CourseAccess {
		s.logger.Debug("Course access denied",
			zap.String("course_id", courseID),
			zap.String("reason", reason),
		)
		return CourseAccess{}, NewForbiddenError(reason)
	}
	return decision, nil
}

// sameID compares ids in canonical form: trimmed, case-insensitive
func sameID(a, b string) bool {
	return canonicalID(a) == canonicalID(b)
}

func canonicalID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
