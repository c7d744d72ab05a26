package services

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type purchaseService struct {
	repos  *repositories.Collection
	cache  cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewPurchaseService creates the purchase and wishlist service
func NewPurchaseService(repos *repositories.Collection, c cache.Cache, logger *zap.Logger) PurchaseService {
	return &purchaseService{repos: repos, cache: c, logger: logger, now: time.Now}
}

// Purchase records every requested course the learner does not own yet,
// bumps its enrollment and drops it from the wishlist, all in one
// transaction. It returns the learner's purchase records afterwards.
func (s *purchaseService) Purchase(ctx context.Context, user *models.User, req *PurchaseRequest) ([]models.PurchaseRecord, error) {
	if user.IsRestricted() {
		return nil, NewForbiddenError(ReasonAccountRestricted)
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var bought []string
	err := s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repos.User.GetByID(ctx, user.ID)
		if err != nil {
			return storeError(err, "User")
		}

		for _, courseID := range req.CourseIDs {
			owned := slices.ContainsFunc(current.PurchaseCourse, func(p models.PurchaseRecord) bool {
				return sameID(p.CourseID, courseID)
			})
			if owned || slices.ContainsFunc(bought, func(b string) bool { return sameID(b, courseID) }) {
				continue
			}

			course, err := s.repos.Course.GetByID(ctx, courseID)
			if err != nil {
				return storeError(err, "Course")
			}
			if course.Status != models.CourseStatusApproved {
				return NewValidationError(fmt.Sprintf("Course %q is not available for purchase", course.Title), nil)
			}

			if err := s.repos.User.AddPurchase(ctx, user.ID, course.ID, s.now()); err != nil {
				return fmt.Errorf("failed to record purchase: %w", err)
			}
			if err := s.repos.Course.IncrementEnrollment(ctx, course.ID); err != nil {
				return fmt.Errorf("failed to update enrollment: %w", err)
			}
			if err := s.repos.User.RemoveFromWishlist(ctx, user.ID, course.ID); err != nil {
				return fmt.Errorf("failed to update wishlist: %w", err)
			}
			bought = append(bought, course.ID)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Course")
	}

	for _, courseID := range bought {
		invalidateCourse(ctx, s.cache, s.logger, courseID)
	}

	updated, err := s.repos.User.GetByID(ctx, user.ID)
	if err != nil {
		return nil, storeError(err, "User")
	}

	s.logger.Info("Courses purchased",
		zap.String("user_id", user.ID),
		zap.Strings("course_ids", bought),
	)
	return updated.PurchaseCourse, nil
}

// ToggleWishlist adds courseID to the wishlist, or removes it if present
func (s *purchaseService) ToggleWishlist(ctx context.Context, user *models.User, courseID string) ([]string, bool, error) {
	if _, err := s.repos.Course.GetByID(ctx, courseID); err != nil {
		return nil, false, storeError(err, "Course")
	}

	added, err := s.repos.User.ToggleWishlist(ctx, user.ID, courseID)
	if err != nil {
		return nil, false, storeError(err, "User")
	}

	updated, err := s.repos.User.GetByID(ctx, user.ID)
	if err != nil {
		return nil, false, storeError(err, "User")
	}
	return updated.Wishlist, added, nil
}
