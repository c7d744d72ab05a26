package services

import (
	"context"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

type adminService struct {
	repos  *repositories.Collection
	email  EmailService
	logger *zap.Logger
}

// NewAdminService creates the account moderation service
func NewAdminService(repos *repositories.Collection, email EmailService, logger *zap.Logger) AdminService {
	return &adminService{repos: repos, email: email, logger: logger}
}

// SetUserRestriction restricts or restores a learner and emails them.
// Email failures are logged only.
func (s *adminService) SetUserRestriction(ctx context.Context, userID string, req *RestrictionRequest) (*models.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	restriction := 0
	if req.Restricted {
		restriction = 1
	}
	if err := s.repos.User.SetRestriction(ctx, userID, restriction); err != nil {
		return nil, storeError(err, "User")
	}

	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User")
	}

	if err := s.email.SendRestrictionNotice(ctx, user.Email, user.Name, req.Restricted, req.Reason); err != nil {
		s.logger.Warn("Failed to send restriction email",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	s.logger.Info("User restriction changed",
		zap.String("user_id", userID),
		zap.Bool("restricted", req.Restricted),
	)
	return user, nil
}
