package services

import (
	"context"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

type identityService struct {
	tokens *TokenManager
	repos  *repositories.Collection
	logger *zap.Logger
}

// NewIdentityService creates the session identity resolver
func NewIdentityService(tokens *TokenManager, repos *repositories.Collection, logger *zap.Logger) IdentityService {
	return &identityService{tokens: tokens, repos: repos, logger: logger}
}

// Resolve verifies token and loads the account by email from the store
// selected by the token's role.
func (s *identityService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}

	identity, err := s.lookup(ctx, claims)
	if err != nil {
		if IsNotFoundError(err) {
			s.logger.Debug("Session account no longer exists",
				zap.String("email", claims.Email),
				zap.String("role", string(claims.Role)),
			)
			return nil, NewUnauthenticatedError("Account not found")
		}
		return nil, err
	}
	return identity, nil
}

func (s *identityService) lookup(ctx context.Context, claims *SessionClaims) (models.Identity, error) {
	switch claims.Role {
	case models.RoleLearner:
		user, err := s.repos.User.GetByEmail(ctx, claims.Email)
		if err != nil {
			return nil, storeError(err, "user")
		}
		return models.LearnerIdentity{User: user}, nil
	case models.RoleEducator:
		educator, err := s.repos.Educator.GetByEmail(ctx, claims.Email)
		if err != nil {
			return nil, storeError(err, "educator")
		}
		return models.EducatorIdentity{Educator: educator}, nil
	case models.RoleAdmin:
		admin, err := s.repos.Admin.GetByEmail(ctx, claims.Email)
		if err != nil {
			return nil, storeError(err, "admin")
		}
		return models.AdminIdentity{Admin: admin}, nil
	default:
		return nil, NewUnauthenticatedError("Invalid token")
	}
}
