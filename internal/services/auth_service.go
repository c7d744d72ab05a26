package services

import (
	"context"
	"errors"
	"strings"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService
type authService struct {
	repos      *repositories.Collection
	tokens     *TokenManager
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates the authentication service
func NewAuthService(repos *repositories.Collection, tokens *TokenManager, cfg config.AuthConfig, logger *zap.Logger) AuthService {
	cost := cfg.BCryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &authService{repos: repos, tokens: tokens, logger: logger, bcryptCost: cost}
}

// Register creates a learner, or an educator when req.Role says so, and
// signs them in
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleLearner
	}
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password").WithCause(err)
	}

	var identity models.Identity
	switch role {
	case models.RoleEducator:
		educator := &models.Educator{
			Name:          strings.TrimSpace(req.Name),
			Email:         email,
			PasswordHash:  string(hash),
			Bio:           req.Bio,
			TeachingFocus: req.TeachingFocus,
			Courses:       []string{},
		}
		err = s.repos.Educator.Create(ctx, educator)
		identity = models.EducatorIdentity{Educator: educator}
	default:
		user := &models.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hash),
			Category:     req.Category,
		}
		err = s.repos.User.Create(ctx, user)
		identity = models.LearnerIdentity{User: user}
	}
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Email is already registered", "EMAIL_EXISTS")
		}
		return nil, storeError(err, "Account")
	}

	s.logger.Info("Account registered",
		zap.String("account_id", identity.AccountID()),
		zap.String("role", string(role)),
	)
	return s.issue(identity)
}

// Login verifies the password against the store selected by req.Role
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleLearner
	}
	email := normalizeEmail(req.Email)

	var (
		identity   models.Identity
		hash       string
		restricted bool
		err        error
	)
	switch role {
	case models.RoleEducator:
		var educator *models.Educator
		if educator, err = s.repos.Educator.GetByEmail(ctx, email); err == nil {
			identity, hash, restricted = models.EducatorIdentity{Educator: educator}, educator.PasswordHash, educator.IsRestricted()
		}
	case models.RoleAdmin:
		var admin *models.Admin
		if admin, err = s.repos.Admin.GetByEmail(ctx, email); err == nil {
			identity, hash = models.AdminIdentity{Admin: admin}, admin.PasswordHash
		}
	default:
		var user *models.User
		if user, err = s.repos.User.GetByEmail(ctx, email); err == nil {
			identity, hash, restricted = models.LearnerIdentity{User: user}, user.PasswordHash, user.IsRestricted()
		}
	}

	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug("Login for unknown account", zap.String("role", string(role)))
			return nil, NewUnauthenticatedError("Invalid email or password")
		}
		return nil, storeError(err, "Account")
	}

	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, NewUnauthenticatedError("Invalid email or password")
	}
	if restricted {
		return nil, NewForbiddenError(ReasonAccountRestricted)
	}

	return s.issue(identity)
}

// SeedAdmin creates or refreshes the configured admin account
func (s *authService) SeedAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		s.logger.Warn("No admin credentials configured, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	admin := &models.Admin{
		Name:         name,
		Email:        normalizeEmail(cfg.Email),
		PasswordHash: string(hash),
	}
	if err := s.repos.Admin.Upsert(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Admin account seeded", zap.String("email", admin.Email))
	return nil
}

func (s *authService) issue(identity models.Identity) (*AuthResponse, error) {
	token, err := s.tokens.SignToken(identity.AccountID(), identity.AccountEmail(), identity.Role())
	if err != nil {
		return nil, NewInternalError(err.Error()).WithCause(err)
	}
	return &AuthResponse{
		Token:    token,
		Role:     identity.Role(),
		Identity: identity,
		Account:  AccountOf(identity),
	}, nil
}

// AccountOf returns the account document behind identity for responses
func AccountOf(identity models.Identity) interface{} {
	switch id := identity.(type) {
	case models.LearnerIdentity:
		return id.User
	case models.EducatorIdentity:
		return id.Educator
	case models.AdminIdentity:
		return id.Admin
	default:
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
