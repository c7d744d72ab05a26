package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleUser is the subset of the Google userinfo response we use
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type oauthService struct {
	repos    *repositories.Collection
	auth     *authService
	config   *oauth2.Config
	userInfo string
	logger   *zap.Logger
}

// NewOAuthService creates Google sign-in for learners
func NewOAuthService(repos *repositories.Collection, auth AuthService, cfg config.OAuthConfig, logger *zap.Logger) OAuthService {
	s := &oauthService{
		repos:    repos,
		userInfo: googleUserInfoURL,
		logger:   logger,
	}
	s.auth, _ = auth.(*authService)
	if cfg.Enabled() {
		s.config = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		}
	}
	return s
}

func (s *oauthService) Enabled() bool {
	return s.config != nil && s.auth != nil
}

func (s *oauthService) AuthCodeURL(state string) string {
	if !s.Enabled() {
		return ""
	}
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token, fetches the Google
// profile and signs in the matching learner, creating or linking it.
func (s *oauthService) Exchange(ctx context.Context, code string) (*AuthResponse, error) {
	if !s.Enabled() {
		return nil, NewServiceUnavailableError("Google sign-in is not configured")
	}
	if code == "" {
		return nil, NewValidationError("Missing authorization code", nil)
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, NewUnauthenticatedError("Failed to exchange authorization code").WithCause(err)
	}

	profile, err := s.fetchProfile(ctx, s.config.Client(ctx, token))
	if err != nil {
		return nil, NewInternalError("Failed to load Google profile").WithCause(err)
	}
	if profile.Email == "" || !profile.VerifiedEmail {
		return nil, NewUnauthenticatedError("Google account email is not verified")
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		return nil, err
	}
	if user.IsRestricted() {
		return nil, NewForbiddenError(ReasonAccountRestricted)
	}
	return s.auth.issue(models.LearnerIdentity{User: user})
}

func (s *oauthService) fetchProfile(ctx context.Context, client *http.Client) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfo, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send user info request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}

	var profile GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user info response: %w", err)
	}
	return &profile, nil
}

func (s *oauthService) findOrCreate(ctx context.Context, profile *GoogleUser) (*models.User, error) {
	user, err := s.repos.User.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError(err, "User")
	}

	user, err = s.repos.User.GetByEmail(ctx, normalizeEmail(profile.Email))
	switch {
	case err == nil:
		if err := s.repos.User.LinkGoogleID(ctx, user.ID, profile.ID); err != nil {
			return nil, storeError(err, "User")
		}
		s.logger.Info("Linked Google account", zap.String("user_id", user.ID))
		return user, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, storeError(err, "User")
	}

	googleID := profile.ID
	user = &models.User{
		Name:         profile.Name,
		Email:        normalizeEmail(profile.Email),
		GoogleID:     &googleID,
		ProfileImage: profile.Picture,
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, storeError(err, "User")
	}
	s.logger.Info("Created learner from Google sign-in", zap.String("user_id", user.ID))
	return user, nil
}
