// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/media"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection holds all services with dependency injection
type ServiceCollection struct {
	// Session and access
	Tokens   *TokenManager
	Identity IdentityService
	Access   AccessService
	Auth     AuthService
	OAuth    OAuthService

	// Course content
	Course  CourseService
	Chapter ChapterService

	// Engagement and moderation
	Purchase     PurchaseService
	Review       ReviewService
	Comment      CommentService
	Report       ReportService
	Notification NotificationService
	Admin        AdminService

	// Infrastructure
	Email        EmailService
	Repositories *repositories.Collection
	Cache        cache.Cache
	Storage      media.Storage
	Logger       *zap.Logger
	Config       *config.Config
}

// Dependencies are the infrastructure components services are built from
type Dependencies struct {
	Repositories *repositories.Collection
	Storage      media.Storage
	Cache        cache.Cache
	Publisher    NotificationPublisher
	Config       *config.Config
	Logger       *zap.Logger
}

// NewServiceCollection wires every service
func NewServiceCollection(deps Dependencies) (*ServiceCollection, error) {
	if deps.Repositories == nil {
		return nil, fmt.Errorf("repository collection is required")
	}
	if deps.Config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Storage == nil {
		deps.Storage = media.Disabled{}
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewMemoryCache(1000, time.Minute, deps.Logger)
	}

	cfg, repos, logger := deps.Config, deps.Repositories, deps.Logger

	tokens := NewTokenManager(cfg.Auth)
	access := NewAccessService(logger.Named("access"))
	email := NewEmailService(logger.Named("email"))
	auth := NewAuthService(repos, tokens, cfg.Auth, logger.Named("auth"))
	notifications := NewNotificationService(repos, deps.Publisher, logger.Named("notification"))

	collection := &ServiceCollection{
		Tokens:       tokens,
		Identity:     NewIdentityService(tokens, repos, logger.Named("identity")),
		Access:       access,
		Auth:         auth,
		OAuth:        NewOAuthService(repos, auth, cfg.OAuth, logger.Named("oauth")),
		Course:       NewCourseService(repos, access, deps.Storage, deps.Cache, cfg, logger.Named("course")),
		Chapter:      NewChapterService(repos, access, deps.Storage, deps.Cache, cfg, logger.Named("chapter")),
		Purchase:     NewPurchaseService(repos, deps.Cache, logger.Named("purchase")),
		Review:       NewReviewService(repos, access, logger.Named("review")),
		Comment:      NewCommentService(repos, access, logger.Named("comment")),
		Report:       NewReportService(repos, notifications, logger.Named("report")),
		Notification: notifications,
		Admin:        NewAdminService(repos, email, logger.Named("admin")),
		Email:        email,
		Repositories: repos,
		Cache:        deps.Cache,
		Storage:      deps.Storage,
		Logger:       logger,
		Config:       cfg,
	}

	logger.Info("Service collection initialized successfully")
	return collection, nil
}

// Close releases infrastructure owned by the collection
func (sc *ServiceCollection) Close(ctx context.Context) error {
	if sc.Cache != nil {
		if err := sc.Cache.Close(); err != nil {
			sc.Logger.Warn("Failed to close cache", zap.Error(err))
			return err
		}
	}
	return nil
}
