package services

import (
	"context"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

type notificationService struct {
	repos     *repositories.Collection
	publisher NotificationPublisher
	logger    *zap.Logger
}

// NewNotificationService creates the notification service. publisher may
// be nil, in which case nothing is pushed live.
func NewNotificationService(repos *repositories.Collection, publisher NotificationPublisher, logger *zap.Logger) NotificationService {
	return &notificationService{repos: repos, publisher: publisher, logger: logger}
}

// List returns the account's notifications, newest first
func (s *notificationService) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repos.Notification.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "Notification")
	}
	return notifications, nil
}

// MarkRead deletes a notification owned by userID
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.repos.Notification.Delete(ctx, notificationID, userID); err != nil {
		return storeError(err, "Notification")
	}
	return nil
}

// Publish pushes a stored notification to the recipient's live connections
func (s *notificationService) Publish(notification *models.Notification) {
	if s.publisher == nil || notification == nil {
		return
	}
	s.publisher.Publish(notification.UserID, map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})
	s.logger.Debug("Notification published",
		zap.String("notification_id", notification.ID),
		zap.String("user_id", notification.UserID),
	)
}
