// file: internal/services/email_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// emailService implements the EmailService interface by logging outgoing mail
type emailService struct {
	logger *zap.Logger
}

// NewEmailService creates a new instance of EmailService
func NewEmailService(logger *zap.Logger) EmailService {
	return &emailService{
		logger: logger,
	}
}

// SendEmail sends a basic email
func (s *emailService) SendEmail(ctx context.Context, req *SendEmailRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	s.logger.Info("Sending email",
		zap.Strings("to", req.To),
		zap.String("subject", req.Subject),
		zap.Int("body_length", len(req.Body)),
	)
	// TODO: deliver through an SMTP relay once outbound mail credentials are provisioned
	return nil
}

// SendRestrictionNotice tells a learner their account was restricted or restored
func (s *emailService) SendRestrictionNotice(ctx context.Context, email, name string, restricted bool, reason string) error {
	subject := "Your account has been restored"
	body := fmt.Sprintf("Hi %s,\n\nYour account restriction has been lifted. You can use the platform again.", name)
	if restricted {
		subject = "Your account has been restricted"
		body = fmt.Sprintf("Hi %s,\n\nAn administrator has restricted your account.", name)
		if strings.TrimSpace(reason) != "" {
			body += "\nReason: " + reason
		}
	}

	err := s.SendEmail(ctx, &SendEmailRequest{
		To:      []string{email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		s.logger.Error("Failed to send restriction email",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("failed to send restriction email: %w", err)
	}
	return nil
}
