package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSendRestrictionNotice(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	service := NewEmailService(zap.New(core))

	err := service.SendRestrictionNotice(context.Background(), "test@example.com", "Test", true, "spam")

	assert.NoError(t, err, "SendRestrictionNotice should not return an error")
	entries := logs.FilterMessage("Sending email").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Your account has been restricted", entries[0].ContextMap()["subject"])
	}
}

func TestSendEmail_RejectsInvalidRecipient(t *testing.T) {
	service := NewEmailService(zap.NewNop())

	err := service.SendEmail(context.Background(), &SendEmailRequest{
		To:      []string{"not-an-email"},
		Subject: "Hello",
	})

	assert.True(t, IsValidationError(err))
}
