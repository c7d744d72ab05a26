// ===============================
// FILE: internal/handlers/api/v1/notifications/notifications_controller.go
// ===============================

package notifications

import (
	"context"
	"net/http"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NotificationController lists and acknowledges account notifications.
// Live delivery goes through the realtime hub.
type NotificationController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewNotificationController creates a new notification controller
func NewNotificationController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *NotificationController {
	return &NotificationController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// List returns the signed-in account's notifications - GET /api/notifications
func (c *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	identity := contextutils.Identity(r.Context())
	if identity == nil {
		c.responseBuilder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
		return
	}

	notifications, err := c.serviceCollection.Notification.List(ctx, identity.AccountID())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"notifications": notifications})
}

// MarkRead deletes a read notification - DELETE /api/notifications/{id}
func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	identity := contextutils.Identity(r.Context())
	if identity == nil {
		c.responseBuilder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
		return
	}

	if err := c.serviceCollection.Notification.MarkRead(ctx, mux.Vars(r)["id"], identity.AccountID()); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"msg": "Notification marked as read"})
}
