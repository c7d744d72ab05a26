// ===============================
// FILE: internal/handlers/api/v1/admin/admin_controller.go
// ===============================

package admin

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

// AdminController handles moderation endpoints. Routes are guarded by the
// admin middleware.
type AdminController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewAdminController creates a new admin controller
func NewAdminController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *AdminController {
	return &AdminController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// ListReports returns every open report - GET /api/admin/reports
func (c *AdminController) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := c.serviceCollection.Report.ListReports(ctx)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"reports": reports})
}

// ReportAction warns the content owner or consumes the report
// - PATCH /api/admin/report/reportaction
func (c *AdminController) ReportAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req services.ReportActionRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	message, err := c.serviceCollection.Report.ReportAction(ctx, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	contextutils.Logger(r.Context(), c.logger).Info("Report action applied",
		zap.String("report_id", req.ReportID),
		zap.String("status", req.Status),
	)

	c.responseBuilder.WriteJSON(w, r, http.StatusOK, map[string]string{"message": message})
}

// SetUserRestriction restricts or restores a learner account
// - PATCH /api/admin/user/{userId}/restriction
func (c *AdminController) SetUserRestriction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req services.RestrictionRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	user, err := c.serviceCollection.Admin.SetUserRestriction(ctx, mux.Vars(r)["userId"], &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	msg := "User restriction removed"
	if req.Restricted {
		msg = "User restricted"
	}
	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":  msg,
		"user": user,
	})
}

// DeleteComment removes a comment - DELETE /api/admin/comment/{commentId}
func (c *AdminController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := c.serviceCollection.Comment.DeleteComment(ctx, mux.Vars(r)["commentId"]); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{"msg": "Comment deleted"})
}
