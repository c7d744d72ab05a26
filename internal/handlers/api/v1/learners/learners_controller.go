// ===============================
// FILE: internal/handlers/api/v1/learners/learners_controller.go
// ===============================

package learners

import (
	"context"
	"net/http"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/models"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LearnerController handles purchases, the wishlist, access checks and
// learner engagement endpoints
type LearnerController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
	responseBuilder   *response.Builder
}

// NewLearnerController creates a new learner controller
func NewLearnerController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *LearnerController {
	return &LearnerController{
		serviceCollection: serviceCollection,
		logger:            logger,
		responseBuilder:   responseBuilder,
	}
}

// accessDenied is the 403 body of the access check. It keeps the decision
// fields next to the error so the front end can read both.
type accessDenied struct {
	services.CourseAccess
	*response.ErrorResponse
}

// ===============================
// PURCHASE ENDPOINTS
// ===============================

// Purchase buys one or more courses - POST /api/user/purchasecourse
func (c *LearnerController) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	user, ok := c.learner(w, r)
	if !ok {
		return
	}

	var req services.PurchaseRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	purchased, err := c.serviceCollection.Purchase.Purchase(ctx, user, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	contextutils.Logger(r.Context(), c.logger).Info("Courses purchased",
		zap.String("user_id", user.ID),
		zap.Int("count", len(purchased)),
	)

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":       "Course purchased successfully",
		"purchased": purchased,
	})
}

// ToggleWishlist adds or removes a course - POST /api/user/wishlist/{courseId}
func (c *LearnerController) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, ok := c.learner(w, r)
	if !ok {
		return
	}

	wishlist, added, err := c.serviceCollection.Purchase.ToggleWishlist(ctx, user, mux.Vars(r)["courseId"])
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	msg := "Course removed from wishlist"
	if added {
		msg = "Course added to wishlist"
	}
	c.responseBuilder.WriteOK(w, r, response.Payload{
		"msg":      msg,
		"wishlist": wishlist,
		"added":    added,
	})
}

// CourseAccess exposes the course-access decision
// - GET /api/user/courseaccess/{courseId}
func (c *LearnerController) CourseAccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	decision, err := c.serviceCollection.Access.Check(ctx, contextutils.Identity(r.Context()), mux.Vars(r)["courseId"])
	if err != nil {
		status, body := c.responseBuilder.Error(r.Context(), err)
		c.responseBuilder.WriteJSON(w, r, status, accessDenied{CourseAccess: decision, ErrorResponse: body})
		return
	}

	c.responseBuilder.WriteOK(w, r, response.Payload{
		"courseAccess": decision.CourseAccess,
		"courseModify": decision.CourseModify,
	})
}

// ===============================
// ENGAGEMENT ENDPOINTS
// ===============================

// CreateReview rates a purchased course - POST /api/user/review
func (c *LearnerController) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, ok := c.learner(w, r)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	review, err := c.serviceCollection.Review.CreateReview(ctx, user, &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":    "Review added",
		"review": review,
	})
}

// CreateComment posts on a course or chapter - POST /api/user/comment
func (c *LearnerController) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req services.CommentRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	comment, err := c.serviceCollection.Comment.CreateComment(ctx, contextutils.Identity(r.Context()), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":     "Comment added",
		"comment": comment,
	})
}

// CreateReport files a complaint - POST /api/user/report
func (c *LearnerController) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req services.ReportRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	report, err := c.serviceCollection.Report.CreateReport(ctx, contextutils.Identity(r.Context()), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.responseBuilder.WriteCreated(w, r, response.Payload{
		"msg":    "Report submitted",
		"report": report,
	})
}

func (c *LearnerController) learner(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	if id, ok := contextutils.Identity(r.Context()).(models.LearnerIdentity); ok {
		return id.User, true
	}
	c.responseBuilder.WriteError(w, r, services.NewForbiddenError(services.ReasonUnauthorizedAccess))
	return nil, false
}
