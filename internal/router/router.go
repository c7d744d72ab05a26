package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "learnhub/internal/docs" // registers the swagger spec

	"learnhub/internal/database"
	"learnhub/internal/handlers/api/v1/admin"
	"learnhub/internal/handlers/api/v1/auth"
	"learnhub/internal/handlers/api/v1/chapters"
	"learnhub/internal/handlers/api/v1/courses"
	"learnhub/internal/handlers/api/v1/learners"
	"learnhub/internal/handlers/api/v1/notifications"
	"learnhub/internal/middleware"
	"learnhub/internal/models"
	"learnhub/internal/realtime"
	"learnhub/internal/response"
	"learnhub/internal/services"
	"learnhub/internal/utils/appinfo"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options carries everything the HTTP layer is built from
type Options struct {
	Services *services.ServiceCollection
	Builder  *response.Builder
	Hub      *realtime.Hub
	// DB is optional. When set, /health pings it and /metrics exports
	// connection pool statistics.
	DB     *database.Manager
	Logger *zap.Logger
}

// SetupRouter configures all HTTP routes and returns the main handler
func SetupRouter(opts Options) http.Handler {
	sc, builder, logger := opts.Services, opts.Builder, opts.Logger
	cfg := sc.Config

	authMiddleware := middleware.NewAuthMiddleware(&middleware.AuthConfig{
		CookieName:    cfg.Auth.CookieName,
		AllowBearer:   true,
		LogFailedAuth: true,
	}, sc.Identity, builder, logger)
	rateLimiter := middleware.NewRateLimiter(sc.Cache, middleware.NewRateLimiterConfig(cfg.RateLimit), builder, logger)

	r := mux.NewRouter()
	r.NotFoundHandler = middleware.NotFoundHandler(builder)
	r.MethodNotAllowedHandler = middleware.MethodNotAllowedHandler(builder)
	r.Use(middleware.Metrics)

	// ===============================
	// OPERATIONS
	// ===============================

	r.HandleFunc("/health", healthHandler(opts)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		builder.WriteOK(w, req, response.Payload{"status": "alive"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler(opts.DB, logger)).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(middleware.SwaggerHandler(&middleware.SwaggerConfig{
		URL:          "/swagger/doc.json",
		DeepLinking:  true,
		DocExpansion: "list",
		Username:     cfg.Server.SwaggerUsername,
		Password:     cfg.Server.SwaggerPassword,
	}))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.MaxBodySize(cfg.Upload.MaxRequestSize, builder))

	requireAuth := authMiddleware.RequireAuth()
	optionalAuth := authMiddleware.OptionalAuth()
	educatorOnly := chain(requireAuth, authMiddleware.RequireRole(models.RoleEducator))
	learnerOnly := chain(requireAuth, authMiddleware.RequireRole(models.RoleLearner))
	accessRoles := chain(requireAuth, authMiddleware.RequireRole(models.RoleLearner, models.RoleEducator))
	adminOnly := chain(requireAuth, authMiddleware.RequireAdmin())

	// ===============================
	// AUTH
	// ===============================

	authController := auth.NewAuthController(sc, logger, builder)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Handle("/register", rateLimiter.Auth()(http.HandlerFunc(authController.Register))).Methods(http.MethodPost)
	authRoutes.Handle("/login", rateLimiter.Auth()(http.HandlerFunc(authController.Login))).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authController.Logout).Methods(http.MethodPost)
	authRoutes.Handle("/me", requireAuth(http.HandlerFunc(authController.Me))).Methods(http.MethodGet)
	authRoutes.HandleFunc("/google/login", authController.GoogleLogin).Methods(http.MethodGet)
	authRoutes.HandleFunc("/google/callback", authController.GoogleCallback).Methods(http.MethodGet)

	// ===============================
	// CATALOGUE
	// ===============================

	courseController := courses.NewCourseController(sc, logger, builder)
	api.Handle("/courses", optionalAuth(http.HandlerFunc(courseController.ListApproved))).Methods(http.MethodGet)
	api.Handle("/course/{courseId}", optionalAuth(http.HandlerFunc(courseController.GetCourse))).Methods(http.MethodGet)
	api.HandleFunc("/course/{courseId}/reviews", courseController.ListReviews).Methods(http.MethodGet)
	api.HandleFunc("/course/{courseId}/comments", courseController.ListComments).Methods(http.MethodGet)
	api.Handle("/course/{courseId}/chapter/{chapterId}", accessRoles(http.HandlerFunc(courseController.GetChapter))).Methods(http.MethodGet)

	// ===============================
	// EDUCATOR
	// ===============================

	chapterController := chapters.NewChapterController(sc, logger, builder)
	educator := api.PathPrefix("/educator").Subrouter()
	educator.Use(mux.MiddlewareFunc(educatorOnly))
	educator.HandleFunc("/addcourse", courseController.CreateCourse).Methods(http.MethodPost)
	educator.HandleFunc("/editcourse/{courseId}", courseController.EditCourse).Methods(http.MethodPut)
	educator.HandleFunc("/courses", courseController.ListMine).Methods(http.MethodGet)
	educator.HandleFunc("/deletecourse/{courseId}", courseController.DeleteCourse).Methods(http.MethodDelete)
	educator.HandleFunc("/addchapter/{courseId}", chapterController.AddChapters).Methods(http.MethodPost)
	educator.HandleFunc("/editchapter/{courseId}/{chapterId}", chapterController.EditChapter).Methods(http.MethodPut)
	educator.HandleFunc("/deletechapter", chapterController.DeleteChapters).Methods(http.MethodDelete)

	// ===============================
	// LEARNER
	// ===============================

	learnerController := learners.NewLearnerController(sc, logger, builder)
	user := api.PathPrefix("/user").Subrouter()
	user.Handle("/purchasecourse", learnerOnly(http.HandlerFunc(learnerController.Purchase))).Methods(http.MethodPost)
	user.Handle("/wishlist/{courseId}", learnerOnly(http.HandlerFunc(learnerController.ToggleWishlist))).Methods(http.MethodPost)
	user.Handle("/courseaccess/{courseId}", requireAuth(http.HandlerFunc(learnerController.CourseAccess))).Methods(http.MethodGet)
	user.Handle("/review", learnerOnly(http.HandlerFunc(learnerController.CreateReview))).Methods(http.MethodPost)
	user.Handle("/comment", accessRoles(http.HandlerFunc(learnerController.CreateComment))).Methods(http.MethodPost)
	user.Handle("/report", requireAuth(http.HandlerFunc(learnerController.CreateReport))).Methods(http.MethodPost)

	// ===============================
	// NOTIFICATIONS
	// ===============================

	notificationController := notifications.NewNotificationController(sc, logger, builder)
	api.Handle("/notifications", requireAuth(http.HandlerFunc(notificationController.List))).Methods(http.MethodGet)
	if opts.Hub != nil {
		api.Handle("/notifications/ws", requireAuth(opts.Hub)).Methods(http.MethodGet)
	}
	api.Handle("/notifications/{id}", requireAuth(http.HandlerFunc(notificationController.MarkRead))).Methods(http.MethodDelete)

	// ===============================
	// ADMIN
	// ===============================

	adminController := admin.NewAdminController(sc, logger, builder)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(mux.MiddlewareFunc(adminOnly))
	adminRoutes.HandleFunc("/reports", adminController.ListReports).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/report/reportaction", adminController.ReportAction).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/course/{courseId}/status", courseController.UpdateStatus).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/user/{userId}/restriction", adminController.SetUserRestriction).Methods(http.MethodPatch)
	adminRoutes.HandleFunc("/comment/{commentId}", adminController.DeleteComment).Methods(http.MethodDelete)
	adminRoutes.HandleFunc("/deletecourse/{courseId}", courseController.DeleteCourse).Methods(http.MethodDelete)

	// Outermost first: the request id and recovery wrap everything else
	var handler http.Handler = r
	handler = rateLimiter.Global()(handler)
	handler = middleware.CORS(cfg.Server.AllowedOrigins)(handler)
	handler = middleware.SecureHeaders(middleware.DefaultSecurityConfig(cfg.IsProduction()))(handler)
	handler = middleware.StructuredLogging(middleware.DefaultLoggingConfig())(handler)
	handler = middleware.Recovery(middleware.DefaultRecoveryConfig(), builder)(handler)
	handler = middleware.RequestID(logger)(handler)
	handler = chimw.RealIP(handler)

	logger.Info("Router configured",
		zap.String("environment", cfg.Server.Environment),
		zap.String("version", appinfo.GetVersion()),
	)
	return handler
}

func chain(mws ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

func healthHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := database.StatusHealthy
		checks := map[string]interface{}{}

		if opts.DB != nil {
			db := opts.DB.Health(ctx)
			checks["database"] = db
			if db.Status != database.StatusHealthy {
				status = db.Status
			}
		}

		if err := opts.Services.Cache.Health(ctx); err != nil {
			checks["cache"] = map[string]string{"status": database.StatusUnhealthy, "error": err.Error()}
			if status == database.StatusHealthy {
				status = database.StatusDegraded
			}
		} else {
			checks["cache"] = map[string]string{"status": database.StatusHealthy}
		}

		code := http.StatusOK
		if status == database.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		opts.Builder.WriteJSON(w, r, code, response.Payload{
			"success":     code == http.StatusOK,
			"status":      status,
			"version":     appinfo.GetVersion(),
			"environment": appinfo.GetEnvironment(),
			"checks":      checks,
		})
	}
}

func metricsHandler(db *database.Manager, logger *zap.Logger) http.Handler {
	if db != nil {
		if err := prometheus.Register(database.NewPoolCollector(db)); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				logger.Warn("Failed to register database pool collector", zap.Error(err))
			}
		}
	}
	return promhttp.Handler()
}
