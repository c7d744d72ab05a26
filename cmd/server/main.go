// @title           LearnHub API
// @version         1.0.0
// @description     Online course marketplace: catalogue, course authoring, purchases and moderation.

// @contact.name   LearnHub API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name token
// @description Session cookie set by register, login and the Google callback

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/media"
	"learnhub/internal/realtime"
	"learnhub/internal/repositories"
	"learnhub/internal/response"
	"learnhub/internal/router"
	"learnhub/internal/services"
	"learnhub/internal/utils/appinfo"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging, cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting LearnHub",
		zap.String("environment", cfg.Server.Environment),
		zap.String("version", appinfo.GetVersion()),
	)

	// Database
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 2*time.Minute)
	db, err := database.Connect(connectCtx, &cfg.Database, logger)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	repos, err := repositories.NewCollection(db, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repositories", zap.Error(err))
	}

	// Media host
	var storage media.Storage = media.Disabled{}
	if cfg.Cloudinary.Configured() {
		cloudinary, err := media.NewCloudinaryStorage(cfg.Cloudinary, logger)
		if err != nil {
			logger.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		storage = cloudinary
		logger.Info("Cloudinary storage initialized", zap.String("root_folder", cfg.Cloudinary.RootFolder))
	} else {
		logger.Warn("Cloudinary is not configured, uploads are disabled")
	}

	cacheInstance := cache.NewCache(cfg.Cache, logger)

	builder := response.NewBuilder(&response.Config{
		IncludeRequestID:   true,
		MaskInternalErrors: cfg.Server.MaskInternal,
	}, logger)

	hub := realtime.NewHub(cfg.Server.AllowedOrigins, builder, logger)

	serviceCollection, err := services.NewServiceCollection(services.Dependencies{
		Repositories: repos,
		Storage:      storage,
		Cache:        cacheInstance,
		Publisher:    hub,
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := serviceCollection.Auth.SeedAdmin(seedCtx, cfg.Admin); err != nil {
		logger.Error("Failed to seed admin account", zap.Error(err))
	}
	cancelSeed()

	handler := router.SetupRouter(router.Options{
		Services: serviceCollection,
		Builder:  builder,
		Hub:      hub,
		DB:       db,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	hub.Close()
	if err := serviceCollection.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close services", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database connections", zap.Error(err))
	}

	logger.Info("Shutdown completed")
}

// initLogger builds the process logger from the logging configuration
func initLogger(cfg config.LoggingConfig, production bool) (*zap.Logger, error) {
	var zcfg zap.Config
	if production {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		zcfg.Encoding = "json"
	case "console", "text":
		zcfg.Encoding = "console"
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
