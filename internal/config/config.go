package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Cloudinary CloudinaryConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Upload     UploadConfig
	OAuth      OAuthConfig
	Admin      AdminConfig
	Logging    LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	MaxHeaderBytes  int
	AllowedOrigins  []string
	MaskInternal    bool
	SwaggerUsername string
	SwaggerPassword string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
	EnableQueryLogging bool
	RunMigrations      bool
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret      string
	TokenExpiry    time.Duration
	CookieName     string
	CookieSecure   bool
	CookieSameSite string
	BCryptCost     int
}

// CloudinaryConfig holds media host configuration
type CloudinaryConfig struct {
	CloudName  string
	APIKey     string
	APISecret  string
	RootFolder string

	MaxRetries      uint64
	BreakerTimeout  time.Duration
	BreakerFailures uint32
}

// CacheConfig selects the cache backend
type CacheConfig struct {
	RedisURL  string
	CourseTTL time.Duration
}

// RateLimitConfig holds per-IP limits for public and authenticated routes
type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	AuthPerMin     int
}

// UploadConfig holds multipart limits and fan-out bounds
type UploadConfig struct {
	MaxMemory      int64
	MaxRequestSize int64
	Concurrency    int
	ThumbnailWidth int
}

// OAuthConfig holds Google sign-in credentials
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendURL        string
}

// Enabled reports whether Google sign-in is configured
func (o OAuthConfig) Enabled() bool {
	return o.GoogleClientID != "" && o.GoogleClientSecret != ""
}

// AdminConfig seeds the moderator account at start-up
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load()
		}
	}

	config := &Config{
		Server:     loadServerConfig(env),
		Database:   loadDatabaseConfig(),
		Auth:       loadAuthConfig(env),
		Cloudinary: loadCloudinaryConfig(),
		Cache:      loadCacheConfig(),
		RateLimit:  loadRateLimitConfig(),
		Upload:     loadUploadConfig(),
		OAuth:      loadOAuthConfig(),
		Admin:      loadAdminConfig(),
		Logging:    loadLoggingConfig(env),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadServerConfig(env string) ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "5000"),
		Host:            getEnv("HOST", ""),
		Environment:     env,
		ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
		MaxHeaderBytes:  getIntEnv("SERVER_MAX_HEADER_BYTES", 1<<20),
		AllowedOrigins:  getSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		MaskInternal:    getBoolEnv("MASK_INTERNAL_ERRORS", env == "production"),
		SwaggerUsername: getEnv("SWAGGER_USERNAME", ""),
		SwaggerPassword: getEnv("SWAGGER_PASSWORD", ""),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:                getEnv("DATABASE_URL", ""),
		MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnMaxIdleTime:    getDurationEnv("DB_CONN_MAX_IDLE_TIME", time.Minute),
		SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond),
		EnableQueryLogging: getBoolEnv("DB_ENABLE_QUERY_LOGGING", false),
		RunMigrations:      getBoolEnv("DB_RUN_MIGRATIONS", true),
	}
}

func loadAuthConfig(env string) AuthConfig {
	return AuthConfig{
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenExpiry:    getDurationEnv("JWT_EXPIRY", 7*24*time.Hour),
		CookieName:     getEnv("SESSION_COOKIE_NAME", "token"),
		CookieSecure:   getBoolEnv("SESSION_COOKIE_SECURE", env == "production"),
		CookieSameSite: getEnv("SESSION_COOKIE_SAMESITE", "lax"),
		BCryptCost:     getIntEnv("BCRYPT_COST", 12),
	}
}

func loadCloudinaryConfig() CloudinaryConfig {
	return CloudinaryConfig{
		CloudName:       getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:          getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:       getEnv("CLOUDINARY_API_SECRET", ""),
		RootFolder:      getEnv("CLOUDINARY_ROOT_FOLDER", "learnhub"),
		MaxRetries:      uint64(getIntEnv("CLOUDINARY_MAX_RETRIES", 3)),
		BreakerTimeout:  getDurationEnv("CLOUDINARY_BREAKER_TIMEOUT", 30*time.Second),
		BreakerFailures: uint32(getIntEnv("CLOUDINARY_BREAKER_FAILURES", 5)),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisURL:  getEnv("REDIS_URL", ""),
		CourseTTL: getDurationEnv("CACHE_COURSE_TTL", 5*time.Minute),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", true),
		RequestsPerMin: getIntEnv("RATE_LIMIT_PER_MINUTE", 300),
		AuthPerMin:     getIntEnv("RATE_LIMIT_AUTH_PER_MINUTE", 20),
	}
}

func loadUploadConfig() UploadConfig {
	return UploadConfig{
		MaxMemory:      getInt64Env("UPLOAD_MAX_MEMORY", 32<<20),
		MaxRequestSize: getInt64Env("UPLOAD_MAX_REQUEST_SIZE", 2<<30),
		Concurrency:    getIntEnv("UPLOAD_CONCURRENCY", 4),
		ThumbnailWidth: getIntEnv("UPLOAD_THUMBNAIL_WIDTH", 1280),
	}
}

func loadOAuthConfig() OAuthConfig {
	return OAuthConfig{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
	}
}

func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Name:     getEnv("ADMIN_NAME", "Administrator"),
		Email:    getEnv("ADMIN_EMAIL", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		Format: getEnv("LOG_FORMAT", getDefaultLogFormat(env)),
	}
}

// ===============================
// VALIDATION
// ===============================

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	if err := c.Cloudinary.Validate(c.IsProduction()); err != nil {
		return fmt.Errorf("cloudinary config: %w", err)
	}
	if c.Upload.Concurrency < 1 {
		return fmt.Errorf("upload config: concurrency must be at least 1")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return fmt.Errorf("admin config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Validate validates server configuration
func (s *ServerConfig) Validate() error {
	if s.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(s.Port); err != nil {
		return fmt.Errorf("invalid port: %s", s.Port)
	}
	return nil
}

// Validate validates database configuration
func (d *DatabaseConfig) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if d.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive")
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("max idle connections cannot exceed max open connections")
	}
	return nil
}

// Validate validates auth configuration
func (a *AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if a.BCryptCost < 4 || a.BCryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}
	switch strings.ToLower(a.CookieSameSite) {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("invalid cookie samesite mode: %s", a.CookieSameSite)
	}
	return nil
}

// Validate validates media host configuration. Credentials are only
// mandatory in production; development falls back to a disabled uploader.
func (c *CloudinaryConfig) Validate(production bool) error {
	if !production {
		return nil
	}
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	return nil
}

// Configured reports whether credentials are present
func (c *CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// ===============================
// ENV HELPERS
// ===============================

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getDefaultLogLevel(env string) string {
	switch env {
	case "production":
		return "info"
	default:
		return "debug"
	}
}

func getDefaultLogFormat(env string) string {
	switch env {
	case "production":
		return "json"
	default:
		return "console"
	}
}
