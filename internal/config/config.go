// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, session handling, AI providers, and rate limits.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// AI Provider Configuration
	GeminiAPIKey   string // Gemini API key for course chat delegation
	GroqAPIKey     string // Groq API key (OpenAI-compatible provider)
	CerebrasAPIKey string // Cerebras API key (OpenAI-compatible provider)

	// AI Model Configuration (optional, defaults apply if empty)
	GeminiChatModel         string // Primary Gemini model for course chat
	GeminiChatFallbackModel string // Fallback Gemini model for course chat
	GroqChatModel           string // Primary Groq model for course chat
	CerebrasChatModel       string // Primary Cerebras model for course chat

	// AI Provider Selection
	AIPrimaryProvider  string // Primary provider: "gemini", "groq" or "cerebras" (default: "gemini")
	AIFallbackProvider string // Fallback provider (default: "groq")
	AIChatTimeout      time.Duration

	// Observability
	BetterStackToken    string // Better Stack source token for log shipping (empty = local logs only)
	BetterStackEndpoint string // Better Stack ingest endpoint
	SentryDSN           string // Sentry DSN for error tracking (empty = disabled)
	Environment         string // Deployment environment name (default: "production")

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string // CORS origins permitted to embed the widget

	// Data Configuration
	DataDir        string // Data directory for the SQLite course catalog
	CourseSeedPath string // JSON seed file loaded into an empty catalog (optional)

	// Session Configuration
	SessionTTL             time.Duration // Idle lifetime of a conversation session
	SessionCleanupInterval time.Duration

	// Rate Limits (Token Bucket Algorithm)
	SessionRateLimitBurst         float64 // Maximum burst tokens per session (default: 15)
	SessionRateLimitRefillPerSec  float64 // Tokens refilled per second (default: 0.5)
	AIRateLimitBurst              float64 // Maximum burst tokens for AI delegation (default: 40)
	AIRateLimitRefillPerHour      float64 // AI tokens refilled per hour (default: 60)
	GlobalRateLimitRPS            float64 // Global rate limit in requests per second (default: 100)
	RecommendationResultLimit     int     // Maximum course suggestions per interest (default: 3)
	MaxMessageLength              int     // Maximum accepted message length in bytes (default: 2000)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// AI Provider Configuration
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		CerebrasAPIKey: getEnv("CEREBRAS_API_KEY", ""),

		// AI Model Configuration (empty = use defaults from aichat package)
		GeminiChatModel:         getEnv("GEMINI_CHAT_MODEL", ""),
		GeminiChatFallbackModel: getEnv("GEMINI_CHAT_FALLBACK_MODEL", ""),
		GroqChatModel:           getEnv("GROQ_CHAT_MODEL", ""),
		CerebrasChatModel:       getEnv("CEREBRAS_CHAT_MODEL", ""),

		AIPrimaryProvider:  getEnv("AI_PRIMARY_PROVIDER", "gemini"),
		AIFallbackProvider: getEnv("AI_FALLBACK_PROVIDER", "groq"),
		AIChatTimeout:      getDurationEnv("AI_CHAT_TIMEOUT", 30*time.Second),

		// Observability
		BetterStackToken:    getEnv("BETTER_STACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTER_STACK_ENDPOINT", ""),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		Environment:         getEnv("ENVIRONMENT", "production"),

		// Metrics Authentication
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		// Server Configuration
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
		AllowedOrigins:  getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),

		// Data Configuration
		DataDir:        getEnv("DATA_DIR", getDefaultDataDir()),
		CourseSeedPath: getEnv("COURSE_SEED_PATH", ""),

		// Session Configuration
		SessionTTL:             getDurationEnv("SESSION_TTL", 30*time.Minute),
		SessionCleanupInterval: getDurationEnv("SESSION_CLEANUP_INTERVAL", 5*time.Minute),

		// Rate Limits
		SessionRateLimitBurst:        getFloatEnv("SESSION_RATE_LIMIT_BURST", 15.0),
		SessionRateLimitRefillPerSec: getFloatEnv("SESSION_RATE_LIMIT_REFILL_PER_SEC", 0.5),
		AIRateLimitBurst:             getFloatEnv("AI_RATE_LIMIT_BURST", 40.0),
		AIRateLimitRefillPerHour:     getFloatEnv("AI_RATE_LIMIT_REFILL_PER_HOUR", 60.0),
		GlobalRateLimitRPS:           getFloatEnv("GLOBAL_RATE_LIMIT_RPS", 100.0),
		RecommendationResultLimit:    getIntEnv("RECOMMENDATION_RESULT_LIMIT", 3),
		MaxMessageLength:             getIntEnv("MAX_MESSAGE_LENGTH", 2000),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL))
	}
	if c.SessionCleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive, got %v", c.SessionCleanupInterval))
	}
	if c.AIChatTimeout <= 0 {
		errs = append(errs, fmt.Errorf("AI_CHAT_TIMEOUT must be positive, got %v", c.AIChatTimeout))
	}
	if c.SessionRateLimitBurst <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_RATE_LIMIT_BURST must be positive, got %v", c.SessionRateLimitBurst))
	}
	if c.SessionRateLimitRefillPerSec <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_RATE_LIMIT_REFILL_PER_SEC must be positive, got %v", c.SessionRateLimitRefillPerSec))
	}
	if c.GlobalRateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("GLOBAL_RATE_LIMIT_RPS must be positive, got %v", c.GlobalRateLimitRPS))
	}
	if c.RecommendationResultLimit <= 0 {
		errs = append(errs, fmt.Errorf("RECOMMENDATION_RESULT_LIMIT must be positive, got %d", c.RecommendationResultLimit))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength))
	}
	if !validProvider(c.AIPrimaryProvider) {
		errs = append(errs, fmt.Errorf("AI_PRIMARY_PROVIDER must be gemini, groq or cerebras, got %q", c.AIPrimaryProvider))
	}
	if !validProvider(c.AIFallbackProvider) {
		errs = append(errs, fmt.Errorf("AI_FALLBACK_PROVIDER must be gemini, groq or cerebras, got %q", c.AIFallbackProvider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validProvider(name string) bool {
	switch name {
	case "gemini", "groq", "cerebras":
		return true
	}
	return false
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != ""
}

// SQLitePath returns the full path to the SQLite course catalog file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "courses.db")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getSliceEnv retrieves a comma-separated environment variable with fallback
func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}
