package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/course-assistant-go/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:                  "test",
		Port:                         "8080",
		LogLevel:                     "error",
		ShutdownTimeout:              time.Second,
		AllowedOrigins:               []string{"*"},
		DataDir:                      t.TempDir(),
		SessionTTL:                   time.Minute,
		SessionCleanupInterval:       time.Minute,
		SessionRateLimitBurst:        15,
		SessionRateLimitRefillPerSec: 0.5,
		AIRateLimitBurst:             40,
		AIRateLimitRefillPerHour:     60,
		GlobalRateLimitRPS:           100,
		RecommendationResultLimit:    3,
		MaxMessageLength:             2000,
		AIPrimaryProvider:            "gemini",
		AIFallbackProvider:           "groq",
		MetricsUsername:              "prometheus",
	}
}

func initTestApp(t *testing.T) *Application {
	t.Helper()

	app, err := Initialize(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })
	return app
}

func TestInitialize(t *testing.T) {
	app := initTestApp(t)

	assert.NotNil(t, app.server)
	assert.NotNil(t, app.store)
	assert.NotNil(t, app.sessions)
	// No API keys configured, so delegation is disabled
	assert.Nil(t, app.chat)
}

func TestLivenessEndpoint(t *testing.T) {
	app := initTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}

func TestReadinessEndpoint(t *testing.T) {
	app := initTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")
}

func TestMetricsEndpoint_NoAuthWhenPasswordEmpty(t *testing.T) {
	app := initTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRoutesMounted(t *testing.T) {
	app := initTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	w := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "courses")
}
