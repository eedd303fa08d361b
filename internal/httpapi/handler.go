// Package httpapi provides the REST surface consumed by the embedded chat
// widget: session lifecycle, course binding, message handling, and the
// course catalog passthrough.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/course-assistant-go/internal/aichat"
	"github.com/learnhub/course-assistant-go/internal/courses"
	"github.com/learnhub/course-assistant-go/internal/engine"
	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
	"github.com/learnhub/course-assistant-go/internal/logger"
	"github.com/learnhub/course-assistant-go/internal/metrics"
	"github.com/learnhub/course-assistant-go/internal/ratelimit"
	"github.com/learnhub/course-assistant-go/internal/recommend"
	"github.com/learnhub/course-assistant-go/internal/session"
)

// aiErrorReply is the fixed reply shown when delegated AI chat fails.
// The widget never sees provider errors.
const aiErrorReply = "I encountered an error, please try again."

// aiBusyReply is shown when the per-session AI quota is exhausted.
const aiBusyReply = "I have answered a lot of questions in a row. Give me a short break and ask again."

// Handler serves the widget REST API.
type Handler struct {
	sessions       *session.Manager
	store          *courses.Store
	orchestrator   *engine.DialogueOrchestrator
	recommender    *recommend.Index
	chat           aichat.Client
	messageLimiter *ratelimit.KeyedLimiter
	aiLimiter      *ratelimit.KeyedLimiter
	metrics        *metrics.Metrics
	logger         *logger.Logger

	maxMessageLength int
	suggestionLimit  int
	chatTimeout      time.Duration
}

// HandlerConfig holds dependencies for creating a Handler.
type HandlerConfig struct {
	Sessions     *session.Manager
	Store        *courses.Store
	Orchestrator *engine.DialogueOrchestrator
	Recommender  *recommend.Index

	// Chat may be nil; delegated questions then get the fixed error reply.
	Chat aichat.Client

	// MessageLimiter throttles the message path per session.
	MessageLimiter *ratelimit.KeyedLimiter

	// AILimiter throttles AI delegations per session.
	AILimiter *ratelimit.KeyedLimiter

	Metrics *metrics.Metrics
	Logger  *logger.Logger

	MaxMessageLength int
	SuggestionLimit  int
	ChatTimeout      time.Duration
}

// NewHandler creates the API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}

	return &Handler{
		sessions:         cfg.Sessions,
		store:            cfg.Store,
		orchestrator:     cfg.Orchestrator,
		recommender:      cfg.Recommender,
		chat:             cfg.Chat,
		messageLimiter:   cfg.MessageLimiter,
		aiLimiter:        cfg.AILimiter,
		metrics:          cfg.Metrics,
		logger:           log.WithModule("httpapi"),
		maxMessageLength: cfg.MaxMessageLength,
		suggestionLimit:  cfg.SuggestionLimit,
		chatTimeout:      cfg.ChatTimeout,
	}
}

// Register mounts all API routes under /api/v1.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api/v1")

	api.POST("/sessions", h.createSession)
	api.DELETE("/sessions/:id", h.deleteSession)
	api.PUT("/sessions/:id/course", h.attachCourse)
	api.DELETE("/sessions/:id/course", h.detachCourse)
	api.POST("/sessions/:id/messages", h.postMessage)

	api.GET("/courses", h.listCourses)
	api.GET("/courses/:id", h.getCourse)
}

// abortWithError maps domain errors to HTTP responses with safe messages.
func (h *Handler) abortWithError(c *gin.Context, status int, err error) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError(http.StatusText(status), c.FullPath())
	}
	c.AbortWithStatusJSON(status, gin.H{"error": domerrors.GetUserMessage(err)})
}
