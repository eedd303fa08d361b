package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/course-assistant-go/internal/aichat"
	"github.com/learnhub/course-assistant-go/internal/ctxutil"
	"github.com/learnhub/course-assistant-go/internal/engine"
	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
	"github.com/learnhub/course-assistant-go/internal/recommend"
)

type postMessageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply        string                `json:"reply"`
	QuestionType string                `json:"question_type"`
	Delegated    bool                  `json:"delegated"`
	Suggestions  []recommend.Suggestion `json:"suggestions,omitempty"`
}

func (h *Handler) postMessage(c *gin.Context) {
	sessionID := c.Param("id")

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrInvalidInput)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrMissingParameter)
		return
	}
	if h.maxMessageLength > 0 && len(message) > h.maxMessageLength {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrInvalidInput)
		return
	}

	if h.messageLimiter != nil && !h.messageLimiter.Allow(sessionID) {
		c.Header("Retry-After", "2")
		h.abortWithError(c, http.StatusTooManyRequests, domerrors.ErrRateLimitExceeded)
		return
	}

	// Run the engine under the session lock; the conversation context is
	// mutated (message count, stated interest) as part of handling.
	var result engine.Result
	var course *engine.CourseSummary
	err := h.sessions.WithContext(sessionID, func(ctx *engine.ConversationContext) {
		result = h.orchestrator.HandleMessage(message, ctx)
		course = ctx.SelectedCourse
	})
	if err != nil {
		h.abortWithError(c, http.StatusNotFound, err)
		return
	}

	h.recordMessage(result)

	resp := messageResponse{
		Reply:        result.Reply,
		QuestionType: string(result.Type),
	}

	if result.DelegateToAI {
		resp.Reply, resp.Delegated = h.delegate(c.Request.Context(), sessionID, message, course)
	}

	if result.Type == engine.QuestionInterestStated && result.Interest != "" {
		resp.Suggestions = h.suggestCourses(result.Interest)
	}

	c.JSON(http.StatusOK, resp)
}

// delegate forwards a course-bound question to the AI provider chain.
// Any failure (no provider, quota, provider error) collapses to a fixed
// reply; provider errors never reach the widget.
func (h *Handler) delegate(ctx context.Context, sessionID, message string, course *engine.CourseSummary) (string, bool) {
	if h.chat == nil {
		return aiErrorReply, false
	}
	if h.aiLimiter != nil && !h.aiLimiter.Allow(sessionID) {
		return aiBusyReply, false
	}

	chatCtx := ctxutil.WithSessionID(ctx, sessionID)
	if h.chatTimeout > 0 {
		var cancel context.CancelFunc
		chatCtx, cancel = context.WithTimeout(chatCtx, h.chatTimeout)
		defer cancel()
	}

	reply, err := h.chat.Chat(chatCtx, aichat.Request{
		Course:  course,
		Message: message,
		UserID:  sessionID,
	})
	if err != nil {
		h.logger.WithSessionID(sessionID).WithError(err).Error("AI delegation failed")
		return aiErrorReply, false
	}
	return reply, true
}

func (h *Handler) suggestCourses(interest string) []recommend.Suggestion {
	if h.recommender == nil {
		return nil
	}

	limit := h.suggestionLimit
	if limit <= 0 {
		limit = 3
	}

	suggestions, err := h.recommender.Search(interest, limit)
	if err != nil {
		h.logger.WithError(err).WithField("interest", interest).Warn("suggestion search failed")
		return nil
	}
	return suggestions
}

func (h *Handler) recordMessage(result engine.Result) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordMessage(string(result.Type))
	if result.Type == engine.QuestionOutOfScope {
		h.metrics.RecordScopeRejection()
	}
	if !result.DelegateToAI {
		category, _, _ := strings.Cut(string(result.Type), ":")
		h.metrics.RecordCatalogResponse(category)
	}
}
