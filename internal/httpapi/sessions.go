package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/course-assistant-go/internal/engine"
	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
)

// courseSnapshot is a page-assembled course payload. It has no backend ID,
// so questions about it are answered from the local catalog, not delegated.
type courseSnapshot struct {
	Title         string   `json:"title" binding:"required"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Duration      string   `json:"duration"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
}

func (s *courseSnapshot) summary() *engine.CourseSummary {
	return &engine.CourseSummary{
		Title:         s.Title,
		Category:      s.Category,
		Level:         s.Level,
		Duration:      s.Duration,
		Description:   s.Description,
		Prerequisites: s.Prerequisites,
	}
}

type createSessionRequest struct {
	PageMode string          `json:"page_mode"`
	CourseID string          `json:"course_id"`
	Course   *courseSnapshot `json:"course"`
}

type attachCourseRequest struct {
	CourseID string          `json:"course_id"`
	Course   *courseSnapshot `json:"course"`
}

func parsePageMode(s string) (engine.PageMode, bool) {
	switch engine.PageMode(s) {
	case engine.PageModeGeneral, engine.PageModeCatalog, engine.PageModeCourseDetail:
		return engine.PageMode(s), true
	case "":
		return engine.PageModeGeneral, true
	default:
		return "", false
	}
}

// resolveCourse turns a request's course reference into a CourseSummary.
// A course_id wins over an inline snapshot and must exist in the catalog.
func (h *Handler) resolveCourse(c *gin.Context, courseID string, snapshot *courseSnapshot) (*engine.CourseSummary, bool) {
	if courseID != "" {
		course, err := h.store.GetCourseByID(c.Request.Context(), courseID)
		if err != nil {
			if errors.Is(err, domerrors.ErrCourseNotFound) {
				h.abortWithError(c, http.StatusNotFound, err)
			} else {
				h.logger.WithError(err).Error("course lookup failed")
				h.abortWithError(c, http.StatusInternalServerError, err)
			}
			return nil, false
		}
		return course.Summary(), true
	}
	if snapshot != nil {
		return snapshot.summary(), true
	}
	return nil, true
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrInvalidInput)
		return
	}

	pageMode, ok := parsePageMode(req.PageMode)
	if !ok {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrInvalidInput)
		return
	}

	course, ok := h.resolveCourse(c, req.CourseID, req.Course)
	if !ok {
		return
	}

	s := h.sessions.Create(pageMode, course)

	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"page_mode":  string(pageMode),
	})
}

func (h *Handler) deleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		h.abortWithError(c, http.StatusNotFound, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) attachCourse(c *gin.Context) {
	var req attachCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrInvalidInput)
		return
	}
	if req.CourseID == "" && req.Course == nil {
		h.abortWithError(c, http.StatusBadRequest, domerrors.ErrMissingParameter)
		return
	}

	course, ok := h.resolveCourse(c, req.CourseID, req.Course)
	if !ok {
		return
	}

	if err := h.sessions.AttachCourse(c.Param("id"), course); err != nil {
		h.abortWithError(c, http.StatusNotFound, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) detachCourse(c *gin.Context) {
	if err := h.sessions.DetachCourse(c.Param("id")); err != nil {
		h.abortWithError(c, http.StatusNotFound, err)
		return
	}
	c.Status(http.StatusNoContent)
}
