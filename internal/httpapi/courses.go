package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/learnhub/course-assistant-go/internal/courses"
	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
)

var titleCaser = cases.Title(language.English)

// courseView is the catalog shape served to the widget. Category and level
// are normalized to title case so mixed-case seed data renders consistently.
type courseView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Duration      string   `json:"duration,omitempty"`
	Description   string   `json:"description,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty"`
}

func newCourseView(c *courses.Course) courseView {
	return courseView{
		ID:            c.ID,
		Title:         c.Title,
		Category:      titleCaser.String(strings.ToLower(c.Category)),
		Level:         titleCaser.String(strings.ToLower(c.Level)),
		Duration:      c.Duration,
		Description:   c.Description,
		Prerequisites: c.Prerequisites,
	}
}

func (h *Handler) listCourses(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		records []courses.Course
		err     error
	)
	operation := "list"
	query := strings.TrimSpace(c.Query("q"))
	if query != "" {
		operation = "search"
		records, err = h.store.SearchByKeyword(ctx, query)
	} else {
		records, err = h.store.ListAll(ctx)
	}
	if err != nil {
		h.recordLookup(operation, "error")
		h.logger.WithError(err).Error("course listing failed")
		h.abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	h.recordLookup(operation, "success")

	views := make([]courseView, 0, len(records))
	for i := range records {
		views = append(views, newCourseView(&records[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"courses": views,
		"count":   len(views),
	})
}

func (h *Handler) getCourse(c *gin.Context) {
	course, err := h.store.GetCourseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domerrors.ErrCourseNotFound) {
			h.recordLookup("get_by_id", "not_found")
			h.abortWithError(c, http.StatusNotFound, err)
			return
		}
		h.recordLookup("get_by_id", "error")
		h.logger.WithError(err).Error("course lookup failed")
		h.abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	h.recordLookup("get_by_id", "success")

	c.JSON(http.StatusOK, newCourseView(course))
}

func (h *Handler) recordLookup(operation, status string) {
	if h.metrics != nil {
		h.metrics.RecordCourseLookup(operation, status)
	}
}
