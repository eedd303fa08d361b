package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseListResponse struct {
	Courses []courseView `json:"courses"`
	Count   int          `json:"count"`
}

func TestListCourses(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp courseListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Courses, 2)
}

func TestListCourses_Search(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses?q=python", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp courseListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "course-7", resp.Courses[0].ID)
}

func TestListCourses_SearchNoMatch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses?q=gardening", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp courseListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestGetCourse(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses/course-42", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view courseView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Web Development Bootcamp", view.Title)
	assert.Equal(t, []string{"Basic HTML", "Basic CSS"}, view.Prerequisites)
}

func TestGetCourse_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses/course-999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCourseView_TitleCasesCategoryAndLevel(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/courses/course-7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view courseView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	// Seed data is lowercase; the view normalizes for display
	assert.Equal(t, "Data Science", view.Category)
	assert.Equal(t, "Intermediate", view.Level)
}
