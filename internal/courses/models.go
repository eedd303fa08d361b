package courses

import "github.com/learnhub/course-assistant-go/internal/engine"

// Course is a catalog record as stored in SQLite.
type Course struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Duration      string   `json:"duration"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
	CachedAt      int64    `json:"-"`
}

// Summary converts a catalog record into the snapshot shape the dialogue
// engine consumes.
func (c *Course) Summary() *engine.CourseSummary {
	return &engine.CourseSummary{
		ID:            c.ID,
		Title:         c.Title,
		Category:      c.Category,
		Level:         c.Level,
		Duration:      c.Duration,
		Description:   c.Description,
		Prerequisites: c.Prerequisites,
	}
}
