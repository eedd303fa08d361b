package courses

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/learnhub/course-assistant-go/internal/sliceutil"
)

// Seed loads course records from a JSON file into the catalog. Records are
// upserted, so reseeding with an updated file refreshes existing rows.
//
// The file holds an array of Course objects:
//
//	[{"id": "c-1", "title": "...", "category": "...", "level": "...",
//	  "duration": "...", "description": "...", "prerequisites": ["..."]}]
func (s *Store) Seed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []*Course
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, course := range records {
		if course.ID == "" {
			return 0, fmt.Errorf("seed record %q is missing an id", course.Title)
		}
		if course.Title == "" {
			return 0, fmt.Errorf("seed record %q is missing a title", course.ID)
		}
	}

	// Duplicate ids in a seed file would upsert the same row twice; keep
	// the first occurrence.
	records = sliceutil.Deduplicate(records, func(c *Course) string { return c.ID })

	if err := s.SaveCoursesBatch(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
