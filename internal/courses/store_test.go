package courses

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleCourse() *Course {
	return &Course{
		ID:            "web-101",
		Title:         "Web Development Bootcamp",
		Category:      "Programming",
		Level:         "Beginner",
		Duration:      "12 weeks",
		Description:   "Build modern websites with HTML, CSS and JavaScript.",
		Prerequisites: []string{"Basic HTML", "Basic CSS"},
	}
}

func TestSaveAndGetCourse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveCourse(ctx, sampleCourse()); err != nil {
		t.Fatalf("SaveCourse() failed: %v", err)
	}

	got, err := store.GetCourseByID(ctx, "web-101")
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if got.Title != "Web Development Bootcamp" {
		t.Errorf("Title = %q, want %q", got.Title, "Web Development Bootcamp")
	}
	if len(got.Prerequisites) != 2 || got.Prerequisites[0] != "Basic HTML" {
		t.Errorf("Prerequisites = %v, want [Basic HTML, Basic CSS]", got.Prerequisites)
	}
}

func TestGetCourseNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetCourseByID(context.Background(), "missing")
	if !errors.Is(err, domerrors.ErrCourseNotFound) {
		t.Errorf("GetCourseByID() error = %v, want ErrCourseNotFound", err)
	}
}

func TestSaveCourseUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	course := sampleCourse()
	if err := store.SaveCourse(ctx, course); err != nil {
		t.Fatalf("SaveCourse() failed: %v", err)
	}

	course.Level = "Intermediate"
	if err := store.SaveCourse(ctx, course); err != nil {
		t.Fatalf("SaveCourse() upsert failed: %v", err)
	}

	got, err := store.GetCourseByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if got.Level != "Intermediate" {
		t.Errorf("Level after upsert = %q, want %q", got.Level, "Intermediate")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after upsert", count)
	}
}

func TestSearchByKeyword(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []*Course{
		sampleCourse(),
		{
			ID:       "ds-201",
			Title:    "Data Science Fundamentals",
			Category: "Data",
			Level:    "Intermediate",
		},
		{
			ID:          "ux-110",
			Title:       "UX Design Basics",
			Category:    "Design",
			Level:       "Beginner",
			Description: "Learn user research and modern web design principles.",
		},
	}
	if err := store.SaveCoursesBatch(ctx, records); err != nil {
		t.Fatalf("SaveCoursesBatch() failed: %v", err)
	}

	tests := []struct {
		name    string
		keyword string
		wantIDs []string
	}{
		{"Title match", "Data Science", []string{"ds-201"}},
		{"Category match", "Design", []string{"ux-110"}},
		{"Description match", "user research", []string{"ux-110"}},
		{"Multiple matches", "web", []string{"ux-110", "web-101"}},
		{"No match", "quantum", nil},
		{"Empty keyword", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.SearchByKeyword(ctx, tt.keyword)
			if err != nil {
				t.Fatalf("SearchByKeyword(%q) failed: %v", tt.keyword, err)
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("SearchByKeyword(%q) returned %d results, want %d", tt.keyword, len(results), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if results[i].ID != want {
					t.Errorf("result[%d].ID = %q, want %q", i, results[i].ID, want)
				}
			}
		})
	}
}

func TestListAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveCoursesBatch(ctx, []*Course{
		{ID: "b", Title: "Beta Course", Category: "X", Level: "Beginner"},
		{ID: "a", Title: "Alpha Course", Category: "X", Level: "Beginner"},
	}); err != nil {
		t.Fatalf("SaveCoursesBatch() failed: %v", err)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListAll() returned %d courses, want 2", len(all))
	}
	if all[0].Title != "Alpha Course" {
		t.Errorf("ListAll() not ordered by title: first = %q", all[0].Title)
	}
}

func TestSeed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedPath := filepath.Join(t.TempDir(), "seed.json")
	seedJSON := `[
		{"id": "web-101", "title": "Web Development Bootcamp", "category": "Programming",
		 "level": "Beginner", "duration": "12 weeks",
		 "description": "Build modern websites.", "prerequisites": ["Basic HTML"]},
		{"id": "ds-201", "title": "Data Science Fundamentals", "category": "Data",
		 "level": "Intermediate", "prerequisites": []}
	]`
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	n, err := store.Seed(ctx, seedPath)
	if err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Seed() loaded %d records, want 2", n)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestSeedDeduplicatesByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedPath := filepath.Join(t.TempDir(), "seed.json")
	seedJSON := `[
		{"id": "web-101", "title": "Web Development Bootcamp"},
		{"id": "web-101", "title": "Web Development Bootcamp (old)"},
		{"id": "ds-201", "title": "Data Science Fundamentals"}
	]`
	if err := os.WriteFile(seedPath, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	n, err := store.Seed(ctx, seedPath)
	if err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Seed() loaded %d records, want 2", n)
	}

	course, err := store.GetCourseByID(ctx, "web-101")
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if course.Title != "Web Development Bootcamp" {
		t.Errorf("duplicate record overwrote first occurrence: title = %q", course.Title)
	}
}

func TestSeedRejectsMissingID(t *testing.T) {
	store := newTestStore(t)

	seedPath := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(seedPath, []byte(`[{"title": "No ID"}]`), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	if _, err := store.Seed(context.Background(), seedPath); err == nil {
		t.Error("Seed() should reject records without an id")
	}
}
