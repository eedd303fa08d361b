package courses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
)

// maxSearchResults caps keyword searches to keep replies small.
const maxSearchResults = 50

// SaveCourse inserts or updates a single course record
func (s *Store) SaveCourse(ctx context.Context, course *Course) error {
	prereqJSON, err := json.Marshal(course.Prerequisites)
	if err != nil {
		return fmt.Errorf("failed to marshal prerequisites: %w", err)
	}

	query := `
		INSERT INTO courses (id, title, category, level, duration, description, prerequisites, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			level = excluded.level,
			duration = excluded.duration,
			description = excluded.description,
			prerequisites = excluded.prerequisites,
			cached_at = excluded.cached_at
	`
	_, err = s.conn.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Category,
		course.Level,
		course.Duration,
		course.Description,
		string(prereqJSON),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

// SaveCoursesBatch inserts or updates multiple course records in a single
// transaction to reduce lock contention during seeding
func (s *Store) SaveCoursesBatch(ctx context.Context, records []*Course) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO courses (id, title, category, level, duration, description, prerequisites, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			level = excluded.level,
			duration = excluded.duration,
			description = excluded.description,
			prerequisites = excluded.prerequisites,
			cached_at = excluded.cached_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	cachedAt := time.Now().Unix()
	for _, course := range records {
		prereqJSON, err := json.Marshal(course.Prerequisites)
		if err != nil {
			return fmt.Errorf("failed to marshal prerequisites for course %s: %w", course.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			course.ID,
			course.Title,
			course.Category,
			course.Level,
			course.Duration,
			course.Description,
			string(prereqJSON),
			cachedAt,
		); err != nil {
			return fmt.Errorf("failed to save course %s: %w", course.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by id.
// Returns ErrCourseNotFound when no record exists.
func (s *Store) GetCourseByID(ctx context.Context, id string) (*Course, error) {
	query := `SELECT id, title, category, level, duration, description, prerequisites, cached_at FROM courses WHERE id = ?`

	course, err := scanCourse(s.conn.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domerrors.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}
	return course, nil
}

// SearchByKeyword searches courses by partial match on title, category or
// description
func (s *Store) SearchByKeyword(ctx context.Context, keyword string) ([]Course, error) {
	if keyword == "" {
		return nil, nil
	}

	query := `
		SELECT id, title, category, level, duration, description, prerequisites, cached_at
		FROM courses
		WHERE title LIKE ? OR category LIKE ? OR description LIKE ?
		ORDER BY title
		LIMIT ?
	`
	pattern := "%" + keyword + "%"
	rows, err := s.conn.QueryContext(ctx, query, pattern, pattern, pattern, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCourses(rows)
}

// ListAll returns every course in the catalog ordered by title
func (s *Store) ListAll(ctx context.Context) ([]Course, error) {
	query := `SELECT id, title, category, level, duration, description, prerequisites, cached_at FROM courses ORDER BY title`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCourses(rows)
}

// Count returns the number of courses in the catalog
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*Course, error) {
	var course Course
	var prereqJSON string
	var duration, description sql.NullString

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Category,
		&course.Level,
		&duration,
		&description,
		&prereqJSON,
		&course.CachedAt,
	)
	if err != nil {
		return nil, err
	}

	course.Duration = duration.String
	course.Description = description.String
	if err := json.Unmarshal([]byte(prereqJSON), &course.Prerequisites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prerequisites: %w", err)
	}
	return &course, nil
}

func scanCourses(rows *sql.Rows) ([]Course, error) {
	var result []Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		result = append(result, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return result, nil
}
