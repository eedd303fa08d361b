// Package recommend provides course suggestions for a stated learning
// interest using BM25 keyword retrieval over the course catalog.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/iwilltry42/bm25-go/bm25"

	"github.com/learnhub/course-assistant-go/internal/courses"
	"github.com/learnhub/course-assistant-go/internal/logger"
	"github.com/learnhub/course-assistant-go/internal/stringutil"
)

// Suggestion is a ranked course match for an interest query.
// Confidence is derived from BM25 rank position, not semantic similarity.
type Suggestion struct {
	CourseID   string
	Title      string
	Category   string
	Level      string
	Confidence float32 // Rank-based confidence (0-1), higher = more relevant
}

// Index provides keyword-based course retrieval using the BM25 algorithm.
type Index struct {
	bm25Okapi   *bm25.BM25Okapi
	docIDToMeta []docMeta
	logger      *logger.Logger
	mu          sync.RWMutex
	initialized bool
}

type docMeta struct {
	CourseID string
	Title    string
	Category string
	Level    string
}

// New creates an empty recommendation index.
func New(log *logger.Logger) *Index {
	return &Index{logger: log.WithModule("recommend")}
}

// Initialize builds the BM25 index from catalog records. One document is
// indexed per course, combining its title, category, level and description.
// Calling Initialize again replaces the whole index, since BM25 IDF values
// depend on the full corpus.
func (idx *Index) Initialize(records []courses.Course) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.bm25Okapi = nil
	idx.docIDToMeta = nil

	var corpus []string
	for _, course := range records {
		content := strings.TrimSpace(strings.Join([]string{
			course.Title,
			course.Category,
			course.Level,
			course.Description,
			strings.Join(course.Prerequisites, " "),
		}, " "))
		if content == "" {
			continue
		}
		corpus = append(corpus, content)
		idx.docIDToMeta = append(idx.docIDToMeta, docMeta{
			CourseID: course.ID,
			Title:    course.Title,
			Category: course.Category,
			Level:    course.Level,
		})
	}

	if len(corpus) == 0 {
		idx.initialized = true
		return nil
	}

	// k1=1.5, b=0.75 are standard BM25 parameters
	bm25Okapi, err := bm25.NewBM25Okapi(corpus, tokenize, 1.5, 0.75, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}
	idx.bm25Okapi = bm25Okapi
	idx.initialized = true

	idx.logger.WithField("docs", len(corpus)).Info("recommendation index initialized")
	return nil
}

// Search returns up to topN course suggestions for an interest query,
// sorted by BM25 score descending. An uninitialized or empty index returns
// no suggestions.
func (idx *Index) Search(query string, topN int) ([]Suggestion, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.initialized || idx.bm25Okapi == nil {
		return nil, nil
	}
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	scores, err := idx.bm25Okapi.GetScores(tokens)
	if err != nil {
		return nil, fmt.Errorf("BM25 scoring failed: %w", err)
	}

	type scoredDoc struct {
		docID int
		score float64
	}
	var scored []scoredDoc
	for docID, score := range scores {
		if score > 0 {
			scored = append(scored, scoredDoc{docID: docID, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}

	results := make([]Suggestion, 0, len(scored))
	for rank, sd := range scored {
		meta := idx.docIDToMeta[sd.docID]
		results = append(results, Suggestion{
			CourseID:   meta.CourseID,
			Title:      meta.Title,
			Category:   meta.Category,
			Level:      meta.Level,
			Confidence: computeRankConfidence(rank + 1),
		})
	}
	return results, nil
}

// computeRankConfidence calculates confidence score from BM25 rank.
// BM25 scores are unbounded and query-dependent, so rank serves as a proxy.
//
// Formula: 1 / (1 + 0.05 * rank)
//   - rank 1 → 0.95
//   - rank 5 → 0.80
//   - rank 10 → 0.67
func computeRankConfidence(rank int) float32 {
	if rank <= 0 {
		return 0
	}
	return float32(1.0 / (1.0 + 0.05*float64(rank)))
}

// tokenize lowercases and splits on whitespace, trimming punctuation.
// The catalog is English-only, so whitespace splitting is sufficient.
func tokenize(s string) []string {
	return stringutil.Tokenize(s)
}
