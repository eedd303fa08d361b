package engine

import (
	"regexp"
	"strings"

	"github.com/learnhub/course-assistant-go/internal/stringutil"
)

// InterestExtractor pulls a stated learning interest out of free text, e.g.
// "I'm interested in web development" yields "web development".
type InterestExtractor struct {
	patterns []*regexp.Regexp
}

// Interest patterns are tried in order and the first valid capture wins.
// Earlier patterns are the more explicit phrasings.
var interestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\binterested in\s+(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\bwant to learn\s+(?:about\s+)?(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\bwould like to learn\s+(?:about\s+)?(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\blooking for\s+(?:a\s+)?(?:course|courses|class|classes)\s+(?:on|about|in|for)\s+(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\b(?:course|courses|class|classes)\s+(?:on|about|for)\s+(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\btell me about\s+(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\blearn more about\s+(.+?)(?:[.!?,]|$)`),
	regexp.MustCompile(`(?i)\bi like\s+(.+?)(?:[.!?,]|$)`),
}

// interestStopWords are captures that carry no topic information. A capture
// equal to one of these is rejected and matching moves to the next pattern.
var interestStopWords = map[string]struct{}{
	"it": {}, "this": {}, "that": {}, "them": {}, "these": {}, "those": {},
	"there": {}, "here": {}, "something": {}, "anything": {}, "stuff": {},
	"things": {}, "one": {}, "more": {}, "some": {},
}

// interestPlaceholders are phrases users echo back from the assistant's own
// prompts; they are not real interests.
var interestPlaceholders = []string{
	"my interest", "my interests", "this interest", "that interest",
	"your interest", "an interest",
}

// NewInterestExtractor creates an extractor with the built-in phrasing
// patterns.
func NewInterestExtractor() *InterestExtractor {
	return &InterestExtractor{patterns: interestPatterns}
}

// Extract returns the stated interest and true when one is found. The topic
// keeps the user's casing but is whitespace-normalized and stripped of a
// leading article. A capture failing validation does not stop the search;
// later patterns may still match.
func (e *InterestExtractor) Extract(text string) (string, bool) {
	cleaned := strings.Join(strings.Fields(text), " ")
	for _, p := range e.patterns {
		m := p.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		topic := normalizeInterest(m[1])
		if validInterest(topic) {
			return topic, true
		}
	}
	return "", false
}

func normalizeInterest(raw string) string {
	topic := strings.TrimSpace(strings.Join(strings.Fields(raw), " "))
	// Leading articles add nothing to a topic.
	for _, prefix := range []string{"a ", "an ", "the "} {
		if len(topic) > len(prefix) && strings.EqualFold(topic[:len(prefix)], prefix) {
			topic = strings.TrimSpace(topic[len(prefix):])
			break
		}
	}
	return topic
}

func validInterest(topic string) bool {
	if len(topic) < 2 {
		return false
	}
	if !stringutil.HasAlpha(topic) {
		return false
	}
	folded := strings.ToLower(topic)
	if _, ok := interestStopWords[folded]; ok {
		return false
	}
	for _, ph := range interestPlaceholders {
		if folded == ph {
			return false
		}
	}
	return true
}

// IsPlaceholder reports whether text as a whole is one of the placeholder
// phrases users echo back literally, such as "my interest".
func (e *InterestExtractor) IsPlaceholder(text string) bool {
	norm := stringutil.Normalize(text)
	for _, ph := range interestPlaceholders {
		if strings.Contains(norm, ph) {
			return true
		}
	}
	return false
}
