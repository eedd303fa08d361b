package engine

import (
	"strings"

	"github.com/learnhub/course-assistant-go/internal/stringutil"
)

// ScopeFilter decides whether a message is answerable within the assistant's
// declared domain (course discovery and learning) before any other
// processing runs.
//
// Check order (1=strongest signal): in-scope vocabulary override → explicit
// out-of-scope vocabulary → greeting allowance → length heuristic → default
// in-scope. The order is load-bearing: later rules are deliberately weaker
// signals than earlier ones, so it must not be rearranged.
type ScopeFilter struct{}

// NewScopeFilter creates a scope filter with the curated vocabularies.
func NewScopeFilter() *ScopeFilter {
	return &ScopeFilter{}
}

// maxTokensWithoutKeyword is the length heuristic threshold: a longer message
// matching neither vocabulary is treated as out of scope, since long
// topic-free messages are unlikely to be legitimate course questions.
const maxTokensWithoutKeyword = 5

// inScopeVocabulary are words that immediately mark a message as on-topic.
// A single hit wins over everything else in the text.
var inScopeVocabulary = []string{
	"course", "courses", "class", "classes", "lesson", "lessons",
	"learn", "learning", "study", "studying", "education",
	"interest", "interested", "interests",
	"instructor", "teacher", "tutor",
	"prerequisite", "prerequisites", "requirement", "requirements",
	"difficulty", "level", "beginner", "intermediate", "advanced",
	"category", "categories", "topic", "topics", "subject",
	"recommend", "recommendation", "suggest",
	"enroll", "enrollment", "register", "signup",
	"curriculum", "syllabus", "certificate", "tutorial",
	"skill", "skills", "career", "roadmap",
}

// outOfScopeVocabulary are words and phrases that mark a message as clearly
// off-topic for a course assistant.
var outOfScopeVocabulary = []string{
	"weather", "forecast", "temperature",
	"news", "headline", "politics", "election",
	"recipe", "cooking", "restaurant", "dinner",
	"movie", "netflix", "song", "music",
	"sports", "football", "basketball",
	"stock", "stocks", "bitcoin", "crypto", "invest", "loan", "mortgage",
	"doctor", "medicine", "symptom", "disease", "diagnosis",
	"lottery", "horoscope", "joke",
	"who is", "what is the capital", "capital of",
}

// greetings are short pleasantries explicitly allowed as in scope to keep
// the assistant polite.
var greetings = []string{
	"hi", "hello", "hey", "yo",
	"thanks", "thank you", "thx",
	"bye", "goodbye", "see you",
	"ok", "okay", "good morning", "good afternoon", "good evening",
}

// IsOutOfScope reports whether text falls outside the assistant's course
// guidance domain.
func (f *ScopeFilter) IsOutOfScope(text string) bool {
	norm := stringutil.Normalize(text)
	tokens := stringutil.Tokenize(text)

	// 1. In-scope vocabulary overrides everything else in the text.
	if matchesVocabulary(norm, tokens, inScopeVocabulary) {
		return false
	}

	// 2. Explicit out-of-scope vocabulary.
	if matchesVocabulary(norm, tokens, outOfScopeVocabulary) {
		return true
	}

	// 3. Greeting allowance: exact short pleasantries stay in scope.
	if isGreeting(norm) {
		return false
	}

	// 4. Length heuristic: long messages with no recognized vocabulary are
	// treated as out of scope.
	if len(tokens) > maxTokensWithoutKeyword {
		return true
	}

	// 5. Default: in scope.
	return false
}

// IsGreeting reports whether the whole message is a short pleasantry.
func (f *ScopeFilter) IsGreeting(text string) bool {
	return isGreeting(stringutil.Normalize(text))
}

func isGreeting(norm string) bool {
	norm = strings.TrimRight(norm, "!.? ")
	for _, g := range greetings {
		if norm == g {
			return true
		}
	}
	return false
}

// matchesVocabulary checks single-word entries against the token list and
// multi-word entries as substrings of the normalized text. Token matching
// avoids false positives like "class" inside "classical".
func matchesVocabulary(norm string, tokens []string, vocabulary []string) bool {
	for _, entry := range vocabulary {
		if strings.Contains(entry, " ") {
			if strings.Contains(norm, entry) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == entry {
				return true
			}
		}
	}
	return false
}
