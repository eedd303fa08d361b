package engine

import (
	"strings"

	"github.com/learnhub/course-assistant-go/internal/stringutil"
)

// IntentClassifier maps a message plus conversation context to exactly one
// QuestionType using a Rule-Action Table: an ordered list of (predicate →
// tag) rules evaluated by a single first-match-wins dispatcher. The rule
// order is load-bearing: context-missing rules run before content rules so
// the assistant asks a clarifying question instead of guessing.
type IntentClassifier struct {
	extractor *InterestExtractor

	// rules are evaluated in slice order; the first rule whose predicate
	// matches produces the classification.
	rules []classificationRule
}

// classifiedMessage carries the precomputed views of one message that rule
// predicates read. Built once per Classify call.
type classifiedMessage struct {
	Raw           string
	Norm          string
	Tokens        []string
	Ctx           *ConversationContext
	Interest      string
	InterestFound bool
}

type classificationRule struct {
	name      string
	predicate func(m *classifiedMessage) bool
	action    func(m *classifiedMessage) Classification
}

// NewIntentClassifier builds the classifier with its fixed rule table.
func NewIntentClassifier(extractor *InterestExtractor) *IntentClassifier {
	c := &IntentClassifier{extractor: extractor}
	c.rules = []classificationRule{
		{
			name:      "course-reference-missing",
			predicate: matchCourseReferenceMissing,
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCourseReferenceMissing, Rule: "course-reference-missing"}
			},
		},
		{
			name:      "interest-placeholder",
			predicate: matchInterestPlaceholder,
			action: func(m *classifiedMessage) Classification {
				return Classification{
					Type:        QuestionGuidanceMissingInterest,
					GuidanceKey: "interest-placeholder",
					Rule:        "interest-placeholder",
				}
			},
		},
		{
			name: "interest-stated",
			predicate: func(m *classifiedMessage) bool {
				return m.InterestFound && !m.Ctx.HasSelectedCourse()
			},
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionInterestStated, Interest: m.Interest, Rule: "interest-stated"}
			},
		},
		{
			name:      "general-guidance-missing-interest",
			predicate: matchGeneralGuidance,
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionGuidanceMissingInterest, Rule: "general-guidance-missing-interest"}
			},
		},
		{
			name:      "decision-related",
			predicate: withCourse(matchDecision),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionDecisionRelated, Rule: "decision-related"}
			},
		},
		{
			name:      "comparison",
			predicate: withCourse(matchComparison),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionComparison, Rule: "comparison"}
			},
		},
		{
			name:      "course-suitability",
			predicate: withCourse(matchSuitability),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCourseSuitability, Rule: "course-suitability"}
			},
		},
		{
			name:      "course-prerequisites",
			predicate: withCourse(matchPrerequisites),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCoursePrerequisites, Rule: "course-prerequisites"}
			},
		},
		{
			name:      "course-next-steps",
			predicate: withCourse(matchNextSteps),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCourseNextSteps, Rule: "course-next-steps"}
			},
		},
		{
			name:      "course-duration",
			predicate: withCourse(matchDuration),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCourseDuration, Rule: "course-duration"}
			},
		},
		{
			name:      "course-content",
			predicate: withCourse(matchContent),
			action: func(m *classifiedMessage) Classification {
				return Classification{Type: QuestionCourseContent, Rule: "course-content"}
			},
		},
		{
			name: "guidance-keyword",
			predicate: func(m *classifiedMessage) bool {
				return guidanceKeyFor(m) != ""
			},
			action: func(m *classifiedMessage) Classification {
				return Classification{
					Type:        QuestionFallback,
					GuidanceKey: guidanceKeyFor(m),
					Rule:        "guidance-keyword",
				}
			},
		},
	}
	return c
}

// Classify produces exactly one QuestionType per message. Classification is
// total: when no rule matches, the result is the fallback type.
func (c *IntentClassifier) Classify(text string, ctx *ConversationContext) Classification {
	m := &classifiedMessage{
		Raw:    text,
		Norm:   stringutil.Normalize(text),
		Tokens: stringutil.Tokenize(text),
		Ctx:    ctx,
	}
	m.Interest, m.InterestFound = c.extractor.Extract(text)

	for _, rule := range c.rules {
		if rule.predicate(m) {
			return rule.action(m)
		}
	}
	return Classification{Type: QuestionFallback, Rule: "fallback"}
}

// withCourse wraps a predicate so it only fires when a course is selected.
// Course-specific tags are never produced without a bound course.
func withCourse(p func(m *classifiedMessage) bool) func(m *classifiedMessage) bool {
	return func(m *classifiedMessage) bool {
		return m.Ctx.HasSelectedCourse() && p(m)
	}
}

// Phrase groups below back the rule predicates. All matching runs over the
// normalized (lowercased, whitespace-collapsed) message text.

var courseReferencePhrases = []string{
	"this course", "that course", "the course",
}

var courseEvaluativePhrases = []string{
	"good for me", "right for me", "suitable for me", "worth it",
	"should i take", "should i enroll", "should i do",
}

var decisionPhrases = []string{
	"should i", "worth it", "worth taking", "recommend", "is it good",
	"good idea", "take it or not",
}

var comparisonPhrases = []string{
	"compare", "comparison", " vs ", " vs.", "versus", "difference between",
	"better than", "or should i",
}

var suitabilityPhrases = []string{
	"suitable for me", "good for me", "right for me", "fit for me",
	"for beginners", "am i ready", "too hard for me", "too advanced",
}

var prerequisitePhrases = []string{
	"prerequisite", "prerequisites", "requirement", "requirements",
	"need to know before", "before taking", "before starting",
}

var nextStepPhrases = []string{
	"what next", "what's next", "whats next", "after this", "next step",
	"next steps", "after finishing", "after completing", "follow up course",
}

var durationPhrases = []string{
	"how long", "duration", "hours", "weeks", "how much time",
	"time commitment",
}

var contentPhrases = []string{
	"what will i learn", "what do i learn", "topics covered", "curriculum",
	"syllabus", "content", "what does it cover", "what is covered",
	"what's included", "whats included",
}

var generalGuidancePhrases = []string{
	"what should i learn", "where do i start", "where should i start",
	"what course should i", "which course should i", "help me choose",
	"not sure what", "don't know what", "dont know what",
	"recommend me something", "suggest a course", "suggest me",
}

// guidanceKeywordMap maps generic in-scope phrasings to a static guidance
// response key. Checked in slice order so more specific phrases win.
var guidanceKeywordRules = []struct {
	key     string
	phrases []string
}{
	{"filter-help", []string{"filter", "search for courses", "find courses", "browse courses", "how do i find"}},
	{"beginner", []string{"beginner", "new to this", "just starting", "complete novice", "no experience"}},
	{"comparison", []string{"compare", "difference between", "versus", " vs "}},
	{"roadmap", []string{"roadmap", "learning path", "career path", "path to", "become a"}},
	{"difficulty", []string{"difficulty", "difficulty level", "levels mean", "how hard", "advanced mean"}},
}

func matchCourseReferenceMissing(m *classifiedMessage) bool {
	if m.Ctx.HasSelectedCourse() {
		return false
	}
	return containsAnyPhrase(m, courseReferencePhrases) || containsAnyPhrase(m, courseEvaluativePhrases)
}

func matchInterestPlaceholder(m *classifiedMessage) bool {
	if m.Ctx.HasSelectedCourse() {
		return false
	}
	for _, ph := range interestPlaceholders {
		if containsPhrase(m, ph) {
			return true
		}
	}
	return false
}

func matchGeneralGuidance(m *classifiedMessage) bool {
	if m.Ctx.HasSelectedCourse() || m.InterestFound {
		return false
	}
	return containsAnyPhrase(m, generalGuidancePhrases)
}

func matchDecision(m *classifiedMessage) bool      { return containsAnyPhrase(m, decisionPhrases) }
func matchComparison(m *classifiedMessage) bool    { return containsAnyPhrase(m, comparisonPhrases) }
func matchSuitability(m *classifiedMessage) bool   { return containsAnyPhrase(m, suitabilityPhrases) }
func matchPrerequisites(m *classifiedMessage) bool { return containsAnyPhrase(m, prerequisitePhrases) }
func matchNextSteps(m *classifiedMessage) bool     { return containsAnyPhrase(m, nextStepPhrases) }
func matchDuration(m *classifiedMessage) bool      { return containsAnyPhrase(m, durationPhrases) }
func matchContent(m *classifiedMessage) bool       { return containsAnyPhrase(m, contentPhrases) }

func guidanceKeyFor(m *classifiedMessage) string {
	if isGreeting(m.Norm) {
		return "greeting"
	}
	for _, rule := range guidanceKeywordRules {
		if containsAnyPhrase(m, rule.phrases) {
			return rule.key
		}
	}
	return ""
}

func containsAnyPhrase(m *classifiedMessage, phrases []string) bool {
	for _, ph := range phrases {
		if containsPhrase(m, ph) {
			return true
		}
	}
	return false
}

// containsPhrase matches single words against the token list and multi-word
// phrases as substrings of the normalized text, same as the scope filter.
func containsPhrase(m *classifiedMessage, phrase string) bool {
	if phrase == "" {
		return false
	}
	if strings.ContainsRune(phrase, ' ') {
		// Phrases with leading/trailing spaces (like " vs ") are matched
		// against the text padded with spaces so boundary occurrences hit.
		return strings.Contains(" "+m.Norm+" ", phrase)
	}
	for _, tok := range m.Tokens {
		if tok == phrase {
			return true
		}
	}
	return false
}
