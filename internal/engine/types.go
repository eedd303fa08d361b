// Package engine implements the rule-based conversational guidance engine of
// the course assistant widget. Given free-text user input and a small amount
// of conversational context it decides whether the question is in scope,
// classifies the intent, detects missing context that must be elicited before
// answering, and fills a non-repeating response template.
package engine

// PageMode identifies the host page the assistant widget is embedded in.
type PageMode string

// Page modes.
const (
	PageModeGeneral      PageMode = "general"
	PageModeCatalog      PageMode = "course-catalog"
	PageModeCourseDetail PageMode = "course-detail"
)

// CourseSummary is a read-only snapshot of the course the host page attached
// to the conversation. It is supplied by the course catalog collaborator and
// never mutated by the engine.
type CourseSummary struct {
	// ID is the backend course id. When non-empty, course questions are
	// delegated to the hosted AI chat service instead of the local catalog.
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Duration      string   `json:"duration"`
	Description   string   `json:"description"`
	Prerequisites []string `json:"prerequisites"`
}

// ConversationContext holds the per-conversation state the engine operates
// on. It is created when the assistant widget opens, owned by exactly one
// conversation, and never shared across sessions.
type ConversationContext struct {
	PageMode       PageMode
	SelectedCourse *CourseSummary
	MessageCount   int    // incremented once per handled message, after the reply is computed
	StatedInterest string // last topic of interest the user stated, if any
}

// HasSelectedCourse reports whether a course is currently attached to the
// conversation.
func (c *ConversationContext) HasSelectedCourse() bool {
	return c != nil && c.SelectedCourse != nil
}

// QuestionType is the closed tag set produced by classification. Exactly one
// tag is produced per message; fallback guarantees totality.
type QuestionType string

// Question types.
const (
	QuestionCourseReferenceMissing  QuestionType = "course-reference-missing"
	QuestionGuidanceMissingInterest QuestionType = "general-guidance-missing-interest"
	QuestionInterestStated          QuestionType = "interest-stated"
	QuestionDecisionRelated         QuestionType = "decision-related"
	QuestionComparison              QuestionType = "comparison"
	QuestionCourseSuitability       QuestionType = "course-specific:suitability"
	QuestionCoursePrerequisites     QuestionType = "course-specific:prerequisites"
	QuestionCourseNextSteps         QuestionType = "course-specific:next-steps"
	QuestionCourseDuration          QuestionType = "course-specific:duration"
	QuestionCourseContent           QuestionType = "course-specific:content"
	QuestionOutOfScope              QuestionType = "out-of-scope"
	QuestionFallback                QuestionType = "fallback"
)

// IsCourseSpecific reports whether the tag requires a selected course.
func (q QuestionType) IsCourseSpecific() bool {
	switch q {
	case QuestionCourseSuitability, QuestionCoursePrerequisites,
		QuestionCourseNextSteps, QuestionCourseDuration, QuestionCourseContent:
		return true
	}
	return false
}

// Classification is the full result of intent classification: the question
// type plus the side information needed to resolve a response template.
type Classification struct {
	Type QuestionType

	// Interest carries the extracted topic when Type is interest-stated.
	Interest string

	// GuidanceKey names the static guidance response when a generic in-scope
	// guidance keyword matched (greeting, filter-help, beginner, comparison,
	// roadmap, difficulty). Empty otherwise.
	GuidanceKey string

	// Rule is the name of the classification rule that fired, for logging.
	Rule string
}

// Result is the orchestrator's answer for one incoming message.
type Result struct {
	// Reply is the locally resolved response. Empty when DelegateToAI is set.
	Reply string

	// Type is the classified question type for the message.
	Type QuestionType

	// Interest is the topic extracted from the message, if any.
	Interest string

	// DelegateToAI instructs the caller to obtain the reply from the hosted
	// AI chat service using CourseID instead of using Reply.
	DelegateToAI bool

	// CourseID is the backend course id to delegate with.
	CourseID string
}
