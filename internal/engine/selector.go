package engine

import (
	"strings"

	"github.com/learnhub/course-assistant-go/internal/stringutil"
	"github.com/learnhub/course-assistant-go/internal/template"
)

// ResponseSelector resolves a classification to a filled reply string. The
// variant index is messageCount mod the number of variants for the key, so
// consecutive messages in one conversation cycle through all phrasings
// before repeating. No randomness and no stored history of prior replies.
type ResponseSelector struct {
	catalog *ResponseCatalog
}

// NewResponseSelector creates a selector over the given catalog.
func NewResponseSelector(catalog *ResponseCatalog) *ResponseSelector {
	return &ResponseSelector{catalog: catalog}
}

// Respond picks and fills the reply for a classification. messageCount is
// the conversation length as it stood before this message was handled.
// Respond is total: an unknown key resolves through the fallback entry.
func (s *ResponseSelector) Respond(cls Classification, ctx *ConversationContext, messageCount int) string {
	category, subtype := s.catalogKey(cls, ctx)
	variants, ok := s.catalog.Variants(category, subtype)
	if !ok {
		variants, _ = s.catalog.Variants("fallback", "default")
	}
	tmpl := variants[messageCount%len(variants)]
	return template.Render(tmpl, s.placeholderValues(cls, ctx))
}

// catalogKey maps a classification to its (category, subtype) catalog key.
func (s *ResponseSelector) catalogKey(cls Classification, ctx *ConversationContext) (string, string) {
	switch cls.Type {
	case QuestionOutOfScope:
		return "scope", "out-of-scope"
	case QuestionCourseReferenceMissing:
		return "missing-context", "course-reference"
	case QuestionGuidanceMissingInterest:
		if cls.GuidanceKey == "interest-placeholder" {
			return "missing-context", "interest-placeholder"
		}
		return "missing-context", "interest"
	case QuestionInterestStated:
		return "interest", "stated"
	case QuestionDecisionRelated:
		return "decision", "default"
	case QuestionComparison:
		if ctx.HasSelectedCourse() {
			return "comparison", "with-course"
		}
		return "comparison", "without-course"
	case QuestionCourseSuitability:
		return "course-specific", "suitability-" + levelBucket(ctx.SelectedCourse)
	case QuestionCoursePrerequisites:
		if ctx.HasSelectedCourse() && len(ctx.SelectedCourse.Prerequisites) == 0 {
			return "course-specific", "prerequisites-none"
		}
		return "course-specific", "prerequisites"
	case QuestionCourseNextSteps:
		return "course-specific", "next-steps"
	case QuestionCourseDuration:
		return "course-specific", "duration"
	case QuestionCourseContent:
		return "course-specific", "content"
	}
	if cls.GuidanceKey != "" {
		return "guidance", cls.GuidanceKey
	}
	return "fallback", "default"
}

// levelBucket folds a course's free-text difficulty level into the three
// suitability phrasings. Unknown levels read as intermediate.
func levelBucket(course *CourseSummary) string {
	if course == nil {
		return "intermediate"
	}
	level := stringutil.Normalize(course.Level)
	switch {
	case strings.Contains(level, "begin") || strings.Contains(level, "intro"):
		return "beginner"
	case strings.Contains(level, "adv") || strings.Contains(level, "expert"):
		return "advanced"
	default:
		return "intermediate"
	}
}

func (s *ResponseSelector) placeholderValues(cls Classification, ctx *ConversationContext) template.Values {
	values := template.Values{}
	if cls.Interest != "" {
		values["interest"] = cls.Interest
	} else if ctx != nil && ctx.StatedInterest != "" {
		values["interest"] = ctx.StatedInterest
	}
	if ctx.HasSelectedCourse() {
		course := ctx.SelectedCourse
		values["courseName"] = course.Title
		values["category"] = course.Category
		values["level"] = course.Level
		values["duration"] = course.Duration
		values["description"] = course.Description
		values["prerequisites"] = strings.Join(course.Prerequisites, ", ")
	}
	return values
}
