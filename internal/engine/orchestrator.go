package engine

import (
	"github.com/learnhub/course-assistant-go/internal/logger"
)

// DialogueOrchestrator sequences the engine components for each incoming
// message: scope filtering, interest extraction, classification, then either
// delegation to the hosted AI chat service or a local catalog response.
//
// The orchestrator is synchronous and owns no state of its own; all
// per-conversation state lives in the ConversationContext the caller passes
// in, so independent conversations never interfere.
type DialogueOrchestrator struct {
	scope      *ScopeFilter
	extractor  *InterestExtractor
	classifier *IntentClassifier
	selector   *ResponseSelector
	logger     *logger.Logger
}

// NewDialogueOrchestrator wires the engine components together.
func NewDialogueOrchestrator(log *logger.Logger) *DialogueOrchestrator {
	extractor := NewInterestExtractor()
	return &DialogueOrchestrator{
		scope:      NewScopeFilter(),
		extractor:  extractor,
		classifier: NewIntentClassifier(extractor),
		selector:   NewResponseSelector(NewResponseCatalog()),
		logger:     log.WithModule("engine"),
	}
}

// HandleMessage processes one user message against the conversation context
// and returns the engine's result. ctx.MessageCount is incremented exactly
// once, after the reply is computed, so the returned reply uses the count as
// it stood before this message.
func (o *DialogueOrchestrator) HandleMessage(text string, ctx *ConversationContext) Result {
	result := o.handle(text, ctx)

	if result.Interest != "" {
		ctx.StatedInterest = result.Interest
	}
	ctx.MessageCount++

	o.logger.WithFields(map[string]any{
		"question_type": string(result.Type),
		"delegated":     result.DelegateToAI,
		"message_count": ctx.MessageCount,
	}).Debug("message handled")

	return result
}

func (o *DialogueOrchestrator) handle(text string, ctx *ConversationContext) Result {
	// Scope rejection is final: no classification runs for out-of-scope text.
	if o.scope.IsOutOfScope(text) {
		return Result{
			Reply: o.selector.Respond(Classification{Type: QuestionOutOfScope}, ctx, ctx.MessageCount),
			Type:  QuestionOutOfScope,
		}
	}

	cls := o.classifier.Classify(text, ctx)

	// A concrete backend course id means the hosted AI service answers
	// better than the local catalog, whatever the question type. Courses
	// attached as page snapshots without an id stay on the local path.
	if ctx.HasSelectedCourse() && ctx.SelectedCourse.ID != "" {
		return Result{
			Type:         cls.Type,
			Interest:     cls.Interest,
			DelegateToAI: true,
			CourseID:     ctx.SelectedCourse.ID,
		}
	}

	return Result{
		Reply:    o.selector.Respond(cls, ctx, ctx.MessageCount),
		Type:     cls.Type,
		Interest: cls.Interest,
	}
}
