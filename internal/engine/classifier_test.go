package engine

import "testing"

func testCourse() *CourseSummary {
	return &CourseSummary{
		Title:         "Web Development Bootcamp",
		Category:      "Programming",
		Level:         "Beginner",
		Duration:      "12 weeks",
		Description:   "Build modern websites with HTML, CSS and JavaScript.",
		Prerequisites: []string{"Basic HTML", "Basic CSS"},
	}
}

func newTestClassifier() *IntentClassifier {
	return NewIntentClassifier(NewInterestExtractor())
}

func TestClassifyWithoutCourse(t *testing.T) {
	classifier := newTestClassifier()
	ctx := &ConversationContext{PageMode: PageModeGeneral}

	tests := []struct {
		name         string
		text         string
		wantType     QuestionType
		wantInterest string
	}{
		{"This course reference", "Is this course good for me?", QuestionCourseReferenceMissing, ""},
		{"That course reference", "What does that course cover?", QuestionCourseReferenceMissing, ""},
		{"Evaluative without course", "Should I enroll?", QuestionCourseReferenceMissing, ""},
		{"Worth it without course", "Is it worth it?", QuestionCourseReferenceMissing, ""},
		{"Interest placeholder", "Show me courses for my interest", QuestionGuidanceMissingInterest, ""},
		{"Interest stated", "I'm interested in web development", QuestionInterestStated, "web development"},
		{"Interest via learn", "I want to learn Python", QuestionInterestStated, "Python"},
		{"Generic guidance", "What should I learn?", QuestionGuidanceMissingInterest, ""},
		{"Where to start", "Where do I start?", QuestionGuidanceMissingInterest, ""},
		{"Unclassifiable", "purple monkey dishwasher", QuestionFallback, ""},
		{"Empty", "", QuestionFallback, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text, ctx)
			if got.Type != tt.wantType {
				t.Errorf("Classify(%q).Type = %q, want %q", tt.text, got.Type, tt.wantType)
			}
			if got.Interest != tt.wantInterest {
				t.Errorf("Classify(%q).Interest = %q, want %q", tt.text, got.Interest, tt.wantInterest)
			}
		})
	}
}

func TestClassifyWithCourse(t *testing.T) {
	classifier := newTestClassifier()
	ctx := &ConversationContext{PageMode: PageModeCourseDetail, SelectedCourse: testCourse()}

	tests := []struct {
		name     string
		text     string
		wantType QuestionType
	}{
		{"Decision should I", "Should I take this course?", QuestionDecisionRelated},
		{"Decision worth it", "Is it worth it?", QuestionDecisionRelated},
		{"Comparison", "How does this compare to other courses?", QuestionComparison},
		{"Comparison vs", "This course vs the data science one?", QuestionComparison},
		{"Suitability", "Is this suitable for me?", QuestionCourseSuitability},
		{"Prerequisites", "What are the prerequisites?", QuestionCoursePrerequisites},
		{"Next steps", "What next after this course?", QuestionCourseNextSteps},
		{"Duration", "How long does it take?", QuestionCourseDuration},
		{"Content", "What will I learn in this course?", QuestionCourseContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text, ctx)
			if got.Type != tt.wantType {
				t.Errorf("Classify(%q).Type = %q, want %q", tt.text, got.Type, tt.wantType)
			}
		})
	}
}

// Course-evaluative questions without a bound course always elicit a course
// reference, never a course-specific answer.
func TestClassifyCourseSpecificRequiresCourse(t *testing.T) {
	classifier := newTestClassifier()
	noCourse := &ConversationContext{PageMode: PageModeGeneral}

	evaluative := []string{
		"Is this course good for me?",
		"Should I take this course?",
		"Is that course worth it?",
	}

	for _, text := range evaluative {
		got := classifier.Classify(text, noCourse)
		if got.Type != QuestionCourseReferenceMissing {
			t.Errorf("Classify(%q) without course = %q, want %q", text, got.Type, QuestionCourseReferenceMissing)
		}
		if got.Type.IsCourseSpecific() {
			t.Errorf("Classify(%q) without course yielded course-specific tag %q", text, got.Type)
		}
	}
}

// Decision and comparison language outranks course content language when a
// course is selected.
func TestClassifyRuleOrder(t *testing.T) {
	classifier := newTestClassifier()
	ctx := &ConversationContext{SelectedCourse: testCourse()}

	// "should i" (decision) appears alongside "how long" (duration);
	// decision wins because its rule runs first.
	got := classifier.Classify("Should I take it, and how long does it take?", ctx)
	if got.Type != QuestionDecisionRelated {
		t.Errorf("Classify mixed decision/duration = %q, want %q", got.Type, QuestionDecisionRelated)
	}
}

func TestClassifyGuidanceKeywords(t *testing.T) {
	classifier := newTestClassifier()
	ctx := &ConversationContext{PageMode: PageModeCatalog}

	tests := []struct {
		name    string
		text    string
		wantKey string
	}{
		{"Greeting", "hello", "greeting"},
		{"Filter help", "How do I filter the catalog?", "filter-help"},
		{"Beginner", "I'm a complete beginner", "beginner"},
		{"Comparison no course", "What's the difference between the levels?", "comparison"},
		{"Roadmap", "Can you give me a learning roadmap?", "roadmap"},
		{"Difficulty", "What do the difficulty levels mean?", "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.text, ctx)
			if got.GuidanceKey != tt.wantKey {
				t.Errorf("Classify(%q).GuidanceKey = %q, want %q", tt.text, got.GuidanceKey, tt.wantKey)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	classifier := newTestClassifier()

	inputs := []string{"", "   ", "???", "zzz", "\n\t"}
	for _, text := range inputs {
		got := classifier.Classify(text, &ConversationContext{})
		if got.Type == "" {
			t.Errorf("Classify(%q) produced empty type", text)
		}
	}
}
