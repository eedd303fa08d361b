package engine

import "testing"

func TestScopeFilterIsOutOfScope(t *testing.T) {
	filter := NewScopeFilter()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Course keyword", "Tell me about this course", false},
		{"Learn keyword", "I want to learn Python", false},
		{"Prerequisite keyword", "What are the prerequisites?", false},
		{"Weather question", "What's the weather today?", true},
		{"News question", "Any news about the election?", true},
		{"Recipe question", "Give me a recipe for pasta", true},
		{"Trivia who is", "who is the president of france", true},
		{"Trivia capital", "what is the capital of germany", true},
		{"Greeting hi", "hi", false},
		{"Greeting thanks", "Thanks!", false},
		{"Greeting good morning", "good morning", false},
		{"Short topic-free", "help me please", false},
		{"Long topic-free", "can you please do something useful for me right now", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.IsOutOfScope(tt.text)
			if got != tt.want {
				t.Errorf("IsOutOfScope(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// In-scope vocabulary wins over everything else in the same text, including
// out-of-scope keywords and the length heuristic.
func TestScopeFilterInScopeOverride(t *testing.T) {
	filter := NewScopeFilter()

	tests := []struct {
		name string
		text string
	}{
		{"In-scope plus out-of-scope keyword", "Is there a course about weather forecasting?"},
		{"In-scope in long message", "I would really really like to find something new to study one of these days"},
		{"Learn plus finance keyword", "Can I learn about stocks and investing here?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if filter.IsOutOfScope(tt.text) {
				t.Errorf("IsOutOfScope(%q) = true, want false (in-scope override)", tt.text)
			}
		})
	}
}

func TestScopeFilterTokenBoundaries(t *testing.T) {
	filter := NewScopeFilter()

	// "classical" must not match the in-scope word "class"; without any
	// other signal the short message defaults to in scope.
	if filter.IsOutOfScope("classical stuff") {
		t.Error("IsOutOfScope(\"classical stuff\") = true, want false (default in scope)")
	}
}
