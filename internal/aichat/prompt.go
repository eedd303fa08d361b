package aichat

import (
	"fmt"
	"strings"

	"github.com/learnhub/course-assistant-go/internal/engine"
)

// chatSystemPrompt is the instruction every provider receives. The course
// facts are appended per request so the model answers about the bound course
// only.
const chatSystemPrompt = `You are a friendly course assistant for an online learning platform.
Answer the user's question about the course described below.
Be concise, factual, and encouraging. If the question cannot be answered
from the course information, say so and suggest what the user could ask
instead. Never invent prices, dates, or policies.`

// buildSystemInstruction renders the full system prompt for a request.
func buildSystemInstruction(course *engine.CourseSummary) string {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	b.WriteString("\n\nCourse information:\n")

	if course == nil {
		b.WriteString("(no course details available)\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Title: %s\n", course.Title)
	if course.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", course.Category)
	}
	if course.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", course.Level)
	}
	if course.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", course.Duration)
	}
	if course.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", course.Description)
	}
	if len(course.Prerequisites) > 0 {
		fmt.Fprintf(&b, "Prerequisites: %s\n", strings.Join(course.Prerequisites, ", "))
	} else {
		b.WriteString("Prerequisites: none\n")
	}
	return b.String()
}
