// Package aichat provides the hosted AI chat delegation used when a message
// arrives with a concrete backend course bound to the conversation.
//
// Architecture:
// - Gemini: Uses google.golang.org/genai (official SDK)
// - Groq/Cerebras: Uses github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback Strategy (2-layer):
// 1. Model Retry: Same model retried with exponential backoff
// 2. Provider Chain: Next provider in the configured chain
package aichat

import (
	"context"
	"time"

	"github.com/learnhub/course-assistant-go/internal/engine"
)

// Provider represents an AI chat provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderCerebras represents Cerebras's API (OpenAI-compatible, ultra-fast inference).
	ProviderCerebras Provider = "cerebras"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq:     "https://api.groq.com/openai/v1/",
	ProviderCerebras: "https://api.cerebras.ai/v1/",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Request carries one delegated message plus the course it concerns.
type Request struct {
	// Course is the snapshot of the bound course; its fields ground the
	// system prompt so the model answers about the right course.
	Course *engine.CourseSummary

	// Message is the user's question, forwarded verbatim.
	Message string

	// UserID identifies the conversation for provider-side abuse tracking.
	UserID string
}

// Client answers a delegated course question.
// Implementations include Gemini (native) and OpenAI-compatible providers
// (Groq, Cerebras), plus the provider fallback chain.
type Client interface {
	// Chat forwards the message and returns the model's reply text.
	Chat(ctx context.Context, req Request) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the client.
	Close() error
}

// RetryConfig defines retry behavior for AI API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// Default model configurations.
var (
	// DefaultGeminiChatModels is the default model chain for Gemini chat.
	// gemini-2.5-flash offers fast inference, flash-lite is the cheaper fallback.
	DefaultGeminiChatModels = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}

	// DefaultGroqChatModel is the default Groq chat model.
	DefaultGroqChatModel = "llama-3.3-70b-versatile"

	// DefaultCerebrasChatModel is the default Cerebras chat model.
	DefaultCerebrasChatModel = "llama-3.3-70b"
)

// Retry configuration defaults
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the default retry settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}
