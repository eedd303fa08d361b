package aichat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiClient answers delegated course questions using an OpenAI-compatible
// API. Works with Groq, Cerebras, and other compatible providers.
// It implements the Client interface.
type openaiClient struct {
	client   openai.Client
	model    string
	provider Provider
}

// newOpenAIClient creates a new OpenAI-compatible chat client.
// Returns nil if apiKey is empty (provider disabled).
func newOpenAIClient(provider Provider, apiKey, model string) (*openaiClient, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqChatModel
		case ProviderCerebras:
			model = DefaultCerebrasChatModel
		default:
			return nil, fmt.Errorf("no default model for provider: %s", provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiClient{
		client:   client,
		model:    model,
		provider: provider,
	}, nil
}

// Chat forwards the question through the chat completions endpoint.
func (c *openaiClient) Chat(ctx context.Context, req Request) (string, error) {
	if c == nil {
		return "", errors.New("chat client is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemInstruction(req.Course)),
			openai.UserMessage(req.Message),
		},
		Temperature: openai.Float(0.4),
		MaxTokens:   openai.Int(512),
	}
	if req.UserID != "" {
		params.User = openai.String(req.UserID)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "chat API call failed",
			"provider", c.provider,
			"model", c.model,
			"input_length", len(req.Message),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("empty reply from model")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "chat completed",
			"provider", c.provider,
			"model", c.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds())
	}
	return reply, nil
}

// Provider returns the provider type for this client.
func (c *openaiClient) Provider() Provider {
	return c.provider
}

// Close releases client resources. The OpenAI SDK holds no persistent
// connection, so this is a no-op.
func (c *openaiClient) Close() error {
	return nil
}
