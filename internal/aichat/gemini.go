package aichat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiClient answers delegated course questions using the Gemini API.
// It implements the Client interface.
type geminiClient struct {
	client *genai.Client
	models []string // primary first, fallbacks tried in order
}

// newGeminiClient creates a new Gemini-based chat client.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiClient(ctx context.Context, apiKey, model, fallbackModel string) (*geminiClient, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	models := DefaultGeminiChatModels
	if model != "" {
		models = []string{model}
		if fallbackModel != "" {
			models = append(models, fallbackModel)
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClient{
		client: client,
		models: models,
	}, nil
}

// Chat forwards the question to Gemini. Models are tried in configured
// order; the next model is attempted when the previous one errors.
func (c *geminiClient) Chat(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is nil")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemInstruction(req.Course), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.4),
		MaxOutputTokens:   512,
	}

	var lastErr error
	for _, model := range c.models {
		start := time.Now()
		resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Message), config)
		duration := time.Since(start)

		if err != nil {
			slog.WarnContext(ctx, "chat API call failed",
				"provider", "gemini",
				"model", model,
				"input_length", len(req.Message),
				"duration_ms", duration.Milliseconds(),
				"error", err)
			lastErr = fmt.Errorf("generate content failed: %w", err)
			if IsPermanent(err) || ctx.Err() != nil {
				return "", lastErr
			}
			continue
		}

		reply := extractText(resp)
		if reply == "" {
			lastErr = errors.New("empty response from model")
			continue
		}

		if resp.UsageMetadata != nil {
			slog.DebugContext(ctx, "chat completed",
				"provider", "gemini",
				"model", model,
				"input_tokens", resp.UsageMetadata.PromptTokenCount,
				"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
				"total_tokens", resp.UsageMetadata.TotalTokenCount,
				"duration_ms", duration.Milliseconds())
		}
		return reply, nil
	}

	return "", lastErr
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(out.String())
}

// Provider returns the provider type for this client.
func (c *geminiClient) Provider() Provider {
	return ProviderGemini
}

// Close releases client resources. The Gemini SDK holds no persistent
// connection, so this is a no-op.
func (c *geminiClient) Close() error {
	return nil
}
