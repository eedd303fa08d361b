package aichat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/learnhub/course-assistant-go/internal/config"
	"github.com/learnhub/course-assistant-go/internal/metrics"
)

// NewFromConfig builds the chat client chain from configuration.
// The chain order follows AI_PRIMARY_PROVIDER then AI_FALLBACK_PROVIDER,
// skipping providers without an API key. Returns nil when no provider is
// configured; callers answer delegated questions with a fixed error reply
// in that case.
func NewFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (Client, error) {
	var clients []Client
	for _, provider := range providerOrder(cfg) {
		client, err := newProviderClient(ctx, cfg, provider)
		if err != nil {
			return nil, fmt.Errorf("create %s client: %w", provider, err)
		}
		if client != nil {
			clients = append(clients, client)
		}
	}

	if len(clients) == 0 {
		slog.InfoContext(ctx, "no AI chat provider configured, delegation disabled")
		return nil, nil
	}

	var fallback Client
	if len(clients) > 1 {
		fallback = clients[1]
	}

	slog.InfoContext(ctx, "AI chat providers configured",
		"primary", clients[0].Provider(),
		"chain_size", len(clients))

	return NewFallbackClient(clients[0], fallback, DefaultRetryConfig(), m), nil
}

func providerOrder(cfg *config.Config) []Provider {
	primary := Provider(cfg.AIPrimaryProvider)
	fallback := Provider(cfg.AIFallbackProvider)

	order := []Provider{primary}
	if fallback != "" && fallback != primary {
		order = append(order, fallback)
	}
	return order
}

// newProviderClient returns a nil Client when the provider has no API key.
// The concrete constructors return typed nils, so unwrap them here before
// they land in the interface.
func newProviderClient(ctx context.Context, cfg *config.Config, provider Provider) (Client, error) {
	switch provider {
	case ProviderGemini:
		client, err := newGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiChatModel, cfg.GeminiChatFallbackModel)
		if err != nil || client == nil {
			return nil, err
		}
		return client, nil
	case ProviderGroq:
		client, err := newOpenAIClient(ProviderGroq, cfg.GroqAPIKey, cfg.GroqChatModel)
		if err != nil || client == nil {
			return nil, err
		}
		return client, nil
	case ProviderCerebras:
		client, err := newOpenAIClient(ProviderCerebras, cfg.CerebrasAPIKey, cfg.CerebrasChatModel)
		if err != nil || client == nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
