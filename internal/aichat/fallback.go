package aichat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/learnhub/course-assistant-go/internal/metrics"
)

// FallbackClient wraps a primary and fallback chat client.
// Each provider is tried with retry; when the primary exhausts its attempts
// on a transient error, the fallback provider takes over.
type FallbackClient struct {
	primary     Client
	fallback    Client
	retryConfig RetryConfig
	metrics     *metrics.Metrics
}

// NewFallbackClient creates a fallback-enabled chat client.
// If fallback is nil, only retry logic is applied to the primary provider.
func NewFallbackClient(primary, fallback Client, cfg RetryConfig, m *metrics.Metrics) *FallbackClient {
	return &FallbackClient{
		primary:     primary,
		fallback:    fallback,
		retryConfig: cfg,
		metrics:     m,
	}
}

// Chat tries the primary client first with retry, then falls back if needed.
func (f *FallbackClient) Chat(ctx context.Context, req Request) (string, error) {
	if f == nil || f.primary == nil {
		return "", errors.New("chat client not configured")
	}

	start := time.Now()
	provider := f.primary.Provider()

	reply, err := f.chatWithRetry(ctx, f.primary, req)
	if err == nil {
		f.record(provider, "success", time.Since(start))
		return reply, nil
	}

	slog.WarnContext(ctx, "primary chat provider failed",
		"provider", provider,
		"error", err,
		"duration", time.Since(start))
	f.record(provider, statusFor(err), time.Since(start))

	if ctx.Err() != nil || f.fallback == nil {
		return "", err
	}

	slog.InfoContext(ctx, "falling back to secondary chat provider",
		"from", provider,
		"to", f.fallback.Provider())

	fallbackStart := time.Now()
	fallbackProvider := f.fallback.Provider()

	reply, err = f.chatWithRetry(ctx, f.fallback, req)
	if err == nil {
		f.record(fallbackProvider, "success", time.Since(fallbackStart))
		return reply, nil
	}

	f.record(fallbackProvider, statusFor(err), time.Since(fallbackStart))
	slog.ErrorContext(ctx, "all chat providers failed",
		"primary", provider,
		"fallback", fallbackProvider,
		"error", err)

	return "", fmt.Errorf("all providers failed: %w", err)
}

func (f *FallbackClient) chatWithRetry(ctx context.Context, client Client, req Request) (string, error) {
	var reply string
	err := WithRetry(ctx, f.retryConfig, func() error {
		var chatErr error
		reply, chatErr = client.Chat(ctx, req)
		return chatErr
	})
	return reply, err
}

func (f *FallbackClient) record(provider Provider, status string, duration time.Duration) {
	if f.metrics != nil {
		f.metrics.RecordAIDelegation(provider.String(), status, duration.Seconds())
	}
}

func statusFor(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}

// Provider returns the primary provider for metrics.
func (f *FallbackClient) Provider() Provider {
	if f.primary != nil {
		return f.primary.Provider()
	}
	return ""
}

// Close releases both underlying clients.
func (f *FallbackClient) Close() error {
	var errs []error
	if f.primary != nil {
		errs = append(errs, f.primary.Close())
	}
	if f.fallback != nil {
		errs = append(errs, f.fallback.Close())
	}
	return errors.Join(errs...)
}
