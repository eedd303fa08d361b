package aichat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnhub/course-assistant-go/internal/engine"
)

// mockClient is a test mock for the Client interface
type mockClient struct {
	chatFunc    func(ctx context.Context, req Request) (string, error)
	provider    Provider
	closeCalled bool
}

func (m *mockClient) Chat(ctx context.Context, req Request) (string, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return "", errors.New("not implemented")
}

func (m *mockClient) Provider() Provider {
	return m.provider
}

func (m *mockClient) Close() error {
	m.closeCalled = true
	return nil
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
	}
}

func testRequest() Request {
	return Request{
		Course: &engine.CourseSummary{
			ID:    "course-42",
			Title: "Web Development Bootcamp",
			Level: "Beginner",
		},
		Message: "How long are the weekly sessions?",
		UserID:  "session-1",
	}
}

func TestFallbackClient_Chat_PrimarySuccess(t *testing.T) {
	t.Parallel()
	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "Sessions run two hours each.", nil
		},
		provider: ProviderGemini,
	}

	client := NewFallbackClient(primary, nil, fastRetryConfig(), nil)

	reply, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat() error = %v, want nil", err)
	}
	if reply != "Sessions run two hours each." {
		t.Errorf("Chat() reply = %q", reply)
	}
}

func TestFallbackClient_Chat_FallsBackOnTransientError(t *testing.T) {
	t.Parallel()
	cfg := fastRetryConfig()

	primaryCalls := 0
	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			primaryCalls++
			return "", errors.New("503 service unavailable")
		},
		provider: ProviderGemini,
	}
	fallback := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "fallback reply", nil
		},
		provider: ProviderGroq,
	}

	client := NewFallbackClient(primary, fallback, cfg, nil)

	reply, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat() error = %v, want nil (fallback should succeed)", err)
	}
	if reply != "fallback reply" {
		t.Errorf("Chat() reply = %q, want fallback reply", reply)
	}
	// Primary is retried MaxAttempts times before fallback takes over
	if primaryCalls != cfg.MaxAttempts {
		t.Errorf("primary called %d times, want %d", primaryCalls, cfg.MaxAttempts)
	}
}

func TestFallbackClient_Chat_PermanentErrorSkipsRetry(t *testing.T) {
	t.Parallel()
	primaryCalls := 0
	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			primaryCalls++
			return "", errors.New("invalid api key")
		},
		provider: ProviderGemini,
	}
	fallback := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "fallback reply", nil
		},
		provider: ProviderGroq,
	}

	client := NewFallbackClient(primary, fallback, fastRetryConfig(), nil)

	reply, err := client.Chat(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Chat() error = %v, want nil", err)
	}
	if reply != "fallback reply" {
		t.Errorf("Chat() reply = %q, want fallback reply", reply)
	}
	if primaryCalls != 1 {
		t.Errorf("primary called %d times, want 1 (permanent error)", primaryCalls)
	}
}

func TestFallbackClient_Chat_AllProvidersFail(t *testing.T) {
	t.Parallel()
	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "", errors.New("503 service unavailable")
		},
		provider: ProviderGemini,
	}
	fallback := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "", errors.New("timeout waiting for response")
		},
		provider: ProviderGroq,
	}

	client := NewFallbackClient(primary, fallback, fastRetryConfig(), nil)

	_, err := client.Chat(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Chat() error = nil, want error when all providers fail")
	}
}

func TestFallbackClient_Chat_NoFallbackConfigured(t *testing.T) {
	t.Parallel()
	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			return "", errors.New("503 service unavailable")
		},
		provider: ProviderGemini,
	}

	client := NewFallbackClient(primary, nil, fastRetryConfig(), nil)

	_, err := client.Chat(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Chat() error = nil, want error without fallback")
	}
}

func TestFallbackClient_Chat_CancelledContextSkipsFallback(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	primary := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			cancel()
			return "", context.Canceled
		},
		provider: ProviderGemini,
	}
	fallbackCalls := 0
	fallback := &mockClient{
		chatFunc: func(_ context.Context, _ Request) (string, error) {
			fallbackCalls++
			return "should not run", nil
		},
		provider: ProviderGroq,
	}

	client := NewFallbackClient(primary, fallback, fastRetryConfig(), nil)

	_, err := client.Chat(ctx, testRequest())
	if err == nil {
		t.Fatal("Chat() error = nil, want error on cancelled context")
	}
	if fallbackCalls != 0 {
		t.Errorf("fallback called %d times, want 0 after cancellation", fallbackCalls)
	}
}

func TestFallbackClient_Close(t *testing.T) {
	t.Parallel()
	primary := &mockClient{provider: ProviderGemini}
	fallback := &mockClient{provider: ProviderGroq}

	client := NewFallbackClient(primary, fallback, fastRetryConfig(), nil)

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
	if !primary.closeCalled {
		t.Error("primary Close() not called")
	}
	if !fallback.closeCalled {
		t.Error("fallback Close() not called")
	}
}

func TestFallbackClient_Provider(t *testing.T) {
	t.Parallel()
	primary := &mockClient{provider: ProviderCerebras}
	client := NewFallbackClient(primary, nil, fastRetryConfig(), nil)

	if got := client.Provider(); got != ProviderCerebras {
		t.Errorf("Provider() = %q, want %q", got, ProviderCerebras)
	}
}
