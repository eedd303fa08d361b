package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	limiter := New(3, 1)

	// Burst capacity allows the first three requests
	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}

	// Bucket is now empty
	if limiter.Allow() {
		t.Error("request beyond burst should be denied")
	}
}

func TestLimiterRefill(t *testing.T) {
	limiter := New(1, 100) // Fast refill for testing

	if !limiter.Allow() {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(20 * time.Millisecond)

	if !limiter.Allow() {
		t.Error("request after refill should be allowed")
	}
}

func TestLimiterWaitCanceled(t *testing.T) {
	limiter := New(1, 0.001) // Practically no refill

	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Wait() on empty bucket should fail when context expires")
	}
}

func TestLimiterAvailableAndReset(t *testing.T) {
	limiter := New(5, 0.001)

	if got := limiter.Available(); got < 4.9 {
		t.Errorf("Available() = %v, want ~5", got)
	}

	limiter.Allow()
	limiter.Allow()
	if got := limiter.Available(); got > 3.1 {
		t.Errorf("Available() after two requests = %v, want ~3", got)
	}
	if limiter.IsFull() {
		t.Error("IsFull() should be false after consuming tokens")
	}

	limiter.Reset()
	if !limiter.IsFull() {
		t.Error("IsFull() should be true after Reset()")
	}
}

func TestKeyedLimiterIsolatesKeys(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "session",
		Burst:         1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	if !kl.Allow("a") {
		t.Fatal("first request for key a should be allowed")
	}
	if kl.Allow("a") {
		t.Error("second request for key a should be denied")
	}
	if !kl.Allow("b") {
		t.Error("key b should have its own bucket")
	}
}

func TestKeyedLimiterEmptyKeyAllowed(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "session",
		Burst:         1,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	for i := 0; i < 5; i++ {
		if !kl.Allow("") {
			t.Fatal("empty key should never be limited")
		}
	}
	if kl.GetActiveCount() != 0 {
		t.Errorf("GetActiveCount() = %d, want 0 for empty keys", kl.GetActiveCount())
	}
}

func TestKeyedLimiterGetAvailable(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "ai",
		Burst:         10,
		RefillRate:    0.001,
		CleanupPeriod: time.Minute,
	})
	defer kl.Stop()

	if got := kl.GetAvailable("unknown"); got != 10 {
		t.Errorf("GetAvailable() for unseen key = %v, want burst", got)
	}

	kl.Allow("s1")
	if got := kl.GetAvailable("s1"); got > 9.1 {
		t.Errorf("GetAvailable() after one request = %v, want ~9", got)
	}
}

func TestKeyedLimiterStopIdempotent(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{
		Name:          "session",
		Burst:         1,
		RefillRate:    1,
		CleanupPeriod: time.Minute,
	})

	kl.Stop()
	kl.Stop() // Must not panic
}
