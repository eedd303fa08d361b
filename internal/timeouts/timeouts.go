// Package timeouts provides centralized timeout constants for the application.
package timeouts

import "time"

// HTTP server timeouts
const (
	// HTTPReadHeader caps how long the server waits for request headers.
	// Chat payloads are small JSON bodies, so headers should arrive fast.
	HTTPReadHeader = 10 * time.Second

	// HTTPRead is the HTTP server read timeout for the full request body.
	HTTPRead = 30 * time.Second

	// HTTPWrite is the HTTP server write timeout. It has to cover a
	// delegated AI chat call plus response serialization.
	HTTPWrite = 60 * time.Second

	// HTTPIdle is the idle timeout for keep-alive connections. The chat
	// widget reuses its connection between messages.
	HTTPIdle = 120 * time.Second
)

// Health checks
const (
	// ReadinessCheck bounds the catalog query behind /readyz so a stuck
	// database turns into a 503 instead of a hung probe.
	ReadinessCheck = 5 * time.Second
)

// Shutdown
const (
	// SentryFlush is how long shutdown waits for buffered error events
	// to reach Sentry before giving up.
	SentryFlush = 2 * time.Second
)
