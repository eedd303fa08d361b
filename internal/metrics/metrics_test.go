package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	// Verify all metric fields are initialized
	if m.MessagesTotal == nil {
		t.Error("MessagesTotal is nil")
	}
	if m.ScopeRejectionsTotal == nil {
		t.Error("ScopeRejectionsTotal is nil")
	}
	if m.CatalogResponses == nil {
		t.Error("CatalogResponses is nil")
	}
	if m.AIDelegationsTotal == nil {
		t.Error("AIDelegationsTotal is nil")
	}
	if m.AIDelegationDuration == nil {
		t.Error("AIDelegationDuration is nil")
	}
	if m.ActiveSessions == nil {
		t.Error("ActiveSessions is nil")
	}
	if m.SessionsCreated == nil {
		t.Error("SessionsCreated is nil")
	}
	if m.SessionsExpired == nil {
		t.Error("SessionsExpired is nil")
	}
	if m.CourseLookupsTotal == nil {
		t.Error("CourseLookupsTotal is nil")
	}
	if m.HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration is nil")
	}
	if m.HTTPErrorsTotal == nil {
		t.Error("HTTPErrorsTotal is nil")
	}
	if m.RateLimiterDropped == nil {
		t.Error("RateLimiterDropped is nil")
	}
}

func TestRecordHelpers(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	// Should not panic
	m.RecordMessage("interest-stated")
	m.RecordScopeRejection()
	m.RecordCatalogResponse("guidance")
	m.RecordAIDelegation("gemini", "success", 1.2)
	m.RecordAIDelegation("groq", "error", 0.4)
	m.RecordSessionCreated()
	m.RecordSessionClosed()
	m.RecordSessionCreated()
	m.RecordSessionExpired()
	m.RecordCourseLookup("get_by_id", "not_found")
	m.RecordHTTPRequest("/api/v1/sessions", "POST", 0.02)
	m.RecordHTTPError("rate_limit", "/api/v1/sessions/:id/messages")
	m.RecordRateLimiterDrop("session")
}

func TestMetricsRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordMessage("fallback")
	m.RecordSessionCreated()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("no metric families registered")
	}
}
