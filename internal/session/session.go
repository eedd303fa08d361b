// Package session manages conversation sessions for the assistant widget.
// Each session owns one conversation context and expires after a period of
// inactivity. All state is in-memory; a restart starts every visitor fresh.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/learnhub/course-assistant-go/internal/engine"
	domerrors "github.com/learnhub/course-assistant-go/internal/errors"
	"github.com/learnhub/course-assistant-go/internal/logger"
	"github.com/learnhub/course-assistant-go/internal/metrics"
)

// Session is one visitor's conversation.
// Access the conversation context through Manager.WithContext so that
// concurrent messages on the same session are serialized.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	ctx      engine.ConversationContext
	lastSeen time.Time
}

// Config configures a session Manager.
type Config struct {
	// TTL is how long an idle session survives before cleanup removes it.
	TTL time.Duration

	// CleanupPeriod controls how often expired sessions are removed.
	CleanupPeriod time.Duration

	// Optional metrics reporter
	Metrics *metrics.Metrics

	Logger *logger.Logger
}

// Manager tracks active sessions and expires idle ones in the background.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	config   Config
	logger   *logger.Logger
	stopCh   chan struct{}
}

// NewManager creates a session manager and starts its cleanup goroutine.
// Call Stop on shutdown.
func NewManager(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = logger.New("info")
	}

	m := &Manager{
		sessions: make(map[string]*Session),
		config:   cfg,
		logger:   log.WithModule("session"),
		stopCh:   make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

// Create starts a new session for the given page mode and optional course.
// A course snapshot may arrive without a backend ID when the page assembled
// it client-side; it is stored as-is.
func (m *Manager) Create(pageMode engine.PageMode, course *engine.CourseSummary) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		lastSeen:  now,
		ctx: engine.ConversationContext{
			PageMode:       pageMode,
			SelectedCourse: course,
		},
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	active := len(m.sessions)
	m.mu.Unlock()

	if m.config.Metrics != nil {
		m.config.Metrics.RecordSessionCreated()
	}
	m.logger.WithSessionID(s.ID).WithField("active_sessions", active).Debug("session created")

	return s
}

// Get returns the session with the given ID, refreshing its idle timer.
// Returns ErrSessionNotFound for unknown or already expired sessions.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, domerrors.ErrSessionNotFound
	}

	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()

	return s, nil
}

// WithContext runs fn with exclusive access to the session's conversation
// context. Mutations made by fn are kept. Concurrent messages on the same
// session serialize here, so the message count advances by exactly one per
// handled message.
func (m *Manager) WithContext(id string, fn func(ctx *engine.ConversationContext)) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.ctx)
	return nil
}

// AttachCourse binds a course to the session, e.g. when the visitor opens a
// course detail page. Replaces any previously bound course.
func (m *Manager) AttachCourse(id string, course *engine.CourseSummary) error {
	return m.WithContext(id, func(ctx *engine.ConversationContext) {
		ctx.SelectedCourse = course
		ctx.PageMode = engine.PageModeCourseDetail
	})
}

// DetachCourse unbinds the session's course, e.g. when the visitor navigates
// back to the catalog. The conversation history (message count, stated
// interest) is kept.
func (m *Manager) DetachCourse(id string) error {
	return m.WithContext(id, func(ctx *engine.ConversationContext) {
		ctx.SelectedCourse = nil
		ctx.PageMode = engine.PageModeCatalog
	})
}

// Delete removes a session immediately.
// Returns ErrSessionNotFound if the session does not exist.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	_, exists := m.sessions[id]
	if exists {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !exists {
		return domerrors.ErrSessionNotFound
	}

	if m.config.Metrics != nil {
		m.config.Metrics.RecordSessionClosed()
	}
	return nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) cleanupLoop() {
	period := m.config.CleanupPeriod
	if period <= 0 {
		period = time.Minute
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *Manager) removeExpired() {
	cutoff := time.Now().Add(-m.config.TTL)
	expired := 0

	m.mu.Lock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			expired++
		}
	}
	m.mu.Unlock()

	if expired == 0 {
		return
	}
	for i := 0; i < expired; i++ {
		if m.config.Metrics != nil {
			m.config.Metrics.RecordSessionExpired()
		}
	}
	m.logger.WithField("expired_sessions", expired).Debug("expired idle sessions")
}

// Stop gracefully stops the cleanup goroutine.
// Safe to call multiple times.
func (m *Manager) Stop() {
	select {
	case <-m.stopCh:
		// Already stopped
	default:
		close(m.stopCh)
	}
}
