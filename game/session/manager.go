package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/hare-hounds/game/clock"
	"github.com/wricardo/hare-hounds/game/engine"
	"github.com/wricardo/hare-hounds/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = service.ErrInvalidSessionID
)

// SchedulerFactory builds the countdown scheduler of a new session. guard is
// the session's own lock; schedulers must hold it while ticking.
type SchedulerFactory func(config *engine.GameConfig, guard sync.Locker) engine.Scheduler

// EventSink receives every engine event of every session. It is called with
// the session lock held and must not call back into the session.
type EventSink func(sessionID string, ev engine.Event)

// Option customises a Manager
type Option func(*Manager)

// WithSchedulerFactory replaces the real-time countdown
func WithSchedulerFactory(f SchedulerFactory) Option {
	return func(m *Manager) {
		m.schedulers = f
	}
}

// WithEventSink forwards engine events, e.g. to WebSocket clients
func WithEventSink(sink EventSink) Option {
	return func(m *Manager) {
		m.sink = sink
	}
}

// IntervalScheduler ticks at the configured wall-clock period
func IntervalScheduler(config *engine.GameConfig, guard sync.Locker) engine.Scheduler {
	return clock.NewInterval(config.TickInterval(), guard)
}

// Manager handles game session lifecycle
type Manager struct {
	sessions   map[string]*service.Session
	schedulers SchedulerFactory
	sink       EventSink
	mu         sync.RWMutex
}

// NewManager creates a new session manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions:   make(map[string]*service.Session),
		schedulers: IntervalScheduler,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new session with the given ID and configuration. An empty
// id gets a fresh random one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	} else if !validSessionID(id) {
		return nil, ErrInvalidSessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	opts := []engine.Option{engine.WithScheduler(m.schedulers(config, session))}
	if m.sink != nil {
		sink := m.sink
		opts = append(opts, engine.WithListener(func(ev engine.Event) {
			sink(id, ev)
		}))
	}

	// the first tick blocks on the session lock until Engine is set
	session.Lock()
	eng, err := engine.NewEngine(config, opts...)
	if err != nil {
		session.Unlock()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	session.Engine = eng
	session.Unlock()

	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate returns the session with the given ID, creating it with config
// when it does not exist. An existing session keeps its own config.
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	return result
}

// Delete removes a session and cancels its countdown
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	lowerID := strings.ToLower(id)
	session, exists := m.sessions[lowerID]
	if exists {
		delete(m.sessions, lowerID)
	}
	m.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}

	closeSession(session)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	session.Lock()
	session.LastAccessedAt = time.Now()
	session.Unlock()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var expired []*service.Session
	for id, session := range m.sessions {
		session.Lock()
		stale := session.LastAccessedAt.Before(cutoff)
		session.Unlock()

		if stale {
			delete(m.sessions, id)
			expired = append(expired, session)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		closeSession(session)
	}

	if len(expired) > 0 {
		log.Info().Int("removed", len(expired)).Dur("max_age", maxAge).Msg("expired sessions removed")
	}
	return len(expired)
}

// RunCleanup removes expired sessions every interval until ctx is done
func (m *Manager) RunCleanup(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CleanupExpiredSessions(maxAge)
		}
	}
}

// CloseAll stops the countdown of every session and forgets them
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*service.Session)
	m.mu.Unlock()

	for _, session := range sessions {
		closeSession(session)
	}
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func closeSession(session *service.Session) {
	session.Lock()
	session.Engine.Close()
	session.Unlock()
}

// generateSessionID generates a random 4-character session ID
func (m *Manager) generateSessionID() string {
	for {
		// 2 random bytes make 4 hex characters
		bytes := make([]byte, 2)
		rand.Read(bytes)
		id := hex.EncodeToString(bytes)

		m.mu.RLock()
		taken := m.sessionExists(id)
		m.mu.RUnlock()
		if !taken {
			return id
		}
	}
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}

// validSessionID accepts short alphanumeric IDs, dashes and underscores
func validSessionID(id string) bool {
	if len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
