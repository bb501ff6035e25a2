// Package session holds login sessions in memory, keyed by opaque tokens.
// Sessions are request-scoped state made explicit: handlers resolve the
// cookie to an identity instead of sharing a process-wide current user.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osyp/eventix/internal/domain"
	"github.com/osyp/eventix/internal/metrics"
)

const DefaultTTL = 7 * 24 * time.Hour

type entry struct {
	identity  domain.Identity
	expiresAt time.Time
}

type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]entry
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Create starts a session for the identity and returns its token.
func (m *Manager) Create(identity domain.Identity) string {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()
	m.sessions[token] = entry{
		identity:  identity,
		expiresAt: m.now().Add(m.ttl),
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))

	return token
}

// Get resolves a token to its identity. Expired sessions are treated as
// absent and dropped.
func (m *Manager) Get(token string) (domain.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return domain.Identity{}, false
	}

	if m.now().After(e.expiresAt) {
		delete(m.sessions, token)
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
		return domain.Identity{}, false
	}

	return e.identity, true
}

// Delete ends the session. Unknown tokens are a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
}

// TTL reports the configured session lifetime, used for the cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// sweep drops expired sessions. Caller holds the lock.
func (m *Manager) sweep() {
	now := m.now()
	for token, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, token)
		}
	}
}
