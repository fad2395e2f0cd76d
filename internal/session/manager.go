package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/shop-service/internal/catalog"
)

const DefaultCookieName = "session_id"

// Manager owns the in-memory session table, keyed by an unguessable
// cookie value. Expired sessions are dropped by a background sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	catalog    *catalog.Catalog
	cookieName string
	ttl        time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewManager(cat *catalog.Catalog, cookieName string, ttl time.Duration) *Manager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	m := &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		catalog:    cat,
		cookieName: cookieName,
		ttl:        ttl,
		stopCh:     make(chan struct{}),
	}

	go m.sweep()

	return m
}

// Get returns the session for the request, creating one (and setting the
// cookie) on first contact or after expiry. The session TTL slides on
// every call.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	now := time.Now()

	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if sessID, err := uuid.FromString(cookie.Value); err == nil {
			m.mu.RLock()
			sess, ok := m.sessions[sessID]
			m.mu.RUnlock()

			if ok && !sess.expired(now) {
				sess.touch(m.ttl, now)
				return sess
			}
		}
	}

	sess := &Session{
		ID:        uuid.Must(uuid.NewV4()),
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// Stop terminates the background sweep.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Manager) sweep() {
	interval := m.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			removed := 0
			for id, sess := range m.sessions {
				if sess.expired(now) {
					delete(m.sessions, id)
					removed++
				}
			}
			m.mu.Unlock()

			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("session: expired sessions swept")
			}
		}
	}
}
