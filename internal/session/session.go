package session

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/vasiliy-maslov/shop-service/internal/catalog"
)

// Session — серверное состояние одного браузерного визита: ссылка на
// авторизованного пользователя, корзина и одноразовое flash-сообщение.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	userID    *uuid.UUID
	cart      []catalog.Product
	flash     string
	expiresAt time.Time
}

// Login binds the session to a user. The cart is left untouched.
func (s *Session) Login(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := userID
	s.userID = &id
}

// Logout clears only the user reference. The cart survives logout:
// carts are scoped to the browser session, not to the identity.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = nil
}

// Authenticated reports whether a user is bound to the session.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID != nil
}

// UserID returns the bound user id, or uuid.Nil and false for an
// anonymous session.
func (s *Session) UserID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == nil {
		return uuid.Nil, false
	}
	return *s.userID, true
}

// SetFlash stores a one-shot notice shown after the next redirect.
func (s *Session) SetFlash(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = msg
}

// PopFlash returns the pending notice and clears it.
func (s *Session) PopFlash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flash
	s.flash = ""
	return msg
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) touch(ttl time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = now.Add(ttl)
}
