package session

import (
	"sync"
	"time"
)

// MemoryTokenStore keeps the token in process memory. It honors the same
// max-age contract as the cookie-backed store so tests and embedded consoles
// observe identical logged-out transitions when the slot lapses.
type MemoryTokenStore struct {
	mu       sync.Mutex
	token    string
	deadline time.Time
	now      func() time.Time
}

// NewMemoryTokenStore returns an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{now: time.Now}
}

// WithClock injects a custom clock (useful for tests).
func (s *MemoryTokenStore) WithClock(clock func() time.Time) *MemoryTokenStore {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Set stores the token for maxAge. A non-positive maxAge keeps the token
// until Clear, matching a session cookie.
func (s *MemoryTokenStore) Set(token string, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if maxAge > 0 {
		s.deadline = s.now().Add(maxAge)
	} else {
		s.deadline = time.Time{}
	}
	return nil
}

// Get returns the token when present and not past its max-age.
func (s *MemoryTokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", false
	}
	if !s.deadline.IsZero() && s.now().After(s.deadline) {
		s.token = ""
		s.deadline = time.Time{}
		return "", false
	}
	return s.token, true
}

// Clear removes the token; clearing an absent token is a no-op.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.deadline = time.Time{}
	return nil
}

var _ TokenStore = (*MemoryTokenStore)(nil)
