package webapp

import (
	"time"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-session"
)

// CookieTokenStore persists the session token in a request cookie. It is
// bound to a single request context; build one per request, never share.
type CookieTokenStore struct {
	ctx  router.Context
	name string

	// pending mirrors the cookie written during this request, since the
	// request's own Cookies() only sees what the client sent.
	pending string
	dirty   bool
}

// NewCookieTokenStore binds a store to the request's cookie jar.
func NewCookieTokenStore(ctx router.Context, name string) *CookieTokenStore {
	return &CookieTokenStore{ctx: ctx, name: name}
}

// Set writes the token cookie for maxAge.
func (s *CookieTokenStore) Set(token string, maxAge time.Duration) error {
	s.ctx.Cookie(&router.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	s.pending = token
	s.dirty = true
	return nil
}

// Get reads the token, preferring a value written earlier in this request.
func (s *CookieTokenStore) Get() (string, bool) {
	if s.dirty {
		if s.pending == "" {
			return "", false
		}
		return s.pending, true
	}

	token := s.ctx.Cookies(s.name)
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear expires the cookie.
func (s *CookieTokenStore) Clear() error {
	s.ctx.Cookie(&router.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	s.pending = ""
	s.dirty = true
	return nil
}

var _ session.TokenStore = (*CookieTokenStore)(nil)
