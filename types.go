package session

import (
	"context"
	"fmt"
	"time"
)

// State is the session lifecycle state.
type State string

const (
	// StateUnknown is the initial state before the first validation pass.
	StateUnknown State = "unknown"
	// StateAuthenticated means a valid token produced an in-memory user.
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated means no session is active.
	StateUnauthenticated State = "unauthenticated"
)

// User is the in-memory identity derived from token claims. It is never
// persisted directly; it is recomputed from the token on every pass.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenStore persists the single bearer token. Implementations wrap browser
// cookie storage or an in-memory slot; they perform no network calls.
type TokenStore interface {
	// Set writes the token with the given lifetime. The lifetime is imposed by
	// the store, independent of the token's own exp claim.
	Set(token string, maxAge time.Duration) error
	// Get reads the token. Absence is a valid, expected state.
	Get() (string, bool)
	// Clear removes the token. Clearing an absent token is not an error.
	Clear() error
}

// BearerCarrier is the slice of the request channel the machine mutates.
// Only the Machine is permitted to call these; every other component reads.
type BearerCarrier interface {
	SetBearer(token string)
	ClearBearer()
}

// Navigator is the view collaborator that performs redirects.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function into a Navigator.
type NavigatorFunc func(path string)

// Navigate satisfies the Navigator interface.
func (f NavigatorFunc) Navigate(path string) {
	if f != nil {
		f(path)
	}
}

// AuthClient talks to the backend authentication endpoints.
type AuthClient interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

// Config holds session options
type Config interface {
	GetBaseURL() string
	GetTokenCookieName() string
	GetTokenMaxAge() int
	GetLoginPath() string
	GetLandingPath() string
	GetPublicPrefix() string
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

func normalizeNavigator(n Navigator) Navigator {
	if n == nil {
		return noopNavigator{}
	}
	return n
}
