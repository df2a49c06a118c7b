package session

import (
	"context"
	"strings"
	"sync/atomic"
)

// PathClass is the public/protected classification of a route.
type PathClass int

const (
	// PathProtected routes require an authenticated session.
	PathProtected PathClass = iota
	// PathPublic routes (the auth section) are reachable without one.
	PathPublic
)

// PathClassifier maps a route to its classification. It must be a pure
// function of the path.
type PathClassifier func(path string) PathClass

// PrefixClassifier classifies every path under prefix as public and
// everything else as protected.
func PrefixClassifier(prefix string) PathClassifier {
	return func(path string) PathClass {
		if strings.HasPrefix(path, prefix) {
			return PathPublic
		}
		return PathProtected
	}
}

// Guard runs the per-navigation validation pass: one idempotent
// reconciliation of persisted token state against in-memory session state,
// not a continuous poller.
//
// Each PathChanged call supersedes any pass still in flight. Passes carry a
// generation token; a stale pass skips every mutation and navigation so it
// cannot overwrite the decision of the pass that replaced it.
type Guard struct {
	machine  *Machine
	classify PathClassifier
	gen      atomic.Uint64
}

// GuardOption customizes guard construction.
type GuardOption func(*Guard)

// WithClassifier overrides the path classifier.
func WithClassifier(classify PathClassifier) GuardOption {
	return func(g *Guard) {
		if classify != nil {
			g.classify = classify
		}
	}
}

// NewGuard binds a guard to a machine. The default classifier treats every
// path under /auth as public.
func NewGuard(machine *Machine, opts ...GuardOption) *Guard {
	g := &Guard{
		machine:  machine,
		classify: PrefixClassifier("/auth"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// PathChanged performs the guard pass for a navigation to path. Decisions,
// in order:
//
//   - no token on a protected path: redirect to login, silently — this is the
//     default logged-out case, not an error;
//   - no token on a public path: proceed as logged out;
//   - malformed token: discard it; on a protected path redirect to login with
//     an authentication-error notice, on a public path stay silent (a visitor
//     who never had a session should not be alarmed by a garbage cookie);
//   - expired token: discard it; same public-path suppression, with a
//     session-expired notice on protected paths;
//   - valid token: prime the bearer header, restore the user from claims, and
//     bounce a logged-in visit to a public auth path over to the landing view.
//
// The guard's navigation always takes precedence over rendering the current
// path's content for the pass.
func (g *Guard) PathChanged(ctx context.Context, path string) {
	pass := g.gen.Add(1)
	current := func() bool { return g.gen.Load() == pass }

	m := g.machine
	m.setLoading(true)
	defer func() {
		if current() {
			m.setLoading(false)
		}
	}()

	if err := ctx.Err(); err != nil {
		return
	}

	class := g.classify(path)

	token, ok := m.store.Get()
	if !ok {
		if !current() {
			return
		}
		m.setUnauthenticated()
		if class == PathProtected {
			m.navigator.Navigate(m.loginPath)
		}
		return
	}

	claims, err := DecodeIdentity(token)
	if err != nil {
		if !current() {
			return
		}
		m.logger.Error("guard failed to decode token", "path", path, "error", err)
		m.discardToken()
		if class == PathProtected {
			m.navigator.Navigate(m.loginPath)
			m.notify(LevelError, m.messages.AuthError, m.messages.AuthDetail)
		}
		return
	}

	if claims.ExpiredAt(m.now()) {
		if !current() {
			return
		}
		m.logger.Info("guard discarding expired token", "path", path, "expired_at", claims.Expires())
		m.discardToken()
		if class == PathProtected {
			m.navigator.Navigate(m.loginPath)
			m.notify(LevelWarning, m.messages.SessionExpired, m.messages.ExpiredDetail)
		}
		return
	}

	if !current() {
		return
	}

	m.bearer.SetBearer(token)
	m.setAuthenticated(claims.User())

	if class == PathPublic {
		m.navigator.Navigate(m.landingPath)
	}
}

// Classify exposes the guard's path classification.
func (g *Guard) Classify(path string) PathClass {
	return g.classify(path)
}
