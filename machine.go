package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTokenMaxAge is the cookie lifetime imposed on persisted tokens,
// independent of the token's own exp claim.
const DefaultTokenMaxAge = 30 * 24 * time.Hour

const (
	// DefaultLoginPath is the public login view, the only redirect target for
	// unauthenticated navigation.
	DefaultLoginPath = "/auth/login"
	// DefaultLandingPath is the protected landing view reached after sign-in.
	DefaultLandingPath = "/dashboard"
)

// Machine owns the in-memory session and orchestrates sign-in, sign-up,
// sign-out, and the per-navigation bootstrap. It is the single writer of the
// persisted token and of the request channel's bearer header; every other
// component only reads them.
//
// SignIn, SignUp, and SignOut catch at their own boundary: they never return
// an error. The view layer observes outcomes through State, CurrentUser,
// IsLoading, and the Notifier.
type Machine struct {
	mu      sync.Mutex
	state   State
	user    *User
	loading bool

	store     TokenStore
	bearer    BearerCarrier
	client    AuthClient
	navigator Navigator
	notifier  Notifier
	logger    Logger
	messages  Messages
	now       func() time.Time

	tokenMaxAge time.Duration
	loginPath   string
	landingPath string
}

// Option customizes machine construction.
type Option func(*Machine)

// WithTokenStore sets the persistence slot for the bearer token.
func WithTokenStore(store TokenStore) Option {
	return func(m *Machine) {
		if store != nil {
			m.store = store
		}
	}
}

// WithBearerCarrier wires the request channel slice the machine mutates.
func WithBearerCarrier(bearer BearerCarrier) Option {
	return func(m *Machine) {
		if bearer != nil {
			m.bearer = bearer
		}
	}
}

// WithNavigator sets the redirect collaborator.
func WithNavigator(navigator Navigator) Option {
	return func(m *Machine) {
		m.navigator = normalizeNavigator(navigator)
	}
}

// WithNotifier sets the notification collaborator.
func WithNotifier(notifier Notifier) Option {
	return func(m *Machine) {
		m.notifier = normalizeNotifier(notifier)
	}
}

// WithLogger overrides the logger.
func WithLogger(logger Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(m *Machine) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithMessages overrides the notification copy.
func WithMessages(messages Messages) Option {
	return func(m *Machine) {
		m.messages = messages
	}
}

// WithTokenMaxAge overrides the persisted token lifetime.
func WithTokenMaxAge(maxAge time.Duration) Option {
	return func(m *Machine) {
		if maxAge > 0 {
			m.tokenMaxAge = maxAge
		}
	}
}

// WithPaths overrides the two redirect targets.
func WithPaths(login, landing string) Option {
	return func(m *Machine) {
		if login != "" {
			m.loginPath = login
		}
		if landing != "" {
			m.landingPath = landing
		}
	}
}

type noopBearer struct{}

func (noopBearer) SetBearer(string) {}
func (noopBearer) ClearBearer()     {}

// New returns a machine in the Unknown state with the loading flag raised;
// the first guard pass resolves it to Authenticated or Unauthenticated.
func New(client AuthClient, opts ...Option) *Machine {
	m := &Machine{
		state:       StateUnknown,
		loading:     true,
		client:      client,
		store:       NewMemoryTokenStore(),
		bearer:      noopBearer{},
		navigator:   noopNavigator{},
		notifier:    noopNotifier{},
		logger:      defLogger{},
		messages:    DefaultMessages(),
		now:         time.Now,
		tokenMaxAge: DefaultTokenMaxAge,
		loginPath:   DefaultLoginPath,
		landingPath: DefaultLandingPath,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns a copy of the session user, nil when logged out.
func (m *Machine) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated holds exactly when a user is set.
func (m *Machine) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// IsLoading reports whether an operation or guard pass is in flight.
func (m *Machine) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LoginPath returns the public login view path.
func (m *Machine) LoginPath() string {
	return m.loginPath
}

// LandingPath returns the protected landing view path.
func (m *Machine) LandingPath() string {
	return m.landingPath
}

// SignIn exchanges credentials for a token, persists it, primes the bearer
// header, and navigates to the landing view. On failure the session is left
// unchanged: no token persisted, no partial authentication.
func (m *Machine) SignIn(ctx context.Context, creds LoginRequest) {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.client.Login(ctx, creds)
	if err != nil {
		m.logger.Error("SignIn request failed", "error", err)
		m.notify(LevelError, m.messages.SignInError, failureMessage(err, m.messages.Generic))
		return
	}

	if err := m.store.Set(res.Token, m.tokenMaxAge); err != nil {
		m.logger.Error("SignIn token persist failed", "error", err)
		m.notify(LevelError, m.messages.SignInError, failureMessage(err, m.messages.Generic))
		return
	}

	// Bearer must be in place before navigation can trigger a new request.
	m.bearer.SetBearer(res.Token)
	m.setAuthenticated(&User{Name: res.Name, Email: res.Email})

	m.navigator.Navigate(m.landingPath)
	m.notify(LevelSuccess, m.messages.SignInSuccess, "")
}

// SignUp registers an account and sends the user to the login view. The
// token the backend returns is deliberately discarded: registration does not
// authenticate.
func (m *Machine) SignUp(ctx context.Context, data RegisterRequest) {
	m.setLoading(true)
	defer m.setLoading(false)

	if _, err := m.client.Register(ctx, data); err != nil {
		m.logger.Error("SignUp request failed", "error", err)
		m.notify(LevelError, m.messages.SignUpError, failureMessage(err, m.messages.Generic))
		return
	}

	m.navigator.Navigate(m.loginPath)
	m.notify(LevelSuccess, m.messages.SignUpSuccess, m.messages.SignUpDetail)
}

// SignOut clears the token and the bearer header, drops the user, and
// navigates to the login view. A storage failure cannot block the
// transition; it only downgrades the notice.
func (m *Machine) SignOut() {
	m.setLoading(true)
	defer m.setLoading(false)

	clearErr := m.store.Clear()

	// Header removal precedes navigation so no new request reuses the token.
	m.bearer.ClearBearer()
	m.setUnauthenticated()

	m.navigator.Navigate(m.loginPath)

	if clearErr != nil {
		m.logger.Error("SignOut failed to clear token", "error", clearErr)
		m.notify(LevelError, m.messages.SignOutError, clearErr.Error())
		return
	}

	m.notify(LevelInfo, m.messages.SignOutSuccess, "")
}

func (m *Machine) notify(level Level, message, description string) {
	m.notifier.Notify(Notification{
		ID:          uuid.New(),
		Level:       level,
		Message:     message,
		Description: description,
	})
}

func (m *Machine) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = v
}

func (m *Machine) setAuthenticated(user *User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.state = StateAuthenticated
}

func (m *Machine) setUnauthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.state = StateUnauthenticated
}

// discardToken drops the persisted token and the bearer header and moves to
// Unauthenticated. Used by the guard when a token turns out to be garbage or
// expired; clear failures are logged, never propagated.
func (m *Machine) discardToken() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear rejected token", "error", err)
	}
	m.bearer.ClearBearer()
	m.setUnauthenticated()
}
