// Package webapp adapts the session machine to server-rendered consoles
// built on go-router. Each request gets its own machine wired to the
// request's cookie jar, its own backend channel, and flash-message
// notifications; the guard middleware runs one validation pass per request
// before any handler sees it.
package webapp

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-session"
	"github.com/goliatone/go-session/stock"
)

// SessionKey is the ctx.Locals slot the middleware stores the request
// session under.
const SessionKey = "session"

// Runtime builds per-request session plumbing from shared configuration.
type Runtime struct {
	config   session.Config
	http     *http.Client
	logger   session.Logger
	messages session.Messages
	debug    bool
}

// RuntimeOption customizes runtime construction.
type RuntimeOption func(*Runtime) *Runtime

// WithHTTPClient overrides the shared backend client.
func WithHTTPClient(client *http.Client) RuntimeOption {
	return func(r *Runtime) *Runtime {
		if client != nil {
			r.http = client
		}
		return r
	}
}

// WithLogger overrides the runtime logger.
func WithLogger(logger session.Logger) RuntimeOption {
	return func(r *Runtime) *Runtime {
		if logger != nil {
			r.logger = logger
		}
		return r
	}
}

// WithMessages overrides the notification copy.
func WithMessages(messages session.Messages) RuntimeOption {
	return func(r *Runtime) *Runtime {
		r.messages = messages
		return r
	}
}

// WithDebug toggles payload dumps in the controllers.
func WithDebug(debug bool) RuntimeOption {
	return func(r *Runtime) *Runtime {
		r.debug = debug
		return r
	}
}

// New returns a runtime over cfg.
func New(cfg session.Config, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		config:   cfg,
		http:     &http.Client{Timeout: 30 * time.Second},
		messages: session.DefaultMessages(),
	}

	for _, opt := range opts {
		r = opt(r)
	}

	return r
}

// RequestSession is the per-request bundle the middleware builds and the
// controllers consume.
type RequestSession struct {
	Machine   *session.Machine
	Guard     *session.Guard
	Navigator *RedirectNavigator
	Channel   *session.Channel
	Store     *CookieTokenStore
	Stock     *stock.Client
}

// Bind wires a fresh session machine to the request. The channel reads the
// bearer token through the cookie store at send time, so a token cleared
// mid-request never rides a later call.
func (r *Runtime) Bind(ctx router.Context) *RequestSession {
	store := NewCookieTokenStore(ctx, r.config.GetTokenCookieName())

	channel := session.NewChannel(r.config.GetBaseURL(),
		session.WithHTTPClient(r.http),
		session.WithTokenSource(store.Get),
	)

	navigator := &RedirectNavigator{}

	opts := []session.Option{
		session.WithTokenStore(store),
		session.WithBearerCarrier(channel),
		session.WithNavigator(navigator),
		session.WithNotifier(NewFlashNotifier(ctx)),
		session.WithMessages(r.messages),
		session.WithPaths(r.config.GetLoginPath(), r.config.GetLandingPath()),
	}
	if r.logger != nil {
		opts = append(opts, session.WithLogger(r.logger))
	}
	if maxAge := r.config.GetTokenMaxAge(); maxAge > 0 {
		opts = append(opts, session.WithTokenMaxAge(time.Duration(maxAge)*time.Second))
	}

	machine := session.New(session.NewAPIClient(channel), opts...)

	guard := session.NewGuard(machine,
		session.WithClassifier(session.PrefixClassifier(r.config.GetPublicPrefix())),
	)

	return &RequestSession{
		Machine:   machine,
		Guard:     guard,
		Navigator: navigator,
		Channel:   channel,
		Store:     store,
		Stock:     stock.NewClient(channel),
	}
}

// FromContext returns the request session the middleware stored, or nil.
func FromContext(ctx router.Context) *RequestSession {
	rs, _ := ctx.Locals(SessionKey).(*RequestSession)
	return rs
}
