package webapp

import (
	"fmt"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-session"
)

// SessionRoutes are the paths the controller registers.
type SessionRoutes struct {
	Login    string
	Logout   string
	Register string
}

// SessionViews are the template names the controller renders.
type SessionViews struct {
	Login    string
	Register string
}

// SessionController serves the sign-in, sign-up and sign-out routes over a
// runtime. State transitions live entirely in the session machine; the
// controller binds payloads, triggers the operation, and turns the machine's
// navigation decision into the HTTP response.
type SessionController struct {
	Debug   bool
	Logger  session.Logger
	Runtime *Runtime
	Routes  *SessionRoutes
	Views   *SessionViews
}

// SessionControllerOption configures the controller.
type SessionControllerOption func(*SessionController) *SessionController

// WithControllerLogger overrides the controller logger.
func WithControllerLogger(logger session.Logger) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithRoutes overrides the registered paths.
func WithRoutes(routes *SessionRoutes) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

// WithViews overrides the rendered templates.
func WithViews(views *SessionViews) SessionControllerOption {
	return func(c *SessionController) *SessionController {
		if views != nil {
			c.Views = views
		}
		return c
	}
}

// NewSessionController builds a controller over runtime.
func NewSessionController(runtime *Runtime, opts ...SessionControllerOption) *SessionController {
	if runtime == nil {
		panic("Missing runtime in session controller...")
	}

	c := &SessionController{
		Debug:   runtime.debug,
		Runtime: runtime,
		Routes: &SessionRoutes{
			Login:    "/auth/login",
			Logout:   "/auth/logout",
			Register: "/auth/register",
		},
		Views: &SessionViews{
			Login:    "login",
			Register: "register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Logger == nil {
		c.Logger = runtime.logger
	}

	return c
}

// RegisterSessionRoutes mounts the controller on app.
func RegisterSessionRoutes[T any](app router.Router[T], controller *SessionController) {
	app.Get(controller.Routes.Login, controller.LoginShow).SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost).SetName("sign-in.post")
	app.Get(controller.Routes.Logout, controller.LogOut).SetName("sign-out.get")
	app.Get(controller.Routes.Register, controller.RegistrationShow).SetName("register.get")
	app.Post(controller.Routes.Register, controller.RegistrationCreate).SetName("register.post")
}

// LoginShow renders the sign-in form.
func (c *SessionController) LoginShow(ctx router.Context) error {
	return ctx.Render(c.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// LoginPost runs the sign-in operation. The machine owns the outcome: on
// success it has persisted the token, primed the channel, and decided where
// to go; on failure it has flashed the notice and left the session untouched.
func (c *SessionController) LoginPost(ctx router.Context) error {
	payload := new(session.LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		c.logError("login parse payload", err)
		return ctx.Status(router.StatusBadRequest).Render(c.Views.Login, router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(c.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if c.Debug {
		fmt.Println("======= SESSION LOGIN =======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=============================")
	}

	rs := c.session(ctx)
	rs.Machine.SignIn(ctx.Context(), *payload)

	if target, ok := rs.Navigator.Target(); ok {
		return ctx.Redirect(target, router.StatusSeeOther)
	}

	return ctx.Render(c.Views.Login, router.ViewContext{
		"record": payload,
	})
}

// RegistrationShow renders the sign-up form.
func (c *SessionController) RegistrationShow(ctx router.Context) error {
	return ctx.Render(c.Views.Register, router.ViewContext{
		"errors": map[string]string{},
		"record": session.RegisterRequest{},
	})
}

// RegistrationCreate runs the sign-up operation. Success lands on the login
// form, never in an authenticated session.
func (c *SessionController) RegistrationCreate(ctx router.Context) error {
	payload := new(session.RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		c.logError("register parse payload", err)
		return ctx.Status(router.StatusBadRequest).Render(c.Views.Register, router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(c.Views.Register, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	rs := c.session(ctx)
	rs.Machine.SignUp(ctx.Context(), *payload)

	if target, ok := rs.Navigator.Target(); ok {
		return ctx.Redirect(target, router.StatusSeeOther)
	}

	return ctx.Render(c.Views.Register, router.ViewContext{
		"record": payload,
	})
}

// LogOut clears the session and sends the user to the login form.
func (c *SessionController) LogOut(ctx router.Context) error {
	rs := c.session(ctx)
	rs.Machine.SignOut()

	target := rs.Machine.LoginPath()
	if t, ok := rs.Navigator.Target(); ok {
		target = t
	}

	return ctx.Redirect(target, router.StatusSeeOther)
}

// session returns the middleware's request session, or binds a fresh one
// when the route is mounted outside the guard.
func (c *SessionController) session(ctx router.Context) *RequestSession {
	if rs := FromContext(ctx); rs != nil {
		return rs
	}
	return c.Runtime.Bind(ctx)
}

func (c *SessionController) logError(msg string, err error) {
	if c.Logger != nil {
		c.Logger.Error(msg, "error", err)
	}
}
