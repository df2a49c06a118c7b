package webapp

import (
	"github.com/goliatone/go-router"
)

// Middleware runs the guard pass for every request before its handler. When
// the pass decides on a redirect, the redirect wins and the handler never
// runs; otherwise the request session rides ctx.Locals for the controllers.
func (r *Runtime) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			rs := r.Bind(ctx)

			rs.Guard.PathChanged(ctx.Context(), ctx.Path())

			if target, ok := rs.Navigator.Target(); ok {
				return ctx.Redirect(target, router.StatusSeeOther)
			}

			ctx.Locals(SessionKey, rs)
			return next(ctx)
		}
	}
}
