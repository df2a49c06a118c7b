package webapp

import "github.com/goliatone/go-session"

// RedirectNavigator collects the redirect the session machine decides on.
// HTTP handlers cannot redirect mid-flight the way a browser router can, so
// the navigator records the target and the middleware or controller turns it
// into the response. The last write wins, matching a router where a newer
// navigation replaces the pending one.
type RedirectNavigator struct {
	target string
	set    bool
}

// Navigate records the redirect target.
func (n *RedirectNavigator) Navigate(path string) {
	n.target = path
	n.set = true
}

// Target returns the pending redirect, if any.
func (n *RedirectNavigator) Target() (string, bool) {
	return n.target, n.set
}

var _ session.Navigator = (*RedirectNavigator)(nil)
