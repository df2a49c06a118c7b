package webapp

import (
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/goliatone/go-session"
)

// FlashNotifier renders session notifications as flash messages on the
// response. Success and info notices flash as success, warnings and errors
// flash as errors, which is all the flash layer distinguishes.
type FlashNotifier struct {
	ctx router.Context
}

// NewFlashNotifier binds a notifier to the request.
func NewFlashNotifier(ctx router.Context) *FlashNotifier {
	return &FlashNotifier{ctx: ctx}
}

// Notify satisfies the session.Notifier interface.
func (f *FlashNotifier) Notify(n session.Notification) {
	data := router.ViewContext{
		"system_message": n.Message,
	}
	if n.Description != "" {
		data["system_detail"] = n.Description
	}

	switch n.Level {
	case session.LevelWarning, session.LevelError:
		data["error_message"] = n.Message
		flash.WithError(f.ctx, data)
	default:
		flash.WithSuccess(f.ctx, data)
	}
}

var _ session.Notifier = (*FlashNotifier)(nil)
