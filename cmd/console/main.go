package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	mflash "github.com/goliatone/go-router/middleware/flash"
	"github.com/goliatone/go-session/webapp"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("console"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		lgr.GetLogger("config").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	runtime := webapp.New(cfg,
		webapp.WithLogger(lgr.GetLogger("session")),
		webapp.WithDebug(cfg.Debug),
	)

	engine := django.New(cfg.Views.Dir, cfg.Views.Extension)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			StrictRouting:     false,
			PassLocalsToViews: true,
			Views:             engine,
		}))
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))
	srv.Router().Use(mflash.New(mflash.ConfigDefault))
	srv.Router().Use(runtime.Middleware())

	webapp.RegisterSessionRoutes(srv.Router(), webapp.NewSessionController(runtime,
		webapp.WithControllerLogger(lgr.GetLogger("session:ctrl")),
	))
	webapp.RegisterConsoleRoutes(srv.Router(), webapp.NewConsoleController(runtime))

	srv.Router().Get("/", func(ctx router.Context) error {
		return ctx.Redirect(cfg.GetLandingPath(), router.StatusSeeOther)
	})

	lgr.GetLogger("app").Info("console listening", "address", cfg.Server.Address)
	srv.Serve(cfg.Server.Address)

	WaitExitSignal()
}

// WaitExitSignal blocks until the process receives an exit signal.
func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
