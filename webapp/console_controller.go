package webapp

import (
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
	"github.com/goliatone/go-session"
	"github.com/goliatone/go-session/stock"
)

// ConsoleViews are the template names for the inventory pages.
type ConsoleViews struct {
	Dashboard string
	Products  string
	Suppliers string
	Entries   string
	Exits     string
}

// ConsoleController serves the protected inventory pages. Every handler
// assumes the guard middleware already ran; a request that reaches these
// routes carries a validated session and a primed channel.
type ConsoleController struct {
	Logger  session.Logger
	Runtime *Runtime
	Views   *ConsoleViews
}

// NewConsoleController builds the inventory controller over runtime.
func NewConsoleController(runtime *Runtime) *ConsoleController {
	if runtime == nil {
		panic("Missing runtime in console controller...")
	}

	return &ConsoleController{
		Logger:  runtime.logger,
		Runtime: runtime,
		Views: &ConsoleViews{
			Dashboard: "dashboard",
			Products:  "products",
			Suppliers: "suppliers",
			Entries:   "entries",
			Exits:     "exits",
		},
	}
}

// RegisterConsoleRoutes mounts the inventory pages on app.
func RegisterConsoleRoutes[T any](app router.Router[T], controller *ConsoleController) {
	app.Get("/dashboard", controller.Dashboard).SetName("dashboard.get")

	app.Get("/produtos", controller.Products).SetName("products.get")
	app.Post("/produtos", controller.CreateProduct).SetName("products.post")
	app.Post("/produtos/:id/delete", controller.DeleteProduct).SetName("products.delete")

	app.Get("/fornecedores", controller.Suppliers).SetName("suppliers.get")
	app.Post("/fornecedores", controller.CreateSupplier).SetName("suppliers.post")

	app.Get("/entradas", controller.Entries).SetName("entries.get")
	app.Post("/entradas", controller.CreateEntry).SetName("entries.post")

	app.Get("/saidas", controller.Exits).SetName("exits.get")
	app.Post("/saidas", controller.CreateExit).SetName("exits.post")
}

// Dashboard renders the overview aggregates.
func (c *ConsoleController) Dashboard(ctx router.Context) error {
	rs := c.session(ctx)

	overview, err := rs.Stock.Overview(ctx.Context())
	if err != nil {
		return c.renderError(ctx, rs, c.Views.Dashboard, err, router.ViewContext{
			"overview": &stock.DashboardOverview{},
		})
	}

	return ctx.Render(c.Views.Dashboard, router.ViewContext{
		"overview": overview,
		"user":     rs.Machine.CurrentUser(),
	})
}

// Products renders the product list.
func (c *ConsoleController) Products(ctx router.Context) error {
	rs := c.session(ctx)

	products, err := rs.Stock.Products(ctx.Context())
	if err != nil {
		return c.renderError(ctx, rs, c.Views.Products, err, router.ViewContext{
			"products": []stock.Product{},
		})
	}

	return ctx.Render(c.Views.Products, router.ViewContext{
		"products": products,
		"user":     rs.Machine.CurrentUser(),
	})
}

// CreateProduct handles the product form.
func (c *ConsoleController) CreateProduct(ctx router.Context) error {
	rs := c.session(ctx)

	payload := new(stock.ProductRequest)
	if err := ctx.Bind(payload); err != nil {
		c.logError("product parse payload", err)
		return ctx.Redirect("/produtos", router.StatusSeeOther)
	}

	if _, err := rs.Stock.CreateProduct(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Redirect("/produtos", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Produto cadastrado com sucesso!",
	}).Redirect("/produtos", router.StatusSeeOther)
}

// DeleteProduct removes a product.
func (c *ConsoleController) DeleteProduct(ctx router.Context) error {
	rs := c.session(ctx)

	id := int64(ctx.ParamsInt("id", 0))
	if id == 0 {
		return ctx.Redirect("/produtos", router.StatusSeeOther)
	}

	if err := rs.Stock.DeleteProduct(ctx.Context(), id); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Redirect("/produtos", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Produto removido.",
	}).Redirect("/produtos", router.StatusSeeOther)
}

// Suppliers renders the supplier list.
func (c *ConsoleController) Suppliers(ctx router.Context) error {
	rs := c.session(ctx)

	suppliers, err := rs.Stock.Suppliers(ctx.Context())
	if err != nil {
		return c.renderError(ctx, rs, c.Views.Suppliers, err, router.ViewContext{
			"suppliers": []stock.Supplier{},
		})
	}

	return ctx.Render(c.Views.Suppliers, router.ViewContext{
		"suppliers": suppliers,
		"user":      rs.Machine.CurrentUser(),
	})
}

// CreateSupplier handles the supplier form.
func (c *ConsoleController) CreateSupplier(ctx router.Context) error {
	rs := c.session(ctx)

	payload := new(stock.Supplier)
	if err := ctx.Bind(payload); err != nil {
		c.logError("supplier parse payload", err)
		return ctx.Redirect("/fornecedores", router.StatusSeeOther)
	}

	if _, err := rs.Stock.CreateSupplier(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Redirect("/fornecedores", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Fornecedor cadastrado com sucesso!",
	}).Redirect("/fornecedores", router.StatusSeeOther)
}

// Entries renders the stock entries list.
func (c *ConsoleController) Entries(ctx router.Context) error {
	rs := c.session(ctx)

	entries, err := rs.Stock.Entries(ctx.Context())
	if err != nil {
		return c.renderError(ctx, rs, c.Views.Entries, err, router.ViewContext{
			"entries": []stock.StockEntry{},
		})
	}

	return ctx.Render(c.Views.Entries, router.ViewContext{
		"entries": entries,
		"user":    rs.Machine.CurrentUser(),
	})
}

// CreateEntry handles the stock entry form.
func (c *ConsoleController) CreateEntry(ctx router.Context) error {
	rs := c.session(ctx)

	payload := new(stock.StockEntryRequest)
	if err := ctx.Bind(payload); err != nil {
		c.logError("entry parse payload", err)
		return ctx.Redirect("/entradas", router.StatusSeeOther)
	}

	if _, err := rs.Stock.CreateEntry(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Redirect("/entradas", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Entrada registrada com sucesso!",
	}).Redirect("/entradas", router.StatusSeeOther)
}

// Exits renders the stock exits list.
func (c *ConsoleController) Exits(ctx router.Context) error {
	rs := c.session(ctx)

	exits, err := rs.Stock.Exits(ctx.Context())
	if err != nil {
		return c.renderError(ctx, rs, c.Views.Exits, err, router.ViewContext{
			"exits": []stock.StockExit{},
		})
	}

	return ctx.Render(c.Views.Exits, router.ViewContext{
		"exits": exits,
		"user":  rs.Machine.CurrentUser(),
	})
}

// CreateExit handles the stock exit form.
func (c *ConsoleController) CreateExit(ctx router.Context) error {
	rs := c.session(ctx)

	payload := new(stock.StockExitRequest)
	if err := ctx.Bind(payload); err != nil {
		c.logError("exit parse payload", err)
		return ctx.Redirect("/saidas", router.StatusSeeOther)
	}

	if _, err := rs.Stock.CreateExit(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Redirect("/saidas", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Saída registrada com sucesso!",
	}).Redirect("/saidas", router.StatusSeeOther)
}

// renderError renders the page with an error flash. A 401 here means the
// backend rejected a token the client-side pass accepted; the flash copy
// tells the user to sign in again.
func (c *ConsoleController) renderError(ctx router.Context, rs *RequestSession, view string, err error, data router.ViewContext) error {
	c.logError("backend request failed", err)

	data["user"] = rs.Machine.CurrentUser()

	return flash.WithError(ctx, router.ViewContext{
		"error_message": err.Error(),
	}).Render(view, data)
}

func (c *ConsoleController) logError(msg string, err error) {
	if c.Logger != nil {
		c.Logger.Error(msg, "error", err)
	}
}

// session returns the middleware's request session, or binds a fresh one.
func (c *ConsoleController) session(ctx router.Context) *RequestSession {
	if rs := FromContext(ctx); rs != nil {
		return rs
	}
	return c.Runtime.Bind(ctx)
}
