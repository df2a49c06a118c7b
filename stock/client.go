// Package stock is the typed client for the inventory backend: products,
// suppliers, stock entries and exits, and the dashboard overview. Every call
// rides the session channel, so the bearer header the session machine manages
// is applied automatically.
package stock

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-session"
)

const (
	productsPath  = "/api/produtos"
	suppliersPath = "/api/fornecedores"
	entriesPath   = "/api/entradas"
	exitsPath     = "/api/saidas"
	overviewPath  = "/dashboard/overview"
)

// Client wraps a session channel with the inventory endpoints.
type Client struct {
	channel *session.Channel
}

// NewClient returns a stock client over channel.
func NewClient(channel *session.Channel) *Client {
	return &Client{channel: channel}
}

// Products lists every product.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.channel.Get(ctx, productsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches one product by id.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	out := &Product{}
	if err := c.channel.Get(ctx, fmt.Sprintf("%s/%d", productsPath, id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &Product{}
	if err := c.channel.Post(ctx, productsPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProduct updates a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &Product{}
	if err := c.channel.Put(ctx, fmt.Sprintf("%s/%d", productsPath, id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.channel.Delete(ctx, fmt.Sprintf("%s/%d", productsPath, id))
}

// Suppliers lists every supplier.
func (c *Client) Suppliers(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	if err := c.channel.Get(ctx, suppliersPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Supplier fetches one supplier by id.
func (c *Client) Supplier(ctx context.Context, id int64) (*Supplier, error) {
	out := &Supplier{}
	if err := c.channel.Get(ctx, fmt.Sprintf("%s/%d", suppliersPath, id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSupplier creates a supplier.
func (c *Client) CreateSupplier(ctx context.Context, req Supplier) (*Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &Supplier{}
	if err := c.channel.Post(ctx, suppliersPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSupplier updates a supplier.
func (c *Client) UpdateSupplier(ctx context.Context, id int64, req Supplier) (*Supplier, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &Supplier{}
	if err := c.channel.Put(ctx, fmt.Sprintf("%s/%d", suppliersPath, id), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteSupplier deletes a supplier.
func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.channel.Delete(ctx, fmt.Sprintf("%s/%d", suppliersPath, id))
}

// Entries lists every stock entry.
func (c *Client) Entries(ctx context.Context) ([]StockEntry, error) {
	var out []StockEntry
	if err := c.channel.Get(ctx, entriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEntry records a stock entry.
func (c *Client) CreateEntry(ctx context.Context, req StockEntryRequest) (*StockEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &StockEntry{}
	if err := c.channel.Post(ctx, entriesPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEntry removes a stock entry; the backend restores the quantities.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return c.channel.Delete(ctx, fmt.Sprintf("%s/%d", entriesPath, id))
}

// Exits lists every stock exit.
func (c *Client) Exits(ctx context.Context) ([]StockExit, error) {
	var out []StockExit
	if err := c.channel.Get(ctx, exitsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExit records a stock exit.
func (c *Client) CreateExit(ctx context.Context, req StockExitRequest) (*StockExit, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}

	out := &StockExit{}
	if err := c.channel.Post(ctx, exitsPath, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteExit removes a stock exit.
func (c *Client) DeleteExit(ctx context.Context, id int64) error {
	return c.channel.Delete(ctx, fmt.Sprintf("%s/%d", exitsPath, id))
}

// Overview fetches the dashboard aggregates.
func (c *Client) Overview(ctx context.Context) (*DashboardOverview, error) {
	out := &DashboardOverview{}
	if err := c.channel.Get(ctx, overviewPath, out); err != nil {
		return nil, err
	}
	return out, nil
}

func invalid(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, err.Error()).
		WithCode(errors.CodeBadRequest)
}
