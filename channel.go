package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
)

// TokenSource supplies the bearer token at send time. Channels configured
// with one read the token on every request instead of relying on the mutable
// default header, which keeps a request from racing ahead with a stale token.
type TokenSource func() (string, bool)

// Channel is the HTTP client used for all backend calls. It owns the mutable
// default-header slot the machine writes the bearer header into, and it maps
// every failure into the session error taxonomy at this boundary.
type Channel struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	headers map[string]string
	source  TokenSource

	logger Logger
}

// ChannelOption customizes channel construction.
type ChannelOption func(*Channel)

// WithHTTPClient overrides the underlying client; timeout policy lives there.
func WithHTTPClient(client *http.Client) ChannelOption {
	return func(c *Channel) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTokenSource installs a read-on-send token hook.
func WithTokenSource(source TokenSource) ChannelOption {
	return func(c *Channel) {
		c.source = source
	}
}

// WithChannelLogger overrides the channel logger.
func WithChannelLogger(logger Logger) ChannelOption {
	return func(c *Channel) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChannel returns a channel rooted at baseURL.
func NewChannel(baseURL string, opts ...ChannelOption) *Channel {
	c := &Channel{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		headers: map[string]string{},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// SetHeader sets a default header applied to every outgoing request.
func (c *Channel) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// DeleteHeader removes a default header; removing an absent key is a no-op.
func (c *Channel) DeleteHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.headers, key)
}

// Header reads back a default header.
func (c *Channel) Header(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.headers[key]
	return v, ok
}

// SetBearer writes the Authorization default header.
func (c *Channel) SetBearer(token string) {
	c.SetHeader("Authorization", "Bearer "+token)
}

// ClearBearer removes the Authorization default header.
func (c *Channel) ClearBearer() {
	c.DeleteHeader("Authorization")
}

var _ BearerCarrier = (*Channel)(nil)

// Get issues a GET and decodes the JSON response into out when non-nil.
func (c *Channel) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Channel) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Channel) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE; the backend answers 204 on soft deletes.
func (c *Channel) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// rejectionBody is the only shape we trust in error responses.
type rejectionBody struct {
	Message string `json:"message"`
}

func (c *Channel) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyHeaders(req)

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request transport failure", "method", method, "path", path, "error", err)
		return errors.Wrap(err, ErrNoResponse.Category, ErrNoResponse.Message).
			WithTextCode(TextCodeNoResponse).
			WithMetadata(map[string]any{
				"method": method,
				"path":   path,
			})
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to read response body").
			WithMetadata(map[string]any{"status": res.StatusCode})
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.rejection(method, path, res.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to decode response body").
				WithMetadata(map[string]any{"status": res.StatusCode})
		}
	}

	return nil
}

// applyHeaders copies the default headers onto the request and lets the token
// source, when configured, win over any stored Authorization value.
func (c *Channel) applyHeaders(req *http.Request) {
	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	source := c.source
	c.mu.RUnlock()

	if source == nil {
		return
	}

	if token, ok := source(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Del("Authorization")
	}
}

// rejection builds the structured error for a non-2xx response. The message
// priority mirrors what views display: the backend's message field when the
// body is machine-readable, the HTTP status text otherwise.
func (c *Channel) rejection(method, path string, status int, payload []byte) error {
	message := http.StatusText(status)

	var parsed rejectionBody
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &parsed); err == nil && parsed.Message != "" {
			message = parsed.Message
		}
	}

	category := errors.CategoryOperation
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		category = errors.CategoryAuth
	}

	c.logger.Debug("request rejected", "method", method, "path", path, "status", status)

	return errors.New(message, category).
		WithTextCode(TextCodeServerRejection).
		WithCode(status).
		WithMetadata(map[string]any{
			"status": status,
			"method": method,
			"path":   path,
		})
}
