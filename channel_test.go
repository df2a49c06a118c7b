package session_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newCaptureServer(status int, body string) (*httptest.Server, *captured) {
	cap := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.header = r.Header.Clone()
		cap.body, _ = io.ReadAll(r.Body)
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	return srv, cap
}

func TestChannelRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("GET decodes the response", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, `{"name":"Ana"}`)
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		var out struct {
			Name string `json:"name"`
		}
		require.NoError(t, channel.Get(ctx, "/whoami", &out))
		assert.Equal(t, http.MethodGet, cap.method)
		assert.Equal(t, "/whoami", cap.path)
		assert.Equal(t, "Ana", out.Name)
	})

	t.Run("POST encodes the body as JSON", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusCreated, `{}`)
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		payload := map[string]string{"email": "ana@x.com"}
		require.NoError(t, channel.Post(ctx, "/auth/login", payload, nil))

		assert.Equal(t, "application/json", cap.header.Get("Content-Type"))
		assert.JSONEq(t, `{"email":"ana@x.com"}`, string(cap.body))
	})

	t.Run("DELETE accepts an empty 204", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusNoContent, "")
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		require.NoError(t, channel.Delete(ctx, "/api/produtos/9"))
		assert.Equal(t, http.MethodDelete, cap.method)
	})

	t.Run("trailing slash on the base URL is trimmed", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL + "/")
		require.NoError(t, channel.Get(ctx, "/dashboard/overview", nil))
		assert.Equal(t, "/dashboard/overview", cap.path)
	})
}

func TestChannelHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("default headers ride every request", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		channel.SetHeader("X-Console", "estoque")
		require.NoError(t, channel.Get(ctx, "/ping", nil))
		assert.Equal(t, "estoque", cap.header.Get("X-Console"))
	})

	t.Run("SetBearer installs the Authorization header", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		channel.SetBearer("tok-123")
		require.NoError(t, channel.Get(ctx, "/ping", nil))
		assert.Equal(t, "Bearer tok-123", cap.header.Get("Authorization"))

		value, ok := channel.Header("Authorization")
		require.True(t, ok)
		assert.Equal(t, "Bearer tok-123", value)
	})

	t.Run("ClearBearer removes it", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		channel.SetBearer("tok-123")
		channel.ClearBearer()
		require.NoError(t, channel.Get(ctx, "/ping", nil))
		assert.Empty(t, cap.header.Get("Authorization"))
	})

	t.Run("token source wins over the stored header", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL, session.WithTokenSource(func() (string, bool) {
			return "fresh", true
		}))
		channel.SetBearer("stale")
		require.NoError(t, channel.Get(ctx, "/ping", nil))
		assert.Equal(t, "Bearer fresh", cap.header.Get("Authorization"))
	})

	t.Run("empty token source strips the header", func(t *testing.T) {
		srv, cap := newCaptureServer(http.StatusOK, "{}")
		defer srv.Close()

		channel := session.NewChannel(srv.URL, session.WithTokenSource(func() (string, bool) {
			return "", false
		}))
		channel.SetBearer("stale")
		require.NoError(t, channel.Get(ctx, "/ping", nil))
		assert.Empty(t, cap.header.Get("Authorization"))
	})
}

func TestChannelRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("401 surfaces the backend message", func(t *testing.T) {
		srv, _ := newCaptureServer(http.StatusUnauthorized, `{"message":"Usuário e/ou senha inválidos."}`)
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		err := channel.Post(ctx, "/auth/login", map[string]string{}, nil)
		require.Error(t, err)

		assert.True(t, session.IsServerRejection(err))
		assert.Equal(t, http.StatusUnauthorized, session.RejectionStatus(err))
		assert.Contains(t, err.Error(), "Usuário e/ou senha inválidos.")
	})

	t.Run("409 carries its status", func(t *testing.T) {
		srv, _ := newCaptureServer(http.StatusConflict, `{"message":"E-mail já cadastrado."}`)
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		err := channel.Post(ctx, "/auth/register", map[string]string{}, nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, session.RejectionStatus(err))
	})

	t.Run("unparseable body falls back to the status text", func(t *testing.T) {
		srv, _ := newCaptureServer(http.StatusInternalServerError, `<html>oops</html>`)
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		err := channel.Get(ctx, "/dashboard/overview", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), http.StatusText(http.StatusInternalServerError))
	})

	t.Run("empty error body falls back to the status text", func(t *testing.T) {
		srv, _ := newCaptureServer(http.StatusNotFound, "")
		defer srv.Close()

		channel := session.NewChannel(srv.URL)
		err := channel.Get(ctx, "/api/produtos/404", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), http.StatusText(http.StatusNotFound))
	})
}

func TestChannelTransportFailure(t *testing.T) {
	// Point at a closed server so the dial fails before any response.
	srv, _ := newCaptureServer(http.StatusOK, "{}")
	url := srv.URL
	srv.Close()

	channel := session.NewChannel(url)
	err := channel.Get(context.Background(), "/ping", nil)
	require.Error(t, err)

	assert.True(t, session.IsTransportError(err))
	assert.False(t, session.IsServerRejection(err))
	assert.Zero(t, session.RejectionStatus(err))
}
