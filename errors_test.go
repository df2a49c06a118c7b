package session_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestTokenErrorHelpers(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		assert.True(t, session.IsTokenExpiredError(session.ErrTokenExpired))
		assert.False(t, session.IsTokenExpiredError(session.ErrTokenMalformed))
		assert.False(t, session.IsTokenExpiredError(nil))
	})

	t.Run("malformed", func(t *testing.T) {
		assert.True(t, session.IsTokenMalformedError(session.ErrTokenMalformed))
		assert.False(t, session.IsTokenMalformedError(session.ErrTokenExpired))
		assert.False(t, session.IsTokenMalformedError(nil))
	})

	t.Run("wrapped rich errors keep their text code", func(t *testing.T) {
		_, err := session.DecodeIdentity("not.a.jwt")
		assert.True(t, session.IsTokenMalformedError(err))
	})

	t.Run("plain errors match on message", func(t *testing.T) {
		assert.True(t, session.IsTokenExpiredError(fmt.Errorf("upstream: token is expired")))
		assert.True(t, session.IsTokenMalformedError(fmt.Errorf("upstream: token is malformed")))
		assert.False(t, session.IsTokenExpiredError(fmt.Errorf("something else")))
	})
}

func TestTransportAndRejectionHelpers(t *testing.T) {
	rejection := errors.New("Usuário e/ou senha inválidos.", errors.CategoryAuth).
		WithTextCode(session.TextCodeServerRejection).
		WithCode(401).
		WithMetadata(map[string]any{"status": 401})

	transport := errors.Wrap(fmt.Errorf("dial tcp: connection refused"),
		session.ErrNoResponse.Category, session.ErrNoResponse.Message).
		WithTextCode(session.TextCodeNoResponse)

	assert.True(t, session.IsServerRejection(rejection))
	assert.False(t, session.IsServerRejection(transport))
	assert.False(t, session.IsServerRejection(nil))

	assert.True(t, session.IsTransportError(transport))
	assert.False(t, session.IsTransportError(rejection))
	assert.False(t, session.IsTransportError(nil))

	assert.Equal(t, 401, session.RejectionStatus(rejection))
	assert.Zero(t, session.RejectionStatus(transport))
	assert.Zero(t, session.RejectionStatus(fmt.Errorf("plain")))
}
