package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// IdentityClaims is the decoded view of the persisted token: the standard
// registered claims plus the custom name/email subject claims the backend
// issues. Instances are ephemeral and recomputed on every validation pass.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// User maps the subject claims into the in-memory session identity.
func (c *IdentityClaims) User() *User {
	return &User{Name: c.Name, Email: c.Email}
}

// ExpiredAt reports whether the exp claim is in the past relative to now.
// A token without an exp claim never expires client-side; the backend stays
// the authority either way.
func (c *IdentityClaims) ExpiredAt(now time.Time) bool {
	if c.RegisteredClaims.ExpiresAt == nil {
		return false
	}
	return c.RegisteredClaims.ExpiresAt.Time.Before(now)
}

// Expires returns the expiration time, or the zero time when absent.
func (c *IdentityClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// DecodeIdentity decodes a token's payload without verifying its signature.
// Signature verification belongs to the backend, which re-validates the token
// on every protected call; decoding here only drives UI state. The error is a
// decode failure exclusively: a well-formed token past its exp claim decodes
// fine, expiry is ExpiredAt's job.
func DecodeIdentity(raw string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(TextCodeTokenMalformed).
			WithCode(errors.CodeUnauthorized)
	}

	return claims, nil
}
