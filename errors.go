package session

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	// TextCodeTokenMalformed marks tokens that fail to decode.
	TextCodeTokenMalformed = "SESSION_TOKEN_MALFORMED"
	// TextCodeTokenExpired marks well-formed tokens past their exp claim.
	TextCodeTokenExpired = "SESSION_TOKEN_EXPIRED"
	// TextCodeNoResponse marks requests that never produced a response.
	TextCodeNoResponse = "SESSION_NO_RESPONSE"
	// TextCodeServerRejection marks non-2xx responses.
	TextCodeServerRejection = "SESSION_SERVER_REJECTION"
)

// ErrTokenMalformed is returned when a persisted token cannot be decoded.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a decoded token's exp claim is in the past.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrNoResponse is the transport-level failure: the request was sent but no
// response came back (network, DNS).
var ErrNoResponse = errors.New("no response received from server", errors.CategoryOperation).
	WithTextCode(TextCodeNoResponse)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsTokenMalformedError will check for decode failures
func IsTokenMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed")
}

// IsTransportError reports whether err means the request got no response.
func IsTransportError(err error) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == TextCodeNoResponse
	}
	return false
}

// IsServerRejection reports whether err carries a non-2xx backend response.
func IsServerRejection(err error) bool {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == TextCodeServerRejection
	}
	return false
}

// RejectionStatus returns the HTTP status carried by a server rejection, or 0.
func RejectionStatus(err error) int {
	var rich *errors.Error
	if !errors.As(err, &rich) || rich.TextCode != TextCodeServerRejection {
		return 0
	}
	if status, ok := rich.Metadata["status"].(int); ok {
		return status
	}
	return 0
}

// failureMessage resolves the user-facing description for a failed operation:
// the backend's message when the rejection carried one, the transport error
// text otherwise, and the generic fallback as a last resort.
func failureMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.Message != "" {
		return rich.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}
