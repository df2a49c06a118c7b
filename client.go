package session

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// AuthResponse is what the backend returns from both auth endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIClient implements AuthClient over a Channel.
type APIClient struct {
	channel      *Channel
	loginPath    string
	registerPath string
}

// NewAPIClient returns an auth client bound to the default endpoints.
func NewAPIClient(channel *Channel) *APIClient {
	return &APIClient{
		channel:      channel,
		loginPath:    "/auth/login",
		registerPath: "/auth/register",
	}
}

// Login exchanges credentials for a signed token.
func (c *APIClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest)
	}

	res := &AuthResponse{}
	if err := c.channel.Post(ctx, c.loginPath, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Register creates an account. The backend returns a token here too, but
// registration is deliberately decoupled from authentication: callers discard
// it and send the user through the login view.
func (c *APIClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest)
	}

	res := &AuthResponse{}
	if err := c.channel.Post(ctx, c.registerPath, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

var _ AuthClient = (*APIClient)(nil)
