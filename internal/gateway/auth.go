package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/arcana/internal/identity/domain"
)

// MessageResponse is a bare {message} answer.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login exchanges email and password for a credential.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users/login",
		Body:   map[string]string{"email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginWithGoogle exchanges a Google ID token for a credential.
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users/login/google",
		Body:   map[string]string{"idToken": idToken},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. It does not authenticate.
func (c *Client) Register(ctx context.Context, name, email, password string) (*domain.RegisterResult, error) {
	var out domain.RegisterResult
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   map[string]string{"name": name, "email": email, "password": password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail confirms the address owning token.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/users/verify-email",
		Query:  url.Values{"token": {token}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCurrentUser returns the identity behind the attached credential.
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/users/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
