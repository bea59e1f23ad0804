package backend

import (
	"context"
	"net/http"
)

// Identity is the response of the identity probe
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

// Credentials is the login/signup body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Me asks the backend who the current session belongs to
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	return c.doRequest(ctx, http.MethodPost, "/auth/login", nil, creds, nil)
}

// Signup creates an account. It does not authenticate the session.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	return c.doRequest(ctx, http.MethodPost, "/auth/signup", nil, creds, nil)
}

// Logout ends the backend session
func (c *Client) Logout(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// GoogleAuthURL returns the federated login entry point
func (c *Client) GoogleAuthURL() string {
	return c.URL("/auth/google", nil)
}
