package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a bearer token via the form-encoded
// POST /token endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.doJSON(req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// registerRequest is the JSON payload of POST /register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, email, password string) (*Token, error) {
	var token Token
	if err := c.postJSON(ctx, "/register", registerRequest{Email: email, Password: password}, "", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Me returns the account behind the given token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
