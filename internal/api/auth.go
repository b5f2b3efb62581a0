package api

import "context"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Signup creates an account and returns the session's bearer token.
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	var tr tokenResponse
	if err := c.postJSON(ctx, "/auth/signup", credentials{Email: email, Password: password}, &tr, false); err != nil {
		return "", err
	}
	return tr.AccessToken, nil
}

// Login authenticates an existing account and returns a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var tr tokenResponse
	if err := c.postJSON(ctx, "/auth/login", credentials{Email: email, Password: password}, &tr, false); err != nil {
		return "", err
	}
	return tr.AccessToken, nil
}
