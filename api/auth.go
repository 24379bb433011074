package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/podmixer-console/internal/errors"
)

// Login exchanges operator credentials for a bearer token. Rejected
// credentials return an error wrapping errors.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	data, err := doJSON[loginData](ctx, c.anon, http.MethodPost, c.url(PathAuthLogin), creds)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			return "", fmt.Errorf("[Client Login] %w: %s", errors.ErrInvalidCredentials, apiErr.Message)
		}
		return "", fmt.Errorf("[Client Login] %w", err)
	}
	if data.Token == "" {
		return "", fmt.Errorf("[Client Login] %w: response carried no token", errors.ErrInvalidToken)
	}
	return data.Token, nil
}

// Logout notifies the API that the operator signed out. Ending the session
// is local; callers may ignore the error.
func (c *Client) Logout(ctx context.Context) error {
	_, err := doJSON[any](ctx, c.authed, http.MethodGet, c.url(PathAuthLogout), nil)
	return err
}
