package session

import (
	"github.com/jrsteele09/podmixer-console/internal/errors"
	"golang.org/x/oauth2"
)

type tokenSource struct {
	m *Manager
}

// TokenSource exposes the session's bearer token to oauth2 HTTP clients. It
// fails with errors.ErrNotLoggedIn while no session is established, so
// requests never leave without credentials.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{m: m}
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	state := ts.m.State()
	if !state.LoggedIn {
		return nil, errors.ErrNotLoggedIn
	}
	return &oauth2.Token{
		AccessToken: state.Token,
		TokenType:   "Bearer",
		Expiry:      state.ExpiresAt,
	}, nil
}
