package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/rs/zerolog"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "login", "Sign in")
		data.Name = r.URL.Query().Get("name")
		s.renderPage(w, r, loginTemplate, data)
	}
}

// LoginSubmissionHandler exchanges the submitted credentials for a token and
// hands it to the session manager (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		if !s.loginLimiter.Allow() {
			logger.Warn().Msg("login rate limit exceeded")
			redirectWith(w, r, RouteLogin, "error", "Too many login attempts, try again shortly")
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		creds := api.Credentials{
			Name:     strings.TrimSpace(r.FormValue("name")),
			Password: r.FormValue("password"),
		}
		if creds.Name == "" || creds.Password == "" {
			redirectWith(w, r, RouteLogin, "error", "Name and password are required")
			return
		}

		raw, err := s.api.Login(r.Context(), creds)
		if err != nil {
			logger.Info().Err(err).Str("name", creds.Name).Msg("login rejected")
			msg := "Login failed, try again"
			if errors.Is(err, errors.ErrInvalidCredentials) {
				msg = "Invalid name or password"
			}
			redirectWith(w, r, RouteLogin, "error", msg)
			return
		}

		if _, err := s.session.Login(r.Context(), raw); err != nil {
			logger.Warn().Err(err).Msg("issued token could not establish a session")
			redirectWith(w, r, RouteLogin, "error", "The issued session is not valid")
			return
		}

		http.Redirect(w, r, RouteHome, http.StatusSeeOther)
	}
}

// LogoutHandler ends the session and returns to the login page (GET /logout).
// The API is told first while the token is still attached.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.Logout(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("api logout notification failed")
		}
		s.session.Logout(r.Context())
		redirectWith(w, r, RouteLogin, "message", "You have been signed out")
	}
}
