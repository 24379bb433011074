package server

import (
	"net/http"
	"strings"
)

// publicPaths render regardless of the session
var publicPaths = map[string]struct{}{
	RouteAbout:  {},
	RouteHealth: {},
}

func isPublic(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return strings.HasPrefix(path, "/css/")
}

// Decide applies the route guard to a navigation towards path. It returns the
// path to redirect to, or ok when path may be rendered as is.
//
//   - logged out, protected path: redirect to the login page
//   - logged in, login page: redirect to the home page
func Decide(loggedIn bool, path string) (redirect string, ok bool) {
	switch {
	case path == RouteLogin:
		if loggedIn {
			return RouteHome, false
		}
		return "", true
	case isPublic(path):
		return "", true
	case !loggedIn:
		return RouteLogin, false
	default:
		return "", true
	}
}

// GuardMiddleware evaluates Decide against the live session on every request.
func (s *Server) GuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redirect, ok := Decide(s.session.IsLoggedIn(), r.URL.Path); !ok {
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
