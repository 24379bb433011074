package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/internal/config"
	"github.com/jrsteele09/podmixer-console/session"
	"golang.org/x/time/rate"
)

// Server is the console's HTTP front end. All pages read the operator's
// session from one session.Manager.
type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	session      *session.Manager
	api          *api.Client
	loginLimiter *rate.Limiter
	layout       *template.Template
	pages        map[string]*template.Template
}

func New(config config.Config, manager *session.Manager, client *api.Client) (*Server, error) {
	s := &Server{
		env:     config.GetEnv(),
		mux:     http.NewServeMux(),
		config:  config,
		session: manager,
		api:     client,
		loginLimiter: rate.NewLimiter(
			rate.Limit(float64(config.GetLoginRatePerMinute())/60),
			config.GetLoginBurst(),
		),
	}

	layout, pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	s.layout, s.pages = layout, pages

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
