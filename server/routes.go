package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Pages
	s.RegisterRouteFunc("GET "+RouteAbout, ChainMiddleware(s.AboutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RoutePodcasts, ChainMiddleware(s.PodcastsPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RoutePodcasts, ChainMiddleware(s.PodcastCreateHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RoutePodcast, ChainMiddleware(s.PodcastUpdateHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RoutePodcastDelete, ChainMiddleware(s.PodcastDeleteHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RoutePodcastToggle, ChainMiddleware(s.PodcastToggleHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RoutePodcastsGenerate, ChainMiddleware(s.PodcastsGenerateHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteConfiguration, ChainMiddleware(s.ConfigurationPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteConfigureFeed, ChainMiddleware(s.FeedSaveHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteConfigureTelegram, ChainMiddleware(s.TelegramSaveHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteConfigureTwitter, ChainMiddleware(s.TwitterSaveHandler(), s.HTMLMiddleWare()...))

	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RequestIDMiddleware, s.LoggingMiddleware))
	s.RegisterRouteFunc("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))

	// "GET /" matches every unregistered path, so the home page only answers "/"
	s.RegisterRouteFunc("GET "+RouteHome, ChainMiddleware(s.HomeHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamFile(w, r, filePath); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Str("path", filePath).Msg("static file not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
