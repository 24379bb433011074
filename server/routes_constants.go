package server

import "github.com/jrsteele09/podmixer-console/session"

// Route path constants
// All console routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin  = session.LoginPath
	RouteLogout = "/logout"

	// Pages
	RouteHome          = "/"
	RouteAbout         = "/about"
	RoutePodcasts      = "/podcasts"
	RouteConfiguration = "/configuration"

	// Page actions
	RoutePodcast           = "/podcasts/{id}"
	RoutePodcastDelete     = "/podcasts/{id}/delete"
	RoutePodcastToggle     = "/podcasts/{id}/toggle"
	RoutePodcastsGenerate  = "/podcasts/generate"
	RouteConfigureFeed     = "/configuration/feed"
	RouteConfigureTelegram = "/configuration/telegram"
	RouteConfigureTwitter  = "/configuration/twitter"

	// Operational
	RouteHealth = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
