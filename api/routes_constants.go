package api

// API path constants, relative to the configured base URL
const (
	PathAuthLogin        = "/api/v1/auth/login"
	PathAuthLogout       = "/api/v1/auth/logout"
	PathPodcasts         = "/api/v1/podcasts"
	PathPodcastsGenerate = "/api/v1/podcasts/generate"
	PathConfigFeed       = "/api/v1/config/feed"
	PathConfigTelegram   = "/api/v1/config/telegram"
	PathConfigTwitter    = "/api/v1/config/twitter"
)
