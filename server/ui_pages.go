package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/rs/zerolog"
)

// HomeHandler renders the landing page. "GET /" is the mux catch-all, so any
// other path is a 404.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteHome {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		s.renderPage(w, r, homeTemplate, s.newPageData(r, "home", "Home"))
	}
}

func (s *Server) AboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, aboutTemplate, s.newPageData(r, "about", "About"))
	}
}

func (s *Server) PodcastsPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "podcasts", "Podcasts")
		podcasts, err := s.api.ListPodcasts(r.Context())
		if err != nil {
			if s.handleAPIError(w, r, err) {
				return
			}
			data.Error = apiErrorMessage(err)
		}
		data.Podcasts = podcasts
		data.DefaultPubDate = NowTimeFunc().UTC().Format(pubDateLayout)
		s.renderPage(w, r, podcastsTemplate, data)
	}
}

func (s *Server) PodcastCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		var podcast api.Podcast
		if problem := applyPodcastForm(r, &podcast); problem != "" {
			redirectWith(w, r, RoutePodcasts, "error", problem)
			return
		}
		if _, err := s.api.CreatePodcast(r.Context(), podcast); err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		redirectWith(w, r, RoutePodcasts, "message", "Podcast added")
	}
}

// PodcastUpdateHandler edits the name, URL, active flag and republish
// watermark of one podcast.
func (s *Server) PodcastUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := podcastID(r)
		if err != nil {
			redirectWith(w, r, RoutePodcasts, "error", "Unknown podcast")
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		podcast, ok, err := s.findPodcast(r, id)
		if err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		if !ok {
			redirectWith(w, r, RoutePodcasts, "error", "Unknown podcast")
			return
		}
		if problem := applyPodcastForm(r, &podcast); problem != "" {
			redirectWith(w, r, RoutePodcasts, "error", problem)
			return
		}
		if _, err := s.api.UpdatePodcast(r.Context(), podcast); err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		redirectWith(w, r, RoutePodcasts, "message", "Podcast updated")
	}
}

func (s *Server) PodcastDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := podcastID(r)
		if err != nil {
			redirectWith(w, r, RoutePodcasts, "error", "Unknown podcast")
			return
		}
		if err := s.api.DeletePodcast(r.Context(), id); err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		redirectWith(w, r, RoutePodcasts, "message", "Podcast deleted")
	}
}

// PodcastToggleHandler flips the active flag of one podcast.
func (s *Server) PodcastToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := podcastID(r)
		if err != nil {
			redirectWith(w, r, RoutePodcasts, "error", "Unknown podcast")
			return
		}
		podcast, ok, err := s.findPodcast(r, id)
		if err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		if !ok {
			redirectWith(w, r, RoutePodcasts, "error", "Unknown podcast")
			return
		}
		podcast.Active = !podcast.Active
		if _, err := s.api.UpdatePodcast(r.Context(), podcast); err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		redirectWith(w, r, RoutePodcasts, "message", "Podcast updated")
	}
}

// findPodcast looks id up in the podcast list; the API has no single
// podcast lookup.
func (s *Server) findPodcast(r *http.Request, id int64) (api.Podcast, bool, error) {
	podcasts, err := s.api.ListPodcasts(r.Context())
	if err != nil {
		return api.Podcast{}, false, err
	}
	for _, p := range podcasts {
		if p.ID == id {
			return p, true, nil
		}
	}
	return api.Podcast{}, false, nil
}

func (s *Server) PodcastsGenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.api.GenerateFeeds(r.Context()); err != nil {
			s.redirectAPIError(w, r, RoutePodcasts, err)
			return
		}
		redirectWith(w, r, RoutePodcasts, "message", "Feeds generated")
	}
}

// ConfigurationPageHandler renders the feed, Telegram and Twitter settings.
// The first failing lookup is reported; the other forms still render.
func (s *Server) ConfigurationPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.newPageData(r, "configuration", "Configuration")
		ctx := r.Context()

		var errs []error
		feed, err := s.api.GetFeed(ctx)
		errs = append(errs, err)
		telegram, err := s.api.GetTelegram(ctx)
		errs = append(errs, err)
		twitter, err := s.api.GetTwitter(ctx)
		errs = append(errs, err)

		for _, err := range errs {
			if err == nil {
				continue
			}
			if s.handleAPIError(w, r, err) {
				return
			}
			if data.Error == "" {
				data.Error = apiErrorMessage(err)
			}
		}

		data.Feed, data.Telegram, data.Twitter = feed, telegram, twitter
		s.renderPage(w, r, configurationTemplate, data)
	}
}

func (s *Server) FeedSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		feed := api.Feed{
			Title:       r.FormValue("title"),
			Link:        r.FormValue("link"),
			ImageURL:    r.FormValue("image_url"),
			Category:    r.FormValue("category"),
			Rating:      r.FormValue("rating"),
			Description: r.FormValue("description"),
			Author:      r.FormValue("author"),
			Explicit:    formBool(r, "explicit"),
			Keywords:    r.FormValue("keywords"),
		}
		if _, err := s.api.SaveFeed(r.Context(), feed); err != nil {
			s.redirectAPIError(w, r, RouteConfiguration, err)
			return
		}
		redirectWith(w, r, RouteConfiguration, "message", "Feed settings saved")
	}
}

func (s *Server) TelegramSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		telegram := api.Telegram{
			Token:    r.FormValue("token"),
			ChatID:   r.FormValue("chat_id"),
			ThreadID: r.FormValue("thread_id"),
			Template: r.FormValue("template"),
			Active:   formBool(r, "active"),
		}
		if _, err := s.api.SaveTelegram(r.Context(), telegram); err != nil {
			s.redirectAPIError(w, r, RouteConfiguration, err)
			return
		}
		redirectWith(w, r, RouteConfiguration, "message", "Telegram settings saved")
	}
}

func (s *Server) TwitterSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		twitter := api.Twitter{
			ClientID:     r.FormValue("client_id"),
			ClientSecret: r.FormValue("client_secret"),
			AccessToken:  r.FormValue("access_token"),
			RefreshToken: r.FormValue("refresh_token"),
			Template:     r.FormValue("template"),
			Active:       formBool(r, "active"),
		}
		if _, err := s.api.SaveTwitter(r.Context(), twitter); err != nil {
			s.redirectAPIError(w, r, RouteConfiguration, err)
			return
		}
		redirectWith(w, r, RouteConfiguration, "message", "Twitter settings saved")
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	LoggedIn  bool   `json:"logged_in"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// HealthHandler reports liveness and whether an operator session is active.
// The token itself is never exposed.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.session.State()
		resp := healthResponse{Status: "ok", LoggedIn: state.LoggedIn}
		if state.LoggedIn {
			resp.ExpiresAt = state.ExpiresAt.UTC().Format(time.RFC3339)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// handleAPIError sends the browser to the login page when the call failed
// because the session ended mid-request. It reports whether it responded.
func (s *Server) handleAPIError(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, errors.ErrNotLoggedIn) {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("api call failed")
		return false
	}
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	return true
}

func (s *Server) redirectAPIError(w http.ResponseWriter, r *http.Request, path string, err error) {
	if s.handleAPIError(w, r, err) {
		return
	}
	redirectWith(w, r, path, "error", apiErrorMessage(err))
}

// apiErrorMessage is the operator facing text for a failed API call
func apiErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, errors.ErrUnauthorized):
		return "The API rejected the request"
	case errors.Is(err, errors.ErrNotFound):
		return "Not found"
	case errors.Is(err, errors.ErrRateLimited):
		return "The API is busy, try again shortly"
	default:
		return "The API request failed"
	}
}

// pubDateLayout is the datetime-local input format. Values are UTC.
const pubDateLayout = "2006-01-02T15:04"

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// applyPodcastForm copies the podcast form onto p and returns the problem to
// show the operator, if any. Episodes published after last_pub_date are
// republished, so an empty value means now rather than the zero time, which
// would replay the whole back catalogue.
func applyPodcastForm(r *http.Request, p *api.Podcast) (problem string) {
	p.Name = strings.TrimSpace(r.FormValue("name"))
	p.URL = strings.TrimSpace(r.FormValue("url"))
	p.Active = formBool(r, "active")
	if p.Name == "" || p.URL == "" {
		return "Name and URL are required"
	}

	value := strings.TrimSpace(r.FormValue("last_pub_date"))
	if value == "" {
		p.LastPubDate = NowTimeFunc().UTC().Truncate(time.Minute)
		return ""
	}
	lastPubDate, err := time.ParseInLocation(pubDateLayout, value, time.UTC)
	if err != nil {
		return fmt.Sprintf("Last published must look like %s", pubDateLayout)
	}
	p.LastPubDate = lastPubDate
	return ""
}

func podcastID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}
