package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/session"
	"github.com/rs/zerolog"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	layoutTemplate        = "layout.html"
	loginTemplate         = "login.html"
	homeTemplate          = "home.html"
	aboutTemplate         = "about.html"
	podcastsTemplate      = "podcasts.html"
	configurationTemplate = "configuration.html"
)

var pageTemplates = []string{
	loginTemplate,
	homeTemplate,
	aboutTemplate,
	podcastsTemplate,
	configurationTemplate,
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

func parseTemplates() (*template.Template, map[string]*template.Template, error) {
	layout, err := ParseTemplate(layoutTemplate)
	if err != nil {
		return nil, nil, err
	}
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, nil, err
		}
		pages[name] = tmpl
	}
	return layout, pages, nil
}

// PageData is the model every page template receives
type PageData struct {
	AppName    string
	PageTitle  string
	ActivePage string
	Session    session.State
	Message    string
	Error      string
	Content    template.HTML

	// Page specific
	Name           string
	Podcasts       []api.Podcast
	DefaultPubDate string // pre-fills the new podcast form
	Feed           api.Feed
	Telegram       api.Telegram
	Twitter        api.Twitter
}

// newPageData fills the fields shared by every page, including the flash
// message and error carried in the query string.
func (s *Server) newPageData(r *http.Request, activePage, pageTitle string) PageData {
	return PageData{
		AppName:    s.config.GetAppName(),
		PageTitle:  pageTitle,
		ActivePage: activePage,
		Session:    s.session.State(),
		Message:    r.URL.Query().Get("message"),
		Error:      r.URL.Query().Get("error"),
	}
}

// renderPage renders the content template into the layout
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	logger := zerolog.Ctx(r.Context())

	tmpl, ok := s.pages[name]
	if !ok {
		logger.Error().Str("template", name).Msg("unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		logger.Err(err).Str("template", name).Msg("failed to render content")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	data.Content = template.HTML(content.String())

	var page bytes.Buffer
	if err := s.layout.Execute(&page, data); err != nil {
		logger.Err(err).Str("template", name).Msg("failed to render layout")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

// redirectWith sends the browser to path with a flash message or error
func redirectWith(w http.ResponseWriter, r *http.Request, path, key, text string) {
	target := path
	if text != "" {
		target = fmt.Sprintf("%s?%s=%s", path, key, url.QueryEscape(text))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
