package apifake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/token/jwt"
)

// FakeAPI is an in-memory PodMixer API served over httptest. It issues real
// HS256 tokens and only accepts bearer tokens it issued.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	creator   *jwt.Creator
	users     map[string]string // name -> password
	issued    map[string]struct{}
	tokenTTL  time.Duration
	podcasts  map[int64]api.Podcast
	nextID    int64
	feed      api.Feed
	telegram  api.Telegram
	twitter   api.Twitter
	generated int
	logouts   int
}

// New starts a fake API with one operator account.
func New(name, password string, tokenTTL time.Duration) *FakeAPI {
	f := &FakeAPI{
		creator:  jwt.NewCreator("fake-api-secret"),
		users:    map[string]string{name: password},
		issued:   make(map[string]struct{}),
		tokenTTL: tokenTTL,
		podcasts: make(map[int64]api.Podcast),
		nextID:   1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.PathAuthLogin, f.login)
	mux.HandleFunc("GET "+api.PathAuthLogout, f.requireToken(f.logout))
	mux.HandleFunc("GET "+api.PathPodcasts, f.requireToken(f.listPodcasts))
	mux.HandleFunc("POST "+api.PathPodcasts, f.requireToken(f.createPodcast))
	mux.HandleFunc("PATCH "+api.PathPodcasts, f.requireToken(f.updatePodcast))
	mux.HandleFunc("DELETE "+api.PathPodcasts, f.requireToken(f.deletePodcast))
	mux.HandleFunc("POST "+api.PathPodcastsGenerate, f.requireToken(f.generate))
	mux.HandleFunc("GET "+api.PathConfigFeed, f.requireToken(f.getConfig(func() any { return f.feed })))
	mux.HandleFunc("POST "+api.PathConfigFeed, f.requireToken(f.saveConfig(&f.feed)))
	mux.HandleFunc("GET "+api.PathConfigTelegram, f.requireToken(f.getConfig(func() any { return f.telegram })))
	mux.HandleFunc("POST "+api.PathConfigTelegram, f.requireToken(f.saveConfig(&f.telegram)))
	mux.HandleFunc("GET "+api.PathConfigTwitter, f.requireToken(f.getConfig(func() any { return f.twitter })))
	mux.HandleFunc("POST "+api.PathConfigTwitter, f.requireToken(f.saveConfig(&f.twitter)))

	f.Server = httptest.NewServer(mux)
	return f
}

// URL returns the base URL of the fake API
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Close shuts the server down
func (f *FakeAPI) Close() {
	f.Server.Close()
}

// Revoke makes the API reject every token issued so far
func (f *FakeAPI) Revoke() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = make(map[string]struct{})
}

// Podcasts returns a copy of the stored podcasts
func (f *FakeAPI) Podcasts() []api.Podcast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.podcastsLocked()
}

// Generated returns how many times feed generation was requested
func (f *FakeAPI) Generated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generated
}

// Logouts returns how many logout notifications were received
func (f *FakeAPI) Logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logouts
}

// Telegram returns the stored telegram settings
func (f *FakeAPI) Telegram() api.Telegram {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.telegram
}

func (f *FakeAPI) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		_, known := f.issued[raw]
		f.mu.Unlock()
		if !ok || !known {
			respond(w, http.StatusUnauthorized, "Invalid token", nil)
			return
		}
		next(w, r)
	}
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond(w, http.StatusBadRequest, "Invalid body", nil)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if password, ok := f.users[creds.Name]; !ok || password != creds.Password {
		respond(w, http.StatusBadRequest, "Invalid name or password", nil)
		return
	}
	raw, err := f.creator.Create(creds.Name, f.tokenTTL)
	if err != nil {
		respond(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	f.issued[raw] = struct{}{}
	respond(w, http.StatusOK, "Logged in", map[string]string{"token": raw})
}

func (f *FakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.logouts++
	f.mu.Unlock()
	respond(w, http.StatusOK, "Logged out", nil)
}

func (f *FakeAPI) listPodcasts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	respond(w, http.StatusOK, "Podcasts", f.podcastsLocked())
}

func (f *FakeAPI) createPodcast(w http.ResponseWriter, r *http.Request) {
	var p api.Podcast
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" || p.URL == "" {
		respond(w, http.StatusBadRequest, "Invalid podcast", nil)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	f.podcasts[p.ID] = p
	respond(w, http.StatusCreated, "Podcast created", p)
}

func (f *FakeAPI) updatePodcast(w http.ResponseWriter, r *http.Request) {
	var p api.Podcast
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond(w, http.StatusBadRequest, "Invalid podcast", nil)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.podcasts[p.ID]; !ok {
		respond(w, http.StatusNotFound, "Podcast not found", nil)
		return
	}
	f.podcasts[p.ID] = p
	respond(w, http.StatusOK, "Podcast updated", p)
}

func (f *FakeAPI) deletePodcast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid id", nil)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.podcasts[id]; !ok {
		respond(w, http.StatusNotFound, "Podcast not found", nil)
		return
	}
	delete(f.podcasts, id)
	respond(w, http.StatusOK, "Podcast deleted", nil)
}

func (f *FakeAPI) generate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.generated++
	f.mu.Unlock()
	respond(w, http.StatusOK, "Generating", nil)
}

func (f *FakeAPI) getConfig(current func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		respond(w, http.StatusOK, "Config read", current())
	}
}

func (f *FakeAPI) saveConfig(target any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := json.NewDecoder(r.Body).Decode(target); err != nil {
			respond(w, http.StatusBadRequest, "Invalid config", nil)
			return
		}
		respond(w, http.StatusOK, "Config saved", target)
	}
}

func (f *FakeAPI) podcastsLocked() []api.Podcast {
	podcasts := make([]api.Podcast, 0, len(f.podcasts))
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.podcasts[id]; ok {
			podcasts = append(podcasts, p)
		}
	}
	return podcasts
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Response[any]{Status: status, Message: message, Data: data})
}
