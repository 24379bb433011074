package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/podmixer-console/api"
	"github.com/jrsteele09/podmixer-console/api/apifake"
	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session"
	"github.com/jrsteele09/podmixer-console/session/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testName     = "admin"
	testPassword = "password123"
)

type testFixture struct {
	fake    *apifake.FakeAPI
	manager *session.Manager
	client  *api.Client
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	fake := apifake.New(testName, testPassword, time.Hour)
	t.Cleanup(fake.Close)

	manager := session.NewManager(repofake.NewFakeStore())
	t.Cleanup(manager.Close)

	return &testFixture{
		fake:    fake,
		manager: manager,
		client:  api.NewClient(fake.URL()+"/", manager.TokenSource(), 5*time.Second),
	}
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	raw, err := f.client.Login(context.Background(), api.Credentials{Name: testName, Password: testPassword})
	require.NoError(t, err)
	_, err = f.manager.Login(context.Background(), raw)
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	f := setupTestFixture(t)

	raw, err := f.client.Login(context.Background(), api.Credentials{Name: testName, Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	state, err := f.manager.Login(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, testName, state.Subject)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.client.Login(context.Background(), api.Credentials{Name: testName, Password: "wrong"})
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	require.Contains(t, err.Error(), "Invalid name or password")
}

func TestRequestsNeedSession(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.client.ListPodcasts(context.Background())
	require.ErrorIs(t, err, errors.ErrNotLoggedIn)
}

func TestRequestsFollowSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	_, err := f.client.ListPodcasts(context.Background())
	require.NoError(t, err)

	f.manager.Logout(context.Background())
	_, err = f.client.ListPodcasts(context.Background())
	require.ErrorIs(t, err, errors.ErrNotLoggedIn)
}

func TestRejectedTokenIsUnauthorized(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.fake.Revoke()

	_, err := f.client.ListPodcasts(context.Background())
	require.ErrorIs(t, err, errors.ErrUnauthorized)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid token", apiErr.Message)
}

func TestPodcastLifecycle(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	ctx := context.Background()

	now := time.Date(2025, 2, 28, 16, 8, 58, 0, time.UTC)
	created, err := f.client.CreatePodcast(ctx, api.Podcast{
		ID:          99,
		Name:        "Atareao",
		URL:         "https://atareao.es/podcast/feed",
		Active:      true,
		LastPubDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	podcasts, err := f.client.ListPodcasts(ctx)
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	require.Equal(t, "Atareao", podcasts[0].Name)
	require.True(t, podcasts[0].LastPubDate.Equal(now))

	created.Active = false
	updated, err := f.client.UpdatePodcast(ctx, created)
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.False(t, f.fake.Podcasts()[0].Active)

	require.NoError(t, f.client.GenerateFeeds(ctx))
	require.Equal(t, 1, f.fake.Generated())

	require.NoError(t, f.client.DeletePodcast(ctx, created.ID))
	podcasts, err = f.client.ListPodcasts(ctx)
	require.NoError(t, err)
	require.Empty(t, podcasts)

	err = f.client.DeletePodcast(ctx, created.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSettings(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	ctx := context.Background()

	feed, err := f.client.SaveFeed(ctx, api.Feed{Title: "PodMixer", Explicit: true, Keywords: "linux,podcast"})
	require.NoError(t, err)
	require.Equal(t, "PodMixer", feed.Title)
	feed, err = f.client.GetFeed(ctx)
	require.NoError(t, err)
	require.True(t, feed.Explicit)

	_, err = f.client.SaveTelegram(ctx, api.Telegram{Token: "bot", ChatID: "-100", Active: true})
	require.NoError(t, err)
	telegram, err := f.client.GetTelegram(ctx)
	require.NoError(t, err)
	require.Equal(t, "-100", telegram.ChatID)

	_, err = f.client.SaveTwitter(ctx, api.Twitter{ClientID: "client", Template: "{{ title }}"})
	require.NoError(t, err)
	twitter, err := f.client.GetTwitter(ctx)
	require.NoError(t, err)
	require.Equal(t, "{{ title }}", twitter.Template)
}

func TestLogoutNotification(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	require.NoError(t, f.client.Logout(context.Background()))
	require.Equal(t, 1, f.fake.Logouts())
}

func TestNonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, nil, time.Second)
	_, err := client.Login(context.Background(), api.Credentials{Name: "a", Password: "b"})

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "upstream exploded", apiErr.Message)
	require.ErrorIs(t, err, errors.ErrInternal)
}
