package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListPodcasts(ctx context.Context) ([]Podcast, error) {
	podcasts, err := doJSON[[]Podcast](ctx, c.authed, http.MethodGet, c.url(PathPodcasts), nil)
	if err != nil {
		return nil, err
	}
	if podcasts == nil {
		podcasts = []Podcast{}
	}
	return podcasts, nil
}

// CreatePodcast adds a podcast. The ID of p is ignored.
func (c *Client) CreatePodcast(ctx context.Context, p Podcast) (Podcast, error) {
	p.ID = 0
	return doJSON[Podcast](ctx, c.authed, http.MethodPost, c.url(PathPodcasts), p)
}

func (c *Client) UpdatePodcast(ctx context.Context, p Podcast) (Podcast, error) {
	return doJSON[Podcast](ctx, c.authed, http.MethodPatch, c.url(PathPodcasts), p)
}

func (c *Client) DeletePodcast(ctx context.Context, id int64) error {
	query := url.Values{"id": {strconv.FormatInt(id, 10)}}
	_, err := doJSON[any](ctx, c.authed, http.MethodDelete, c.url(PathPodcasts)+"?"+query.Encode(), nil)
	return err
}

// GenerateFeeds asks the API to regenerate the RSS feeds now.
func (c *Client) GenerateFeeds(ctx context.Context) error {
	_, err := doJSON[any](ctx, c.authed, http.MethodPost, c.url(PathPodcastsGenerate), nil)
	return err
}
