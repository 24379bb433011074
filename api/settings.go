package api

import (
	"context"
	"net/http"
)

func (c *Client) GetFeed(ctx context.Context) (Feed, error) {
	return doJSON[Feed](ctx, c.authed, http.MethodGet, c.url(PathConfigFeed), nil)
}

func (c *Client) SaveFeed(ctx context.Context, feed Feed) (Feed, error) {
	return doJSON[Feed](ctx, c.authed, http.MethodPost, c.url(PathConfigFeed), feed)
}

func (c *Client) GetTelegram(ctx context.Context) (Telegram, error) {
	return doJSON[Telegram](ctx, c.authed, http.MethodGet, c.url(PathConfigTelegram), nil)
}

func (c *Client) SaveTelegram(ctx context.Context, telegram Telegram) (Telegram, error) {
	return doJSON[Telegram](ctx, c.authed, http.MethodPost, c.url(PathConfigTelegram), telegram)
}

func (c *Client) GetTwitter(ctx context.Context) (Twitter, error) {
	return doJSON[Twitter](ctx, c.authed, http.MethodGet, c.url(PathConfigTwitter), nil)
}

func (c *Client) SaveTwitter(ctx context.Context, twitter Twitter) (Twitter, error) {
	return doJSON[Twitter](ctx, c.authed, http.MethodPost, c.url(PathConfigTwitter), twitter)
}
