package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// maxErrorBody bounds how much of a failed response is kept as its message
const maxErrorBody = 4 << 10

// Client talks to the PodMixer REST API. Every call except Login carries the
// bearer token yielded by the TokenSource it was built with.
type Client struct {
	baseURL string
	authed  *http.Client
	anon    *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
//
// The token source is consulted on every request rather than cached, so a
// logout or a new login takes effect on the next call.
func NewClient(baseURL string, ts oauth2.TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: ts, Base: http.DefaultTransport},
		},
		anon: &http.Client{Timeout: timeout},
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// doJSON sends body (if any) as JSON and decodes the Response envelope into
// T. Non-2xx answers become *Error.
func doJSON[T any](ctx context.Context, hc *http.Client, method, url string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return zero, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, readError(resp)
	}

	var envelope Response[T]
	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if err == io.EOF {
			return zero, nil
		}
		return zero, fmt.Errorf("%s %s: failed to decode response: %w", method, req.URL.Path, err)
	}
	return envelope.Data, nil
}

// readError extracts the envelope message of a failed response, falling back
// to the raw body text.
func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{StatusCode: resp.StatusCode}

	var envelope Response[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
