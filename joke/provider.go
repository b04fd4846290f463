// Package joke fetches one-liners from an icanhazdadjoke-style HTTP API.
package joke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the joke API queried when no other URL is configured.
const DefaultURL = "https://icanhazdadjoke.com/"

// Jokes longer than this are nonsense, cut the body off there.
const maxJokeLength = 4096

// Client asks an HTTP endpoint for plain-text jokes. It implements
// chat.JokeProvider.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a client for the given URL with a per-request timeout.
// An empty url falls back to DefaultURL.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchJoke requests one joke as plain text. Any transport failure, timeout
// or non-2xx status is returned as an error; the caller decides how to
// surface it.
func (c *Client) FetchJoke(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("joke request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", "wschat")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("joke fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("joke fetch: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJokeLength))
	if err != nil {
		return "", fmt.Errorf("joke read: %w", err)
	}

	joke := strings.TrimSpace(string(body))
	if joke == "" {
		return "", fmt.Errorf("joke fetch: empty response")
	}
	return joke, nil
}
