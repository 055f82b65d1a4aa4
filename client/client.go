// Package client is the Go API client for the ReelHub backend. It
// carries the mobile app's submission logic: resolving a base URL,
// uploading picked files and composing them into a video record.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// ResolveBaseURL picks the effective API endpoint from an explicit
// config value, a platform default and an environment default, in
// that order of precedence. The result always ends in /api. Called
// once at startup, the client never mutates its base URL afterwards.
func ResolveBaseURL(explicit, platformDefault, envDefault string) string {
	for _, candidate := range []string{explicit, platformDefault, envDefault} {
		u := strings.TrimSpace(candidate)
		if u == "" {
			continue
		}

		u = strings.TrimSuffix(u, "/")
		if !strings.HasSuffix(u, "/api") {
			u += "/api"
		}

		return u
	}

	return ""
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client

	// busy guards against double-tap submissions. Only one Publish
	// may run at a time per client.
	busy atomic.Bool
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *Client) SetToken(t string) {
	c.token = t
}

// BaseURL returns the resolved endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body, %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, r)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
