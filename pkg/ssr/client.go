package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inertia-go/inertia/pkg/protocol"
)

const (
	// DefaultBaseURL is where the stock Inertia SSR server listens.
	DefaultBaseURL = "http://127.0.0.1:13714"

	// DefaultTimeout bounds one render exchange. SSR calls never block
	// indefinitely and never retry.
	DefaultTimeout = 5 * time.Second

	renderPath   = "/render"
	shutdownPath = "/shutdown"
	healthPath   = "/health"
)

// Client calls the external renderer over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTimeout overrides the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client. The render timeout must
// then be enforced by the provided client or the request context.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a renderer client for the given base address. An empty
// baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the renderer's base address.
func (c *Client) BaseURL() string { return c.baseURL }

// Render sends the page to the renderer and returns its pre-rendered
// fragments. Every failure mode (connect, timeout, non-OK status, bad
// payload) reports ErrUnavailable; the caller decides the fallback, this
// layer never retries.
func (c *Client) Render(ctx context.Context, page protocol.Page) (*protocol.SSRPage, error) {
	body, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("ssr: encode page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+renderPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ssr: build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: render returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var out protocol.SSRPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: malformed render response: %v", ErrUnavailable, err)
	}
	return &out, nil
}

// Ping probes the renderer's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, healthPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: health returned status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Shutdown asks the renderer to terminate itself. The renderer may exit
// before completing the response; callers treat any error as "graceful
// shutdown failed" and fall back to killing the process.
func (c *Client) Shutdown(ctx context.Context) error {
	resp, err := c.get(ctx, shutdownPath)
	if err != nil {
		return fmt.Errorf("ssr: shutdown request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}
