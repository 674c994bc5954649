// Package jina provides a client for the Jina AI Reader, which renders a
// public web page and returns its visible content as markdown or text.
package jina

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the public Reader endpoint.
const DefaultBaseURL = "https://r.jina.ai"

// Client reads pages through the Jina AI Reader.
type Client interface {
	// Read fetches targetURL and returns the rendered page.
	Read(ctx context.Context, targetURL string, opts ...ReadOption) (*ReadResponse, error)
}

// ReadResponse is the parsed Reader response.
type ReadResponse struct {
	Code int      `json:"code"`
	Data ReadData `json:"data"`
}

// ReadData holds the rendered page.
type ReadData struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	Usage       ReadUsage `json:"usage"`
}

// ReadUsage tracks token consumption.
type ReadUsage struct {
	Tokens int `json:"tokens"`
}

// APIError is returned for any non-200 response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("jina: unexpected status %d: %s", e.StatusCode, body)
}

// ReadOption tunes a single Read call.
type ReadOption func(*readOpts)

type readOpts struct {
	format         string
	targetSelector string
	waitSelector   string
	timeout        time.Duration
	noCache        bool
}

// WithFormat sets the return format ("markdown", "text", "html").
func WithFormat(format string) ReadOption {
	return func(o *readOpts) { o.format = format }
}

// WithTargetSelector restricts the content to elements matching a CSS selector.
func WithTargetSelector(selector string) ReadOption {
	return func(o *readOpts) { o.targetSelector = selector }
}

// WithWaitForSelector waits until a CSS selector appears before rendering.
func WithWaitForSelector(selector string) ReadOption {
	return func(o *readOpts) { o.waitSelector = selector }
}

// WithPageTimeout bounds how long the Reader waits for the page to load.
func WithPageTimeout(d time.Duration) ReadOption {
	return func(o *readOpts) { o.timeout = d }
}

// WithNoCache bypasses the Reader's own page cache.
func WithNoCache() ReadOption {
	return func(o *readOpts) { o.noCache = true }
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Reader client. apiKey may be empty, in which case the
// keyless rate limits apply.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Read(ctx context.Context, targetURL string, opts ...ReadOption) (*ReadResponse, error) {
	o := readOpts{format: "markdown"}
	for _, opt := range opts {
		opt(&o)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "jina: create request")
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Return-Format", o.format)
	if o.targetSelector != "" {
		req.Header.Set("X-Target-Selector", o.targetSelector)
	}
	if o.waitSelector != "" {
		req.Header.Set("X-Wait-For-Selector", o.waitSelector)
	}
	if o.timeout > 0 {
		req.Header.Set("X-Timeout", strconv.Itoa(int(o.timeout.Seconds())))
	}
	if o.noCache {
		req.Header.Set("X-No-Cache", "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "jina: request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "jina: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result ReadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "jina: unmarshal response")
	}
	return &result, nil
}
