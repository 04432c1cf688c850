// Package agents contains thin wrappers over remote agent services and the
// HTTP transport they share.
package agents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Client wraps resty with rate limiting. Idempotent fetches go through a
// retrying transport; execute-style calls are sent exactly once, since the
// remote agent may consume quota or produce side effects per request.
type Client struct {
	fetch   *resty.Client
	exec    *resty.Client
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// NewClient creates an agent service client.
func NewClient(baseURL, apiKey string, rps float64) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	fetch := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("User-Agent", "MosaicDesk-Bridge/1.0")
	fetch.SetTransport(retryClient.HTTPClient.Transport)

	exec := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "MosaicDesk-Bridge/1.0")

	if apiKey != "" {
		fetch.SetAuthToken(apiKey)
		exec.SetAuthToken(apiKey)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}

	return &Client{fetch: fetch, exec: exec, limiter: limiter}
}

// Get performs a rate-limited idempotent GET, with transport-level retries.
func (c *Client) Get(ctx context.Context, url string) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetch.R().SetContext(ctx).Get(url)
}

// Execute performs a rate-limited POST with at most one attempt.
func (c *Client) Execute(ctx context.Context, path string, body interface{}) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	req := c.exec.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req = req.SetBody(body)
	}
	return req.Post(path)
}

// SetTimeout configures request timeout on both clients.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetch.SetTimeout(d)
	c.exec.SetTimeout(d)
}

// CheckResponse converts a non-2xx response into an error carrying the
// remote failure text.
func CheckResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	body := resp.String()
	if body == "" {
		body = resp.Status()
	}
	return fmt.Errorf("agent returned %d: %s", resp.StatusCode(), body)
}
