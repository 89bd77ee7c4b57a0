package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"EuroparlScraper/internal/ports"
)

// Client retrieves raw HTML pages with bounded exponential retries on
// transient faults.
type Client struct {
	http *resty.Client
}

var _ ports.Fetcher = (*Client)(nil)

// Options tunes HTTP behavior. Zero values fall back to defaults.
type Options struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryWait     time.Duration
	UserAgent     string
}

// New builds a fetcher. RetryAttempts counts total attempts, so 3 means
// one request plus two retries.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "EuroparlScraper/1.0"
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetRetryCount(opts.RetryAttempts - 1)
	client.SetRetryWaitTime(opts.RetryWait)
	client.SetRetryMaxWaitTime(opts.RetryWait * 8)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if r != nil && r.Request != nil && r.Request.Context().Err() != nil {
			return false
		}
		if err != nil {
			return true
		}
		return r.StatusCode() >= http.StatusInternalServerError ||
			r.StatusCode() == http.StatusTooManyRequests
	})

	return &Client{http: client}
}

// Fetch performs one GET and maps the response onto the fetch error
// classes in ports.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		// A caller abort is not a network fault; surface the context
		// error untouched so it is never retried or misreported.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("get %s: %w", url, ctxErr)
		}
		return "", fmt.Errorf("get %s: %w: %v", url, ports.ErrTransient, err)
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusOK:
		return resp.String(), nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return "", fmt.Errorf("get %s: %w (%s)", url, ports.ErrNotFound, resp.Status())
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		return "", fmt.Errorf("get %s: %w (%s)", url, ports.ErrTransient, resp.Status())
	default:
		return "", fmt.Errorf("get %s: %w (%s)", url, ports.ErrPermanent, resp.Status())
	}
}
