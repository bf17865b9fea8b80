// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/libris/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://www.googleapis.com/books/v1"
	defaultPageSize      = 10 // provider default
	maxPageSize          = 40 // provider hard cap for maxResults
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 5
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Google Books API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	pageSize      int
}

// NewClient creates a new Google Books API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("GoogleBooks", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		pageSize:      defaultPageSize,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithAPIKey sets the API key sent with each request. Anonymous requests
// work but are subject to stricter provider quotas.
func WithAPIKey(key string) Option {
	return func(client *Client) {
		client.apiKey = key
	}
}

// WithBaseURL sets a custom base URL for the Google Books API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithPageSize sets the default page size used by searches created from
// this client. Values are clamped to the provider's allowed range.
func WithPageSize(size int) Option {
	return func(client *Client) {
		if size > 0 {
			client.pageSize = clampPageSize(size)
		}
	}
}

func clampPageSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
