// Package strapi is the data-fetching layer between the magazine
// front-end and its headless CMS: an HTTP client for the content API
// plus normalization of the CMS's historically inconsistent response
// shapes into one canonical set of entity types.
package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ClientConfig represents CMS client configuration.
type ClientConfig struct {
	BaseURL      string
	MediaOrigin  string
	APIToken     string
	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultClientConfig returns default CMS client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://localhost:1337",
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 1 * time.Second,
		UserAgent:    "content-forge/1.0",
	}
}

// Client issues GET requests against the CMS content API with retry
// logic for transient upstream failures.
type Client struct {
	client      *http.Client
	baseURL     string
	mediaOrigin string
	userAgent   string
	maxRetries  int
	backoff     time.Duration
}

// NewClient creates a new CMS client with the given configuration.
// When an API token is configured, requests carry it as a bearer token
// via an oauth2 static token source.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}

	base := &http.Client{Timeout: config.Timeout}
	if config.APIToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.APIToken})
		base = oauth2.NewClient(ctx, source)
	}

	return &Client{
		client:      base,
		baseURL:     config.BaseURL,
		mediaOrigin: config.MediaOrigin,
		userAgent:   config.UserAgent,
		maxRetries:  config.MaxRetries,
		backoff:     config.RetryBackoff,
	}
}

// MediaOrigin returns the configured media origin for URL resolution.
func (c *Client) MediaOrigin() string {
	return c.mediaOrigin
}

// Get fetches a collection endpoint with the given query and returns
// the raw JSON payload. Network errors, non-2xx statuses and malformed
// JSON all surface as errors; empty results do not.
func (c *Client) Get(ctx context.Context, collection string, query Query) ([]byte, error) {
	endpoint := c.baseURL + "/api/" + collection
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.doWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("cms returned malformed JSON from %s", endpoint)
	}

	slog.Debug("fetched cms payload", "collection", collection, "bytes", len(body))
	return body, nil
}

// doWithRetry performs an HTTP request with retry logic.
func (c *Client) doWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying cms request", "url", req.URL.String(), "attempt", attempt, "backoff", backoff)
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if isRetryableStatusCode(resp.StatusCode) && attempt < c.maxRetries {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("retryable HTTP status: %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("cms request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// isRetryableStatusCode determines if an HTTP status code should be retried.
func isRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
