// Package notion provides a REST client for the Notion API: an
// authenticated request gateway, a field-type codec, and database/record
// abstractions for querying collections and creating pages.
// It implements a deep module interface - simple methods hiding the wire
// format of the remote API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const (
	// BaseURL is the root of the versioned Notion REST API.
	BaseURL = "https://api.notion.com/v1"
	// APIVersion is sent with every request in the Notion-Version header.
	APIVersion = "2022-06-28"
)

// Client is an authenticated Notion API client. All remote operations
// (database loads, queries, page creates and updates) go through Request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests to point the client
// at a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger attaches a logger. By default the client is silent.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a Notion API client using the given integration token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    BaseURL,
		token:      token,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs one authenticated JSON request against the Notion API
// and returns the decoded response body. The endpoint is a path relative
// to the API root (e.g. "/databases/abc123"). A nil payload sends no body.
// Any non-2xx response returns an *APIError carrying the raw status and
// body; there is no retry or backoff at this layer.
func (c *Client) Request(ctx context.Context, method, endpoint string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugw("notion API request", "method", method, "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return result, nil
}
