// Package backend is the HTTP client for the live QTick backend. When no base
// URL is configured the gateway runs entirely on mock data and this client is
// never constructed.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 2 << 20

// DownstreamError is returned when the backend responds with an error or is
// unreachable. StatusCode is zero for transport failures.
type DownstreamError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *DownstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend: %s (status=%d)", e.Message, e.StatusCode)
	}
	return "backend: " + e.Message
}

func (e *DownstreamError) Unwrap() error { return e.Cause }

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a backend client. Returns an error when the base URL is
// missing or malformed.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Post sends a JSON payload and decodes the JSON response into out. A non-2xx
// status or transport failure yields a *DownstreamError.
func (c *Client) Post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal backend payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &DownstreamError{Message: "unable to reach backend", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return &DownstreamError{Message: "read backend response", Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &DownstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("backend returned error body=%s", string(raw)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DownstreamError{Message: "decode backend response", Cause: err}
	}
	return nil
}
