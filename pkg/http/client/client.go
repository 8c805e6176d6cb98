// Package client is the shared HTTP client for the upstream forecast, tide,
// and spot APIs.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultUserAgent = "surfe-diem/1.0 (https://surfe-diem.com)"

type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response has a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Interface interface {
	Get(ctx context.Context, path string) (*Response, error)
}

// StatusError is returned by GetJSON for a non-2xx response
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
	GetFunc    func(ctx context.Context, path string) (*Response, error)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
	Headers    map[string]string
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	if opts.RetryDelay == 0 {
		opts.RetryDelay = 250 * time.Millisecond
	}

	headers := map[string]string{
		"User-Agent": defaultUserAgent,
		"Accept":     "application/json",
	}
	if opts.UserAgent != "" {
		headers["User-Agent"] = opts.UserAgent
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		headers:    headers,
	}
}

// Get fetches path relative to the base URL, or path itself when no base URL
// is set. Transport errors and 5xx responses are retried up to MaxRetries
// times with a linear backoff; any other status is returned to the caller.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path)
	}

	fullURL := c.baseURL + path

	var (
		resp *Response
		err  error
	)
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err = c.do(ctx, fullURL)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if ctx.Err() != nil || attempt == c.maxRetries {
			break
		}

		log.Debug().
			Str("url", fullURL).
			Int("attempt", attempt).
			Err(err).
			Msg("Retrying upstream request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetJSON fetches path and decodes a 2xx JSON body into v
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return err
	}

	if !resp.OK() {
		body := string(resp.Body)
		if len(body) > 256 {
			body = body[:256]
		}
		return &StatusError{URL: c.baseURL + path, StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, fullURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
