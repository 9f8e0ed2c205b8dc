// Package portal is the HTTP client for the EventFlow backend. Every
// outgoing request carries the session's bearer token, and any 401
// response clears the stored staff credentials before surfacing
// ErrUnauthorized, regardless of which caller issued the request.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SXPXL/eventflow/internal/session"
)

// Errors surfaced by the client itself. Server-side rejections are
// returned as *APIError instead.
var (
	ErrUnauthorized = errors.New("session rejected, log in again")
	ErrUnreachable  = errors.New("unable to connect to the portal")
)

// APIError carries a server-provided rejection verbatim
type APIError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return e.Detail
}

// Client is the HTTP client for the portal API
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	logger     *slog.Logger
}

// New creates a portal client bound to a session store
func New(baseURL string, sess *session.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: sess,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs an HTTP request with the session token attached
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	respBody, _, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// raw performs a request and returns the response body unparsed.
// CSV exports use it directly.
func (c *Client) raw(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Token is read at send time, never cached on the client
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		c.logger.Debug("portal request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Global 401 intercept: drop the bad credentials so the next
		// command lands the user on the staff login path
		if err := c.session.ClearStaff(); err != nil {
			c.logger.Warn("failed to clear session", slog.String("error", err.Error()))
		}
		return nil, "", ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err == nil && apiErr.Detail != "" {
			return nil, "", apiErr
		}
		return nil, "", &APIError{
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

// get performs a GET request
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// put performs a PUT request
func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// delete performs a DELETE request
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
