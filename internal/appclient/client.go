// Package appclient talks to a running target application over HTTP to
// fetch the material the prerenderer needs: the serialized layout and the
// page shells.
package appclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LayoutPath is the endpoint a Dash-style app serves its serialized layout
// on.
const LayoutPath = "/_dash-layout"

const maxResponseBytes = 16 << 20 // 16MB per fetched document

// Client fetches layout and shell documents from the target app.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchLayout retrieves the app's serialized layout JSON.
func (c *Client) FetchLayout(ctx context.Context) ([]byte, error) {
	return c.get(ctx, LayoutPath)
}

// FetchShell retrieves the HTML shell the app serves at the given path.
func (c *Client) FetchShell(ctx context.Context, path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RetryableError{Op: "get " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &RetryableError{
			Op:  "get " + path,
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &RetryableError{Op: "read " + path, Err: err}
	}
	return body, nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient failure that can be retried:
// transport errors and target-app 5xx responses.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: %v (retryable)", e.Op, e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}
