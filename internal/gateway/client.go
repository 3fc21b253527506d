package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"

	"github.com/dshills/splitflap/internal/board"
)

// apiKeyHeader carries the read/write key on every request.
const apiKeyHeader = "X-Board-Read-Write-Key"

// defaultTimeout bounds a single request when the caller's context does
// not already carry a deadline.
const defaultTimeout = 10 * time.Second

// Client talks to the remote board service. It is safe for concurrent
// use; all state is read-only after construction.
type Client struct {
	baseURL string
	apiKey  string
	size    board.Size
	http    *http.Client
	logger  *slog.Logger
}

// Options configures a Client.
type Options struct {
	// BaseURL is the service root, without a trailing slash.
	BaseURL string

	// APIKey is the read/write key for the device.
	APIKey string

	// Size is the board shape used to normalize fetched payloads.
	Size board.Size

	// Timeout overrides the per-request timeout. Zero keeps the default.
	Timeout time.Duration

	// Logger receives request-level diagnostics. Nil discards them.
	Logger *slog.Logger
}

// NewClient creates a gateway client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	size := opts.Size
	if size.Rows == 0 || size.Cols == 0 {
		size = board.DefaultSize()
	}
	return &Client{
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		size:    size,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "gateway"),
	}
}

// Fetch returns the current physical board state.
func (c *Client) Fetch(ctx context.Context) (board.Grid, error) {
	body, err := c.do(ctx, http.MethodGet, "/board", nil)
	if err != nil {
		return board.Grid{}, err
	}
	grid, err := decodeBoard(body, c.size)
	if err != nil {
		return board.Grid{}, err
	}
	return grid, nil
}

// Send pushes a grid to the device. Color cells travel as uppercase
// color tokens; the service translates them back to device codes.
func (c *Client) Send(ctx context.Context, g board.Grid) error {
	payload, err := encodeBoard(g)
	if err != nil {
		return err
	}
	if _, err := c.do(ctx, http.MethodPost, "/board", payload); err != nil {
		return fmt.Errorf("sending board: %w", err)
	}
	c.logger.Info("board sent")
	return nil
}

// Activate enables an installable by name.
func (c *Client) Activate(ctx context.Context, name string) error {
	return c.toggleInstallable(ctx, name, true)
}

// Deactivate disables an installable by name, suspending its scheduled
// content so a user-authored board is not immediately overwritten.
func (c *Client) Deactivate(ctx context.Context, name string) error {
	return c.toggleInstallable(ctx, name, false)
}

func (c *Client) toggleInstallable(ctx context.Context, name string, active bool) error {
	body, err := sjson.SetBytes([]byte(`{}`), "active", active)
	if err != nil {
		return err
	}
	path := "/installables/" + name
	if _, err := c.do(ctx, http.MethodPost, path, body); err != nil {
		return fmt.Errorf("toggling installable %s: %w", name, err)
	}
	return nil
}

// do executes one request and returns the response body. Transport
// failures come back wrapped in ErrOffline; HTTP error statuses come
// back as plain errors.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrOffline, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return body, nil
}
