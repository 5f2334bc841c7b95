// Package browser drives pages through the HTTP API of a headless browser
// driver sidecar.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SessionError reports a failed driver call with the action that failed.
type SessionError struct {
	Action     string
	StatusCode int
	Message    string
}

func (e *SessionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("browser %s: driver returned %d: %s", e.Action, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("browser %s: %s", e.Action, e.Message)
}

// Options configures the driver client.
type Options struct {
	DriverURL       string
	ActionTimeout   time.Duration
	SelectorTimeout time.Duration
	HTTPClient      *http.Client
	Logger          *slog.Logger
}

// Driver opens sessions against a browser driver sidecar.
type Driver struct {
	baseURL         string
	actionTimeout   time.Duration
	selectorTimeout time.Duration
	httpClient      *http.Client
	logger          *slog.Logger
}

// NewDriver creates a Driver client.
func NewDriver(opts Options) *Driver {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		baseURL:         strings.TrimRight(opts.DriverURL, "/"),
		actionTimeout:   opts.ActionTimeout,
		selectorTimeout: opts.SelectorTimeout,
		httpClient:      client,
		logger:          logger,
	}
}

// NewSession opens a fresh browser page.
func (d *Driver) NewSession(ctx context.Context) (*Session, error) {
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := d.call(ctx, "new_session", http.MethodPost, "/session", nil, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		return nil, &SessionError{Action: "new_session", Message: "driver returned empty session_id"}
	}

	d.logger.DebugContext(ctx, "browser session opened", "session_id", resp.SessionID)
	return &Session{driver: d, id: resp.SessionID}, nil
}

func (d *Driver) call(ctx context.Context, action, method, path string, body, out any) error {
	if d.actionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.actionTimeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &SessionError{Action: action, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return &SessionError{Action: action, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return &SessionError{Action: action, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &SessionError{Action: action, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SessionError{
			Action:     action,
			StatusCode: resp.StatusCode,
			Message:    driverErrorMessage(raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &SessionError{Action: action, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}

// driverErrorMessage pulls the error field out of a driver error body, falling
// back to the raw (truncated) payload.
func driverErrorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

// Session is one live page in the driver.
type Session struct {
	driver *Driver
	id     string
}

func (s *Session) path(action string) string {
	return "/session/" + s.id + "/" + action
}

// Navigate loads the given URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.driver.call(ctx, "navigate", http.MethodPost, s.path("navigate"),
		map[string]string{"url": url}, nil)
}

// Click clicks the element matching selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	return s.driver.call(ctx, "click", http.MethodPost, s.path("click"),
		map[string]string{"selector": selector}, nil)
}

// Fill types text into the element matching selector.
func (s *Session) Fill(ctx context.Context, selector, text string) error {
	return s.driver.call(ctx, "fill", http.MethodPost, s.path("fill"),
		map[string]string{"selector": selector, "text": text}, nil)
}

// TextContent returns the text content of the element matching selector.
func (s *Session) TextContent(ctx context.Context, selector string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	err := s.driver.call(ctx, "text_content", http.MethodPost, s.path("text"),
		map[string]string{"selector": selector}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Title returns the current page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	var resp struct {
		Title string `json:"title"`
	}
	if err := s.driver.call(ctx, "title", http.MethodGet, s.path("title"), nil, &resp); err != nil {
		return "", err
	}
	return resp.Title, nil
}

// WaitForSelector waits until the element matching selector is visible.
// A zero timeout falls back to the driver's configured selector timeout.
func (s *Session) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = s.driver.selectorTimeout
	}
	return s.driver.call(ctx, "wait_for_selector", http.MethodPost, s.path("wait"),
		map[string]any{"selector": selector, "timeout_ms": timeout.Milliseconds()}, nil)
}

// Close releases the page and its driver resources.
func (s *Session) Close(ctx context.Context) error {
	return s.driver.call(ctx, "close_session", http.MethodDelete, "/session/"+s.id, nil, nil)
}
