// Package httpapi is the secondary adapter for the remote PlumbOps API. It
// owns everything wire-level: bearer auth, request correlation ids, the
// error taxonomy mapping and the tolerant collection envelope decoding.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/plumbops/internal/ports/secondary"
	"github.com/example/plumbops/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client carries the shared transport state for all gateways. The session
// manager is read on every request and cleared on any 401.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Manager
}

// NewClient builds a Client for the API rooted at baseURL (e.g.
// "https://ops.example.com/api/v1").
func NewClient(baseURL string, sessions *session.Manager) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		sessions: sessions,
	}
}

// WithHTTPClient swaps the underlying http.Client. Tests use it to shorten
// timeouts.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// do performs one JSON round trip. A non-nil out is filled from the
// response body; a nil out discards it. Errors are already mapped to the
// secondary taxonomy.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &secondary.TransientError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global logout: every in-flight assumption of being authenticated
		// is void from here on.
		_ = c.sessions.Clear()
		return secondary.ErrUnauthorized
	}
	if resp.StatusCode >= 500 {
		return &secondary.TransientError{
			Op:  method + " " + path,
			Err: fmt.Errorf("server error (%s)", resp.Status),
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return secondary.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return &secondary.ValidationError{Message: extractErrorMessage(resp.Body, resp.Status)}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &secondary.TransientError{Op: method + " " + path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// extractErrorMessage pulls the server's structured error text so it can be
// shown verbatim. Servers in the wild use different keys; fall back to the
// HTTP status line.
func extractErrorMessage(body io.Reader, status string) string {
	data, err := io.ReadAll(body)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return status
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		for _, msg := range []string{payload.Error, payload.Message, payload.Title} {
			if msg != "" {
				return msg
			}
		}
	}
	return status
}

// decodeCollection unmarshals either the canonical {items: [...]} envelope
// or a bare JSON array into dst (a pointer to a slice). The API drifted
// between the two shapes over time; accepting both keeps one decode path.
func decodeCollection(data json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dst)
	}
	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if len(envelope.Items) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Items, dst)
}
