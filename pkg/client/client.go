// Package client calls a notebox server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/core"
	"github.com/aretw0/notebox/pkg/transport/httpapi"
)

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Client is a thin HTTP client for the note operations.
type Client struct {
	baseURL   string
	http      *http.Client
	principal core.Principal
	header    string
	token     string
}

// Option configures a Client.
type Option func(*Client)

// WithPrincipal sends p in the given header (header-mode servers).
func WithPrincipal(p core.Principal, header string) Option {
	return func(c *Client) {
		c.principal = p
		if header != "" {
			c.header = header
		}
	}
}

// WithToken sends a bearer token (jwt-mode servers).
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a Client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		header:  auth.DefaultHeader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends a note.
func (c *Client) Add(ctx context.Context, title, content string) (bool, error) {
	var resp httpapi.AddResponse
	err := c.do(ctx, http.MethodPost, "/v1/notes", httpapi.NewNoteRequest(title, content), &resp)
	return resp.OK, err
}

// List returns the caller's notes.
func (c *Client) List(ctx context.Context) ([]core.Note, error) {
	var resp httpapi.ListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/notes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// Get fetches the note at index.
func (c *Client) Get(ctx context.Context, index uint64) (core.Note, bool, error) {
	var resp httpapi.NoteResponse
	if err := c.do(ctx, http.MethodGet, notePath(index), nil, &resp); err != nil {
		return core.Note{}, false, err
	}
	return unwrap(resp)
}

// Delete removes the note at index.
func (c *Client) Delete(ctx context.Context, index uint64) (bool, error) {
	var resp httpapi.DeleteResponse
	err := c.do(ctx, http.MethodDelete, notePath(index), nil, &resp)
	return resp.Deleted, err
}

// Edit replaces the note at index.
func (c *Client) Edit(ctx context.Context, index uint64, title, content string) (core.Note, bool, error) {
	var resp httpapi.NoteResponse
	if err := c.do(ctx, http.MethodPut, notePath(index), httpapi.NewNoteRequest(title, content), &resp); err != nil {
		return core.Note{}, false, err
	}
	return unwrap(resp)
}

// Watch opens the change feed. The channel closes when ctx ends or the
// server closes the connection.
func (c *Client) Watch(ctx context.Context) (<-chan core.Event, error) {
	url := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/v1/feed"
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, c.authHeader())
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return nil, &StatusError{Code: resp.StatusCode, Message: err.Error()}
		}
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}

	out := make(chan core.Event)
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	go func() {
		defer close(out)
		defer stop()
		defer conn.Close()
		for {
			var e core.Event
			if err := conn.ReadJSON(&e); err != nil {
				return
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (c *Client) authHeader() http.Header {
	h := http.Header{}
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
	if c.principal != "" {
		h.Set(c.header, string(c.principal))
	}
	return h
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header = c.authHeader()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e httpapi.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func notePath(index uint64) string {
	return fmt.Sprintf("/v1/notes/%d", index)
}

func unwrap(resp httpapi.NoteResponse) (core.Note, bool, error) {
	if resp.Note == nil {
		return core.Note{}, false, nil
	}
	return *resp.Note, true, nil
}
