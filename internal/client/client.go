// Package client is the HTTP+JSON resource client for the workbench
// backend. It exposes one typed service per resource family; the shared
// request plumbing lives in Client.
//
// The client deliberately sets no timeout of its own: request lifetimes are
// bounded only by the caller's context and the transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	debuglog "workbench/internal/log"
)

// DefaultBaseURL is used when the hosting environment supplies no override.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to one workbench backend instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New validates the base URL and builds a client for it. An empty URL falls
// back to DefaultBaseURL.
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid API base URL %q", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("API base URL must be http or https, got %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Documents returns the typed service for document collections.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{client: c}
}

// Chats returns the typed service for chat collections.
func (c *Client) Chats() *ChatService {
	return &ChatService{client: c}
}

// Tables returns the typed service for database tables.
func (c *Client) Tables() *TableService {
	return &TableService{client: c}
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode response from %s", path)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) postMultipart(ctx context.Context, path, contentType string, body *bytes.Buffer, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	respBody, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err = json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode response from %s", path)
	}
	return nil
}

// do executes the request and returns the response body. Non-2xx statuses
// become errors carrying the status and a body excerpt.
func (c *Client) do(req *http.Request) ([]byte, error) {
	debuglog.Debug(debuglog.Detailed, "%s %s\n", req.Method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response from %s", req.URL.Path)
	}
	debuglog.Debug(debuglog.Wire, "%s %s -> %d %s\n", req.Method, req.URL.Path, resp.StatusCode, body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("%s %s failed (status %d): %s", req.Method, req.URL.Path, resp.StatusCode, excerpt(body))
	}
	return body, nil
}

func excerpt(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
