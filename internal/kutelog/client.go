package kutelog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VersionFetcher is implemented by *Client and can be faked in tests.
type VersionFetcher interface {
	FetchVersion(ctx context.Context) (Version, error)
}

// Ensure Client implements VersionFetcher at compile time.
var _ VersionFetcher = (*Client)(nil)

// Client talks to the kutelog server's HTTP endpoints.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultServer is where kutelog listens when its default port is free.
	DefaultServer    = "127.0.0.1:9106"
	defaultUserAgent = "kuteview/0.1"
	requestTimeout   = 5 * time.Second
	streamPath       = "/ws"
)

// Version mirrors the payload served at /version.
type Version struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String renders "name version", tolerating missing fields.
func (v Version) String() string {
	return strings.TrimSpace(v.Name + " " + v.Version)
}

// NewClient builds a Client for a host:port or http(s):// address.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalised http(s) base address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// WebSocketURL returns the live stream endpoint, ws:// or wss:// to match the
// base scheme.
func (c *Client) WebSocketURL() string {
	u := *c.baseURL
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = streamPath
	return u.String()
}

// FetchVersion retrieves the server name and version.
func (c *Client) FetchVersion(ctx context.Context) (Version, error) {
	if c == nil {
		return Version{}, fmt.Errorf("client is nil")
	}
	var payload Version
	if err := c.do(ctx, http.MethodGet, "/version", &payload); err != nil {
		return Version{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = DefaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return nil, fmt.Errorf("parse server %q: unsupported scheme %q", server, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server %q: missing host", server)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
