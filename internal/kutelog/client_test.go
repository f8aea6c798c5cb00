package kutelog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != DefaultServer {
		t.Fatalf("host = %q, want %q", u.Host, DefaultServer)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_RejectsBadAddresses(t *testing.T) {
	for _, in := range []string{"ftp://example.com", "http://", "http://[::1"} {
		if _, err := parseBaseURL(in); err == nil {
			t.Errorf("parseBaseURL(%q) returned nil error", in)
		}
	}
}

func TestWebSocketURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"", "ws://127.0.0.1:9106/ws"},
		{"localhost:9107", "ws://localhost:9107/ws"},
		{"http://10.0.0.5:9106/", "ws://10.0.0.5:9106/ws"},
		{"https://logs.example.com", "wss://logs.example.com/ws"},
		{"ws://10.0.0.5:9106/ws", "ws://10.0.0.5:9106/ws"},
		{"wss://logs.example.com/ws", "wss://logs.example.com/ws"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.server)
		if err != nil {
			t.Fatalf("NewClient(%q) returned error: %v", tt.server, err)
		}
		if got := c.WebSocketURL(); got != tt.want {
			t.Errorf("WebSocketURL(%q) = %q, want %q", tt.server, got, tt.want)
		}
	}
}

func TestClient_FetchVersion(t *testing.T) {
	t.Parallel()

	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		if r.URL.Path != "/version" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Version{Name: "kutelog", Version: "0.4.2"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	v, err := c.FetchVersion(ctx)
	if err != nil {
		t.Fatalf("FetchVersion returned error: %v", err)
	}
	if v.String() != "kutelog 0.4.2" {
		t.Fatalf("FetchVersion = %q, want %q", v.String(), "kutelog 0.4.2")
	}
	if !strings.HasPrefix(gotUserAgent, "kuteview/") {
		t.Fatalf("User-Agent = %q, want kuteview/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(status.Load()); code != http.StatusOK {
			http.Error(w, "nope", code)
			return
		}
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchVersion error = %v, want decode response error", err)
	}

	status.Store(http.StatusInternalServerError)
	_, err = c.FetchVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchVersion error = %v, want status 500 error", err)
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{Name: "kutelog"}).String(); got != "kutelog" {
		t.Fatalf("String = %q, want kutelog", got)
	}
	if got := (Version{}).String(); got != "" {
		t.Fatalf("String = %q, want empty", got)
	}
}
