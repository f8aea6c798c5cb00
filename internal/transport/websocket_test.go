package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsURL(server *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + path
}

func TestWebSocketDialer_ReadsTextFramesAndSkipsBinary(t *testing.T) {
	t.Parallel()

	gotUserAgent := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		gotUserAgent <- r.Header.Get("User-Agent")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02})
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"id":1,"body":"hello"}`))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	conn, err := NewWebSocketDialer().Dial(ctx, wsURL(server, "/ws"))
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}
	defer conn.Close()

	if ua := <-gotUserAgent; !strings.HasPrefix(ua, "kuteview/") {
		t.Fatalf("User-Agent = %q, want kuteview/*", ua)
	}

	data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage returned error: %v", err)
	}
	if string(data) != `{"id":1,"body":"hello"}` {
		t.Fatalf("ReadMessage = %q, want the text frame", data)
	}

	if _, err := conn.ReadMessage(); err == nil {
		t.Fatal("ReadMessage after close returned nil error")
	}
}

func TestWebSocketDialer_HandshakeFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	_, err := NewWebSocketDialer().Dial(context.Background(), wsURL(server, "/ws"))
	if err == nil {
		t.Fatal("Dial returned nil error, want handshake failure")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("Dial error = %q, want it to mention status 404", err)
	}
}

func TestWebSocketDialer_CloseUnblocksRead(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{}
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	conn, err := NewWebSocketDialer().Dial(context.Background(), wsURL(server, "/ws"))
	if err != nil {
		t.Fatalf("Dial returned error: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := conn.ReadMessage()
		errCh <- err
	}()
	_ = conn.Close()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("ReadMessage returned nil error after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadMessage did not return after Close")
	}
}
