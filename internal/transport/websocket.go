package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/five82/kuteview/internal/livelog"
)

const (
	handshakeTimeout = 5 * time.Second
	defaultUserAgent = "kuteview/0.1"
)

var _ livelog.Dialer = (*WebSocketDialer)(nil)

// WebSocketDialer dials kutelog /ws endpoints with gorilla/websocket.
type WebSocketDialer struct {
	dialer    *websocket.Dialer
	userAgent string
}

// NewWebSocketDialer returns a dialer with a bounded handshake.
func NewWebSocketDialer() *WebSocketDialer {
	return &WebSocketDialer{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		userAgent: defaultUserAgent,
	}
}

// Dial opens a connection to url.
func (d *WebSocketDialer) Dial(ctx context.Context, url string) (livelog.Conn, error) {
	header := http.Header{}
	header.Set("User-Agent", d.userAgent)
	conn, resp, err := d.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &wsConn{conn: conn}, nil
}

type wsConn struct {
	conn *websocket.Conn
}

// ReadMessage returns the next text frame. Binary frames are skipped.
func (c *wsConn) ReadMessage() ([]byte, error) {
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.TextMessage {
			return data, nil
		}
	}
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
