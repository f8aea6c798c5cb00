package livelog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/five82/kuteview/internal/wire"
)

// DefaultRetryDelay is the fixed pause between a close and the next dial.
const DefaultRetryDelay = time.Second

const eventBuffer = 256

type eventKind int

const (
	eventOpen eventKind = iota
	eventMessage
	eventError
	eventClose
	eventRetry
)

type event struct {
	kind eventKind
	conn Conn
	data []byte
	err  error
}

// Options configure a Client.
type Options struct {
	URL        string
	Dialer     Dialer
	Renderer   Renderer
	RetryDelay time.Duration // zero uses DefaultRetryDelay
}

// Client keeps a live connection to a log source, admits envelopes newer than
// its watermark and forwards them to a Renderer. It reconnects forever after
// a fixed delay.
type Client struct {
	url        string
	dialer     Dialer
	renderer   Renderer
	retryDelay time.Duration

	events    chan event
	afterFunc func(time.Duration, func())
	now       func() time.Time

	// conn is only touched by the dispatch goroutine.
	conn Conn

	mu        sync.Mutex
	watermark int64
	counts    Counts
	state     ConnectionState
	attempts  int
}

// New builds a Client. URL, Dialer and Renderer are required.
func New(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("livelog: url is required")
	}
	if opts.Dialer == nil {
		return nil, fmt.Errorf("livelog: dialer is required")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("livelog: renderer is required")
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return &Client{
		url:        opts.URL,
		dialer:     opts.Dialer,
		renderer:   opts.Renderer,
		retryDelay: delay,
		events:     make(chan event, eventBuffer),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now: time.Now,
	}, nil
}

// Run connects and dispatches transport events until ctx is cancelled. It is
// the single place where client state changes.
func (c *Client) Run(ctx context.Context) error {
	c.start(ctx)
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return nil
		case ev := <-c.events:
			c.dispatch(ctx, ev)
		}
	}
}

// Snapshot returns the current counters and connection state.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Watermark: c.watermark,
		Counts:    c.counts,
		State:     c.state,
		Attempts:  c.attempts,
	}
}

// shutdown closes the live connection and any connection whose open event
// was still queued.
func (c *Client) shutdown() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	for {
		select {
		case ev := <-c.events:
			if ev.kind == eventOpen && ev.conn != nil {
				_ = ev.conn.Close()
			}
		default:
			c.setState(Disconnected)
			return
		}
	}
}

func (c *Client) dispatch(ctx context.Context, ev event) {
	switch ev.kind {
	case eventOpen:
		c.conn = ev.conn
		c.handleOpen()
	case eventMessage:
		c.handleMessage(ev.data)
	case eventError:
		c.handleError(ev.err)
	case eventClose:
		c.conn = nil
		c.handleClose(ctx)
	case eventRetry:
		c.mu.Lock()
		c.attempts++
		c.mu.Unlock()
		c.start(ctx)
	}
}

// start dials in the background. The outcome arrives as events: open then
// messages on success, error then close on any failure.
func (c *Client) start(ctx context.Context) {
	c.setState(Connecting)
	go func() {
		conn, err := c.dialer.Dial(ctx, c.url)
		if err != nil {
			c.post(ctx, event{kind: eventError, err: err})
			c.post(ctx, event{kind: eventClose})
			return
		}
		if !c.post(ctx, event{kind: eventOpen, conn: conn}) {
			_ = conn.Close()
			return
		}
		// A cancelled ctx unblocks ReadMessage even if shutdown never saw this conn.
		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
		defer stop()
		c.readLoop(ctx, conn)
	}()
}

func (c *Client) readLoop(ctx context.Context, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			c.post(ctx, event{kind: eventError, err: err})
			c.post(ctx, event{kind: eventClose})
			return
		}
		if !c.post(ctx, event{kind: eventMessage, data: data}) {
			_ = conn.Close()
			return
		}
	}
}

func (c *Client) post(ctx context.Context, ev event) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case c.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Client) handleOpen() {
	c.mu.Lock()
	c.attempts = 0
	c.state = Connected
	c.mu.Unlock()
	log.Printf("connected to %s", c.url)
	c.renderer.SetConnected(true)
}

func (c *Client) handleError(err error) {
	c.setState(Disconnected)
	if err != nil {
		log.Printf("connection error: %v", err)
	}
	c.renderer.SetConnected(false)
}

func (c *Client) handleClose(ctx context.Context) {
	c.setState(Disconnected)
	c.renderer.SetConnected(false)
	c.scheduleReconnect(ctx)
}

// scheduleReconnect arms one timer per close. The delay never grows and the
// timer is never cancelled; once ctx is done the retry event is discarded.
func (c *Client) scheduleReconnect(ctx context.Context) {
	c.afterFunc(c.retryDelay, func() {
		c.post(ctx, event{kind: eventRetry})
	})
}

func (c *Client) handleMessage(raw []byte) {
	env, err := wire.Decode(raw)
	if err != nil {
		c.forward(Entry{Category: wire.CategoryLog, Message: string(raw)})
		return
	}

	c.mu.Lock()
	if env.ID <= c.watermark {
		c.mu.Unlock()
		return
	}
	c.watermark = env.ID
	c.mu.Unlock()

	c.forward(classify(env, raw))
}

func classify(env wire.Envelope, raw []byte) Entry {
	body := wire.ParseBody(env.Body)
	switch body.Kind {
	case wire.BodyEvent:
		evt := body.Event
		return Entry{
			Seq:       env.ID,
			Category:  wire.CategoryOf(evt.Level),
			Level:     evt.Level,
			Timestamp: wire.FormatTimestamp(evt.Timestamp),
			Message:   evt.Message,
			Data:      evt.Data,
			Stack:     evt.Stack,
		}
	case wire.BodyText:
		return Entry{Seq: env.ID, Category: wire.CategoryLog, Message: body.Text}
	default:
		return Entry{Seq: env.ID, Category: wire.CategoryLog, Message: compactJSON(raw)}
	}
}

func compactJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (c *Client) forward(entry Entry) {
	entry.Received = c.now()
	c.mu.Lock()
	c.counts.Add(entry.Category)
	counts := c.counts
	c.mu.Unlock()
	c.renderer.Render(entry, counts)
}

func (c *Client) setState(state ConnectionState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}
