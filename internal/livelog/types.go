package livelog

import (
	"context"
	"time"

	"github.com/five82/kuteview/internal/wire"
)

// ConnectionState tracks the lifecycle of the live connection.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connecting
	Connected
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Counts holds one counter per category.
type Counts struct {
	Log     int
	Info    int
	Warning int
	Error   int
	Debug   int
}

// Get returns the counter for category.
func (c Counts) Get(category wire.Category) int {
	switch category {
	case wire.CategoryInfo:
		return c.Info
	case wire.CategoryWarning:
		return c.Warning
	case wire.CategoryError:
		return c.Error
	case wire.CategoryDebug:
		return c.Debug
	default:
		return c.Log
	}
}

// Total returns the sum of all counters.
func (c Counts) Total() int {
	return c.Log + c.Info + c.Warning + c.Error + c.Debug
}

// Add increments the counter for category.
func (c *Counts) Add(category wire.Category) {
	switch category {
	case wire.CategoryInfo:
		c.Info++
	case wire.CategoryWarning:
		c.Warning++
	case wire.CategoryError:
		c.Error++
	case wire.CategoryDebug:
		c.Debug++
	default:
		c.Log++
	}
}

// Entry is a single forwarded log line.
type Entry struct {
	Seq       int64 // envelope id; zero for frames that failed to decode
	Category  wire.Category
	Level     string // level as sent; empty for generic entries
	Timestamp string // normalised for display
	Message   string
	Data      any
	Stack     string
	Received  time.Time
}

// Renderer presents forwarded entries and the connection status.
type Renderer interface {
	// Render receives one entry together with the counters after it was counted.
	Render(entry Entry, counts Counts)
	SetConnected(connected bool)
}

// Dialer opens the transport connection.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Conn is a message-oriented connection. ReadMessage blocks until a text
// frame arrives or the connection fails; Close unblocks it.
type Conn interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// Snapshot is a point-in-time copy of the client's counters and state.
type Snapshot struct {
	Watermark int64
	Counts    Counts
	State     ConnectionState
	Attempts  int
}
