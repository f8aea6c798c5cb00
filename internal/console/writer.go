package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/livelog"
)

var _ livelog.Renderer = (*Writer)(nil)

// Writer prints entries as styled lines, like a devtools console.
type Writer struct {
	mu        sync.Mutex
	out       io.Writer
	palette   Palette
	endpoint  string
	connected bool

	ok   lipgloss.Style
	warn lipgloss.Style
}

// NewWriter returns a Writer printing to out. endpoint is only used in
// status lines.
func NewWriter(out io.Writer, palette Palette, endpoint string) *Writer {
	return &Writer{
		out:      out,
		palette:  palette,
		endpoint: endpoint,
		ok:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
	}
}

// Render implements livelog.Renderer.
func (w *Writer) Render(entry livelog.Entry, _ livelog.Counts) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, FormatEntry(entry, w.palette))
}

// SetConnected prints a status line whenever the connection flips.
func (w *Writer) SetConnected(connected bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if connected == w.connected {
		return
	}
	w.connected = connected
	if connected {
		fmt.Fprintln(w.out, w.ok.Render("● Connected to "+w.endpoint))
		return
	}
	fmt.Fprintln(w.out, w.warn.Render("● Connection lost, reconnecting..."))
}

// Summary returns a one-line counter summary.
func Summary(c livelog.Counts) string {
	return fmt.Sprintf("log %d  info %d  warn %d  error %d  debug %d",
		c.Log, c.Info, c.Warning, c.Error, c.Debug)
}
