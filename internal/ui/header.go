package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/wire"
)

// counterLabels are the short header labels, in wire.Categories order.
var counterLabels = map[wire.Category]string{
	wire.CategoryLog:     "log",
	wire.CategoryInfo:    "info",
	wire.CategoryWarning: "warn",
	wire.CategoryError:   "error",
	wire.CategoryDebug:   "debug",
}

// renderHeader renders the status bar: logo, connection, counters and server.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("kuteview", styles.Logo),
		m.connectionIndicator(styles, bg),
	}

	counts := m.snapshot.Counts
	for _, c := range wire.Categories {
		parts = append(parts,
			bg.Render(counterLabels[c], styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", counts.Get(c)), styles.LevelStyle(c)))
	}

	if m.snapshot.Version != "" && m.width >= 100 {
		parts = append(parts, bg.Render(m.snapshot.Version, styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// connectionIndicator is the coloured dot and label for the live connection.
func (m Model) connectionIndicator(styles Styles, bg BgStyle) string {
	connected := m.snapshot.Connected
	if m.status != nil {
		connected = m.conn.State == livelog.Connected
	}
	switch {
	case connected:
		return bg.Render("● Connected", styles.SuccessText)
	case m.conn.Attempts > 0:
		return bg.Render(fmt.Sprintf("● Reconnecting (attempt %d)", m.conn.Attempts), styles.DangerText)
	default:
		return bg.Render("● Connecting...", styles.WarningText.Bold(true))
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	followLabel := "Pause"
	if !m.logState.follow {
		followLabel = "Follow"
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"Space", followLabel},
		{"f", "Level:" + m.logState.filterLabel()},
		{"c", "Clear"},
		{"a", "Activity"},
		{"j/k", "Scroll"},
		{"g/G", "Top/Bottom"},
		{"?", "More"},
		{"q", "Quit"},
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
