package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/console"
	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/wire"
)

// palette adapts the theme to the console entry formatter.
func (m Model) palette() console.Palette {
	styles := m.theme.Styles()
	levels := make(map[wire.Category]lipgloss.Style, len(wire.Categories))
	for _, c := range wire.Categories {
		levels[c] = styles.LevelStyle(c)
	}
	return console.Palette{
		Timestamp: styles.FaintText,
		Message:   styles.Text,
		Detail:    styles.MutedText,
		Levels:    levels,
	}
}

// formatEntries renders entries as viewport lines. Multi-line entries expand
// into several lines.
func formatEntries(entries []livelog.Entry, p console.Palette) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, strings.Split(console.FormatEntry(e, p), "\n")...)
	}
	return lines
}
