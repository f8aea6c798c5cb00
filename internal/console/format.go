package console

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/wire"
)

// Palette holds the styles used to print an entry.
type Palette struct {
	Timestamp lipgloss.Style
	Message   lipgloss.Style
	Detail    lipgloss.Style
	Levels    map[wire.Category]lipgloss.Style
}

// DefaultPalette matches the browser console colours of the kutelog viewer.
func DefaultPalette() Palette {
	return Palette{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Message:   lipgloss.NewStyle(),
		Detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Levels: map[wire.Category]lipgloss.Style{
			wire.CategoryInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
			wire.CategoryWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
			wire.CategoryError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
			wire.CategoryDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
			wire.CategoryLog:     lipgloss.NewStyle(),
		},
	}
}

// LevelLabel is the level text shown for an entry; generic entries show "log".
func LevelLabel(e livelog.Entry) string {
	if level := strings.TrimSpace(e.Level); level != "" {
		return level
	}
	return string(wire.CategoryLog)
}

// FormatEntry renders an entry as one header line followed by indented data
// and stack lines.
func FormatEntry(e livelog.Entry, p Palette) string {
	parts := make([]string, 0, 3)
	if e.Timestamp != "" {
		parts = append(parts, p.Timestamp.Render(e.Timestamp))
	}
	parts = append(parts, p.level(e.Category).Render(LevelLabel(e)))
	parts = append(parts, p.Message.Render(e.Message))

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	for _, line := range DetailLines(e) {
		b.WriteString("\n")
		b.WriteString(p.Detail.Render(line))
	}
	return b.String()
}

// DetailLines returns the indented data and stack lines of an entry.
func DetailLines(e livelog.Entry) []string {
	var lines []string
	if e.Data != nil {
		for _, line := range strings.Split(formatData(e.Data), "\n") {
			lines = append(lines, "    "+line)
		}
	}
	if stack := strings.TrimRight(e.Stack, "\n"); stack != "" {
		for _, line := range strings.Split(stack, "\n") {
			lines = append(lines, "    "+line)
		}
	}
	return lines
}

func formatData(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(out)
}

func (p Palette) level(c wire.Category) lipgloss.Style {
	if style, ok := p.Levels[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
