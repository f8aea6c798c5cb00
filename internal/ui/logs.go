package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/wire"
)

// levelFilters is the cycle order of the level filter; "" shows everything.
var levelFilters = []wire.Category{
	"",
	wire.CategoryError,
	wire.CategoryWarning,
	wire.CategoryInfo,
	wire.CategoryDebug,
	wire.CategoryLog,
}

// logState holds all log-related state.
type logState struct {
	follow bool
	filter int // index into levelFilters

	visible int // entries shown after filtering

	// Content caching - skip re-render when unchanged
	renderedRevision uint64
	stale            bool
}

func (s *logState) invalidate() {
	s.stale = true
}

// level returns the active filter category; empty means all.
func (s logState) level() wire.Category {
	return levelFilters[s.filter%len(levelFilters)]
}

func (s *logState) cycleLevel() {
	s.filter = (s.filter + 1) % len(levelFilters)
	s.stale = true
}

// filterLabel returns the display label for the current level filter.
func (s logState) filterLabel() string {
	if level := s.level(); level != "" {
		return string(level)
	}
	return "all"
}

// filterEntries keeps the entries whose category matches level.
func filterEntries(entries []livelog.Entry, level wire.Category) []livelog.Entry {
	if level == "" {
		return entries
	}
	out := make([]livelog.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == level {
			out = append(out, e)
		}
	}
	return out
}

// updateLogViewport resizes the viewport and refreshes its content when the
// snapshot or the view settings changed.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}

	// Box height = m.height - 3 (header, cmdbar, status bar below)
	// Box inner = box height - 2 (top and bottom borders) = m.height - 5
	width := max(m.width-4, 1)
	height := max(m.height-5-m.activityRows(), 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	if m.logState.stale || m.snapshot.Revision != m.logState.renderedRevision {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.renderedRevision = m.snapshot.Revision
		m.logState.stale = false
	}

	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// renderLogContent renders the styled log lines for the active filter.
func (m *Model) renderLogContent() string {
	styles := m.theme.Styles()
	entries := filterEntries(m.snapshot.Entries, m.logState.level())
	m.logState.visible = len(entries)

	if len(entries) == 0 {
		if len(m.snapshot.Entries) == 0 {
			return styles.MutedText.Render("Waiting for log entries")
		}
		return styles.MutedText.Render("No " + m.logState.filterLabel() + " entries")
	}

	lines := formatEntries(entries, m.palette())
	return strings.Join(lines, "\n")
}

// renderLogs renders the log pane and its status line.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles()
	contentHeight := m.height - 3 - m.activityRows()

	title := "Live Log"
	if level := m.logState.level(); level != "" {
		title = fmt.Sprintf("Live Log (%s)", level)
	}

	box := m.renderBox(title, m.logViewport.View(), m.width, contentHeight)
	return box + "\n" + m.renderLogStatus(styles, bg)
}

// activityRows is the height taken by the activity chart when it is shown.
func (m Model) activityRows() int {
	if m.showActivity {
		return activityHeight
	}
	return 0
}

// renderBox draws a rounded border with the title embedded in the top edge.
func (m Model) renderBox(title, content string, width, height int) string {
	border := lipgloss.RoundedBorder()
	boxStyle := lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(max(width-2, 0)).
		Height(max(height-2, 0))

	body := boxStyle.Render(content)
	lines := strings.Split(body, "\n")
	if len(lines) == 0 || width < len(title)+6 {
		return body
	}

	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Bold(true).Render(" " + title + " ")
	fill := width - 2 - 1 - lipgloss.Width(label)
	lines[0] = edge.Render(border.TopLeft+border.Top) + label +
		edge.Render(strings.Repeat(border.Top, max(fill, 0))+border.TopRight)
	return strings.Join(lines, "\n")
}

// renderLogStatus renders the line below the log box.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	autoTail := "off"
	if m.logState.follow {
		autoTail = "on"
	}

	parts := []string{
		bg.Render(fmt.Sprintf("%d of %d entries", m.logState.visible, len(m.snapshot.Entries)), styles.FaintText),
		bg.Render("auto-tail "+autoTail, styles.FaintText),
	}
	if m.logState.level() != "" {
		parts = append(parts, bg.Render("level="+m.logState.filterLabel(), styles.MutedText))
	}
	if m.snapshot.Overwritten > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d trimmed", m.snapshot.Overwritten), styles.WarningText))
	}
	if m.endpoint != "" {
		parts = append(parts, bg.Render(m.endpoint, styles.AccentText))
	}

	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	return strings.Join(parts, sep)
}

// handleLogsKey processes scrolling and log actions.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
		m.savePrefs()

	case key.Matches(msg, m.keys.CycleLevel):
		m.logState.cycleLevel()
		m.updateLogViewport()

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		m.logState.follow = false

	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		m.logState.follow = false
	}

	return m, nil
}
