package ui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/prefs"
	"github.com/five82/kuteview/internal/state"
)

// DefaultRefresh is the snapshot polling interval.
const DefaultRefresh = 250 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	// Status reports the live client's connection state and attempt count.
	Status    func() livelog.Snapshot
	Endpoint  string
	Refresh   time.Duration
	ThemeName string
	PrefsPath string
	Follow    bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	status    func() livelog.Snapshot
	endpoint  string
	prefsPath string
	refresh   time.Duration

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	conn     livelog.Snapshot
	lastTick time.Time

	logViewport viewport.Model
	logState    logState

	showHelp     bool
	showActivity bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		status:    opts.Status,
		endpoint:  opts.Endpoint,
		prefsPath: opts.PrefsPath,
		refresh:   refresh,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		logState:  logState{follow: opts.Follow},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.refresh),
		fetchSnapshotCmd(m.store, m.status),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logState.invalidate()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		m.lastTick = time.Time(msg)
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		return m, tea.Batch(fetchSnapshotCmd(m.store, m.status), tickCmd(m.refresh))

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.conn = msg.conn
		m.updateLogViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleActivity):
		m.showActivity = !m.showActivity
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.store != nil {
			m.store.Clear()
		}
		return m, fetchSnapshotCmd(m.store, m.status)
	}

	return m.handleLogsKey(msg)
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.logState.invalidate()
	m.updateLogViewport()
	m.savePrefs()
}

// savePrefs persists the theme and follow mode.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Follow: m.logState.follow}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + connection + counters
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	if m.showActivity {
		b.WriteString(m.renderActivity())
		b.WriteString("\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot state.Snapshot
	conn     livelog.Snapshot
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store, status func() livelog.Snapshot) tea.Cmd {
	return func() tea.Msg {
		var msg snapshotMsg
		if store != nil {
			msg.snapshot = store.Snapshot()
		}
		if status != nil {
			msg.conn = status()
		}
		return msg
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
