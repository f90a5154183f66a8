package ui

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spotterhq/spotter/internal/prefs"
	"github.com/spotterhq/spotter/internal/search"
)

// focusArea identifies which pane receives non-global keystrokes.
type focusArea int

const (
	focusQuery focusArea = iota
	focusResults
)

// chrome line counts above the results area: header, command bar, query line.
const chromeLines = 3

// detailPaneMinWidth is the terminal width at which the detail pane appears.
const detailPaneMinWidth = 110

// Options configures the UI.
type Options struct {
	Context    context.Context
	Engine     *search.Engine
	Prefetcher *search.Prefetcher
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	engine     *search.Engine
	prefetcher *search.Prefetcher
	prefsPath  string

	theme  Theme
	keys   keyMap
	input  textinput.Model
	spin   spinner.Model
	width  int
	height int
	ready  bool
	focus  focusArea

	snap      search.State
	details   map[string]json.RawMessage
	scrollTop int

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	input := textinput.New()
	input.Placeholder = "Search products, sales, customers..."
	input.Prompt = "› "
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	m := Model{
		ctx:        ctx,
		engine:     opts.Engine,
		prefetcher: opts.Prefetcher,
		prefsPath:  prefsPath,
		theme:      theme,
		keys:       DefaultKeyMap(),
		input:      input,
		spin:       spin,
		details:    make(map[string]json.RawMessage),
	}
	if opts.Engine != nil {
		m.snap = opts.Engine.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
	}
	if m.engine != nil {
		cmds = append(cmds, listenCmd(m.engine.Updates()))
	}
	return tea.Batch(cmds...)
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
		m.input.Width = m.width - 4
		m.clampScroll()
		return m, nil

	case stateMsg:
		return m.handleStateChange()

	case detailMsg:
		if msg.ok {
			m.details[msg.key] = msg.raw
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
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

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderQueryLine())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleStateChange pulls a fresh snapshot after the engine signals, keeps
// the selection visible, and kicks off a detail prefetch for the newly
// selected row.
func (m Model) handleStateChange() (tea.Model, tea.Cmd) {
	m.snap = m.engine.Snapshot()
	m.ensureSelectionVisible()

	cmds := []tea.Cmd{listenCmd(m.engine.Updates())}
	if m.snap.Loading {
		cmds = append(cmds, m.spin.Tick)
	}
	if cmd := m.prefetchSelected(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Any key closes help.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusQuery {
			m.focus = focusResults
			m.input.Blur()
			if m.snap.SelectedKey == "" {
				m.engine.MoveSelection(1)
			}
		} else {
			m.focus = focusQuery
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.engine.MoveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.engine.MoveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		return m.handleEscape()
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleQueryKey(msg)
}

// handleEscape clears progressively: results focus, then query text, then
// the program itself.
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.focus == focusResults {
		m.focus = focusQuery
		m.input.Focus()
		return m, nil
	}
	if m.input.Value() != "" {
		m.input.SetValue("")
		m.engine.SetQuery("")
		m.engine.Flush()
		return m, nil
	}
	return m, tea.Quit
}

// handleQueryKey routes keystrokes into the text input and forwards the
// resulting text to the engine, which owns debouncing.
func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.engine.Flush()
		return m, nil
	case key.Matches(msg, m.keys.Retry):
		m.engine.Retry()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.engine.SetQuery(after)
	}
	return m, cmd
}

// handleResultsKey processes keyboard input while the result list is focused.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.snap.Results.Rows()

	switch {
	case key.Matches(msg, m.keys.QuitPlain):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.FocusQuery):
		m.focus = focusQuery
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.RetryPlain):
		m.engine.Retry()
		return m, nil

	case key.Matches(msg, m.keys.DownVim):
		m.engine.MoveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.UpVim):
		m.engine.MoveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.HalfPgDown):
		m.engine.MoveSelection(m.resultsHeight() / 2)
		return m, nil

	case key.Matches(msg, m.keys.HalfPgUp):
		m.engine.MoveSelection(-(m.resultsHeight() / 2))
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.engine.MoveSelection(-len(rows))
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.engine.MoveSelection(len(rows))
		return m, nil

	case key.Matches(msg, m.keys.OpenDetail):
		return m, m.prefetchSelected()
	}

	return m, nil
}

// prefetchSelected issues a background detail fetch for the selected row,
// unless its payload is already on hand.
func (m Model) prefetchSelected() tea.Cmd {
	if m.prefetcher == nil {
		return nil
	}
	kind, id, ok := m.engine.Selected()
	if !ok {
		return nil
	}
	hitKey := m.snap.SelectedKey
	if _, have := m.details[hitKey]; have {
		return nil
	}
	ctx := m.ctx
	p := m.prefetcher
	return func() tea.Msg {
		raw, ok := p.Fetch(ctx, kind, id)
		return detailMsg{key: hitKey, raw: raw, ok: ok}
	}
}

// resultsHeight returns the line count available for the result list.
func (m Model) resultsHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		return 1
	}
	return h
}

// Messages

// stateMsg signals that the engine snapshot changed.
type stateMsg struct{}

// detailMsg carries a completed detail prefetch.
type detailMsg struct {
	key string
	raw json.RawMessage
	ok  bool
}

// Commands

// listenCmd waits for the next engine change notification. The channel is
// coalescing, so each receive is followed by a full Snapshot re-read.
func listenCmd(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return stateMsg{}
	}
}

// Run starts the Bubble Tea program. It returns when the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
