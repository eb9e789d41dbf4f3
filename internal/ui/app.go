package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/sous/internal/prefs"
	"github.com/five82/sous/internal/search"
)

// focusArea is the pane receiving list keys on the Search view.
type focusArea int

const (
	focusInput focusArea = iota
	focusIngredients
	focusRecipes
	focusCount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *search.Session
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
	LogPath   string
	RichText  bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *search.Session
	logger    *zap.Logger
	prefsPath string
	logPath   string

	// UI state
	theme  Theme
	keys   keyMap
	nav    navBar
	width  int
	height int
	ready  bool
	focus  focusArea
	rich   bool

	// Search view
	input        textinput.Model
	inputRev     int
	snap         search.Snapshot
	ingCursor    int
	recipeCursor int
	spinner      spinner.Model

	// Recipe detail, open while the session has a selected recipe
	modal Modal

	diag diagnosticsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	session := opts.Session
	if session == nil {
		session = search.New(search.Options{Logger: logger})
	}

	ti := textinput.New()
	ti.Placeholder = "egg, rice, spinach"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	m := Model{
		ctx:       ctx,
		session:   session,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		logPath:   opts.LogPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		rich:      opts.RichText,
		input:     ti,
		spinner:   sp,
		focus:     focusInput,
	}
	m.snap = session.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
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
		m.input.Width = maxInt(10, m.searchBoxWidth()-6)
		m.resizeDiagnostics()
		if dm, ok := m.modal.(detailModal); ok {
			m.modal = dm.resize(m.width, m.height)
		}
		return m, nil

	case debounceMsg:
		if msg.rev != m.inputRev {
			return m, nil
		}
		t, ok := m.session.Autocomplete()
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, tea.Batch(executeCmd(m.ctx, m.session, t), m.spinner.Tick)

	case outcomeMsg:
		m.refresh()
		if msg.Applied && msg.Ticket.Kind == search.KindDetail && m.snap.Selected != nil {
			m.modal = newDetailModal(*m.snap.Selected, m.rich, m.width, m.height)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case richToggledMsg:
		m.rich = msg.rich
		m.savePrefs()
		return m, nil

	case diagnosticsMsg:
		m.applyDiagnostics(msg)
		return m, nil
	}

	if m.focus == focusInput && m.nav.active == linkSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleKey routes key presses: the modal first, then global keys, then
// the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.session.CloseDetail()
			m.modal = nil
			m.refresh()
			return m, cmd
		}
		m.modal = modal
		return m, cmd
	}

	typing := m.nav.active == linkSearch && m.focus == focusInput
	if typing {
		return m.handleInputKey(msg)
	}

	for link, binding := range m.keys.linkKeys() {
		if key.Matches(msg, binding) {
			return m.activate(link)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.activate(linkHelp)
	case key.Matches(msg, m.keys.Menu):
		m.nav.toggle()
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.diag.sized {
			m.diag.vp.SetContent(m.diagnosticsContent())
		}
		m.savePrefs()
		return m, nil
	}

	switch m.nav.active {
	case linkSearch:
		return m.handleSearchKey(msg)
	case linkDiagnostics:
		return m.handleDiagnosticsKey(msg)
	default:
		if key.Matches(msg, m.keys.Escape) {
			return m.activate(linkSearch)
		}
	}
	return m, nil
}

// activate switches the view shown under the nav bar.
func (m Model) activate(link navLink) (tea.Model, tea.Cmd) {
	m.nav.activate(link)
	switch link {
	case linkDiagnostics:
		return m, loadDiagnosticsCmd(m.logPath)
	case linkSearch:
		if m.focus == focusInput {
			cmd := m.input.Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = (f + focusCount) % focusCount
	if m.focus == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// refresh copies the session state and keeps the cursors in range.
func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	m.ingCursor = clampCursor(m.ingCursor, len(m.snap.Filtered))
	m.recipeCursor = clampCursor(m.recipeCursor, len(m.snap.Recipes))
	if m.snap.Selected == nil {
		m.modal = nil
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, RichText: prefs.Bool(m.rich)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// renderContent renders the main content area for the active link.
func (m Model) renderContent() string {
	height := maxInt(3, m.height-2)
	switch m.nav.active {
	case linkDiagnostics:
		return m.renderDiagnostics(height)
	case linkHelp:
		return m.renderHelp(height)
	case linkAbout:
		return m.renderAbout(height)
	default:
		return m.renderSearch(height)
	}
}

// placeCenter centers a block in the content area.
func (m Model) placeCenter(block string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, block,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)))
}

// Messages

// debounceMsg fires after the input has been quiet for
// AutocompleteDebounce; rev identifies the edit that scheduled it.
type debounceMsg struct{ rev int }

type outcomeMsg search.Outcome

type richToggledMsg struct{ rich bool }

// Commands

func debounceCmd(rev int) tea.Cmd {
	return tea.Tick(AutocompleteDebounce, func(time.Time) tea.Msg {
		return debounceMsg{rev: rev}
	})
}

// executeCmd runs a session ticket off the UI goroutine.
func executeCmd(ctx context.Context, session *search.Session, t search.Ticket) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(session.Execute(ctx, t))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
