package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sous/internal/logtail"
)

// diagnosticsState holds the Diagnostics view: the formatted tail of the
// diagnostic log.
type diagnosticsState struct {
	lines    []string
	err      error
	loadedAt time.Time
	vp       viewport.Model
	sized    bool
}

type diagnosticsMsg struct {
	lines []string
	err   error
	at    time.Time
}

// loadDiagnosticsCmd reads the log tail off the UI goroutine.
func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg{at: time.Now()}
		}
		lines, err := logtail.Tail(path, DiagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err, at: time.Now()}
	}
}

func (m *Model) resizeDiagnostics() {
	w, h := maxInt(10, m.width-2), maxInt(1, m.height-2-2)
	if !m.diag.sized {
		m.diag.vp = viewport.New(w, h)
		m.diag.sized = true
	} else {
		m.diag.vp.Width, m.diag.vp.Height = w, h
	}
	m.diag.vp.SetContent(m.diagnosticsContent())
}

func (m *Model) applyDiagnostics(msg diagnosticsMsg) {
	m.diag.lines = msg.lines
	m.diag.err = msg.err
	m.diag.loadedAt = msg.at
	if !m.diag.sized {
		m.resizeDiagnostics()
	}
	m.diag.vp.SetContent(m.diagnosticsContent())
	m.diag.vp.GotoBottom()
}

func (m Model) diagnosticsContent() string {
	switch {
	case m.diag.err != nil:
		return "Could not read " + m.logPath + ": " + m.diag.err.Error()
	case m.logPath == "":
		return "Logging is disabled."
	case len(m.diag.lines) == 0:
		return "Nothing logged yet."
	}
	return strings.Join(colorizeLogLines(m.theme, m.diag.lines), "\n")
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, loadDiagnosticsCmd(m.logPath)
	case key.Matches(msg, m.keys.Escape):
		return m.activate(linkSearch)
	case key.Matches(msg, m.keys.Top):
		m.diag.vp.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.diag.vp.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.diag.vp, cmd = m.diag.vp.Update(msg)
	return m, cmd
}

func (m Model) renderDiagnostics(height int) string {
	title := "Diagnostics"
	if !m.diag.loadedAt.IsZero() {
		title = fmt.Sprintf("Diagnostics · %s · %s", plural(len(m.diag.lines), "line", "lines"), m.diag.loadedAt.Format("15:04:05"))
	}
	return m.renderTitledBox(title, m.diag.vp.View(), m.width, height, true)
}
