package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Letter keys
// only act while the query input is not focused; the input receives them
// as text otherwise.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Menu       key.Binding

	// Navigation links
	LinkSearch      key.Binding
	LinkDiagnostics key.Binding
	LinkHelp        key.Binding
	LinkAbout       key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Actions
	Confirm    key.Binding
	FocusInput key.Binding
	Close      key.Binding
	ToggleRich key.Binding
	Refresh    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "ctrl+o"),
			key.WithHelp("m/ctrl+o", "Toggle menu"),
		),

		LinkSearch: key.NewBinding(
			key.WithKeys("1", "f1"),
			key.WithHelp("1/F1", "Search"),
		),
		LinkDiagnostics: key.NewBinding(
			key.WithKeys("2", "f2"),
			key.WithHelp("2/F2", "Diagnostics"),
		),
		LinkHelp: key.NewBinding(
			key.WithKeys("3", "f3"),
			key.WithHelp("3/F3", "Help"),
		),
		LinkAbout: key.NewBinding(
			key.WithKeys("4", "f4"),
			key.WithHelp("4/F4", "About"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search / open"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "Edit query"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "Close recipe"),
		),
		ToggleRich: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Plain/rich text"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload log"),
		),
	}
}

// linkKeys pairs each navigation link with its binding.
func (k keyMap) linkKeys() map[navLink]key.Binding {
	return map[navLink]key.Binding{
		linkSearch:      k.LinkSearch,
		linkDiagnostics: k.LinkDiagnostics,
		linkHelp:        k.LinkHelp,
		linkAbout:       k.LinkAbout,
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LinkSearch, k.LinkDiagnostics, k.LinkHelp, k.LinkAbout, k.Menu},
		{k.Confirm, k.FocusInput, k.Escape, k.Tab, k.ShiftTab},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Close, k.ToggleRich, k.Refresh},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
