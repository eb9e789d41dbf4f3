package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the brand, the nav links and the notice line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("sous", styles.Logo)}

	links := m.nav.visibleLinks(m.width)
	if len(links) == 0 {
		parts = append(parts, bg.Render("m", styles.AccentText)+bg.Sep(":")+bg.Render("Menu", styles.MutedText))
	}
	for i, link := range links {
		label := strconv.Itoa(i+1) + " " + link.String()
		if link == m.nav.active {
			parts = append(parts, bg.Render(label, styles.AccentText.Bold(true).Underline(true)))
		} else {
			parts = append(parts, bg.Render(label, styles.MutedText))
		}
	}

	if m.snap.Notice != "" {
		parts = append(parts, bg.Render(truncate(m.snap.Notice, maxInt(10, m.width/2)), styles.WarningText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.nav.active {
	case linkDiagnostics:
		commands = []cmd{
			{"R", "Reload"},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"1", "Search"},
			{"?", "Help"},
			{"q", "Quit"},
		}
	case linkHelp, linkAbout:
		commands = []cmd{
			{"esc", "Back"},
			{"1-4", "Views"},
			{"q", "Quit"},
		}
	default:
		if m.focus == focusInput {
			commands = []cmd{
				{"enter", "Search"},
				{"tab", "Lists"},
				{"esc", "Leave input"},
				{"F1-F4", "Views"},
				{"ctrl+c", "Quit"},
			}
		} else {
			commands = []cmd{
				{"enter", "Open"},
				{"j/k", "Navigate"},
				{"tab", "Focus"},
				{"/", "Edit query"},
				{"m", "Menu"},
				{"?", "Help"},
				{"q", "Quit"},
			}
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	if m.focus != focusInput || m.nav.active != linkSearch {
		segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
