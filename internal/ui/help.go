package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Views", "Query", "Lists", "Recipe and log", "General"}

// renderHelp renders the key reference built from the key map.
func (m Model) renderHelp(height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(14)
	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Letter keys act once the query input is left (esc)."))

	return m.placeCenter(m.modalBox(b.String(), 52), height)
}

// renderAbout renders the About view.
func (m Model) renderAbout(height int) string {
	styles := m.theme.Styles()
	lines := []string{
		styles.Logo.Render("sous"),
		"",
		styles.Text.Render("Find recipes for the ingredients you have."),
		styles.MutedText.Render("Recipe data from the Spoonacular API."),
		"",
		styles.FaintText.Render("Search history is never written to disk."),
	}
	return m.placeCenter(m.modalBox(strings.Join(lines, "\n"), 52), height)
}

func (m Model) modalBox(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(minInt(width, maxInt(20, m.width-4))).
		Render(content)
}
