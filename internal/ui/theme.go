package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Every color is a hex string.
type Theme struct {
	Name string

	Background string // behind centered blocks
	Surface    string // header and command bar
	Panel      string // unfocused titled boxes
	PanelFocus string // focused titled box

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// BadgeColors colors the counters on a recipe card: "used", "missed"
	// and "likes".
	BadgeColors map[string]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	badgeColors map[string]string
	badgeText   string
	muted       string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Success).Bold(true),

		badgeColors: t.BadgeColors,
		badgeText:   t.Background,
		muted:       t.Muted,
	}
}

// BadgeStyle returns the pill style for a recipe card counter. Unknown
// badges use the muted color.
func (s Styles) BadgeStyle(badge string) lipgloss.Style {
	color, ok := s.badgeColors[badge]
	if !ok || color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground paints every text style onto bgColor, so styled runs
// inside the header do not punch holes in its background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.WarningText, &out.DangerText, &out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

var themes = map[string]Theme{
	// https://draculatheme.com/spec
	"Dracula": {
		Name:       "Dracula",
		Background: "#191A21", Surface: "#282A36", Panel: "#21222C", PanelFocus: "#343746",
		SelectionBg: "#44475A", SelectionText: "#F8F8F2",
		Border: "#44475A", BorderFocus: "#BD93F9",
		Text: "#F8F8F2", Muted: "#6272A4", Faint: "#44475A", Accent: "#BD93F9",
		Success: "#50FA7B", Warning: "#FFB86C", Danger: "#FF5555", Info: "#8BE9FD",
		BadgeColors: map[string]string{"used": "#50FA7B", "missed": "#FFB86C", "likes": "#FF79C6"},
	},
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", Panel: "#212e3f", PanelFocus: "#29394f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		BadgeColors: map[string]string{"used": "#81b29a", "missed": "#f4a261", "likes": "#9d79d6"},
	},
	// Tailwind slate with sky accents
	"Slate": {
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", Panel: "#1e293b", PanelFocus: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		BadgeColors: map[string]string{"used": "#22c55e", "missed": "#f59e0b", "likes": "#ec4899"},
	},
}

// GetTheme returns the named theme, or Dracula for an unknown name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}
