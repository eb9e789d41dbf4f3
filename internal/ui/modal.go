package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sous/internal/render"
	"github.com/five82/sous/internal/spoonacular"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// glamourStyle is the standard glamour style used inside the TUI. Auto
// detection would query the terminal while Bubble Tea owns it.
const glamourStyle = "dark"

// detailModal shows one recipe. It is open exactly while the session has a
// selected recipe.
type detailModal struct {
	detail   spoonacular.RecipeDetail
	rich     bool
	degraded bool // rich rendering failed and fell back to plain text
	vp       viewport.Model
}

func newDetailModal(detail spoonacular.RecipeDetail, rich bool, width, height int) detailModal {
	dm := detailModal{detail: detail, rich: rich}
	return dm.resize(width, height)
}

// resize fits the modal to the terminal and re-renders the body at the new
// wrap width.
func (d detailModal) resize(width, height int) detailModal {
	w, h := modalSize(width, height)
	d.vp = viewport.New(maxInt(10, w-4), maxInt(3, h-5))
	d.vp.SetContent(d.body(d.vp.Width))
	return d
}

func modalSize(width, height int) (int, int) {
	return minInt(ModalMaxWidth, maxInt(24, width-4)), maxInt(8, height-2)
}

// body renders the recipe as terminal text.
func (d *detailModal) body(width int) string {
	r, err := render.New(render.Options{Mode: render.ModeFor(d.rich), Width: width, Style: glamourStyle})
	d.degraded = err != nil
	if err != nil {
		r, _ = render.New(render.Options{Width: width})
	}

	var b strings.Builder
	var facts []string
	if d.detail.ReadyInMinutes > 0 {
		facts = append(facts, fmt.Sprintf("Ready in %d min", d.detail.ReadyInMinutes))
	}
	if d.detail.Servings > 0 {
		facts = append(facts, fmt.Sprintf("Serves %d", d.detail.Servings))
	}
	if len(facts) > 0 {
		b.WriteString(strings.Join(facts, " · "))
		b.WriteString("\n")
	}
	if d.detail.Image != "" {
		b.WriteString("Image: " + d.detail.Image + "\n")
	}
	if d.detail.SourceURL != "" {
		b.WriteString("Source: " + d.detail.SourceURL + "\n")
	}

	if strings.TrimSpace(d.detail.Summary) != "" {
		summary, _ := r.Render(d.detail.Summary)
		b.WriteString("\nSummary\n\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	b.WriteString("\nInstructions\n\n")
	if strings.TrimSpace(d.detail.Instructions) == "" {
		b.WriteString("No instructions provided.")
	} else {
		instructions, _ := r.Render(d.detail.Instructions)
		b.WriteString(instructions)
	}
	if r.Mode() == render.Plain {
		return lipgloss.NewStyle().Width(width).Render(b.String())
	}
	return b.String()
}

// Update implements Modal.
func (d detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Close):
			return d, nil, true
		case key.Matches(km, keys.ToggleRich):
			d.rich = !d.rich
			d.vp.SetContent(d.body(d.vp.Width))
			d.vp.GotoTop()
			rich := d.rich
			return d, func() tea.Msg { return richToggledMsg{rich: rich} }, false
		case key.Matches(km, keys.Top):
			d.vp.GotoTop()
			return d, nil, false
		case key.Matches(km, keys.Bottom):
			d.vp.GotoBottom()
			return d, nil, false
		}
	}
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd, false
}

// View implements Modal.
func (d detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	w, _ := modalSize(width, height)

	mode := render.ModeFor(d.rich).String()
	if d.degraded {
		mode = "plain (rich unavailable)"
	}
	title := styles.AccentText.Bold(true).Render(truncate(d.detail.Title, w-6))
	footer := styles.FaintText.Render(fmt.Sprintf("esc/x close · r %s · j/k scroll · %3.f%%", mode, d.vp.ScrollPercent()*100))

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.vp.View(), footer)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1).
		Width(w - 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}
