package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sous/internal/render"
	"github.com/five82/sous/internal/spoonacular"
)

// handleInputKey handles keys while the query input has focus. Only
// non-printing keys are intercepted; everything else is text.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case tea.KeyShiftTab:
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case tea.KeyEsc:
		cmd := m.setFocus(focusRecipes)
		return m, cmd
	case tea.KeyCtrlO:
		m.nav.toggle()
		return m, nil
	case tea.KeyF1:
		return m.activate(linkSearch)
	case tea.KeyF2:
		return m.activate(linkDiagnostics)
	case tea.KeyF3:
		return m.activate(linkHelp)
	case tea.KeyF4:
		return m.activate(linkAbout)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.session.SetQuery(m.input.Value())
	m.inputRev++
	m.refresh()
	return m, tea.Batch(cmd, debounceCmd(m.inputRev))
}

// submit runs the multi-ingredient search for the current query.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetQuery(m.input.Value())
	t, err := m.session.Submit()
	m.refresh()
	if err != nil {
		return m, nil
	}
	m.recipeCursor = 0
	return m, tea.Batch(executeCmd(m.ctx, m.session, t), m.spinner.Tick)
}

// handleSearchKey handles list navigation on the Search view.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case key.Matches(msg, m.keys.FocusInput):
		cmd := m.setFocus(focusInput)
		return m, cmd
	}

	n := len(m.snap.Recipes)
	cursor := &m.recipeCursor
	if m.focus == focusIngredients {
		n = len(m.snap.Filtered)
		cursor = &m.ingCursor
	}

	page := maxInt(1, m.listRows())
	switch {
	case key.Matches(msg, m.keys.Up):
		*cursor = clampCursor(*cursor-1, n)
	case key.Matches(msg, m.keys.Down):
		*cursor = clampCursor(*cursor+1, n)
	case key.Matches(msg, m.keys.Top):
		*cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		*cursor = clampCursor(n-1, n)
	case key.Matches(msg, m.keys.PageUp):
		*cursor = clampCursor(*cursor-page, n)
	case key.Matches(msg, m.keys.PageDown):
		*cursor = clampCursor(*cursor+page, n)
	case key.Matches(msg, m.keys.Confirm):
		return m.open()
	}
	return m, nil
}

// open acts on the highlighted row: an ingredient starts a lookup for that
// ingredient alone, a recipe fetches its details.
func (m Model) open() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusIngredients:
		if len(m.snap.Filtered) == 0 {
			return m, nil
		}
		t, err := m.session.LookupIngredient(m.snap.Filtered[m.ingCursor].Name)
		if err != nil {
			return m, nil
		}
		m.refresh()
		m.recipeCursor = 0
		return m, tea.Batch(executeCmd(m.ctx, m.session, t), m.spinner.Tick)

	case focusRecipes:
		if len(m.snap.Recipes) == 0 {
			return m, nil
		}
		t, err := m.session.ViewRecipe(m.snap.Recipes[m.recipeCursor].ID)
		if err != nil {
			return m, nil
		}
		m.refresh()
		return m, tea.Batch(executeCmd(m.ctx, m.session, t), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) searchBoxWidth() int {
	return maxInt(20, m.width)
}

// listRows is the number of rows available to each list pane.
func (m Model) listRows() int {
	contentHeight := maxInt(3, m.height-2)
	paneHeight := contentHeight - 3 - 2 // input box and message lines
	if m.width < LayoutCompactWidth {
		paneHeight /= 2
	}
	return maxInt(1, paneHeight-2)
}

// renderSearch renders the query input, the message line and the two
// result panes.
func (m Model) renderSearch(height int) string {
	styles := m.theme.Styles()
	width := m.searchBoxWidth()

	inputBox := m.renderTitledBox("Ingredients (comma separated)", " "+m.input.View(), width, 3, m.focus == focusInput)

	var status string
	switch {
	case m.snap.Loading:
		status = styles.AccentText.Render(m.spinner.View() + " Loading...")
	case m.snap.Error != "":
		status = styles.DangerText.Render(m.snap.Error)
	case len(m.snap.Recipes) > 0:
		status = styles.MutedText.Render(plural(len(m.snap.Recipes), "recipe", "recipes"))
	default:
		status = styles.FaintText.Render("Type ingredients and press enter.")
	}
	// The primary error stays visible while a request is in flight.
	if m.snap.Loading && m.snap.Error != "" {
		status += "  " + styles.DangerText.Render(m.snap.Error)
	}
	status = " " + status + "\n"

	paneHeight := maxInt(3, height-3-2)
	rows := m.listRows()
	var panes string
	if m.width >= LayoutCompactWidth {
		leftWidth := width / 3
		rightWidth := width - leftWidth
		left := m.renderTitledBox(m.ingredientsTitle(), m.renderIngredientList(leftWidth-2, rows), leftWidth, paneHeight, m.focus == focusIngredients)
		right := m.renderTitledBox("Recipes", m.renderRecipeList(rightWidth-2, rows), rightWidth, paneHeight, m.focus == focusRecipes)
		panes = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		half := maxInt(3, paneHeight/2)
		top := m.renderTitledBox(m.ingredientsTitle(), m.renderIngredientList(width-2, rows), width, half, m.focus == focusIngredients)
		bottom := m.renderTitledBox("Recipes", m.renderRecipeList(width-2, rows), width, paneHeight-half, m.focus == focusRecipes)
		panes = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	return inputBox + "\n" + status + panes
}

func (m Model) ingredientsTitle() string {
	if len(m.snap.Ingredients) == 0 {
		return "Ingredients"
	}
	return fmt.Sprintf("Ingredients %d/%d", len(m.snap.Filtered), len(m.snap.Ingredients))
}

func (m Model) renderIngredientList(width, rows int) string {
	styles := m.theme.Styles()
	items := m.snap.Filtered
	if len(items) == 0 {
		if len(m.snap.Ingredients) > 0 {
			return styles.FaintText.Render(" No ingredient matches the query.")
		}
		return styles.FaintText.Render(" Suggestions appear as you type.")
	}

	start, end := listWindow(len(items), m.ingCursor, rows)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(" "+truncate(items[i].Name, width-2), width, i == m.ingCursor && m.focus == focusIngredients))
	}
	return strings.Join(lines, "\n")
}

// renderRecipeList renders one card per recipe: the title on the first
// line and the counts below it.
func (m Model) renderRecipeList(width, rows int) string {
	styles := m.theme.Styles()
	recipes := m.snap.Recipes
	if len(recipes) == 0 {
		return styles.FaintText.Render(" No recipes yet.")
	}

	cards := maxInt(1, rows/2)
	start, end := listWindow(len(recipes), m.recipeCursor, cards)
	lines := make([]string, 0, 2*(end-start))
	for i := start; i < end; i++ {
		selected := i == m.recipeCursor && m.focus == focusRecipes
		lines = append(lines,
			m.renderRow(" "+truncate(recipes[i].Title, width-2), width, selected),
			" "+m.recipeBadges(recipes[i], width-2))
	}
	return strings.Join(lines, "\n")
}

func (m Model) recipeBadges(r spoonacular.Recipe, width int) string {
	styles := m.theme.Styles()
	parts := []string{
		styles.BadgeStyle("used").Render(fmt.Sprintf("used %d", r.UsedIngredientCount)),
		styles.BadgeStyle("missed").Render(fmt.Sprintf("missing %d", r.MissedIngredientCount)),
	}
	if r.Likes > 0 {
		parts = append(parts, styles.BadgeStyle("likes").Render(fmt.Sprintf("♥ %d", r.Likes)))
	}
	if summary := firstLine(render.PlainText(r.Summary)); summary != "" {
		parts = append(parts, styles.MutedText.Render(truncate(summary, maxInt(0, width-30))))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderRow(text string, width int, selected bool) string {
	style := lipgloss.NewStyle().Width(width).MaxWidth(width).Foreground(lipgloss.Color(m.theme.Text))
	if selected {
		style = style.
			Background(lipgloss.Color(m.theme.SelectionBg)).
			Foreground(lipgloss.Color(m.theme.SelectionText))
	}
	return style.Render(text)
}
