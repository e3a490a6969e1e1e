package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/recipemama/internal/recipeapi"
)

// renderListing renders category chips, the search line and the recipe list.
func (m Model) renderListing() string {
	top := []string{m.renderCategoryChips()}
	if line := m.renderSearchLine(); line != "" {
		top = append(top, line)
	}

	boxHeight := max(m.contentHeight()-len(top), 3)
	innerWidth := max(m.width-2, 0)
	innerHeight := max(boxHeight-2, 0)

	var body string
	if len(m.visible) == 0 {
		body = m.renderEmptyState(innerWidth, innerHeight)
	} else {
		body = m.renderRecipeRows(innerWidth, innerHeight)
	}

	box := m.renderTitledBox(m.listTitle(), body, m.width, boxHeight, m.input == inputNone)
	return strings.Join(append(top, box), "\n")
}

// listTitle returns the list pane title with a filter indicator.
func (m Model) listTitle() string {
	total := len(m.snapshot.Summaries)
	shown := len(m.visible)
	if shown == total {
		return fmt.Sprintf("Recipes (%d)", total)
	}
	return fmt.Sprintf("Recipes (%d/%d)", shown, total)
}

// renderCategoryChips renders the category filter row.
func (m Model) renderCategoryChips() string {
	styles := m.theme.Styles()
	cats := m.snapshot.Categories()

	chips := make([]string, 0, len(cats))
	for _, c := range cats {
		chips = append(chips, styles.ChipStyle(c == m.snapshot.Category, m.theme.Accent).Render(c))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	return lipgloss.NewStyle().MaxWidth(m.width).Render(row)
}

// renderSearchLine renders the search input while editing, or the active
// search term otherwise. It is empty when no search is set.
func (m Model) renderSearchLine() string {
	if m.input == inputSearch {
		return m.searchInput.View()
	}
	if m.snapshot.SearchText == "" {
		return ""
	}
	styles := m.theme.Styles()
	return styles.MutedText.Render("Search: ") +
		styles.AccentText.Render(m.snapshot.SearchText) +
		styles.FaintText.Render("  (x to clear)")
}

// renderEmptyState explains why the list is empty.
func (m Model) renderEmptyState(width, height int) string {
	styles := m.theme.Styles()

	var lines []string
	switch {
	case len(m.snapshot.Summaries) == 0 && m.snapshot.Loading:
		lines = []string{styles.WarningText.Render("Loading recipes...")}
	case len(m.snapshot.Summaries) == 0:
		lines = []string{
			styles.MutedText.Render("No recipes loaded"),
			styles.FaintText.Render("r: try again"),
		}
	case m.snapshot.SearchText != "":
		lines = []string{
			styles.MutedText.Render(fmt.Sprintf("No recipes found for %q", m.snapshot.SearchText)),
			styles.FaintText.Render("x: clear search"),
		}
	default:
		lines = []string{
			styles.MutedText.Render(fmt.Sprintf("No %s recipes", m.snapshot.Category)),
			styles.FaintText.Render("c: next category"),
		}
	}

	msg := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// renderRecipeRows renders the visible window of recipe rows around the
// cursor.
func (m Model) renderRecipeRows(width, height int) string {
	if height <= 0 {
		return ""
	}
	start := 0
	if m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := min(start+height, len(m.visible))

	bgColor := m.theme.FocusBg
	if m.input != inputNone {
		bgColor = m.theme.SurfaceAlt
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatRecipeRow(m.visible[i], width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatRecipeRow formats one list row:
// "#ID Name · Cuisine · Difficulty · ★★★★☆ · 35m · tag, tag, tag"
func (m Model) formatRecipeRow(r recipeapi.Recipe, width int, bgColor string, selected bool) string {
	bg := newCanvas(bgColor)
	styles := m.theme.Styles()

	idStyle, nameStyle, sepStyle := styles.MutedText, styles.Text, styles.FaintText
	metaStyle, starStyle := styles.MutedText, styles.WarningText
	diffStyle := styles.DifficultyStyle(r.Difficulty)
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, sepStyle, metaStyle, starStyle, diffStyle = sel, sel, sel, sel, sel, sel
	}

	idStr := fmt.Sprintf("#%d", r.ID)
	meta := []string{
		bg.Text(r.Cuisine, metaStyle),
		bg.Text(r.Difficulty, diffStyle),
		bg.Text(stars(r.Rating), starStyle),
		bg.Text(formatMinutes(r.PrepTimeMinutes+r.CookTimeMinutes), metaStyle),
	}
	metaWidth := len(r.Cuisine) + len(r.Difficulty) + 5 + 6 + 3*len(" · ")
	if m.width >= LayoutCompactWidth {
		if tags := firstN(r.Tags, 3, ", "); tags != "" {
			meta = append(meta, bg.Text(tags, styles.FaintText))
			metaWidth += len(tags) + len(" · ")
		}
	}

	name := truncate(r.Name, max(width-len(idStr)-metaWidth-6, 10))
	if m.snapshot.IsLiked(r.ID) {
		name += " ♥"
	}

	return bg.Text(padRight(idStr, 4), idStyle) + bg.Gap(1) +
		bg.Text(name, nameStyle) + bg.Dot(sepStyle) +
		bg.Join(meta, sepStyle)
}

// handleListingKey processes keyboard input for the listing.
func (m Model) handleListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.startSearch()
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
		return m, nil

	case key.Matches(msg, m.keys.ClearSearch), key.Matches(msg, m.keys.Escape):
		if m.snapshot.SearchText != "" {
			m.ctrl.ClearSearch()
			m.searchInput.SetValue("")
			m.syncSnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.ctrl.LoadSummaries(m.ctx)
		m.syncSnapshot()
		return m, nil
	}

	count := len(m.visible)
	if count == 0 {
		return m, nil
	}
	page := max((m.contentHeight()-4)/2, 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow = min(m.selectedRow+1, count-1)
	case key.Matches(msg, m.keys.Up):
		m.selectedRow = max(m.selectedRow-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(m.selectedRow+page, count-1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(m.selectedRow-page, 0)
	case key.Matches(msg, m.keys.Open):
		m.ctrl.SelectRecipe(m.ctx, m.visible[m.selectedRow].ID)
		m.syncSnapshot()
	}

	return m, nil
}

// cycleCategory moves the category filter step chips along, wrapping. A
// category that no longer exists in the collection restarts at All.
func (m *Model) cycleCategory(step int) {
	cats := m.snapshot.Categories()
	idx := slices.Index(cats, m.snapshot.Category)
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + step + len(cats)) % len(cats)
	}
	m.ctrl.SetCategory(cats[idx])
	m.selectedRow = 0
	m.syncSnapshot()
}
