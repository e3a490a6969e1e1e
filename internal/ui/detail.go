package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/recipemama/internal/controller"
	"github.com/five82/recipemama/internal/recipeapi"
)

// renderDetail renders the selected recipe in a scrollable box, with the
// comment editor below it while a comment is being written.
func (m Model) renderDetail() string {
	box := m.renderTitledBox(m.snapshot.Selected.Name, m.detailViewport.View(), m.width, m.detailBoxHeight(), m.input == inputNone)
	if m.input != inputComment {
		return box
	}

	line := m.commentInput.View()
	if m.notice != "" {
		line += "  " + m.theme.Styles().DangerText.Render(m.notice)
	}
	return box + "\n" + line
}

func (m Model) detailBoxHeight() int {
	h := m.contentHeight()
	if m.input == inputComment {
		h--
	}
	return max(h, 3)
}

// updateDetailViewport sizes the viewport and refreshes its content from the
// current snapshot. Opening a different recipe scrolls back to the top.
func (m *Model) updateDetailViewport() {
	if m.snapshot.Selected == nil {
		m.detailFor = 0
		return
	}
	if !m.ready {
		return
	}
	m.detailViewport.Width = max(m.width-4, 10)
	m.detailViewport.Height = max(m.detailBoxHeight()-2, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
	if id := m.snapshot.Selected.ID; id != m.detailFor {
		m.detailFor = id
		m.detailViewport.GotoTop()
	}
}

// renderDetailContent builds the full detail page text.
func (m Model) renderDetailContent(width int) string {
	r := *m.snapshot.Selected
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := newCanvas(m.theme.FocusBg)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder

	b.WriteString(bg.Text(r.Name, styles.AccentText.Bold(true)))
	if m.snapshot.IsLiked(r.ID) {
		like := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Like))
		b.WriteString(bg.Gap(2) + bg.Text("♥ Liked", like))
	}
	b.WriteString("\n")
	b.WriteString(m.renderDetailMeta(r, styles, bg))
	b.WriteString("\n")
	if tags := firstN(r.Tags, len(r.Tags), ", "); tags != "" {
		b.WriteString(bg.Field("Tags:", tags, styles.FaintText, styles.MutedText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitle("Ingredients", len(r.Ingredients), styles))
	for _, ing := range r.Ingredients {
		b.WriteString(wrap.Render("  • " + ing))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitle("Instructions", len(r.Instructions), styles))
	for i, step := range r.Instructions {
		b.WriteString(wrap.Render(fmt.Sprintf("  %d. %s", i+1, step)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderRelated(r, styles, bg))

	b.WriteString("\n")
	b.WriteString(m.renderComments(m.snapshot.Comments, styles, bg, wrap))

	return strings.TrimRight(b.String(), "\n")
}

// renderDetailMeta renders "Cuisine · Difficulty · ★★★★☆ 4.6 (98) · Prep 10m · Cook 15m · Serves 4 · 300 kcal".
func (m Model) renderDetailMeta(r recipeapi.Recipe, styles Styles, bg canvas) string {
	parts := []string{
		bg.Text(r.Cuisine, styles.Text),
		bg.Text(r.Difficulty, styles.DifficultyStyle(r.Difficulty).Background(bg.Color())),
		bg.Text(fmt.Sprintf("%s %.1f (%d)", stars(r.Rating), r.Rating, r.ReviewCount), styles.WarningText),
		bg.Text("Prep "+formatMinutes(r.PrepTimeMinutes), styles.MutedText),
		bg.Text("Cook "+formatMinutes(r.CookTimeMinutes), styles.MutedText),
	}
	if r.Servings > 0 {
		parts = append(parts, bg.Text(fmt.Sprintf("Serves %d", r.Servings), styles.MutedText))
	}
	if r.CaloriesPerServing != nil {
		parts = append(parts, bg.Text(fmt.Sprintf("%d kcal", *r.CaloriesPerServing), styles.MutedText))
	}
	return bg.Join(parts, styles.FaintText)
}

func sectionTitle(title string, count int, styles Styles) string {
	return styles.InfoText.Bold(true).Render(fmt.Sprintf("%s (%d)", title, count)) + "\n"
}

// renderRelated renders the numbered related strip; 1-4 opens an entry.
func (m Model) renderRelated(r recipeapi.Recipe, styles Styles, bg canvas) string {
	related := m.snapshot.Related()

	var b strings.Builder
	b.WriteString(styles.InfoText.Bold(true).Render("More " + r.Cuisine + " recipes"))
	b.WriteString("\n")
	if len(related) == 0 {
		b.WriteString(bg.Text("  Nothing else from this cuisine", styles.FaintText))
		b.WriteString("\n")
		return b.String()
	}
	for i, rel := range related {
		b.WriteString(bg.Gap(2) +
			bg.Text(fmt.Sprintf("[%d]", i+1), styles.AccentText) + bg.Gap(1) +
			bg.Text(rel.Name, styles.Text) + bg.Dot(styles.FaintText) +
			bg.Text(stars(rel.Rating), styles.WarningText) + bg.Dot(styles.FaintText) +
			bg.Text(formatMinutes(rel.PrepTimeMinutes+rel.CookTimeMinutes), styles.MutedText))
		b.WriteString("\n")
	}
	return b.String()
}

// renderComments renders the comment count and every comment in order.
func (m Model) renderComments(comments []controller.Comment, styles Styles, bg canvas, wrap lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(sectionTitle("Comments", len(comments), styles))
	if len(comments) == 0 {
		b.WriteString(bg.Text("  Be the first to comment (a)", styles.FaintText))
		b.WriteString("\n")
		return b.String()
	}
	for _, c := range comments {
		b.WriteString(bg.Gap(2) +
			bg.Text(c.Author, styles.AccentText.Bold(true)) + bg.Dot(styles.FaintText) +
			bg.Text(c.When, styles.FaintText))
		b.WriteString("\n")
		b.WriteString(wrap.Render("    " + c.Body))
		b.WriteString("\n")
	}
	return b.String()
}

// handleDetailKey processes keyboard input on the detail page.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.GoBack()
		m.syncSnapshot()
		return m, nil

	case key.Matches(msg, m.keys.Related):
		idx := int(msg.String()[0] - '1')
		if related := m.snapshot.Related(); idx >= 0 && idx < len(related) {
			m.ctrl.SelectRecipe(m.ctx, related[idx].ID)
			m.syncSnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		cmd := m.startComment()
		return m, cmd

	case key.Matches(msg, m.keys.Like):
		if m.snapshot.Selected != nil {
			m.ctrl.ToggleLike(m.snapshot.Selected.ID)
			m.syncSnapshot()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	}

	return m, nil
}
