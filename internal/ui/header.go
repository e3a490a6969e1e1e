package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, counts, loading state and the
// current location.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newCanvas(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	sep := bg.Gap(2)

	var parts []string
	parts = append(parts, bg.Text("recipemama", styles.Logo))

	total := len(m.snapshot.Summaries)
	parts = append(parts, bg.Field("Recipes:", strconv.Itoa(total), styles.MutedText, styles.Text))
	if shown := len(m.visible); shown != total {
		parts = append(parts, bg.Field("Showing:", strconv.Itoa(shown), styles.MutedText, styles.AccentText))
	}

	if m.snapshot.Loading {
		spin := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Accent)).
			Background(lipgloss.Color(m.theme.Surface)).
			Render(m.spinner.View())
		parts = append(parts, spin+bg.Gap(1)+bg.Text("Loading...", styles.WarningText))
	}

	switch {
	case m.screen == ScreenLogs:
		parts = append(parts, bg.Text("Session log", styles.InfoText))
	case m.snapshot.View.IsDetail() && m.snapshot.Selected != nil:
		limit := 36
		if compact {
			limit = 18
		}
		name := truncate(m.snapshot.Selected.Name, limit)
		parts = append(parts, bg.Field("Recipe:", name, styles.MutedText, styles.Text))
	}

	if !compact && !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Field("Updated", m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints for the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newCanvas(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.input == inputSearch:
		commands = []cmd{{"enter", "Keep"}, {"esc", "Clear"}}
	case m.input == inputComment:
		commands = []cmd{{"enter", "Post"}, {"esc", "Cancel"}}
	case m.screen == ScreenLogs:
		commands = []cmd{
			{"w", ternary(m.logState.problemsOnly, "All lines", "Warnings")},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"l", "Recipes"},
			{"?", "More"},
		}
	case m.snapshot.View.IsDetail():
		liked := m.snapshot.Selected != nil && m.snapshot.IsLiked(m.snapshot.Selected.ID)
		commands = []cmd{
			{"esc", "Back"},
			{"1-4", "Related"},
			{"a", "Comment"},
			{"L", ternary(liked, "Unlike", "Like")},
			{"j/k", "Scroll"},
			{"l", "Log"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"enter", "Open"},
			{"/", "Search"},
			{"c", m.snapshot.Category},
			{"j/k", "Navigate"},
			{"r", "Reload"},
			{"l", "Log"},
			{"?", "More"},
		}
		if m.snapshot.SearchText != "" {
			commands = append(commands, cmd{"x", "Clear"})
		}
	}

	colon := bg.Text(":", lipgloss.NewStyle())
	sep := bg.Gap(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Text(c.key, styles.AccentText)+colon+bg.Text(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Text("T", styles.AccentText)+colon+bg.Text(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := newCanvas(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Text("┌", borderStyle) +
		bg.Text(strings.Repeat("─", leftPad), borderStyle) +
		bg.Text(" "+title+" ", titleStyle) +
		bg.Text(strings.Repeat("─", rightPad), borderStyle) +
		bg.Text("┐", borderStyle)

	bottomBorder := bg.Text("└", borderStyle) +
		bg.Text(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Text("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := range boxHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Text("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Text("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
