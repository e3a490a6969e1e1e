package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/recipemama/internal/logtail"
)

// logState holds the Logs screen state.
type logState struct {
	problemsOnly bool
	follow       bool
	lines        []string
	err          error
	loaded       bool
}

type logLinesMsg struct {
	lines        []string
	err          error
	problemsOnly bool
}

// refreshLogs reads the session log tail off the UI goroutine.
func (m *Model) refreshLogs() tea.Cmd {
	path := m.logPath
	problemsOnly := m.logState.problemsOnly
	return func() tea.Msg {
		lines, err := logtail.Read(path, logtail.Options{
			MaxLines:     LogTailLines,
			ProblemsOnly: problemsOnly,
		})
		return logLinesMsg{lines: lines, err: err, problemsOnly: problemsOnly}
	}
}

// handleLogLines applies a read result unless the filter changed since it
// was issued.
func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.problemsOnly != m.logState.problemsOnly {
		return
	}
	m.logState.lines = msg.lines
	m.logState.err = msg.err
	m.logState.loaded = true
	m.updateLogViewport()
}

// updateLogViewport updates the log viewport with current content.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = max(m.width-4, 10)
	m.logViewport.Height = max(m.contentHeight()-2, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	return m.renderTitledBox(m.logTitle(), m.logViewport.View(), m.width, m.contentHeight(), true)
}

func (m Model) logTitle() string {
	name := "Session Log"
	if m.logPath != "" {
		name = fmt.Sprintf("Session Log · %s", filepath.Base(m.logPath))
	}
	if m.logState.problemsOnly {
		name += " (warnings)"
	}
	return name
}

func (m *Model) renderLogContent() string {
	bg := newCanvas(m.theme.FocusBg)
	styles := m.theme.Styles()

	switch {
	case m.logState.err != nil:
		return bg.Text("Cannot read log: "+m.logState.err.Error(), styles.DangerText)
	case !m.logState.loaded:
		return bg.Text("Reading log...", styles.MutedText)
	case len(m.logState.lines) == 0 && m.logState.problemsOnly:
		return bg.Text("No warnings or errors this session", styles.MutedText)
	case len(m.logState.lines) == 0:
		return bg.Text("Log is empty", styles.MutedText)
	}

	out := make([]string, 0, len(m.logState.lines))
	for _, line := range m.logState.lines {
		out = append(out, bg.Text(formatLogLine(line), m.logLineStyle(line, styles)))
	}
	return strings.Join(out, "\n")
}

// logLineStyle picks a style from the line's logrus level.
func (m *Model) logLineStyle(line string, styles Styles) lipgloss.Style {
	lvl, ok := logtail.LineLevel(line)
	if !ok {
		return styles.Text
	}
	switch {
	case lvl <= logrus.ErrorLevel:
		return styles.DangerText
	case lvl == logrus.WarnLevel:
		return styles.WarningText
	case lvl == logrus.InfoLevel:
		return styles.Text
	default:
		return styles.FaintText
	}
}

// handleLogsKey processes keyboard input for the Logs screen.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleProblems):
		m.logState.problemsOnly = !m.logState.problemsOnly
		m.logState.lines = nil
		m.logState.loaded = false
		m.logState.follow = true
		m.updateLogViewport()
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenBrowse
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = m.logViewport.AtBottom()

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = m.logViewport.AtBottom()

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false
	}

	return m, nil
}
