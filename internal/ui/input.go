package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search recipes by name..."
	ti.CharLimit = 64
	return ti
}

func newCommentInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Write a comment..."
	ti.CharLimit = 280
	return ti
}

func (m *Model) resizeInputs() {
	w := max(m.width-6, 10)
	m.searchInput.Width = w
	m.commentInput.Width = w
}

// startSearch focuses the search input seeded with the current term.
func (m *Model) startSearch() tea.Cmd {
	m.input = inputSearch
	m.searchInput.SetValue(m.snapshot.SearchText)
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

// handleSearchInput filters live as the user types. enter keeps the term,
// esc clears it.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.input = inputNone
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.input = inputNone
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.ctrl.ClearSearch()
		m.syncSnapshot()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != m.snapshot.SearchText {
		m.ctrl.SetSearchText(v)
		m.selectedRow = 0
		m.syncSnapshot()
	}
	return m, cmd
}

// startComment opens the comment input on the detail page.
func (m *Model) startComment() tea.Cmd {
	m.input = inputComment
	m.notice = ""
	m.commentInput.SetValue("")
	m.updateDetailViewport()
	return m.commentInput.Focus()
}

// handleCommentInput posts on enter; blank comments stay in the editor with
// a notice.
func (m Model) handleCommentInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if _, ok := m.ctrl.PostComment(m.prefs.Author, m.commentInput.Value()); !ok {
			m.notice = "Comment is empty"
			return m, nil
		}
		m.notice = ""
		m.input = inputNone
		m.commentInput.Blur()
		m.commentInput.SetValue("")
		m.syncSnapshot()
		m.detailViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
		m.input = inputNone
		m.commentInput.Blur()
		m.commentInput.SetValue("")
		m.updateDetailViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}
