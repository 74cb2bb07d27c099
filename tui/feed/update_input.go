package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleEditingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.editKeys.Submit):
		if strings.TrimSpace(string(m.searchText)) == "" {
			return m, nil
		}
		m.mode = ModeNormal
		m.snapshotText = nil
		return m, m.startSearch()

	case key.Matches(msg, m.editKeys.Cancel):
		m.cancelEditing()
		return m, nil

	case key.Matches(msg, m.editKeys.Backspace):
		if m.cursor > 0 {
			m.searchText = append(m.searchText[:m.cursor-1:m.cursor-1], m.searchText[m.cursor:]...)
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.editKeys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.editKeys.Right):
		if m.cursor < len(m.searchText) {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.editKeys.Home):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.editKeys.End):
		m.cursor = len(m.searchText)
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.insert(msg.Runes)
	case tea.KeySpace:
		m.insert([]rune{' '})
	}
	return m, nil
}

// insert places runes at the cursor and advances it.
func (m *Model) insert(runes []rune) {
	m.cursor = min(max(m.cursor, 0), len(m.searchText))
	text := make([]rune, 0, len(m.searchText)+len(runes))
	text = append(text, m.searchText[:m.cursor]...)
	text = append(text, runes...)
	text = append(text, m.searchText[m.cursor:]...)
	m.searchText = text
	m.cursor += len(runes)
}

// cancelEditing leaves Editing and restores the text from when it began.
func (m *Model) cancelEditing() {
	m.mode = ModeNormal
	m.searchText = m.snapshotText
	m.cursor = m.snapshotCursor
	m.snapshotText = nil
}
