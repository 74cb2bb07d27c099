package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderDetailAssets()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		m.notice = msg.Text
		return m, nil

	case LoadHomeMsg:
		return m, m.loadHome()

	case FeedLoadedMsg, FeedErrorMsg, QueryInterpretedMsg, SearchLoadedMsg, SearchErrorMsg,
		CommentsLoadedMsg, CommentsErrorMsg, ImageLoadedMsg:
		return m.handleLoadingMsg(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}
