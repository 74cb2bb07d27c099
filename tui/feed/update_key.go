package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/tui/thread"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	// Any key dismisses the error and the last notice.
	m.errorMessage = ""
	m.notice = ""

	if m.mode == ModeEditing {
		return m.handleEditingKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.selectItem()

	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		if m.view == ViewHome {
			return m.quit()
		}
		return m.back()

	case key.Matches(msg, m.keys.Search):
		if m.view == ViewPostDetail {
			return m, nil
		}
		m.mode = ModeEditing
		m.snapshotText = append([]rune(nil), m.searchText...)
		m.snapshotCursor = m.cursor
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		if m.view != ViewSearchResults {
			return m, nil
		}
		m.searchSort = domain.NextSort(m.searchSort)
		return m, m.startSearch()

	case key.Matches(msg, m.keys.CycleTime):
		if m.view != ViewSearchResults {
			return m, nil
		}
		m.searchTime = domain.NextTime(m.searchTime)
		return m, m.startSearch()

	case key.Matches(msg, m.keys.ScrollDown):
		if m.view == ViewPostDetail {
			m.scrollBy(scrollStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		if m.view == ViewPostDetail {
			m.scrollBy(-scrollStep)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.view != ViewHome {
			return m, nil
		}
		return m, m.loadHome()

	case key.Matches(msg, m.keys.OpenBrowser):
		if post, ok := m.selectedPostSummary(); ok {
			return m, m.openPostInBrowser(post)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyURL):
		if post, ok := m.selectedPostSummary(); ok {
			return m, m.copyPostURL(post)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) moveSelection(delta int) {
	if m.view == ViewPostDetail {
		m.selectedComment = thread.Clamp(m.selectedComment+delta, thread.VisibleLen(m.commentRoots))
		m.keepCommentVisible()
		return
	}
	m.selectedPost = thread.Clamp(m.selectedPost+delta, len(m.visiblePosts()))
}

// keepCommentVisible scrolls so the selection stays inside the detail window.
func (m *Model) keepCommentVisible() {
	if m.selectedComment < m.scrollOffset {
		m.scrollOffset = m.selectedComment
	}
	if m.selectedComment >= m.scrollOffset+detailWindow {
		m.scrollOffset = m.selectedComment - detailWindow + 1
	}
}

// scrollBy moves the window and drags the selection along so it stays on
// screen.
func (m *Model) scrollBy(delta int) {
	n := thread.VisibleLen(m.commentRoots)
	m.scrollOffset = thread.Clamp(m.scrollOffset+delta, n)
	sel := min(max(m.selectedComment, m.scrollOffset), m.scrollOffset+detailWindow-1)
	m.selectedComment = thread.Clamp(sel, n)
}

func (m Model) selectItem() (Model, tea.Cmd) {
	if m.view == ViewPostDetail {
		if thread.ToggleExpand(m.commentRoots, m.selectedComment) {
			m.selectedComment = thread.Clamp(m.selectedComment, thread.VisibleLen(m.commentRoots))
			m.keepCommentVisible()
		}
		return m, nil
	}

	post, ok := m.selectedPostSummary()
	if !ok {
		return m, nil
	}
	m.clearDetail()
	m.currentPost = &post
	return m, m.fetchComments(post)
}

func (m Model) back() (Model, tea.Cmd) {
	m.abandonRequest()
	switch m.view {
	case ViewSearchResults:
		m.searchResults = nil
		m.clearDetail()
		m.selectedPost = 0
		m.view = ViewHome
	case ViewPostDetail:
		m.clearDetail()
		m.selectedPost = 0
		if m.searchResults != nil {
			m.view = ViewSearchResults
		} else {
			m.view = ViewHome
		}
	}
	if m.view == ViewHome && len(m.homePosts) == 0 {
		return m, m.loadHome()
	}
	return m, nil
}

// clearDetail drops everything the detail view owns, including a post whose
// comments are still loading.
func (m *Model) clearDetail() {
	m.currentPost = nil
	m.commentRoots = nil
	m.image = nil
	m.imageRender = ""
	m.selftextRender = ""
	m.scrollOffset = 0
	m.selectedComment = 0
}
