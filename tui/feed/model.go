package feed

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rdt/domain"
)

// Init starts the home feed load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return LoadHomeMsg{} },
		m.spinner.Tick,
	)
}

// Update handles messages for the session.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// CurrentView returns the screen being shown.
func (m Model) CurrentView() View {
	return m.view
}

// Mode returns the active input mode.
func (m Model) Mode() InputMode {
	return m.mode
}

// Quitting reports whether the session asked to terminate.
func (m Model) Quitting() bool {
	return m.quitting
}

// IsLoading reports whether a fetch is outstanding.
func (m Model) IsLoading() bool {
	return m.loading
}

// ErrorMessage returns the current error text, empty when there is none.
func (m Model) ErrorMessage() string {
	return m.errorMessage
}

func homeLoadingMessage(feed string) string {
	return fmt.Sprintf("Loading r/%s...", strings.TrimPrefix(feed, "r/"))
}

func (m Model) homeKey() string {
	return fmt.Sprintf("home:%s/%s/%s", m.settings.HomeFeed, m.settings.HomeSort, m.settings.HomeTime)
}

func (m Model) searchKey() string {
	return fmt.Sprintf("search:%s/%s:%s", m.searchSort, m.searchTime, strings.TrimSpace(string(m.searchText)))
}

func postKey(id string) string {
	return "post:" + id
}

// visiblePosts returns the post list of the active list view.
func (m Model) visiblePosts() []domain.PostSummary {
	if m.view == ViewSearchResults && m.searchResults != nil {
		return m.searchResults.Posts
	}
	if m.view == ViewHome {
		return m.homePosts
	}
	return nil
}

// selectedPostSummary returns the post under the cursor, or the open post in
// the detail view.
func (m Model) selectedPostSummary() (domain.PostSummary, bool) {
	if m.view == ViewPostDetail {
		if m.currentPost == nil {
			return domain.PostSummary{}, false
		}
		return *m.currentPost, true
	}
	posts := m.visiblePosts()
	if m.selectedPost < 0 || m.selectedPost >= len(posts) {
		return domain.PostSummary{}, false
	}
	return posts[m.selectedPost], true
}
