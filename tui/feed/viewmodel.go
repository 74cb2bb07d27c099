package feed

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/tui/common"
	"github.com/CrestNiraj12/rdt/tui/thread"
)

// RowKind tells post rows from comment rows.
type RowKind int

const (
	PostRow RowKind = iota
	CommentRow
)

// RowView is one line of the list or thread as the renderer sees it.
type RowView struct {
	Kind     RowKind
	Selected bool

	// Post rows.
	Rank        int
	Title       string
	Subreddit   string
	NumComments int64

	// Comment rows.
	Indent         int
	ReplyIndicator string
	Snippet        string

	// Both.
	Author string
	Score  int64
	Age    string
}

// ViewModel is the per-frame snapshot handed to the renderer.
type ViewModel struct {
	View  View
	Mode  InputMode
	Title string
	Rows  []RowView

	// Detail view only.
	Header       string
	Selftext     string
	ScrollOffset int

	Status     string
	Loading    string
	Error      string
	Notice     string
	Diagnostic string

	SearchText string
	Cursor     int
}

var statusHints = map[View]string{
	ViewHome:          "j/k: Navigate | Enter: View | /: Search | q: Quit",
	ViewSearchResults: "j/k: Nav | Enter: View | o: Sort | t: Time | /: Search | q: Back",
	ViewPostDetail:    "j/k: Navigate | Enter: Expand | d/u: Scroll | q/Esc: Back",
}

// ViewModel derives the renderer contract from the session state. It does
// not mutate the model.
func (m Model) ViewModel() ViewModel {
	vm := ViewModel{
		View:       m.view,
		Mode:       m.mode,
		Status:     statusHints[m.view],
		Error:      m.errorMessage,
		Notice:     m.notice,
		Diagnostic: m.diagnostic,
		SearchText: string(m.searchText),
		Cursor:     m.cursor,
	}
	if m.mode == ModeEditing {
		vm.Status = "[EDITING] " + vm.Status
	}
	if m.loading {
		vm.Loading = m.loadingMessage
	}

	switch m.view {
	case ViewHome:
		vm.Title = fmt.Sprintf(" r/%s | %s ", strings.TrimPrefix(m.settings.HomeFeed, "r/"), m.settings.HomeSort)
		vm.Rows = m.postRows(m.homePosts)
	case ViewSearchResults:
		if r := m.searchResults; r != nil {
			vm.Title = fmt.Sprintf(" %s | sort:%s time:%s (%d) ", r.Query, m.searchSort, m.searchTime, r.Count)
			vm.Rows = m.postRows(r.Posts)
		}
	case ViewPostDetail:
		if p := m.currentPost; p != nil {
			vm.Header = postHeader(*p)
			vm.Selftext = p.Selftext
		}
		vm.Rows = m.commentRows()
		vm.ScrollOffset = m.scrollOffset
	}
	return vm
}

func (m Model) postRows(posts []domain.PostSummary) []RowView {
	now := m.now()
	rows := make([]RowView, 0, len(posts))
	for i, p := range posts {
		rows = append(rows, RowView{
			Kind:        PostRow,
			Selected:    i == m.selectedPost,
			Rank:        i + 1,
			Title:       p.Title,
			Subreddit:   p.Subreddit,
			NumComments: p.NumComments,
			Author:      p.Author,
			Score:       p.Score,
			Age:         common.FormatAge(p.CreatedAt, now),
		})
	}
	return rows
}

func (m Model) commentRows() []RowView {
	now := m.now()
	flat := thread.Flatten(m.commentRoots)
	rows := make([]RowView, 0, len(flat))
	for i, c := range flat {
		rows = append(rows, RowView{
			Kind:           CommentRow,
			Selected:       i == m.selectedComment,
			Indent:         min(c.Depth, maxIndentDepth),
			ReplyIndicator: replyIndicator(c),
			Snippet:        common.Snippet(c.Body, snippetRunes),
			Author:         c.Author,
			Score:          c.Score,
			Age:            common.FormatAge(c.CreatedAt, now),
		})
	}
	return rows
}

// replyIndicator is " [−N]" for an expanded node, " [+N]" for a collapsed
// one and empty for a leaf.
func replyIndicator(c *domain.CommentNode) string {
	if c.ReplyCount == 0 {
		return ""
	}
	if c.Expanded {
		return fmt.Sprintf(" [−%d]", c.ReplyCount)
	}
	return fmt.Sprintf(" [+%d]", c.ReplyCount)
}

func postHeader(p domain.PostSummary) string {
	return fmt.Sprintf("%s\nr/%s by u/%s | %d pts | %d comments", p.Title, p.Subreddit, p.Author, p.Score, p.NumComments)
}
