package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/CrestNiraj12/rdt/tui/common"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	// footerLines is the space below the body: message line and status bar.
	footerLines = 2
)

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	vm := m.ViewModel()
	width, height := m.size()

	top := m.renderTop(vm, width)
	bodyHeight := max(height-lipgloss.Height(top)-footerLines, 1)

	var body string
	switch vm.View {
	case ViewHome, ViewSearchResults:
		body = m.renderPostList(vm, width, bodyHeight)
	case ViewPostDetail:
		body = m.renderDetail(vm, width, bodyHeight)
	}

	return strings.Join([]string{
		clipLines(top, width, height),
		clipLines(body, width, bodyHeight),
		clipLines(m.renderFooter(vm), width, 1),
		clipLines(common.StatusBarStyle.Render(vm.Status), width, 1),
	}, "\n")
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) renderTop(vm ViewModel, width int) string {
	title := common.AppTitleStyle.Render("rdt")

	box := common.SearchBoxStyle
	text := vm.SearchText
	if vm.Mode == ModeEditing {
		box = common.SearchBoxActiveStyle
		text = withCursor(vm.SearchText, vm.Cursor)
	} else if text == "" {
		text = common.TimestampStyle.Render("press / to search")
	}
	searchWidth := max(width-lipgloss.Width(title)-4, 10)
	search := box.Width(searchWidth).Render(text)

	top := lipgloss.JoinHorizontal(lipgloss.Center, title, search)
	if vm.Diagnostic != "" {
		top += "\n" + common.DiagnosticStyle.Render(vm.Diagnostic)
	}
	return top
}

// withCursor draws a reverse-video block at the rune index cursor.
func withCursor(text string, cursor int) string {
	runes := []rune(text)
	cursor = min(max(cursor, 0), len(runes))
	under := " "
	rest := ""
	if cursor < len(runes) {
		under = string(runes[cursor])
		rest = string(runes[cursor+1:])
	}
	return string(runes[:cursor]) + lipgloss.NewStyle().Reverse(true).Render(under) + rest
}

func (m Model) renderPostList(vm ViewModel, width, bodyHeight int) string {
	var b strings.Builder
	if vm.Title != "" {
		b.WriteString(common.PanelTitleStyle.Render(vm.Title))
		b.WriteString("\n")
	}
	if len(vm.Rows) == 0 {
		if vm.Loading == "" {
			b.WriteString(common.TimestampStyle.Render("  No posts."))
		}
		return b.String()
	}

	// Two lines per post, one for the panel title.
	visible := max((bodyHeight-1)/2, 1)
	start := 0
	for i, r := range vm.Rows {
		if r.Selected && i >= visible {
			start = i - visible + 1
		}
	}
	end := min(start+visible, len(vm.Rows))

	for i := start; i < end; i++ {
		b.WriteString(renderPostRow(vm.Rows[i], width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderPostRow(r RowView, width int) string {
	marker := "  "
	titleStyle := common.ContentStyle
	if r.Selected {
		marker = common.SelectedStyle.Render("▶ ")
		titleStyle = common.SelectedStyle
	}
	rank := fmt.Sprintf("%3d. ", r.Rank)
	titleWidth := max(width-runewidth.StringWidth(rank)-2, 10)
	title := runewidth.Truncate(r.Title, titleWidth, "…")

	meta := strings.Join([]string{
		common.ScoreStyle.Render(common.FormatScore(r.Score) + " pts"),
		common.SubredditStyle.Render("r/" + r.Subreddit),
		common.AuthorStyle.Render("u/" + r.Author),
		common.TimestampStyle.Render(r.Age),
		common.TimestampStyle.Render(fmt.Sprintf("%d comments", r.NumComments)),
	}, " · ")

	return marker + rank + titleStyle.Render(title) + "\n" + strings.Repeat(" ", 2+len(rank)) + meta
}

// renderDetail lays out the post header, the comment window and, when room
// is left, the selftext and the image.
func (m Model) renderDetail(vm ViewModel, width, bodyHeight int) string {
	var parts []string
	if vm.Header != "" {
		parts = append(parts, common.HeaderStyle.Width(max(width-2, 10)).Render(vm.Header))
	}

	comments := m.renderComments(vm)
	room := bodyHeight - lipgloss.Height(comments)
	for _, p := range parts {
		room -= lipgloss.Height(p)
	}

	selftext := strings.TrimRight(m.selftextRender, "\n")
	if selftext == "" && vm.Selftext != "" {
		selftext = common.ContentStyle.Render(vm.Selftext)
	}
	for _, extra := range []string{selftext, m.imageRender} {
		if extra == "" {
			continue
		}
		if h := lipgloss.Height(extra); h <= room {
			parts = append(parts, extra)
			room -= h
		}
	}

	parts = append(parts, comments)
	return strings.Join(parts, "\n")
}

func (m Model) renderComments(vm ViewModel) string {
	if len(vm.Rows) == 0 {
		if vm.Loading == "" {
			return common.TimestampStyle.Render("  No comments.")
		}
		return ""
	}

	var b strings.Builder
	end := min(vm.ScrollOffset+detailWindow, len(vm.Rows))
	for i := vm.ScrollOffset; i < end; i++ {
		b.WriteString(renderCommentRow(vm.Rows[i]))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(vm.Rows) {
		b.WriteString("\n")
		b.WriteString(common.TimestampStyle.Render(fmt.Sprintf("  … %d more", len(vm.Rows)-end)))
	}
	return b.String()
}

func renderCommentRow(r RowView) string {
	indent := strings.Repeat("  ", r.Indent)
	marker := "  "
	body := common.ContentStyle
	if r.Selected {
		marker = common.SelectedStyle.Render("▶ ")
		body = common.SelectedStyle
	}
	head := indent + marker +
		common.AuthorStyle.Render("u/"+r.Author) + " " +
		common.ScoreStyle.Render(common.FormatScore(r.Score)) + " " +
		common.TimestampStyle.Render(r.Age) +
		common.ReplyIndicatorStyle.Render(r.ReplyIndicator)
	return head + "\n" + indent + "  " + body.Render(r.Snippet)
}

func (m Model) renderFooter(vm ViewModel) string {
	switch {
	case vm.Error != "":
		return common.ErrorStyle.Render(vm.Error)
	case vm.Loading != "":
		return m.spinner.View() + " " + common.LoadingStyle.Render(vm.Loading)
	case vm.Notice != "":
		return common.TimestampStyle.Render(vm.Notice)
	}
	return ""
}

// clipLines truncates every line to width and drops lines past height.
func clipLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}
