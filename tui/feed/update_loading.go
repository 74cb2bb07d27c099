package feed

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/tui/thread"
)

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FeedLoadedMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		m.homePosts = msg.Posts
		m.errorMessage = ""
		if m.view == ViewHome {
			m.selectedPost = 0
		}
		log.Debug().Int("posts", len(msg.Posts)).Msg("home feed loaded")
		return m, nil

	case FeedErrorMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		m.errorMessage = fmt.Sprintf("Failed to load posts: %v", msg.Err)
		log.Error().Err(msg.Err).Msg("home feed failed")
		return m, nil

	case QueryInterpretedMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		if msg.Err != nil {
			m.finishRequest()
			m.errorMessage = fmt.Sprintf("Search failed: %v", msg.Err)
			return m, nil
		}
		p := msg.Params
		m.diagnostic = diagnosticLine(p.Method.String(), p.Query, p.Subreddit)
		p.Sort, p.Time = m.searchSort, m.searchTime
		log.Debug().Str("method", p.Method.String()).Str("query", p.Query).Str("sub", p.Subreddit).Msg("query interpreted")
		return m, m.runSearch(p)

	case SearchLoadedMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		results := msg.Results
		m.clearDetail()
		m.searchResults = &results
		m.view = ViewSearchResults
		m.selectedPost = 0
		m.errorMessage = ""
		return m, nil

	case SearchErrorMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		m.errorMessage = fmt.Sprintf("Search failed: %v", msg.Err)
		log.Error().Err(msg.Err).Msg("search failed")
		return m, nil

	case CommentsLoadedMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		// Search cannot run from the detail view; drop an edit begun while loading.
		if m.mode == ModeEditing {
			m.cancelEditing()
		}
		m.commentRoots = msg.Roots
		m.selectedComment = thread.Clamp(m.selectedComment, thread.VisibleLen(m.commentRoots))
		m.view = ViewPostDetail
		m.errorMessage = ""
		m.renderDetailAssets()
		if m.currentPost != nil && m.currentPost.HasImage() && m.settings.Images && m.media != nil {
			return m, m.fetchImage(m.currentPost.ImageURL)
		}
		m.finishRequest()
		return m, nil

	case CommentsErrorMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		if m.view != ViewPostDetail {
			m.currentPost = nil
		}
		m.errorMessage = fmt.Sprintf("Failed to load comments: %v", msg.Err)
		log.Error().Err(msg.Err).Str("post", msg.PostID).Msg("comments failed")
		return m, nil

	case ImageLoadedMsg:
		if !m.current(msg.ReqSeq, msg.Key) {
			return m, nil
		}
		m.finishRequest()
		if msg.Err != nil {
			log.Debug().Err(msg.Err).Msg("image unavailable")
			return m, nil
		}
		if m.view == ViewPostDetail {
			m.image = msg.Image
			m.renderDetailAssets()
		}
		return m, nil
	}

	return m, nil
}

func diagnosticLine(method, query, sub string) string {
	if sub == "" {
		sub = "None"
	}
	return fmt.Sprintf("[%s] query=%q sub=%s", method, query, sub)
}
