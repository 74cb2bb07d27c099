package feed

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/infra/media"
)

// beginRequest supersedes any in-flight operation and tags a new one.
// The returned context is cancelled when the operation is superseded.
func (m *Model) beginRequest(key, message string) (context.Context, int) {
	if m.cancel != nil {
		m.cancel()
	}
	m.reqSeq++
	m.reqKey = key
	m.loading = true
	m.loadingMessage = message
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	log.Debug().Int("seq", m.reqSeq).Str("key", key).Msg("request started")
	return ctx, m.reqSeq
}

// continueRequest starts the next phase of the current operation under the
// same tag.
func (m *Model) continueRequest(message string) context.Context {
	if m.cancel != nil {
		m.cancel()
	}
	m.loading = true
	m.loadingMessage = message
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	return ctx
}

// finishRequest clears the loading state once the operation settles.
func (m *Model) finishRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.loading = false
	m.loadingMessage = ""
}

// abandonRequest cancels the in-flight operation so its result is discarded.
func (m *Model) abandonRequest() {
	if m.loading {
		log.Debug().Int("seq", m.reqSeq).Str("key", m.reqKey).Msg("request abandoned")
	}
	m.finishRequest()
	m.reqSeq++
	m.reqKey = ""
}

// current reports whether a result tag belongs to the in-flight operation.
func (m Model) current(seq int, key string) bool {
	if seq == m.reqSeq && key == m.reqKey {
		return true
	}
	log.Debug().Int("seq", seq).Str("key", key).Int("want_seq", m.reqSeq).Str("want_key", m.reqKey).Msg("stale result discarded")
	return false
}

func (m *Model) loadHome() tea.Cmd {
	ctx, seq := m.beginRequest(m.homeKey(), homeLoadingMessage(m.settings.HomeFeed))
	key := m.reqKey
	svc, s := m.feed, m.settings
	return func() tea.Msg {
		posts, err := svc.FetchFeed(ctx, s.HomeFeed, s.HomeSort, s.HomeTime, s.HomeLimit)
		if err != nil {
			return FeedErrorMsg{Err: err, ReqSeq: seq, Key: key}
		}
		return FeedLoadedMsg{Posts: posts, ReqSeq: seq, Key: key}
	}
}

// startSearch runs the interpretation phase for the current search text.
func (m *Model) startSearch() tea.Cmd {
	text := strings.TrimSpace(string(m.searchText))
	ctx, seq := m.beginRequest(m.searchKey(), "Parsing query...")
	key := m.reqKey
	interpreter := m.interpreter
	return func() tea.Msg {
		params, err := interpreter.Interpret(ctx, text)
		return QueryInterpretedMsg{Params: params, Err: err, ReqSeq: seq, Key: key}
	}
}

// runSearch runs the search phase with already interpreted params.
func (m *Model) runSearch(params domain.SearchParams) tea.Cmd {
	ctx := m.continueRequest("Searching Reddit...")
	seq, key := m.reqSeq, m.reqKey
	svc := m.feed
	return func() tea.Msg {
		results, err := svc.Search(ctx, params)
		if err != nil {
			return SearchErrorMsg{Err: err, ReqSeq: seq, Key: key}
		}
		return SearchLoadedMsg{Results: results, ReqSeq: seq, Key: key}
	}
}

func (m *Model) fetchComments(post domain.PostSummary) tea.Cmd {
	ctx, seq := m.beginRequest(postKey(post.ID), "Loading comments...")
	key := m.reqKey
	svc, s := m.feed, m.settings
	return func() tea.Msg {
		roots, err := svc.FetchComments(ctx, post.ID, s.CommentSort, s.CommentLimit)
		if err != nil {
			return CommentsErrorMsg{PostID: post.ID, Err: err, ReqSeq: seq, Key: key}
		}
		return CommentsLoadedMsg{PostID: post.ID, Roots: roots, ReqSeq: seq, Key: key}
	}
}

// fetchImage downloads and decodes the post image off the update loop.
func (m *Model) fetchImage(rawURL string) tea.Cmd {
	ctx := m.continueRequest("Loading image...")
	seq, key := m.reqSeq, m.reqKey
	svc := m.media
	return func() tea.Msg {
		data, err := svc.FetchImageBytes(ctx, rawURL)
		if err != nil {
			return ImageLoadedMsg{Err: err, ReqSeq: seq, Key: key}
		}
		img, err := media.Decode(data)
		if err != nil {
			return ImageLoadedMsg{Err: err, ReqSeq: seq, Key: key}
		}
		return ImageLoadedMsg{Image: img, ReqSeq: seq, Key: key}
	}
}

func (m Model) openPostInBrowser(post domain.PostSummary) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		if !isSafeExternalURL(post.URL) {
			return noticeMsg{Text: "Nothing to open"}
		}
		if err := open(post.URL); err != nil {
			log.Warn().Err(err).Str("url", post.URL).Msg("open in browser failed")
			return noticeMsg{Text: "Could not open browser"}
		}
		return nil
	}
}

func (m Model) copyPostURL(post domain.PostSummary) tea.Cmd {
	copyText := m.copyText
	return func() tea.Msg {
		if err := copyText(post.URL); err != nil {
			log.Warn().Err(err).Msg("clipboard write failed")
			return noticeMsg{Text: "Clipboard unavailable"}
		}
		return noticeMsg{Text: "Copied " + post.URL}
	}
}

func openInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	return nil
}

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
