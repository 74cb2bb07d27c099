package feed

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rdt/domain"
)

var testNow = time.Unix(1_700_000_000, 0)

type stubFeed struct {
	posts       []domain.PostSummary
	feedErr     error
	comments    []*domain.CommentNode
	commentsErr error
	results     domain.SearchResultSet
	searchErr   error

	feedCalls    int
	lastFeed     [4]any
	lastSearch   domain.SearchParams
	lastComments [3]any
	ctxs         []context.Context
}

func (s *stubFeed) FetchFeed(ctx context.Context, name, sort, time string, limit int) ([]domain.PostSummary, error) {
	s.feedCalls++
	s.lastFeed = [4]any{name, sort, time, limit}
	s.ctxs = append(s.ctxs, ctx)
	return s.posts, s.feedErr
}

func (s *stubFeed) FetchComments(ctx context.Context, postID, sort string, limit int) ([]*domain.CommentNode, error) {
	s.lastComments = [3]any{postID, sort, limit}
	s.ctxs = append(s.ctxs, ctx)
	return s.comments, s.commentsErr
}

func (s *stubFeed) Search(ctx context.Context, params domain.SearchParams) (domain.SearchResultSet, error) {
	s.lastSearch = params
	s.ctxs = append(s.ctxs, ctx)
	if s.searchErr != nil {
		return domain.SearchResultSet{}, s.searchErr
	}
	out := s.results
	out.Sort = params.Sort
	return out, nil
}

func (s *stubFeed) FetchPost(context.Context, string) (domain.PostSummary, error) {
	return domain.PostSummary{}, domain.ErrNotFound
}

// stubInterpreter reads every query as a pattern match for "top" posts so
// tests can see the UI filters win.
type stubInterpreter struct {
	err  error
	sub  string
	last string
}

func (s *stubInterpreter) Interpret(_ context.Context, text string) (domain.SearchParams, error) {
	s.last = text
	if s.err != nil {
		return domain.SearchParams{}, s.err
	}
	p := domain.DefaultSearchParams(text)
	p.Subreddit = s.sub
	p.Sort, p.Time = "top", "week"
	p.Method = domain.ParsePattern
	return p, nil
}

type stubMedia struct {
	data []byte
	err  error
	urls []string
}

func (s *stubMedia) FetchImageBytes(_ context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.data, s.err
}

type testEnv struct {
	feed   *stubFeed
	interp *stubInterpreter
	media  *stubMedia
	opened []string
	copied []string
}

func newTestModel(env *testEnv) Model {
	if env.feed == nil {
		env.feed = &stubFeed{}
	}
	if env.interp == nil {
		env.interp = &stubInterpreter{}
	}
	if env.media == nil {
		env.media = &stubMedia{}
	}
	m := New(env.feed, env.media, env.interp, DefaultSettings())
	m.now = func() time.Time { return testNow }
	m.openURL = func(u string) error {
		env.opened = append(env.opened, u)
		return nil
	}
	m.copyText = func(s string) error {
		env.copied = append(env.copied, s)
		return nil
	}
	return m
}

func makePost(id string) domain.PostSummary {
	return domain.PostSummary{
		ID:          id,
		Title:       "Post " + id,
		Author:      "author" + id,
		Subreddit:   "golang",
		URL:         "https://reddit.com/r/golang/comments/" + id + "/post/",
		Score:       42,
		NumComments: 7,
		CreatedAt:   float64(testNow.Add(-2 * time.Hour).Unix()),
	}
}

func posts(ids ...string) []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, makePost(id))
	}
	return out
}

func comment(id string, depth int, children ...*domain.CommentNode) *domain.CommentNode {
	return &domain.CommentNode{
		ID:         id,
		Author:     "u" + id,
		Body:       "body of " + id,
		Score:      3,
		CreatedAt:  float64(testNow.Add(-time.Minute).Unix()),
		Depth:      depth,
		ReplyCount: len(children),
		Children:   children,
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys one at a time, discarding the commands.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

// settle runs cmd and feeds every resulting message back into the model
// until no command is left.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 10 {
			t.Fatalf("command chain did not settle")
		}
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

// pressAndSettle sends one key and runs the commands it produced.
func pressAndSettle(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := m.Update(keyMsg(k))
	return settle(t, m, cmd)
}

// loadedHome returns a model on Home with the given posts loaded.
func loadedHome(t *testing.T, env *testEnv, ids ...string) Model {
	t.Helper()
	if env.feed == nil {
		env.feed = &stubFeed{}
	}
	env.feed.posts = posts(ids...)
	m := newTestModel(env)
	m, cmd := m.Update(LoadHomeMsg{})
	return settle(t, m, cmd)
}

// searched returns a model on SearchResults for text.
func searched(t *testing.T, env *testEnv, text string, ids ...string) Model {
	t.Helper()
	m := loadedHome(t, env, "h1", "h2")
	env.feed.results = domain.SearchResultSet{Query: text, Posts: posts(ids...), Count: len(ids)}
	m = press(m, "/")
	m = press(m, []string{text}...)
	return pressAndSettle(t, m, "enter")
}
