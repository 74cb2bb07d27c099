package feed

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/rdt/app"
	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/tui/common"
)

const (
	// detailWindow is the number of comment rows kept on screen around the selection.
	detailWindow = 10
	// scrollStep is the distance moved by d/u in the detail view.
	scrollStep = 10
	// snippetRunes is the comment body preview length.
	snippetRunes = 80
	// maxIndentDepth caps comment indentation.
	maxIndentDepth = 4
)

// View is the screen the session is showing.
type View int

const (
	ViewHome View = iota
	ViewSearchResults
	ViewPostDetail
)

func (v View) String() string {
	switch v {
	case ViewSearchResults:
		return "search"
	case ViewPostDetail:
		return "detail"
	default:
		return "home"
	}
}

// InputMode selects which key set is active.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeEditing
)

// --- Messages ---

// LoadHomeMsg asks the model to (re)load the home feed.
type LoadHomeMsg struct{}

// FeedLoadedMsg is sent when the home feed fetch completes successfully.
type FeedLoadedMsg struct {
	Posts  []domain.PostSummary
	ReqSeq int
	Key    string
}

// FeedErrorMsg is sent when the home feed fetch fails.
type FeedErrorMsg struct {
	Err    error
	ReqSeq int
	Key    string
}

// QueryInterpretedMsg ends the first phase of a search.
type QueryInterpretedMsg struct {
	Params domain.SearchParams
	Err    error
	ReqSeq int
	Key    string
}

// SearchLoadedMsg is sent when a search completes successfully.
type SearchLoadedMsg struct {
	Results domain.SearchResultSet
	ReqSeq  int
	Key     string
}

// SearchErrorMsg is sent when a search fails.
type SearchErrorMsg struct {
	Err    error
	ReqSeq int
	Key    string
}

// CommentsLoadedMsg is sent when a post's comment tree arrives.
type CommentsLoadedMsg struct {
	PostID string
	Roots  []*domain.CommentNode
	ReqSeq int
	Key    string
}

// CommentsErrorMsg is sent when the comment fetch fails.
type CommentsErrorMsg struct {
	PostID string
	Err    error
	ReqSeq int
	Key    string
}

// ImageLoadedMsg carries the decoded post image, or the reason there is none.
type ImageLoadedMsg struct {
	Image  image.Image
	Err    error
	ReqSeq int
	Key    string
}

// noticeMsg reports the outcome of a side effect such as copying a link.
type noticeMsg struct {
	Text string
}

// --- Model ---

// Settings holds the session defaults taken from configuration.
type Settings struct {
	HomeFeed     string
	HomeSort     string
	HomeTime     string
	HomeLimit    int
	CommentSort  string
	CommentLimit int
	Images       bool
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		HomeFeed:     "all",
		HomeSort:     "hot",
		HomeTime:     "day",
		HomeLimit:    25,
		CommentSort:  "best",
		CommentLimit: 50,
		Images:       true,
	}
}

type modelServices struct {
	feed        app.FeedService
	media       app.MediaService
	interpreter app.QueryInterpreter

	// Side effects, replaced in tests.
	openURL  func(string) error
	copyText func(string) error
	now      func() time.Time
}

type inputState struct {
	mode       InputMode
	searchText []rune
	cursor     int
	// Restored by cancel.
	snapshotText   []rune
	snapshotCursor int
	searchSort     string
	searchTime     string
}

type listState struct {
	homePosts     []domain.PostSummary
	searchResults *domain.SearchResultSet
	selectedPost  int
}

type detailState struct {
	currentPost     *domain.PostSummary
	commentRoots    []*domain.CommentNode
	selectedComment int
	scrollOffset    int
	image           image.Image
	imageRender     string
	selftextRender  string
}

type asyncState struct {
	loading        bool
	loadingMessage string
	errorMessage   string
	notice         string
	diagnostic     string
	reqSeq         int
	reqKey         string
	cancel         context.CancelFunc
}

type uiState struct {
	keys     common.KeyMap
	editKeys common.EditKeyMap
	spinner  spinner.Model
	width    int
	height   int
	quitting bool
}

// Model is the interactive session: one value threaded through Update.
type Model struct {
	modelServices
	settings Settings
	view     View
	inputState
	listState
	detailState
	asyncState
	uiState
}

// New creates a session model with injected dependencies. media may be nil,
// which disables image loading.
func New(feed app.FeedService, media app.MediaService, interpreter app.QueryInterpreter, settings Settings) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500"))

	return Model{
		modelServices: modelServices{
			feed:        feed,
			media:       media,
			interpreter: interpreter,
			openURL:     openInBrowser,
			copyText:    copyToClipboard,
			now:         time.Now,
		},
		settings: settings,
		view:     ViewHome,
		inputState: inputState{
			searchSort: domain.DefaultSearchSort,
			searchTime: domain.DefaultSearchTime,
		},
		asyncState: asyncState{
			loading:        true,
			loadingMessage: homeLoadingMessage(settings.HomeFeed),
		},
		uiState: uiState{
			keys:     common.DefaultKeyMap(),
			editKeys: common.DefaultEditKeyMap(),
			spinner:  s,
		},
	}
}
