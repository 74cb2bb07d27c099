package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF4500")).
			Padding(0, 1)

	// PanelTitleStyle styles the title line of the list and search panels.
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#FF4500")).
			Bold(true)

	// SubredditStyle styles r/<name> labels.
	SubredditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95"))

	// AuthorStyle styles usernames.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// ScoreStyle styles vote counts.
	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5A97F"))

	// TimestampStyle styles ages.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles post titles and comment bodies.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// SelectedStyle highlights the selected row.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4500")).
			Bold(true)

	// ReplyIndicatorStyle styles the [+N]/[−N] marker.
	ReplyIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#C6A0F6"))

	// HeaderStyle frames the post header in the detail view.
	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4500")).
			Padding(0, 1)

	// SearchBoxStyle frames the search input.
	SearchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// SearchBoxActiveStyle frames the search input while editing.
	SearchBoxActiveStyle = SearchBoxStyle.
				BorderForeground(lipgloss.Color("#FF4500"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// DiagnosticStyle styles the query interpretation line.
	DiagnosticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true)

	// LoadingStyle styles the loading message.
	LoadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)
)
