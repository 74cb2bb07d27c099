// Package tui wires the interactive session into a Bubble Tea program.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/app"
	"github.com/CrestNiraj12/rdt/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Feed        app.FeedService
	Media       app.MediaService // nil disables images
	Interpreter app.QueryInterpreter
	Settings    feed.Settings
}

// App is the root Bubble Tea model. It owns the session and logs view changes.
type App struct {
	session feed.Model
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	media := deps.Media
	if !deps.Settings.Images {
		media = nil
	}
	return App{
		session: feed.New(deps.Feed, media, deps.Interpreter, deps.Settings),
	}
}

// Init starts the session.
func (a App) Init() tea.Cmd {
	return a.session.Init()
}

// Update delegates to the session.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := a.session.CurrentView()
	updated, cmd := a.session.Update(msg)
	a.session = updated
	if after := updated.CurrentView(); after != before {
		log.Debug().Stringer("from", before).Stringer("to", after).Msg("view changed")
	}
	if updated.Quitting() {
		log.Info().Msg("session ended")
	}
	return a, cmd
}

// View renders the session.
func (a App) View() string {
	return a.session.View()
}

// Run starts the full-screen program and blocks until the session ends.
func Run(deps Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewApp(deps), opts...).Run()
	return err
}
