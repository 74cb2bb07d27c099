package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/tui/feed"
)

type stubFeed struct{}

func (stubFeed) FetchFeed(context.Context, string, string, string, int) ([]domain.PostSummary, error) {
	return []domain.PostSummary{{ID: "a", Title: "hello"}}, nil
}
func (stubFeed) FetchComments(context.Context, string, string, int) ([]*domain.CommentNode, error) {
	return nil, nil
}
func (stubFeed) Search(context.Context, domain.SearchParams) (domain.SearchResultSet, error) {
	return domain.SearchResultSet{}, nil
}
func (stubFeed) FetchPost(context.Context, string) (domain.PostSummary, error) {
	return domain.PostSummary{}, nil
}

type stubInterpreter struct{}

func (stubInterpreter) Interpret(_ context.Context, text string) (domain.SearchParams, error) {
	return domain.DefaultSearchParams(text), nil
}

func TestApp_DelegatesAndQuits(t *testing.T) {
	a := NewApp(Deps{Feed: stubFeed{}, Interpreter: stubInterpreter{}, Settings: feed.DefaultSettings()})
	if a.Init() == nil {
		t.Fatalf("expected startup command")
	}

	model, cmd := a.Update(feed.LoadHomeMsg{})
	if cmd == nil {
		t.Fatalf("expected home fetch command")
	}
	model, _ = model.Update(cmd())
	a = model.(App)
	if a.session.IsLoading() {
		t.Fatalf("home feed should have settled")
	}

	model, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !model.(App).session.Quitting() {
		t.Fatalf("q on home should quit through the root model")
	}
}
