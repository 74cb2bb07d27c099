package app

import (
	"context"

	"github.com/CrestNiraj12/rdt/domain"
)

// QueryInterpreter turns free-text search input into structured parameters.
// The returned Method is informational only.
type QueryInterpreter interface {
	Interpret(ctx context.Context, text string) (domain.SearchParams, error)
}
