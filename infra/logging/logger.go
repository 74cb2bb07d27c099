package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger that writes JSON lines to file, appending.
// With no file the logger writes to fallback; a nil fallback disables logging,
// which is what the TUI wants since it owns the terminal.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
func New(level, file string, fallback io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	if level == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), closer, fmt.Errorf("parse log level %q: %w", level, err)
	}

	writer := fallback
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create logs dir: %w", err)
		}

		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = f.Close() }
		writer = f
	}
	if writer == nil {
		return zerolog.Nop(), closer, nil
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Str("app", "rdt").
		Logger().
		Level(lvl)

	return l, closer, nil
}
