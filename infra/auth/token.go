package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrNoToken means no credential is configured. Callers fall back to the
// public, unauthenticated API.
var ErrNoToken = errors.New("no access token configured")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StaticTokenProvider returns a fixed token, typically from config or env.
type StaticTokenProvider string

// AccessToken returns the token, or ErrNoToken when it is blank.
func (s StaticTokenProvider) AccessToken() (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// AccessToken reads and returns the token, trimming whitespace.
// A missing file is reported as ErrNoToken.
func (f *FileTokenProvider) AccessToken() (string, error) {
	if f.path == "" {
		return "", ErrNoToken
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, ErrNoToken)
	}

	return token, nil
}

// ChainTokenProvider returns the first token any provider yields.
// Providers reporting ErrNoToken are skipped; other errors stop the chain.
type ChainTokenProvider []TokenProvider

// AccessToken walks the chain in order.
func (c ChainTokenProvider) AccessToken() (string, error) {
	for _, p := range c {
		token, err := p.AccessToken()
		if errors.Is(err, ErrNoToken) {
			continue
		}
		if err != nil {
			return "", err
		}
		return token, nil
	}
	return "", ErrNoToken
}
