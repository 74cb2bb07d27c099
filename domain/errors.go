package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the service asked us to slow down (HTTP 429).
	ErrRateLimited = errors.New("rate limited, wait before making more requests")

	// ErrNotFound indicates the requested post or listing does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyQuery indicates a search was submitted with no text.
	ErrEmptyQuery = errors.New("search query cannot be empty")
)

const maxAPIErrorBody = 200

// APIError is a non-2xx response that has no dedicated sentinel.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxAPIErrorBody {
		body = body[:maxAPIErrorBody] + "..."
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, body)
}
