package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/CrestNiraj12/rdt/domain"
	"github.com/CrestNiraj12/rdt/infra/auth"
)

const (
	// OAuthBaseURL serves authenticated requests.
	OAuthBaseURL = "https://oauth.reddit.com"
	// PublicBaseURL serves anonymous requests; paths need a .json suffix.
	PublicBaseURL = "https://www.reddit.com"

	maxResponseBytes = 16 << 20
	defaultTimeout   = 15 * time.Second
)

// Options tune the HTTP behavior of a Client.
type Options struct {
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client is a thin HTTP wrapper for the Reddit API.
// It picks the OAuth or public base per request depending on whether a token
// is available, and paces requests with a shared limiter.
type Client struct {
	oauthBase     string
	publicBase    string
	tokenProvider auth.TokenProvider
	userAgent     string
	timeout       time.Duration
	http          *http.Client
	limiter       *rate.Limiter
	inflight      *singleflight.Group
}

// NewClient creates a Reddit API client.
func NewClient(tp auth.TokenProvider, opts Options) *Client {
	perMinute := opts.RequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		oauthBase:     OAuthBaseURL,
		publicBase:    PublicBaseURL,
		tokenProvider: tp,
		userAgent:     opts.UserAgent,
		timeout:       timeout,
		http:          &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 5),
		inflight:      &singleflight.Group{},
	}
}

// Get performs a GET against endpoint, a path with an optional query string.
// Concurrent identical requests share one round trip. The shared round trip
// is detached from any single caller: cancelling ctx returns early for this
// caller only.
func (c *Client) Get(ctx context.Context, endpoint string) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil && !errors.Is(err, auth.ErrNoToken) {
		return nil, fmt.Errorf("auth: %w", err)
	}

	target := c.resolve(endpoint, token != "")
	ch := c.inflight.DoChan(target, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.requestTimeout())
		defer cancel()
		return c.do(shared, target, token)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			log.Debug().Str("endpoint", endpoint).Msg("reddit request shared")
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) requestTimeout() time.Duration {
	if c.timeout <= 0 {
		return defaultTimeout
	}
	return c.timeout
}

// resolve builds the absolute URL. The public API wants ".json" between the
// path and the query string.
func (c *Client) resolve(endpoint string, oauth bool) string {
	if oauth {
		return c.oauthBase + endpoint
	}
	path, query, found := strings.Cut(endpoint, "?")
	if found {
		query = "?" + query
	}
	return c.publicBase + path + ".json" + query
}

func (c *Client) do(ctx context.Context, target, token string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	log.Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("reddit request")

	if err := statusError(resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("HTTP %d: %w", status, domain.ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("HTTP %d: %w", status, domain.ErrNotFound)
	default:
		return &domain.APIError{Status: status, Body: strings.TrimSpace(string(body))}
	}
}
