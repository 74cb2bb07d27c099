// Package media downloads and decodes post preview images.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	// MaxImageBytes caps a single download.
	MaxImageBytes = 4 * 1024 * 1024

	defaultTimeout = 6 * time.Second
	cacheTTL       = 10 * time.Minute
)

// ErrUnsupportedURL is returned for anything that is not an absolute http(s) URL.
var ErrUnsupportedURL = errors.New("unsupported image url")

// Fetcher implements app.MediaService over plain HTTP.
type Fetcher struct {
	timeout   time.Duration
	http      *http.Client
	userAgent string
	cache     *cache.Cache
	inflight  singleflight.Group
}

// NewFetcher creates a Fetcher. A zero timeout uses a short default.
func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		timeout:   timeout,
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		cache:     cache.New(cacheTTL, 2*cacheTTL),
	}
}

// FetchImageBytes downloads rawURL, at most MaxImageBytes of it.
// Recently fetched images are served from memory. Concurrent callers share
// one download, which outlives any single caller's cancellation.
func (f *Fetcher) FetchImageBytes(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	if data, ok := f.cache.Get(rawURL); ok {
		return data.([]byte), nil
	}

	ch := f.inflight.DoChan(rawURL, func() (any, error) {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		data, err := f.download(dctx, rawURL)
		if err == nil {
			f.cache.SetDefault(rawURL, data)
		}
		return data, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("image status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	log.Debug().Str("url", rawURL).Int("bytes", len(data)).Dur("took", time.Since(start)).Msg("image fetched")
	return data, nil
}
