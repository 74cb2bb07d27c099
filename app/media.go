package app

import "context"

// MediaService downloads post images. Decoding happens in the caller.
type MediaService interface {
	FetchImageBytes(ctx context.Context, url string) ([]byte, error)
}
