package app

import (
	"context"

	"github.com/CrestNiraj12/rdt/domain"
)

// FeedService reads listings, threads and searches from the feed backend.
type FeedService interface {
	// FetchFeed returns the posts of a subreddit (or aggregate such as "all").
	FetchFeed(ctx context.Context, name, sort, time string, limit int) ([]domain.PostSummary, error)

	// FetchComments returns the full nested comment tree for a post.
	// Depth is assigned and every node starts collapsed.
	FetchComments(ctx context.Context, postID, sort string, limit int) ([]*domain.CommentNode, error)

	// Search runs a search with structured parameters.
	Search(ctx context.Context, params domain.SearchParams) (domain.SearchResultSet, error)

	// FetchPost returns a single post by ID or URL.
	FetchPost(ctx context.Context, id string) (domain.PostSummary, error)
}
