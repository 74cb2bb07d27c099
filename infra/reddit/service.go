package reddit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/CrestNiraj12/rdt/domain"
)

// Service implements app.FeedService on top of a Client.
type Service struct {
	client *Client
}

// NewService creates a FeedService backed by Reddit.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// FetchFeed returns a subreddit listing, e.g. ("all", "hot", "day", 25).
func (s *Service) FetchFeed(ctx context.Context, name, sort, time string, limit int) ([]domain.PostSummary, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "r/")
	endpoint := fmt.Sprintf("/r/%s/%s?t=%s&limit=%d",
		url.PathEscape(name), url.PathEscape(sort), url.QueryEscape(time), limit)

	var l listing
	if err := s.getJSON(ctx, endpoint, &l); err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", name, err)
	}
	return l.posts(), nil
}

// FetchComments returns the nested comment tree of a post. The endpoint
// answers with [post listing, comment listing].
func (s *Service) FetchComments(ctx context.Context, postID, sort string, limit int) ([]*domain.CommentNode, error) {
	id := ExtractPostID(postID)
	endpoint := fmt.Sprintf("/comments/%s?sort=%s&limit=%d",
		url.PathEscape(id), url.QueryEscape(sort), limit)

	var pair []listing
	if err := s.getJSON(ctx, endpoint, &pair); err != nil {
		return nil, fmt.Errorf("fetching comments for %s: %w", id, err)
	}
	if len(pair) < 2 {
		return nil, nil
	}
	return pair[1].comments(0), nil
}

// Search runs a post search, restricted to params.Subreddit when set.
func (s *Service) Search(ctx context.Context, params domain.SearchParams) (domain.SearchResultSet, error) {
	if strings.TrimSpace(params.Query) == "" {
		return domain.SearchResultSet{}, domain.ErrEmptyQuery
	}
	endpoint := "/search"
	if params.Subreddit != "" {
		endpoint = "/r/" + url.PathEscape(params.Subreddit) + "/search"
	}
	endpoint += fmt.Sprintf("?q=%s&sort=%s&t=%s&limit=%d&restrict_sr=%t",
		url.QueryEscape(params.Query),
		url.QueryEscape(params.Sort),
		url.QueryEscape(params.Time),
		params.Limit,
		params.Subreddit != "",
	)

	var l listing
	if err := s.getJSON(ctx, endpoint, &l); err != nil {
		return domain.SearchResultSet{}, fmt.Errorf("searching %q: %w", params.Query, err)
	}
	posts := l.posts()
	return domain.SearchResultSet{
		Query:     params.Query,
		Subreddit: params.Subreddit,
		Sort:      params.Sort,
		Posts:     posts,
		Count:     len(posts),
	}, nil
}

// FetchPost returns one post by ID, fullname or URL.
func (s *Service) FetchPost(ctx context.Context, id string) (domain.PostSummary, error) {
	postID := ExtractPostID(id)

	var l listing
	if err := s.getJSON(ctx, "/by_id/t3_"+url.PathEscape(postID), &l); err != nil {
		return domain.PostSummary{}, fmt.Errorf("fetching post %s: %w", postID, err)
	}
	posts := l.posts()
	if len(posts) == 0 {
		return domain.PostSummary{}, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}
	return posts[0], nil
}

// FetchSubreddit returns the about page of a subreddit.
func (s *Service) FetchSubreddit(ctx context.Context, name string) (domain.SubredditSummary, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "r/")

	var resp struct {
		Data redditSubreddit `json:"data"`
	}
	if err := s.getJSON(ctx, "/r/"+url.PathEscape(name)+"/about", &resp); err != nil {
		return domain.SubredditSummary{}, fmt.Errorf("fetching r/%s: %w", name, err)
	}
	if resp.Data.DisplayName == "" {
		return domain.SubredditSummary{}, fmt.Errorf("r/%s: %w", name, domain.ErrNotFound)
	}
	return resp.Data.summary(), nil
}

// FetchUser returns the about page of a user.
func (s *Service) FetchUser(ctx context.Context, username string) (domain.UserSummary, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "u/")

	var resp struct {
		Data redditUser `json:"data"`
	}
	if err := s.getJSON(ctx, "/user/"+url.PathEscape(username)+"/about", &resp); err != nil {
		return domain.UserSummary{}, fmt.Errorf("fetching u/%s: %w", username, err)
	}
	if resp.Data.Name == "" {
		return domain.UserSummary{}, fmt.Errorf("u/%s: %w", username, domain.ErrNotFound)
	}
	return resp.Data.summary(), nil
}

// FetchUserPosts returns the posts a user submitted, e.g. ("spez", "new", 25).
func (s *Service) FetchUserPosts(ctx context.Context, username, sort string, limit int) ([]domain.PostSummary, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "u/")
	endpoint := fmt.Sprintf("/user/%s/submitted?sort=%s&limit=%d",
		url.PathEscape(username), url.QueryEscape(sort), limit)

	var l listing
	if err := s.getJSON(ctx, endpoint, &l); err != nil {
		return nil, fmt.Errorf("fetching posts of u/%s: %w", username, err)
	}
	return l.posts(), nil
}

func (s *Service) getJSON(ctx context.Context, endpoint string, v any) error {
	data, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// ExtractPostID accepts a bare ID, a t3_ fullname or a permalink URL.
func ExtractPostID(input string) string {
	input = strings.TrimSpace(input)
	if _, rest, ok := strings.Cut(input, "/comments/"); ok {
		id, _, _ := strings.Cut(rest, "/")
		id, _, _ = strings.Cut(id, "?")
		if id != "" {
			return id
		}
	}
	return strings.TrimPrefix(input, "t3_")
}
