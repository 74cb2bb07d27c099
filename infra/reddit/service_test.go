package reddit

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/rdt/domain"
)

const postListingJSON = `{
  "kind": "Listing",
  "data": {
    "after": "t3_next",
    "children": [
      {"kind": "t3", "data": {
        "id": "abc", "title": "Go 1.25 released", "author": "gopher", "subreddit": "golang",
        "permalink": "/r/golang/comments/abc/go_125_released/", "score": 420, "num_comments": 69,
        "created_utc": 1700000000.0, "thumbnail": "https://b.thumbs.redditmedia.com/x.jpg",
        "selftext": "",
        "preview": {"images": [{"source": {"url": "https://preview.redd.it/a.png?width=640&amp;s=sig"}}]}
      }},
      {"kind": "t3", "data": {
        "id": "def", "title": "Ask: generics?", "author": "newbie", "subreddit": "golang",
        "permalink": "/r/golang/comments/def/ask/", "score": 3, "num_comments": 1,
        "created_utc": 1700000100.0, "thumbnail": "self", "selftext": "How do **generics** work?"
      }},
      {"kind": "t3", "data": {"id": 12345}},
      {"kind": "t5", "data": {"display_name": "golang"}}
    ]
  }
}`

const commentsJSON = `[
  {"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"id": "abc"}}]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {
      "id": "c1", "author": "alice", "body": "top level", "score": 10, "created_utc": 1700000200.0,
      "replies": {"kind": "Listing", "data": {"children": [
        {"kind": "t1", "data": {"id": "c1a", "author": "bob", "body": "reply", "score": 2, "created_utc": 1700000300.0, "replies": ""}},
        {"kind": "t1", "data": {"id": "c1b", "author": "carol", "body": "nested", "score": 1, "created_utc": 1700000400.0,
          "replies": {"kind": "Listing", "data": {"children": [
            {"kind": "t1", "data": {"id": "c1b1", "author": "dave", "body": "deep", "score": 0, "created_utc": 1700000500.0, "replies": ""}}
          ]}}}},
        {"kind": "t1", "data": {"id": "broken", "score": "not-a-number"}},
        {"kind": "more", "data": {"count": 12, "children": ["x", "y"]}}
      ]}}
    }},
    {"kind": "t1", "data": {"id": "c2", "author": "erin", "body": "no replies", "score": -1, "created_utc": 1700000600.0, "replies": ""}},
    {"kind": "more", "data": {"count": 40}}
  ]}}
]`

func serve(t *testing.T, body string, inspect func(r *http.Request)) *Service {
	t.Helper()
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		_, _ = w.Write([]byte(body))
	})
	return NewService(newTestClient(h, ""))
}

func TestService_FetchFeed_RequestShapeAndMapping(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	svc := serve(t, postListingJSON, func(r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
	})

	posts, err := svc.FetchFeed(context.Background(), "r/golang", "hot", "day", 25)
	require.NoError(t, err)

	assert.Equal(t, "/r/golang/hot.json", gotPath)
	assert.Equal(t, "day", gotQuery.Get("t"))
	assert.Equal(t, "25", gotQuery.Get("limit"))

	require.Len(t, posts, 2, "malformed and non-post children are dropped")
	p := posts[0]
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, "https://reddit.com/r/golang/comments/abc/go_125_released/", p.URL)
	assert.Equal(t, int64(420), p.Score)
	assert.Equal(t, int64(69), p.NumComments)
	assert.InDelta(t, 1700000000.0, p.CreatedAt, 0.001)
	assert.Equal(t, "https://b.thumbs.redditmedia.com/x.jpg", p.Thumbnail)
	assert.Equal(t, "https://preview.redd.it/a.png?width=640&s=sig", p.ImageURL)
	assert.Empty(t, p.Selftext)
	assert.True(t, p.HasImage())

	q := posts[1]
	assert.Empty(t, q.Thumbnail, "placeholder thumbnails are not URLs")
	assert.Empty(t, q.ImageURL)
	assert.Equal(t, "How do **generics** work?", q.Selftext)
}

func TestService_FetchComments_BuildsNestedTree(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	svc := serve(t, commentsJSON, func(r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
	})

	roots, err := svc.FetchComments(context.Background(), "https://www.reddit.com/r/golang/comments/abc/title/", "best", 50)
	require.NoError(t, err)

	assert.Equal(t, "/comments/abc.json", gotPath)
	assert.Equal(t, "best", gotQuery.Get("sort"))
	assert.Equal(t, "50", gotQuery.Get("limit"))

	require.Len(t, roots, 2)
	c1 := roots[0]
	assert.Equal(t, "c1", c1.ID)
	assert.Equal(t, 0, c1.Depth)
	assert.Equal(t, 3, c1.ReplyCount, "reply count includes every raw t1 child")
	require.Len(t, c1.Children, 2, "the malformed child is dropped")
	assert.False(t, c1.Expanded)

	c1b := c1.Children[1]
	assert.Equal(t, "c1b", c1b.ID)
	assert.Equal(t, 1, c1b.Depth)
	assert.Equal(t, 1, c1b.ReplyCount)
	require.Len(t, c1b.Children, 1)
	assert.Equal(t, 2, c1b.Children[0].Depth)

	c2 := roots[1]
	assert.Equal(t, 0, c2.ReplyCount)
	assert.Empty(t, c2.Children)
	assert.Equal(t, int64(-1), c2.Score)

	assert.Equal(t, 5, domain.CountNodes(roots))
}

func TestService_FetchComments_ShortResponse(t *testing.T) {
	svc := serve(t, `[{"kind":"Listing","data":{"children":[]}}]`, nil)
	roots, err := svc.FetchComments(context.Background(), "abc", "best", 50)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestService_Search_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	svc := serve(t, postListingJSON, func(r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
	})

	params := domain.DefaultSearchParams("rust async")
	params.Subreddit = "programming"
	params.Sort = "top"
	params.Time = "week"

	res, err := svc.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "/r/programming/search.json", gotPath)
	assert.Equal(t, "rust async", gotQuery.Get("q"))
	assert.Equal(t, "top", gotQuery.Get("sort"))
	assert.Equal(t, "week", gotQuery.Get("t"))
	assert.Equal(t, "25", gotQuery.Get("limit"))
	assert.Equal(t, "true", gotQuery.Get("restrict_sr"))

	assert.Equal(t, "rust async", res.Query)
	assert.Equal(t, "programming", res.Subreddit)
	assert.Equal(t, "top", res.Sort)
	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.Posts, 2)
}

func TestService_Search_Global(t *testing.T) {
	var gotPath, restrict string
	svc := serve(t, postListingJSON, func(r *http.Request) {
		gotPath, restrict = r.URL.Path, r.URL.Query().Get("restrict_sr")
	})
	_, err := svc.Search(context.Background(), domain.DefaultSearchParams("golang"))
	require.NoError(t, err)
	assert.Equal(t, "/search.json", gotPath)
	assert.Equal(t, "false", restrict)

	_, err = svc.Search(context.Background(), domain.DefaultSearchParams("  "))
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}

func TestService_FetchPost(t *testing.T) {
	var gotPath string
	svc := serve(t, postListingJSON, func(r *http.Request) { gotPath = r.URL.Path })
	p, err := svc.FetchPost(context.Background(), "t3_abc")
	require.NoError(t, err)
	assert.Equal(t, "/by_id/t3_abc.json", gotPath)
	assert.Equal(t, "abc", p.ID)

	empty := serve(t, `{"kind":"Listing","data":{"children":[]}}`, nil)
	_, err = empty.FetchPost(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DecodeErrorIsWrapped(t *testing.T) {
	svc := serve(t, `<html>maintenance</html>`, nil)
	_, err := svc.FetchFeed(context.Background(), "all", "hot", "day", 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching r/all")
	assert.Contains(t, err.Error(), "parsing response")
}

func TestExtractPostID(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc123", "abc123"},
		{"t3_abc123", "abc123"},
		{" t3_abc123 ", "abc123"},
		{"https://www.reddit.com/r/rust/comments/abc123/title/", "abc123"},
		{"https://reddit.com/r/rust/comments/abc123?context=3", "abc123"},
		{"/r/rust/comments/abc123", "abc123"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractPostID(tc.in), "input %q", tc.in)
	}
}

func TestService_FetchSubreddit(t *testing.T) {
	var gotPath string
	body := `{"kind": "t5", "data": {
	  "display_name": "golang", "title": "The Go Programming Language",
	  "public_description": "Ask questions and post articles about Go.",
	  "subscribers": 250000, "active_user_count": 312, "over18": false, "url": "/r/golang/"
	}}`
	svc := serve(t, body, func(r *http.Request) { gotPath = r.URL.Path })

	sub, err := svc.FetchSubreddit(context.Background(), "r/golang")
	require.NoError(t, err)
	assert.Equal(t, "/r/golang/about.json", gotPath)
	assert.Equal(t, "golang", sub.Name)
	assert.Equal(t, "Ask questions and post articles about Go.", sub.Description)
	assert.Equal(t, int64(250000), sub.Subscribers)
	require.NotNil(t, sub.ActiveUsers)
	assert.Equal(t, int64(312), *sub.ActiveUsers)
	assert.Equal(t, "https://reddit.com/r/golang/", sub.URL)

	missing := serve(t, `{"kind": "Listing", "data": {"children": []}}`, nil)
	_, err = missing.FetchSubreddit(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_FetchUser(t *testing.T) {
	var gotPath string
	body := `{"kind": "t2", "data": {
	  "name": "gopher", "link_karma": 1200, "comment_karma": 34, "created_utc": 1500000000.0, "is_gold": true
	}}`
	svc := serve(t, body, func(r *http.Request) { gotPath = r.URL.Path })

	user, err := svc.FetchUser(context.Background(), "u/gopher")
	require.NoError(t, err)
	assert.Equal(t, "/user/gopher/about.json", gotPath)
	assert.Equal(t, domain.UserSummary{
		Name: "gopher", LinkKarma: 1200, CommentKarma: 34, TotalKarma: 1234,
		CreatedAt: 1500000000, IsGold: true,
	}, user)
}

func TestService_FetchUserPosts(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	svc := serve(t, postListingJSON, func(r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.Query()
	})

	posts, err := svc.FetchUserPosts(context.Background(), "gopher", "new", 10)
	require.NoError(t, err)
	assert.Equal(t, "/user/gopher/submitted.json", gotPath)
	assert.Equal(t, "new", gotQuery.Get("sort"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Len(t, posts, 2)
}
