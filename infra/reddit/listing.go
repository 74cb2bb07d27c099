package reddit

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/domain"
)

const (
	kindComment = "t1"
	kindPost    = "t3"
)

// listing is Reddit's paginated envelope: {kind, data: {after, children}}.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Before   string  `json:"before"`
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing is one typed child. Data is decoded lazily so a bad child can be
// dropped without failing its siblings.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// redditPost is the subset of a t3 we map to domain.PostSummary.
type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Thumbnail   string  `json:"thumbnail"`
	Selftext    string  `json:"selftext"`
	Preview     *struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

// redditComment is the subset of a t1 we map to domain.CommentNode.
// Replies is either a listing object or the empty string.
type redditComment struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	Score      int64           `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}

// redditSubreddit is the data of a t5 /about response.
type redditSubreddit struct {
	DisplayName       string `json:"display_name"`
	Title             string `json:"title"`
	PublicDescription string `json:"public_description"`
	Subscribers       int64  `json:"subscribers"`
	ActiveUserCount   *int64 `json:"active_user_count"`
	Over18            bool   `json:"over18"`
	URL               string `json:"url"`
}

func (s redditSubreddit) summary() domain.SubredditSummary {
	return domain.SubredditSummary{
		Name:        s.DisplayName,
		Title:       s.Title,
		Description: s.PublicDescription,
		Subscribers: s.Subscribers,
		ActiveUsers: s.ActiveUserCount,
		NSFW:        s.Over18,
		URL:         "https://reddit.com" + s.URL,
	}
}

// redditUser is the data of a t2 /about response.
type redditUser struct {
	Name         string  `json:"name"`
	LinkKarma    int64   `json:"link_karma"`
	CommentKarma int64   `json:"comment_karma"`
	CreatedUTC   float64 `json:"created_utc"`
	IsGold       bool    `json:"is_gold"`
}

func (u redditUser) summary() domain.UserSummary {
	return domain.UserSummary{
		Name:         u.Name,
		LinkKarma:    u.LinkKarma,
		CommentKarma: u.CommentKarma,
		TotalKarma:   u.LinkKarma + u.CommentKarma,
		CreatedAt:    u.CreatedUTC,
		IsGold:       u.IsGold,
	}
}

func (p redditPost) summary() domain.PostSummary {
	s := domain.PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Subreddit:   p.Subreddit,
		URL:         "https://reddit.com" + p.Permalink,
		Score:       p.Score,
		NumComments: p.NumComments,
		CreatedAt:   p.CreatedUTC,
		Selftext:    p.Selftext,
	}
	// "self", "default", "nsfw" and friends are placeholders, not URLs.
	if strings.HasPrefix(p.Thumbnail, "http") {
		s.Thumbnail = p.Thumbnail
	}
	if p.Preview != nil && len(p.Preview.Images) > 0 {
		s.ImageURL = strings.ReplaceAll(p.Preview.Images[0].Source.URL, "&amp;", "&")
	}
	return s
}

// posts decodes every t3 child; children that fail to decode are skipped.
func (l listing) posts() []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(l.Data.Children))
	for _, t := range l.Data.Children {
		if t.Kind != kindPost {
			continue
		}
		var p redditPost
		if err := json.Unmarshal(t.Data, &p); err != nil {
			log.Debug().Err(err).Msg("skipping malformed post")
			continue
		}
		out = append(out, p.summary())
	}
	return out
}

// comments decodes t1 children at the given depth, recursing into replies.
// "more" stubs and malformed children are dropped.
func (l listing) comments(depth int) []*domain.CommentNode {
	var out []*domain.CommentNode
	for _, t := range l.Data.Children {
		if t.Kind != kindComment {
			continue
		}
		var c redditComment
		if err := json.Unmarshal(t.Data, &c); err != nil {
			log.Debug().Err(err).Int("depth", depth).Msg("skipping malformed comment")
			continue
		}
		replies, ok := parseReplies(c.Replies)
		node := &domain.CommentNode{
			ID:        c.ID,
			Author:    c.Author,
			Body:      c.Body,
			Score:     c.Score,
			CreatedAt: c.CreatedUTC,
			Depth:     depth,
		}
		if ok {
			node.ReplyCount = replies.countKind(kindComment)
			node.Children = replies.comments(depth + 1)
		}
		out = append(out, node)
	}
	return out
}

func (l listing) countKind(kind string) int {
	n := 0
	for _, t := range l.Data.Children {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// parseReplies decodes a replies field. Reddit sends "" when there are none.
func parseReplies(raw json.RawMessage) (listing, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return listing{}, false
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		log.Debug().Err(err).Msg("skipping malformed replies")
		return listing{}, false
	}
	return l, true
}
