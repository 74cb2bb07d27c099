package domain

// SubredditSummary describes a community as shown by `subreddit info`.
type SubredditSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subscribers int64  `json:"subscribers"`
	ActiveUsers *int64 `json:"active_users"` // nil when Reddit does not report it
	NSFW        bool   `json:"nsfw"`
	URL         string `json:"url"`
}

// UserSummary describes an account as shown by `user info`.
type UserSummary struct {
	Name         string  `json:"name"`
	LinkKarma    int64   `json:"link_karma"`
	CommentKarma int64   `json:"comment_karma"`
	TotalKarma   int64   `json:"total_karma"`
	CreatedAt    float64 `json:"created_utc"`
	IsGold       bool    `json:"is_gold"`
}
