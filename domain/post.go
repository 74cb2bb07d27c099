package domain

// PostSummary is a single submission as shown in a listing.
// Optional fields are empty when the post does not carry them.
type PostSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	URL         string  `json:"url"` // Permalink on reddit.com
	Score       int64   `json:"score"`
	NumComments int64   `json:"num_comments"`
	CreatedAt   float64 `json:"created_utc"` // Unix seconds
	Thumbnail   string  `json:"thumbnail,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Selftext    string  `json:"selftext,omitempty"`
}

// HasImage reports whether the post carries a full-size preview image.
func (p PostSummary) HasImage() bool {
	return p.ImageURL != ""
}

// SearchResultSet is the outcome of one search request.
type SearchResultSet struct {
	Query     string        `json:"query"`
	Subreddit string        `json:"subreddit,omitempty"`
	Sort      string        `json:"sort"`
	Posts     []PostSummary `json:"posts"`
	Count     int           `json:"count"`
}
