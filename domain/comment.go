package domain

// CommentNode is one comment in a post's thread. A node owns its children.
type CommentNode struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Body      string  `json:"body"`
	Score     int64   `json:"score"`
	CreatedAt float64 `json:"created_utc"`
	Depth     int     `json:"depth"`

	// ReplyCount is the number of direct replies in the payload, counted at
	// parse time whether or not they were materialized into Children.
	ReplyCount int            `json:"reply_count"`
	Children   []*CommentNode `json:"replies"`
	Expanded   bool           `json:"expanded"`
}

// CanExpand reports whether toggling this node has any effect.
func (c *CommentNode) CanExpand() bool {
	return c != nil && c.ReplyCount > 0
}

// CountNodes returns the total number of nodes in the forest, expanded or not.
// Nil entries are skipped.
func CountNodes(roots []*CommentNode) int {
	n := 0
	for _, c := range roots {
		if c == nil {
			continue
		}
		n += 1 + CountNodes(c.Children)
	}
	return n
}
