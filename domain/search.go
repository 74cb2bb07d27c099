package domain

import "slices"

// ParseMethod records which layer turned free text into SearchParams.
type ParseMethod int

const (
	ParseFallback ParseMethod = iota
	ParsePattern
	ParseAI
)

func (p ParseMethod) String() string {
	switch p {
	case ParsePattern:
		return "pattern"
	case ParseAI:
		return "AI"
	default:
		return "fallback (no AI)"
	}
}

// SearchParams is a structured search request.
type SearchParams struct {
	Query      string      `json:"query"`
	Subreddit  string      `json:"subreddit,omitempty"`
	Sort       string      `json:"sort"`
	Time       string      `json:"time"`
	Limit      int         `json:"limit"`
	SearchType string      `json:"search_type"`
	Method     ParseMethod `json:"-"`
}

const (
	DefaultSearchSort  = "relevance"
	DefaultSearchTime  = "all"
	DefaultSearchLimit = 25
)

// DefaultSearchParams returns params for a plain query with default filters.
func DefaultSearchParams(query string) SearchParams {
	return SearchParams{
		Query:      query,
		Sort:       DefaultSearchSort,
		Time:       DefaultSearchTime,
		Limit:      DefaultSearchLimit,
		SearchType: "posts",
	}
}

var (
	// SearchSorts is the cycle order for the search sort filter.
	SearchSorts = []string{"relevance", "hot", "top", "new"}
	// SearchTimes is the cycle order for the search time filter.
	SearchTimes = []string{"all", "day", "week", "month", "year"}
)

// NextSort returns the sort after cur, wrapping. Unknown values restart the cycle.
func NextSort(cur string) string {
	return nextIn(SearchSorts, cur)
}

// NextTime returns the time filter after cur, wrapping. Unknown values restart the cycle.
func NextTime(cur string) string {
	return nextIn(SearchTimes, cur)
}

func nextIn(values []string, cur string) string {
	i := slices.Index(values, cur)
	if i < 0 {
		i = 0
	}
	return values[(i+1)%len(values)]
}
