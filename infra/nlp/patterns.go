package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/CrestNiraj12/rdt/domain"
)

const maxLimit = 100

type pattern struct {
	re    *regexp.Regexp
	build func(m []string) domain.SearchParams
}

// PatternMatcher recognizes common phrasings of a search without any network
// round trip. Patterns are tried in order, most specific first.
type PatternMatcher struct {
	patterns []pattern
}

func params(query string) domain.SearchParams {
	return domain.DefaultSearchParams(strings.TrimSpace(query))
}

func withSub(query, sub string) domain.SearchParams {
	p := params(query)
	p.Subreddit = sub
	return p
}

// NewPatternMatcher compiles the built-in pattern set.
func NewPatternMatcher() *PatternMatcher {
	def := func(expr string, build func(m []string) domain.SearchParams) pattern {
		return pattern{re: regexp.MustCompile(`(?i)` + expr), build: build}
	}
	const sub = `\s+in\s+(?:r?/)?(\w+)`
	return &PatternMatcher{patterns: []pattern{
		def(`^top\s+(.+?)`+sub+`\s+from\s+this\s+week$`, func(m []string) domain.SearchParams {
			p := withSub(m[1], m[2])
			p.Sort, p.Time = "top", "week"
			return p
		}),
		def(`^(.+?)`+sub+`\s+from\s+this\s+week$`, func(m []string) domain.SearchParams {
			p := withSub(m[1], m[2])
			p.Time = "week"
			return p
		}),
		def(`^top\s+(.+?)\s+from\s+this\s+week$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Sort, p.Time = "top", "week"
			return p
		}),
		def(`^top\s+(.+?)`+sub+`$`, func(m []string) domain.SearchParams {
			p := withSub(m[1], m[2])
			p.Sort = "top"
			return p
		}),
		def(`^posts?\s+about\s+(.+?)`+sub+`$`, func(m []string) domain.SearchParams {
			return withSub(m[1], m[2])
		}),
		def(`^(.+?)`+sub+`$`, func(m []string) domain.SearchParams {
			return withSub(m[1], m[2])
		}),
		def(`^(.+?)\s+sorted\s+by\s+(hot|new|top|relevance)$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Sort = strings.ToLower(m[2])
			return p
		}),
		def(`^(.+?)\s+from\s+this\s+(week|month|year)$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Time = strings.ToLower(m[2])
			return p
		}),
		def(`^(.+?)\s+from\s+today$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Time = "day"
			return p
		}),
		def(`^(.+?)\s+from\s+(?:r?/)?(\w+)$`, func(m []string) domain.SearchParams {
			return withSub(m[1], m[2])
		}),
		def(`^recent\s+(.+)$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Sort = "new"
			return p
		}),
		def(`^(.+?)\s+limit\s+(\d+)$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Limit = clampLimit(m[2])
			return p
		}),
		def(`^top\s+(.+)$`, func(m []string) domain.SearchParams {
			p := params(m[1])
			p.Sort = "top"
			return p
		}),
	}}
}

// Match returns the params of the first matching pattern.
func (pm *PatternMatcher) Match(text string) (domain.SearchParams, bool) {
	text = strings.TrimSpace(text)
	for _, p := range pm.patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			out := p.build(m)
			out.Method = domain.ParsePattern
			return out, true
		}
	}
	return domain.SearchParams{}, false
}

func clampLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return domain.DefaultSearchLimit
	}
	return min(n, maxLimit)
}
