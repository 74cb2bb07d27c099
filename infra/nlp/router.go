package nlp

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/CrestNiraj12/rdt/domain"
)

// Completer sends a single prompt to a language model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var needsAIPatterns = []*regexp.Regexp{
	// questions
	regexp.MustCompile(`(?i)^(what|how|why|which|who|where)\b`),
	// conversational
	regexp.MustCompile(`(?i)\b(people saying|talking about|discussions? on|opinions? on)\b`),
	// subjective
	regexp.MustCompile(`(?i)\b(best|worst|controversial|popular|unpopular)\b`),
	// vague time
	regexp.MustCompile(`(?i)\b(recently|lately|nowadays)\b`),
	// comparisons
	regexp.MustCompile(`(?i)\b(compare|versus|vs\.?|difference between)\b`),
}

const maxPlainWords = 5

var (
	aiSorts = []string{"relevance", "hot", "new", "top"}
	aiTimes = []string{"hour", "day", "week", "month", "year", "all"}
)

// Router interprets free text: patterns first, then the AI layer for
// natural-language queries, then the raw text as a plain search.
type Router struct {
	patterns *PatternMatcher
	ai       Completer
	cache    *cache.Cache
}

// NewRouter builds a Router. A nil completer disables the AI layer.
func NewRouter(ai Completer) *Router {
	return &Router{
		patterns: NewPatternMatcher(),
		ai:       ai,
		cache:    cache.New(30*time.Minute, time.Hour),
	}
}

// NeedsAI reports whether text looks like natural language that the pattern
// layer cannot handle.
func (r *Router) NeedsAI(text string) bool {
	if _, ok := r.patterns.Match(text); ok {
		return false
	}
	for _, re := range needsAIPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return len(strings.Fields(text)) > maxPlainWords
}

// Interpret implements app.QueryInterpreter. It only fails on empty input or
// a cancelled context; AI failures degrade to a plain search.
func (r *Router) Interpret(ctx context.Context, text string) (domain.SearchParams, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.SearchParams{}, domain.ErrEmptyQuery
	}

	if p, ok := r.patterns.Match(text); ok {
		return p, nil
	}

	if r.ai != nil && r.NeedsAI(text) {
		key := strings.ToLower(text)
		if cached, ok := r.cache.Get(key); ok {
			return cached.(domain.SearchParams), nil
		}
		p, err := r.interpretWithAI(ctx, text)
		if err == nil {
			r.cache.SetDefault(key, p)
			return p, nil
		}
		if ctx.Err() != nil {
			return domain.SearchParams{}, ctx.Err()
		}
		log.Warn().Err(err).Str("query", text).Msg("AI interpretation failed, using raw query")
	}

	p := domain.DefaultSearchParams(text)
	p.Method = domain.ParseFallback
	return p, nil
}

func (r *Router) interpretWithAI(ctx context.Context, text string) (domain.SearchParams, error) {
	reply, err := r.ai.Complete(ctx, buildPrompt(text))
	if err != nil {
		return domain.SearchParams{}, err
	}
	return parseAIReply(reply, text)
}

func buildPrompt(query string) string {
	return fmt.Sprintf(`Parse the following Reddit search query into structured parameters. Return only valid JSON.

Query: %q

Return JSON with these fields:
- query: the main search terms (required)
- subreddit: specific subreddit if mentioned (optional, without r/ prefix)
- sort: one of "relevance", "hot", "new", "top" (default: "relevance")
- time: one of "hour", "day", "week", "month", "year", "all" (default: "all")
- limit: number of results 1-100 (default: 25)

Example input: "what are the best rust tutorials from this week"
Example output: {"query": "rust tutorials", "sort": "top", "time": "week", "limit": 25}

Now parse the query and return only the JSON:`, query)
}

type aiReply struct {
	Query     string `json:"query"`
	Subreddit string `json:"subreddit"`
	Sort      string `json:"sort"`
	Time      string `json:"time"`
	Limit     int    `json:"limit"`
}

// parseAIReply decodes the model's JSON, tolerating a fenced code block and
// replacing out-of-range values with defaults.
func parseAIReply(reply, original string) (domain.SearchParams, error) {
	var out aiReply
	if err := json.Unmarshal([]byte(extractJSON(reply)), &out); err != nil {
		return domain.SearchParams{}, fmt.Errorf("parse AI reply: %w", err)
	}

	query := strings.TrimSpace(out.Query)
	if query == "" {
		query = original
	}
	p := domain.DefaultSearchParams(query)
	p.Subreddit = strings.TrimPrefix(strings.TrimSpace(out.Subreddit), "r/")
	if sort := strings.ToLower(out.Sort); slices.Contains(aiSorts, sort) {
		p.Sort = sort
	}
	if t := strings.ToLower(out.Time); slices.Contains(aiTimes, t) {
		p.Time = t
	}
	if out.Limit > 0 {
		p.Limit = min(out.Limit, maxLimit)
	}
	p.Method = domain.ParseAI
	return p, nil
}

// extractJSON pulls the object out of a ``` fenced reply; plain replies are
// returned unchanged.
func extractJSON(reply string) string {
	if !strings.Contains(reply, "```") {
		return strings.TrimSpace(reply)
	}
	var lines []string
	started := false
	for _, line := range strings.Split(reply, "\n") {
		if !started {
			if !strings.HasPrefix(strings.TrimSpace(line), "{") {
				continue
			}
			started = true
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
