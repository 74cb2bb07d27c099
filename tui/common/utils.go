package common

import (
	"fmt"
	"strings"
	"time"
)

// Snippet flattens newlines to spaces and keeps the first max runes,
// appending "..." when text was cut.
func Snippet(text string, max int) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	runes := []rune(flat)
	if max <= 0 || len(runes) <= max {
		return flat
	}
	return string(runes[:max]) + "..."
}

// FormatAge renders the time since created (Unix seconds) in the largest
// fitting unit: s, m, h, d, w, mo, y.
func FormatAge(created float64, now time.Time) string {
	secs := int64(now.Sub(time.Unix(int64(created), 0)).Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh", secs/3600)
	case secs < 7*86400:
		return fmt.Sprintf("%dd", secs/86400)
	case secs < 30*86400:
		return fmt.Sprintf("%dw", secs/(7*86400))
	case secs < 365*86400:
		return fmt.Sprintf("%dmo", secs/(30*86400))
	default:
		return fmt.Sprintf("%dy", secs/(365*86400))
	}
}

// FormatScore abbreviates large vote counts (12345 -> 12.3k).
func FormatScore(score int64) string {
	abs := score
	if abs < 0 {
		abs = -abs
	}
	if abs < 10000 {
		return fmt.Sprintf("%d", score)
	}
	return fmt.Sprintf("%.1fk", float64(score)/1000)
}
