package common

import (
	"strings"
	"testing"
	"time"
)

func TestSnippet(t *testing.T) {
	if got := Snippet("line one\nline two", 80); got != "line one line two" {
		t.Fatalf("newlines should flatten: %q", got)
	}
	long := strings.Repeat("é", 90)
	got := Snippet(long, 80)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != 83 {
		t.Fatalf("expected 80 runes plus ellipsis, got %d runes", len([]rune(got)))
	}
	if got := Snippet(strings.Repeat("a", 80), 80); strings.HasSuffix(got, "...") {
		t.Fatalf("exact length must not be cut")
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{3 * time.Minute, "3m"},
		{2 * time.Hour, "2h"},
		{3 * 24 * time.Hour, "3d"},
		{15 * 24 * time.Hour, "2w"},
		{65 * 24 * time.Hour, "2mo"},
		{800 * 24 * time.Hour, "2y"},
		{-time.Hour, "0s"},
	}
	for _, tc := range cases {
		created := float64(now.Add(-tc.ago).Unix())
		if got := FormatAge(created, now); got != tc.want {
			t.Fatalf("FormatAge(-%v)=%q want %q", tc.ago, got, tc.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if FormatScore(999) != "999" || FormatScore(12345) != "12.3k" || FormatScore(-20000) != "-20.0k" {
		t.Fatalf("unexpected score formatting")
	}
}
