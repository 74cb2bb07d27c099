package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/CrestNiraj12/rdt/domain"
)

func TestResolveVersionInfo(t *testing.T) {
	tests := []struct {
		name          string
		v, c, d       string
		moduleVersion string
		settings      map[string]string
		want          [3]string
	}{
		{
			name: "ldflags win",
			v:    "v1.2.0", c: "abc", d: "2026-01-01",
			moduleVersion: "v9.9.9",
			settings:      map[string]string{"vcs.revision": "ffff", "vcs.time": "x"},
			want:          [3]string{"v1.2.0", "abc", "2026-01-01"},
		},
		{
			name: "build info fills defaults",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "v0.3.1",
			settings:      map[string]string{"vcs.revision": "0123456789abcdef", "vcs.time": "2026-02-03T04:05:06Z"},
			want:          [3]string{"v0.3.1", "0123456789ab", "2026-02-03T04:05:06Z"},
		},
		{
			name: "devel module keeps dev",
			v:    "dev", c: "none", d: "unknown",
			moduleVersion: "(devel)",
			settings:      map[string]string{},
			want:          [3]string{"dev", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, c, d := resolveVersionInfo(tc.v, tc.c, tc.d, tc.moduleVersion, tc.settings)
			if got := [3]string{v, c, d}; got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: domain.ErrEmptyQuery, want: "invalid_query"},
		{err: fmt.Errorf("post x: %w", domain.ErrNotFound), want: "not_found"},
		{err: domain.ErrUnauthorized, want: "unauthorized"},
		{err: fmt.Errorf("search: %w", domain.ErrRateLimited), want: "rate_limited"},
		{err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), want: "timeout"},
		{err: fmt.Errorf("fetch: %w", &domain.APIError{Status: 503, Body: "down"}), want: "api_error"},
		{err: errors.New("boom"), want: "error"},
	}
	for _, tc := range tests {
		if got := errorType(tc.err); got != tc.want {
			t.Fatalf("errorType(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	writeError(&buf, domain.ErrEmptyQuery)

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("error output is not JSON: %v", err)
	}
	if got["error"] != domain.ErrEmptyQuery.Error() || got["type"] != "invalid_query" {
		t.Fatalf("unexpected error output %v", got)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, domain.PostSummary{ID: "abc", Title: "Hello"}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n  \"id\": \"abc\"") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected indented JSON, got %q", out)
	}
}

func TestRootCommand_ArgumentErrors(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RDT_CONFIG", home+"/missing.yaml")

	tests := []struct {
		args []string
		want error
	}{
		{args: []string{"rdt", "search"}, want: domain.ErrEmptyQuery},
		{args: []string{"rdt", "search", "   "}, want: domain.ErrEmptyQuery},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		err := newRootCommand(&out).Run(context.Background(), tc.args)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%v: got %v want %v", tc.args, err, tc.want)
		}
		if out.Len() != 0 {
			t.Fatalf("%v: nothing should be written to stdout", tc.args)
		}
	}

	for _, args := range [][]string{
		{"rdt", "post"}, {"rdt", "comments"}, {"rdt", "posts"},
		{"rdt", "subreddit", "info"}, {"rdt", "subreddit", "posts", "r/"},
		{"rdt", "user", "info"}, {"rdt", "user", "posts", "u/"},
	} {
		var out bytes.Buffer
		if err := newRootCommand(&out).Run(context.Background(), args); err == nil {
			t.Fatalf("%v: missing argument should fail", args)
		}
	}
}
