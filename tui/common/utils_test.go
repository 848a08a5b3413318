package common

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("short string should pass through, got %q", got)
	}
	if got := Truncate("hello world", 8); got != "hello w…" {
		t.Errorf("expected truncated string with ellipsis, got %q", got)
	}
	if got := Truncate("hello", 0); got != "" {
		t.Errorf("zero width should yield empty, got %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	md := "# Heading\n\nFirst **bold** paragraph.\n\nSecond line here.\n\nThird."
	got := Excerpt(md, 2)
	want := "Heading First bold paragraph."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExcerpt_EmptyContent(t *testing.T) {
	if got := Excerpt("", 2); got != "" {
		t.Errorf("expected empty excerpt, got %q", got)
	}
}

func TestRelTime(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
		{now.Add(-30 * 24 * time.Hour), "Jul 26"},
		{time.Time{}, ""},
	}
	for _, c := range cases {
		if got := RelTime(c.at, now); got != c.want {
			t.Errorf("RelTime(%v) = %q, want %q", c.at, got, c.want)
		}
	}
}
