package main

import "testing"

func TestVisualWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"> ", 2},
		{"héllo", 5},
		{"漢字", 4},
		{"日本語 ok", 9},
	}
	for _, tc := range cases {
		if got := visualWidth(tc.in); got != tc.want {
			t.Fatalf("visualWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPadToVisualWidth(t *testing.T) {
	if got := padToVisualWidth("en", 8, ' '); got != "en      " {
		t.Fatalf("got %q", got)
	}
	if got := visualWidth(padToVisualWidth("日本", 8, ' ')); got != 8 {
		t.Fatalf("wide string padded to %d columns", got)
	}
	// Already wide enough: no-op, never truncates.
	if got := padToVisualWidth("abcdefghij", 4, ' '); got != "abcdefghij" {
		t.Fatalf("padding truncated: %q", got)
	}
}

func TestCursorMovementSequences(t *testing.T) {
	if got := cursorUp(3); got != "\x1b[3A" {
		t.Fatalf("cursorUp(3) = %q", got)
	}
	if got := cursorUp(0); got != "" {
		t.Fatalf("cursorUp(0) must be empty, got %q", got)
	}
	if got := cursorRight(12); got != "\x1b[12C" {
		t.Fatalf("cursorRight(12) = %q", got)
	}
	if got := cursorRight(-1); got != "" {
		t.Fatalf("cursorRight(-1) must be empty, got %q", got)
	}
}
