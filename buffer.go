package main

import (
	"strings"
	"unicode"
)

// InputBuffer owns the text being edited and the cursor offset within it.
// All operations are total: no sequence of calls can produce an invalid
// cursor position.
type InputBuffer struct {
	text      []rune
	cursor    int
	typedOnce bool
}

func NewInputBuffer() *InputBuffer {
	return &InputBuffer{}
}

func (b *InputBuffer) Text() string {
	return string(b.text)
}

func (b *InputBuffer) Cursor() int {
	return b.cursor
}

// TypedOnce reports whether any character has ever been inserted this
// session. It flips to true exactly once and never resets.
func (b *InputBuffer) TypedOnce() bool {
	return b.typedOnce
}

// ShowPlaceholder reports whether the cold-start placeholder should be
// rendered: only before the first ever keystroke, and only while empty.
func (b *InputBuffer) ShowPlaceholder() bool {
	return !b.typedOnce && len(b.text) == 0
}

// InsertRune splices r at the cursor and advances it.
func (b *InputBuffer) InsertRune(r rune) {
	b.text = append(b.text[:b.cursor], append([]rune{r}, b.text[b.cursor:]...)...)
	b.cursor++
	b.typedOnce = true
}

// DeleteBeforeCursor removes the rune left of the cursor, if any.
func (b *InputBuffer) DeleteBeforeCursor() {
	if b.cursor == 0 {
		return
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
}

func (b *InputBuffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *InputBuffer) MoveRight() {
	if b.cursor < len(b.text) {
		b.cursor++
	}
}

// MoveWordLeft skips the run of separators left of the cursor, then the
// word before it.
func (b *InputBuffer) MoveWordLeft() {
	for b.cursor > 0 && isWordSeparator(b.text[b.cursor-1]) {
		b.cursor--
	}
	for b.cursor > 0 && !isWordSeparator(b.text[b.cursor-1]) {
		b.cursor--
	}
}

// MoveWordRight skips the run of separators under the cursor, then the
// word after it.
func (b *InputBuffer) MoveWordRight() {
	for b.cursor < len(b.text) && isWordSeparator(b.text[b.cursor]) {
		b.cursor++
	}
	for b.cursor < len(b.text) && !isWordSeparator(b.text[b.cursor]) {
		b.cursor++
	}
}

// SetText replaces the buffer content and puts the cursor at the end.
// Used by the palette when a candidate is accepted.
func (b *InputBuffer) SetText(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
}

// Submit returns the trimmed text and resets the buffer. The typedOnce
// flag deliberately survives the reset.
func (b *InputBuffer) Submit() string {
	out := strings.TrimSpace(string(b.text))
	b.text = b.text[:0]
	b.cursor = 0
	return out
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}
