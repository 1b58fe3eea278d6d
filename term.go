package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// defaultColumns is used when the output device reports no width.
const defaultColumns = 115

// visualWidth returns the number of terminal columns the string occupies.
// Wide CJK glyphs and other multi-cell runes count by their display cost,
// not their byte or rune count.
func visualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// padToVisualWidth pads s with padChar until it occupies at least width
// columns. It is a no-op when the string is already wide enough.
func padToVisualWidth(s string, width int, padChar rune) string {
	w := visualWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(string(padChar), width-w)
}

// Terminal owns the raw-mode flag for the controlling terminal. It is the
// single shared resource the session components coordinate around: raw mode
// is entered once per interactive session and restored on every exit path.
type Terminal struct {
	in       *os.File
	out      io.Writer
	fd       int
	oldState *term.State
}

func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, fd: int(in.Fd())}
}

// IsInteractive reports whether both ends are attached to a terminal.
func (t *Terminal) IsInteractive() bool {
	outFile, ok := t.out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(t.in.Fd()) && isatty.IsTerminal(outFile.Fd())
}

// EnterRaw switches the input terminal to raw mode. Calling it while
// already raw is a no-op.
func (t *Terminal) EnterRaw() error {
	if t.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// Restore returns the terminal to its pre-raw state. Safe to call more
// than once; every exit path funnels through here.
func (t *Terminal) Restore() {
	if t.oldState == nil {
		return
	}
	term.Restore(t.fd, t.oldState)
	t.oldState = nil
}

// IsRaw reports whether the terminal is currently in raw mode.
func (t *Terminal) IsRaw() bool {
	return t.oldState != nil
}

// Columns re-queries the terminal width. It is deliberately not cached:
// a resize between renders must be picked up by the next repaint.
func (t *Terminal) Columns() int {
	w, _, err := term.GetSize(t.fd)
	if err != nil || w <= 0 {
		return defaultColumns
	}
	return w
}

// Cursor-positioning control sequences. The renderer and the modal prompts
// emit these directly; no terminal-UI framework sits in between.

func cursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dA", n)
}

func cursorRight(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%dC", n)
}

const (
	eraseDown  = "\x1b[J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)
