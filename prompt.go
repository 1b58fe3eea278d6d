package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SelectOption is one entry in a select prompt.
type SelectOption struct {
	Label       string
	Description string
}

// prompter is the modal sub-dialog surface. The interactive implementation
// takes over the keystroke stream for its duration; the plain one degrades
// to numbered line-based prompts when raw mode is unavailable.
type prompter interface {
	// Select resolves to the chosen index, or ok=false on cancellation.
	Select(title string, options []SelectOption, defaultIndex int) (int, bool)
	// Text resolves to the trimmed input, or the default when blank, or
	// ok=false on cancellation.
	Text(label, defaultValue, hint string) (string, bool)
}

// modalPrompter renders anchored full-takeover dialogs. Each invocation
// captures its own anchor, and on every resolution path the prompt erases
// its rendered block and restores the cursor to that anchor row. Ctrl-C
// runs the session's full cleanup and terminates the process.
type modalPrompter struct {
	out         io.Writer
	keys        *keyReader
	width       func() int
	theme       *Theme
	term        *Terminal
	onInterrupt func()
}

func (p *modalPrompter) write(s string) {
	io.WriteString(p.out, s)
}

func (p *modalPrompter) Select(title string, options []SelectOption, defaultIndex int) (int, bool) {
	if len(options) == 0 {
		return 0, false
	}
	selected := defaultIndex
	if selected < 0 || selected >= len(options) {
		selected = 0
	}

	labelWidth := 0
	for _, opt := range options {
		if w := visualWidth(opt.Label); w > labelWidth {
			labelWidth = w
		}
	}

	painted := 0
	draw := func() {
		p.write(cursorUp(painted) + "\r" + eraseDown)
		p.write(p.theme.Title.Render(title) + "\r\n")
		for i, opt := range options {
			// Labels are padded by display width so descriptions line up
			// even for wide scripts.
			entry := padToVisualWidth(opt.Label, labelWidth+2, ' ') + opt.Description
			if i == selected {
				p.write(p.theme.Selected.Render("▸ "+entry) + "\r\n")
			} else {
				p.write(p.theme.Candidate.Render("  "+entry) + "\r\n")
			}
		}
		p.write(p.theme.Hint.Render("↑↓ navigate · Enter select · Esc cancel") + "\r\n")
		painted = len(options) + 2
	}

	erase := func() {
		p.write(cursorUp(painted) + "\r" + eraseDown)
	}

	p.write(hideCursor)
	defer p.write(showCursor)
	draw()

	for ev := range p.keys.Events() {
		switch ev.kind {
		case keyUp:
			selected = (selected - 1 + len(options)) % len(options)
			draw()
		case keyDown, keyTab:
			selected = (selected + 1) % len(options)
			draw()
		case keyEnter:
			erase()
			return selected, true
		case keyEscape:
			erase()
			return 0, false
		case keyInterrupt:
			erase()
			p.write(showCursor)
			p.onInterrupt()
			return 0, false
		}
	}
	erase()
	return 0, false
}

func (p *modalPrompter) Text(label, defaultValue, hint string) (string, bool) {
	// The prompt owns the raw-mode flag for its duration and restores the
	// prior mode on every exit path.
	wasRaw := p.term.IsRaw()
	if !wasRaw {
		if err := p.term.EnterRaw(); err != nil {
			return defaultValue, true
		}
		defer p.term.Restore()
	}

	input := []rune{}

	// The cursor always rests on the prompt row, the first of the block,
	// so both redraw and erase start with a carriage return plus erase to
	// the end of the display.
	draw := func() {
		p.write("\r" + eraseDown)
		prompt := fmt.Sprintf("%s [%s]: %s", p.theme.Title.Render(label), defaultValue, string(input))
		p.write(prompt + "\r\n")
		p.write(p.theme.Hint.Render(hint) + "\r\n")
		p.write(cursorUp(2) + "\r" + cursorRight(visualWidth(label)+visualWidth(defaultValue)+4+visualWidth(string(input))))
	}

	erase := func() {
		p.write("\r" + eraseDown)
	}

	draw()

	for ev := range p.keys.Events() {
		switch ev.kind {
		case keyRune:
			input = append(input, ev.r)
			draw()
		case keyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
				draw()
			}
		case keyEnter:
			erase()
			result := strings.TrimSpace(string(input))
			if result == "" {
				result = defaultValue
			}
			return result, true
		case keyEscape:
			erase()
			return "", false
		case keyInterrupt:
			erase()
			p.onInterrupt()
			return "", false
		}
	}
	erase()
	return "", false
}

// plainPrompter provides the degraded line-based prompts used when the
// output stream has no controllable cursor.
type plainPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPlainPrompter(in io.Reader, out io.Writer) *plainPrompter {
	return &plainPrompter{in: bufio.NewReader(in), out: out}
}

func (p *plainPrompter) Select(title string, options []SelectOption, defaultIndex int) (int, bool) {
	fmt.Fprintf(p.out, "%s\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s  %s\n", i+1, opt.Label, opt.Description)
	}
	fmt.Fprintf(p.out, "Choice [%d]: ", defaultIndex+1)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return 0, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultIndex, true
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(options) {
		return 0, false
	}
	return n - 1, true
}

func (p *plainPrompter) Text(label, defaultValue, hint string) (string, bool) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, true
	}
	return line, true
}
