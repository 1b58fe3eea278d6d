package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

const (
	inputPrompt     = "> "
	placeholderText = "Type your question..."
	hintText        = "Type / for commands · Enter to send"
)

// Renderer repaints the mutable viewport relative to an anchor captured
// near session start. Every render is a full repaint of the region below
// the anchor; there is no incremental diffing, which trades some redundant
// output for the absence of partial-redraw bugs.
type Renderer struct {
	out   io.Writer
	width func() int
	theme *Theme

	// cursorRow tracks which painted row the cursor currently rests on,
	// relative to the anchor. The next repaint moves up that many rows to
	// get back to the anchor before erasing.
	cursorRow int

	markdown *glamour.TermRenderer
	mdCache  map[string]string
}

func NewRenderer(out io.Writer, width func() int, theme *Theme) *Renderer {
	return &Renderer{
		out:     out,
		width:   width,
		theme:   theme,
		mdCache: make(map[string]string),
	}
}

// CaptureAnchor establishes the current cursor row as the baseline for all
// future repaints. Called once, before the first paint of the session.
func (r *Renderer) CaptureAnchor() {
	r.cursorRow = 0
}

// Render repaints the whole region below the anchor and leaves the cursor
// on the input line at column prefixLength + cursorOffset + 1. It returns
// the total number of lines painted below the anchor.
func (r *Renderer) Render(t *Transcript, buf *InputBuffer, pal *Palette) int {
	width := r.width()

	// Back to the anchor, then wipe everything below it.
	r.write(cursorUp(r.cursorRow) + "\r" + eraseDown)

	var lines []string
	for _, m := range t.Messages() {
		lines = append(lines, r.messageLines(m, width)...)
	}
	transcriptRows := len(lines)

	rule := r.theme.Separator.Render(strings.Repeat("─", width))
	lines = append(lines, rule)
	lines = append(lines, r.inputLine(buf))
	lines = append(lines, rule)
	lines = append(lines, r.suggestionLines(pal)...)

	for _, line := range lines {
		r.write(line + "\r\n")
	}

	total := len(lines)
	inputRow := transcriptRows + 1
	r.placeCursor(total, inputRow, visualWidth(inputPrompt), buf.Cursor())
	return total
}

// placeCursor moves the cursor up from the bottom of the painted block to
// the input row, then right past the prompt and the edited text. The +1 in
// the target column keeps the cursor glyph ahead of the last inserted
// character instead of on top of it; with the carriage return putting us
// in column 1, moving right by prefixLen+cursorOffset lands exactly there.
func (r *Renderer) placeCursor(totalRows, inputRow, prefixLen, cursorOffset int) {
	r.write(cursorUp(totalRows-inputRow) + "\r" + cursorRight(prefixLen+cursorOffset))
	r.cursorRow = inputRow
}

func (r *Renderer) inputLine(buf *InputBuffer) string {
	if buf.ShowPlaceholder() {
		return inputPrompt + r.theme.Placeholder.Render(placeholderText)
	}
	return inputPrompt + buf.Text()
}

func (r *Renderer) suggestionLines(pal *Palette) []string {
	if pal == nil || !pal.Visible() || len(pal.Candidates()) == 0 {
		return []string{r.theme.Hint.Render(hintText)}
	}
	var lines []string
	for i, cmd := range pal.Candidates() {
		entry := fmt.Sprintf("%s  %s", padToVisualWidth(cmd.Name, 12, ' '), cmd.Description)
		if i == pal.Selected() {
			lines = append(lines, r.theme.Selected.Render("▸ "+entry))
		} else {
			lines = append(lines, r.theme.Candidate.Render("  "+entry))
		}
	}
	return lines
}

// messageLines renders one transcript message into terminal rows, each no
// wider than the current usable column count.
func (r *Renderer) messageLines(m Message, width int) []string {
	switch m.Role {
	case RoleUser:
		wrapped := wordwrap.String(m.Content, width-visualWidth(inputPrompt))
		var lines []string
		for i, line := range strings.Split(wrapped, "\n") {
			if i == 0 {
				lines = append(lines, r.theme.UserPrefix.Render(inputPrompt)+line)
			} else {
				lines = append(lines, strings.Repeat(" ", visualWidth(inputPrompt))+line)
			}
		}
		return lines
	case RoleThinking:
		return []string{r.theme.Thinking.Render(m.Content)}
	default:
		body := m.Content
		styled := false
		if m.IsMarkup {
			if md, ok := r.renderMarkdown(m.Content, width); ok {
				body = md
				styled = true
			}
		}
		lines := []string{""}
		if !styled {
			body = wordwrap.String(body, width)
		}
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			if styled {
				lines = append(lines, line)
			} else if strings.HasPrefix(m.Content, "error:") {
				lines = append(lines, r.theme.Error.Render(line))
			} else {
				lines = append(lines, r.theme.Assistant.Render(line))
			}
		}
		return lines
	}
}

// renderMarkdown lazily builds the glamour renderer and caches rendered
// replies so a full repaint per keystroke does not re-render markdown.
func (r *Renderer) renderMarkdown(content string, width int) (string, bool) {
	if cached, ok := r.mdCache[content]; ok {
		return cached, true
	}
	if r.markdown == nil {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			slog.Debug("markdown renderer unavailable", "error", err)
			return "", false
		}
		r.markdown = md
	}
	out, err := r.markdown.Render(content)
	if err != nil {
		slog.Debug("markdown render failed", "error", err)
		return "", false
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	r.mdCache[content] = out
	return out, true
}

func (r *Renderer) write(s string) {
	io.WriteString(r.out, s)
}
