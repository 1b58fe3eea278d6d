package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type sessionState int

const (
	stateColdStart sessionState = iota
	stateTyping
	statePaletteOpen
	stateModalActive
	stateProcessing
	stateTerminated
)

// inputOwner identifies which component currently owns the raw keystroke
// listener. The session loop is the only goroutine consuming key events,
// so transferring ownership is just flipping this field between dispatches;
// no keystroke can be processed mid-transfer.
type inputOwner int

const (
	ownerMainBuffer inputOwner = iota
	ownerPalette
	ownerModalPrompt
)

// replyService turns user text into an assistant reply. Failures are
// recoverable; they become inline transcript entries.
type replyService interface {
	Invoke(ctx context.Context, userText string) (string, error)
}

// transcriptLoader re-fetches the caption transcript after a language
// change.
type transcriptLoader interface {
	Reload(ctx context.Context, lang, preference string) (string, error)
}

// Session is the top-level orchestrator. It owns the transcript, routes
// every keystroke to exactly one of buffer, palette, or modal prompt, and
// drives the render loop.
type Session struct {
	ID      string
	VideoID string

	term       *Terminal
	out        io.Writer
	keys       *keyReader
	renderer   *Renderer
	buffer     *InputBuffer
	palette    *Palette
	registry   *CommandRegistry
	transcript *Transcript
	prompter   prompter
	reply      replyService
	loader     transcriptLoader
	config     *Config
	tracks     []CaptionTrack

	state sessionState
	owner inputOwner

	// drainWindow is the pause after a modal prompt resolves, letting
	// keystrokes typed during the prompt drain before the main owner is
	// reinstalled.
	drainWindow time.Duration
	exitFunc    func(int)
}

// NewSession wires the interaction engine around an already-loaded
// transcript. The key reader is created but not started; only Run starts
// it, after raw mode is secured, so the line-mode fallback keeps sole
// access to the input stream.
func NewSession(id, videoID string, term *Terminal, in io.Reader, out io.Writer,
	reply replyService, loader transcriptLoader, config *Config, tracks []CaptionTrack) *Session {

	theme := NewTheme()
	s := &Session{
		ID:          id,
		VideoID:     videoID,
		term:        term,
		out:         out,
		keys:        newKeyReader(in),
		buffer:      NewInputBuffer(),
		registry:    NewCommandRegistry(),
		transcript:  NewTranscript(),
		reply:       reply,
		loader:      loader,
		config:      config,
		tracks:      tracks,
		state:       stateColdStart,
		owner:       ownerMainBuffer,
		drainWindow: 75 * time.Millisecond,
		exitFunc:    os.Exit,
	}
	s.palette = NewPalette(s.registry)
	s.renderer = NewRenderer(out, term.Columns, theme)
	s.prompter = &modalPrompter{
		out:         out,
		keys:        s.keys,
		width:       term.Columns,
		theme:       theme,
		term:        term,
		onInterrupt: func() { s.terminate() },
	}
	return s
}

// Run enters raw mode and processes keystrokes until the session
// terminates. Terminal cleanup happens on every exit path.
func (s *Session) Run() error {
	if err := s.term.EnterRaw(); err != nil {
		slog.Warn("raw mode unavailable, falling back to line mode", "error", err)
		return s.RunPlain(os.Stdin)
	}
	defer s.cleanup()

	s.keys.start()
	s.renderer.CaptureAnchor()
	s.render()

	for ev := range s.keys.Events() {
		if s.state == stateTerminated {
			break
		}
		s.dispatch(ev)
	}
	return nil
}

// dispatch routes one keystroke to the current owner. Modal prompts never
// appear here: while one is active it consumes the event channel itself
// and this loop is parked inside the command handler.
func (s *Session) dispatch(ev keyEvent) {
	if ev.kind == keyInterrupt {
		s.terminate()
		return
	}

	switch ev.kind {
	case keyRune:
		if s.state == stateColdStart {
			s.state = stateTyping
		}
		s.buffer.InsertRune(ev.r)
		s.syncPalette()
		if cmd, ok := s.palette.AutoDispatch(s.buffer.Text()); ok {
			s.buffer.Submit()
			s.syncPalette()
			s.runCommand(cmd)
			return
		}
	case keyBackspace:
		s.buffer.DeleteBeforeCursor()
		s.syncPalette()
	case keyLeft:
		s.buffer.MoveLeft()
	case keyRight:
		s.buffer.MoveRight()
	case keyWordLeft:
		s.buffer.MoveWordLeft()
	case keyWordRight:
		s.buffer.MoveWordRight()
	case keyUp:
		if s.owner == ownerPalette {
			s.palette.MoveUp()
		}
	case keyDown:
		if s.owner == ownerPalette {
			s.palette.MoveDown()
		}
	case keyTab:
		if s.owner == ownerPalette {
			if cmd, ok := s.palette.Accept(); ok {
				s.buffer.SetText(cmd.Name)
				s.syncPalette()
			}
		}
	case keyEscape:
		if s.owner == ownerPalette {
			s.palette.Close()
			s.owner = ownerMainBuffer
			s.state = stateTyping
		}
	case keyEnter:
		s.handleEnter()
		return
	}
	s.render()
}

func (s *Session) handleEnter() {
	if s.owner == ownerPalette {
		if cmd, ok := s.palette.Accept(); ok {
			s.buffer.Submit()
			s.owner = ownerMainBuffer
			s.runCommand(cmd)
			return
		}
	}

	text := s.buffer.Submit()
	s.syncPalette()
	if text == "" {
		// Empty or whitespace-only submit: no transcript mutation, no
		// state transition.
		s.render()
		return
	}

	if strings.HasPrefix(text, commandPrefix) {
		if cmd, ok := s.registry.Lookup(strings.ToLower(text)); ok {
			s.runCommand(cmd)
		} else {
			s.notify(fmt.Sprintf("Unknown command %s. Type / to see the palette.", text))
			s.render()
		}
		return
	}

	s.process(text)
}

// syncPalette keeps palette visibility in lockstep with the buffer. The
// palette never activates while a modal prompt owns the stream.
func (s *Session) syncPalette() {
	if s.owner == ownerModalPrompt {
		return
	}
	s.palette.Update(s.buffer.Text())
	if s.palette.Visible() {
		s.owner = ownerPalette
		s.state = statePaletteOpen
	} else {
		s.owner = ownerMainBuffer
		if s.state == statePaletteOpen {
			s.state = stateTyping
		}
	}
}

// runCommand gives the modal prompt exclusive ownership for the duration
// of the handler, then drains leaked keystrokes before the main listener
// resumes.
func (s *Session) runCommand(cmd Command) {
	s.palette.Close()
	s.owner = ownerModalPrompt
	s.state = stateModalActive
	s.render()

	if err := cmd.Handler(s); err != nil {
		s.notify(fmt.Sprintf("error: %s failed: %v", cmd.Name, err))
	}
	if s.state == stateTerminated {
		return
	}

	s.keys.drain(s.drainWindow)
	s.owner = ownerMainBuffer
	s.state = stateTyping
	s.render()
}

// process runs the Typing → Processing → Typing flow for a submitted
// message. While the reply call is in flight only a hard interrupt is
// honored; the call itself always runs to completion.
func (s *Session) process(text string) {
	s.state = stateProcessing
	s.transcript.Append(Message{Role: RoleUser, Content: text})
	s.transcript.Append(Message{Role: RoleThinking, Content: "thinking..."})
	s.render()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		reply, err := s.reply.Invoke(context.Background(), text)
		done <- outcome{text: reply, err: err}
	}()

	// A nil channel blocks forever, so once the key stream closes (stdin
	// EOF) the select waits on the reply alone.
	events := s.keys.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.kind == keyInterrupt {
				s.terminate()
				return
			}
		case res := <-done:
			s.transcript.Pop()
			if res.err != nil {
				slog.Warn("reply service failed", "error", res.err)
				s.transcript.Append(Message{Role: RoleAssistant, Content: fmt.Sprintf("error: %v", res.err)})
			} else {
				s.transcript.Append(Message{Role: RoleAssistant, Content: res.text, IsMarkup: true})
			}
			s.state = stateTyping
			s.render()
			return
		}
	}
}

// notify appends an inline notice to the transcript. Used for command
// results and recoverable failures.
func (s *Session) notify(text string) {
	s.transcript.Append(Message{Role: RoleAssistant, Content: text})
}

func (s *Session) reloadTranscript() error {
	if s.loader == nil {
		return nil
	}
	transcript, err := s.loader.Reload(context.Background(), s.config.Language, s.config.TranscriptPreference)
	if err != nil {
		return err
	}
	if svc, ok := s.reply.(interface{ SetTranscript(string) }); ok {
		svc.SetTranscript(transcript)
	}
	return nil
}

func (s *Session) exportMetadata() ExportMetadata {
	return ExportMetadata{
		SessionID:  s.ID,
		VideoID:    s.VideoID,
		Provider:   s.config.LLM.Provider,
		Model:      s.config.LLM.Model,
		Language:   s.config.Language,
		ExportedAt: time.Now(),
	}
}

func (s *Session) render() {
	s.renderer.Render(s.transcript, s.buffer, s.palette)
}

// terminate performs full terminal cleanup and ends the process. Bound to
// the quit command and to interrupt in every state.
func (s *Session) terminate() {
	s.state = stateTerminated
	s.cleanup()
	s.exitFunc(0)
}

// cleanup restores the terminal on every exit path. Safe to run twice.
func (s *Session) cleanup() {
	io.WriteString(s.out, showCursor+"\r\n")
	s.term.Restore()
}

// RunPlain is the degraded line-based session for non-interactive streams:
// no palette, no overlays, plain numbered prompts for the modal flows.
func (s *Session) RunPlain(in io.Reader) error {
	// One shared reader: the prompts triggered by command handlers read
	// from the same buffered stream as the main loop.
	reader := bufio.NewReader(in)
	s.prompter = &plainPrompter{in: reader, out: s.out}

	fmt.Fprintf(s.out, "%s\n", placeholderText)
	for {
		fmt.Fprint(s.out, inputPrompt)
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, commandPrefix) {
			cmd, ok := s.registry.Lookup(strings.ToLower(text))
			if !ok {
				fmt.Fprintf(s.out, "Unknown command %s\n", text)
				continue
			}
			before := s.transcript.Len()
			if err := cmd.Handler(s); err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			s.printPlainSince(before)
			if s.state == stateTerminated {
				return nil
			}
			continue
		}
		before := s.transcript.Len()
		reply, err := s.reply.Invoke(context.Background(), text)
		s.transcript.Append(Message{Role: RoleUser, Content: text})
		if err != nil {
			s.transcript.Append(Message{Role: RoleAssistant, Content: fmt.Sprintf("error: %v", err)})
		} else {
			s.transcript.Append(Message{Role: RoleAssistant, Content: reply})
		}
		s.printPlainSince(before + 1)
	}
}

func (s *Session) printPlainSince(start int) {
	msgs := s.transcript.Messages()
	for _, m := range msgs[min(start, len(msgs)):] {
		fmt.Fprintf(s.out, "%s\n", m.Content)
	}
}
