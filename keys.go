package main

import (
	"io"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"
)

type keyKind int

const (
	keyRune keyKind = iota
	keyEnter
	keyBackspace
	keyLeft
	keyRight
	keyUp
	keyDown
	keyWordLeft
	keyWordRight
	keyTab
	keyEscape
	keyInterrupt
)

type keyEvent struct {
	kind keyKind
	r    rune
}

// keyReader turns the raw byte stream into keyEvents on a channel. There is
// exactly one reading goroutine; whichever component currently owns the
// keystroke stream is the only consumer of Events(), so events are handled
// strictly in arrival order.
//
// The goroutine does not run until start is called. A session that falls
// back to line mode never starts it, leaving the input stream free for
// line-based reads.
type keyReader struct {
	in     io.Reader
	events chan keyEvent
	once   sync.Once
}

func newKeyReader(r io.Reader) *keyReader {
	return &keyReader{in: r, events: make(chan keyEvent, 32)}
}

// start launches the reading goroutine. Safe to call more than once.
func (kr *keyReader) start() {
	kr.once.Do(func() { go kr.loop() })
}

func (kr *keyReader) Events() <-chan keyEvent {
	return kr.events
}

func (kr *keyReader) loop() {
	buf := make([]byte, 256)
	for {
		n, err := kr.in.Read(buf)
		if n > 0 {
			for _, ev := range decodeKeys(buf[:n]) {
				kr.events <- ev
			}
		}
		if err != nil {
			close(kr.events)
			return
		}
	}
}

// drain discards events already in flight for the given window. Used after
// a modal prompt resolves so keystrokes typed during the prompt cannot leak
// into the next owner of the stream.
func (kr *keyReader) drain(window time.Duration) {
	deadline := time.After(window)
	for {
		select {
		case _, ok := <-kr.events:
			if !ok {
				return
			}
		case <-deadline:
			return
		}
	}
}

// decodeKeys parses one read chunk into key events. Escape sequences never
// straddle a read in practice (the terminal writes them atomically), so an
// ESC that ends a chunk is a bare Escape press.
func decodeKeys(data []byte) []keyEvent {
	var events []keyEvent
	for i := 0; i < len(data); {
		b := data[i]
		switch {
		case b == 0x03:
			events = append(events, keyEvent{kind: keyInterrupt})
			i++
		case b == '\r' || b == '\n':
			events = append(events, keyEvent{kind: keyEnter})
			i++
		case b == 0x7f || b == 0x08:
			events = append(events, keyEvent{kind: keyBackspace})
			i++
		case b == '\t':
			events = append(events, keyEvent{kind: keyTab})
			i++
		case b == 0x1b:
			ev, consumed, ok := decodeEscape(data[i:])
			if ok {
				events = append(events, ev)
			}
			i += consumed
		case b < 0x20:
			// Remaining control characters are ignored.
			i++
		default:
			r, size := utf8.DecodeRune(data[i:])
			if size == 0 {
				return events
			}
			if r != utf8.RuneError {
				events = append(events, keyEvent{kind: keyRune, r: r})
			}
			i += size
		}
	}
	return events
}

// decodeEscape parses a sequence starting at an ESC byte. It returns the
// event, the number of bytes consumed, and whether the sequence maps to a
// key this engine recognizes.
func decodeEscape(data []byte) (keyEvent, int, bool) {
	if len(data) == 1 {
		return keyEvent{kind: keyEscape}, 1, true
	}
	switch data[1] {
	case 'b': // Alt+b
		return keyEvent{kind: keyWordLeft}, 2, true
	case 'f': // Alt+f
		return keyEvent{kind: keyWordRight}, 2, true
	case '[':
		if len(data) < 3 {
			return keyEvent{}, len(data), false
		}
		switch data[2] {
		case 'A':
			return keyEvent{kind: keyUp}, 3, true
		case 'B':
			return keyEvent{kind: keyDown}, 3, true
		case 'C':
			return keyEvent{kind: keyRight}, 3, true
		case 'D':
			return keyEvent{kind: keyLeft}, 3, true
		case '1':
			// Ctrl+arrow: ESC [ 1 ; 5 C / D
			if len(data) >= 6 && data[3] == ';' && data[4] == '5' {
				switch data[5] {
				case 'C':
					return keyEvent{kind: keyWordRight}, 6, true
				case 'D':
					return keyEvent{kind: keyWordLeft}, 6, true
				}
			}
		}
		// Unrecognized CSI sequence: skip to its final byte.
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				slog.Debug("ignoring escape sequence", "seq", string(data[1:j+1]))
				return keyEvent{}, j + 1, false
			}
		}
		return keyEvent{}, len(data), false
	}
	return keyEvent{kind: keyEscape}, 1, true
}
