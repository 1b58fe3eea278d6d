package main

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDecodeKeys(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []keyEvent
	}{
		{"plain text", "hi", []keyEvent{{kind: keyRune, r: 'h'}, {kind: keyRune, r: 'i'}}},
		{"unicode rune", "é", []keyEvent{{kind: keyRune, r: 'é'}}},
		{"wide rune", "漢", []keyEvent{{kind: keyRune, r: '漢'}}},
		{"enter cr", "\r", []keyEvent{{kind: keyEnter}}},
		{"enter lf", "\n", []keyEvent{{kind: keyEnter}}},
		{"backspace del", "\x7f", []keyEvent{{kind: keyBackspace}}},
		{"backspace bs", "\x08", []keyEvent{{kind: keyBackspace}}},
		{"tab", "\t", []keyEvent{{kind: keyTab}}},
		{"interrupt", "\x03", []keyEvent{{kind: keyInterrupt}}},
		{"bare escape", "\x1b", []keyEvent{{kind: keyEscape}}},
		{"arrow left", "\x1b[D", []keyEvent{{kind: keyLeft}}},
		{"arrow right", "\x1b[C", []keyEvent{{kind: keyRight}}},
		{"arrow up", "\x1b[A", []keyEvent{{kind: keyUp}}},
		{"arrow down", "\x1b[B", []keyEvent{{kind: keyDown}}},
		{"alt b", "\x1bb", []keyEvent{{kind: keyWordLeft}}},
		{"alt f", "\x1bf", []keyEvent{{kind: keyWordRight}}},
		{"ctrl left", "\x1b[1;5D", []keyEvent{{kind: keyWordLeft}}},
		{"ctrl right", "\x1b[1;5C", []keyEvent{{kind: keyWordRight}}},
		{"delete key ignored", "\x1b[3~", nil},
		{"escape then text", "\x1b[Ahi", []keyEvent{{kind: keyUp}, {kind: keyRune, r: 'h'}, {kind: keyRune, r: 'i'}}},
		{"other control ignored", "\x01", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeKeys([]byte(tc.input))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("decodeKeys(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDecodeEscapeUnrecognizedCSIDoesNotCancel(t *testing.T) {
	// A Delete keypress must not surface as Escape, which would dismiss
	// palettes and modals.
	ev, consumed, ok := decodeEscape([]byte("\x1b[3~"))
	if ok {
		t.Fatalf("unrecognized CSI reported as a key: %#v", ev)
	}
	if consumed != 4 {
		t.Fatalf("expected 4 bytes consumed, got %d", consumed)
	}
}

func TestKeyReaderDeliversInOrder(t *testing.T) {
	kr := newKeyReader(strings.NewReader("ab\r"))
	kr.start()

	var got []keyEvent
	for ev := range kr.Events() {
		got = append(got, ev)
	}
	want := []keyEvent{{kind: keyRune, r: 'a'}, {kind: keyRune, r: 'b'}, {kind: keyEnter}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestKeyReaderIdleUntilStarted(t *testing.T) {
	in := strings.NewReader("hello")
	_ = newKeyReader(in)

	// Nothing may touch the stream before start; a line-mode session
	// reads it directly.
	time.Sleep(10 * time.Millisecond)
	if in.Len() != 5 {
		t.Fatalf("reader consumed input before start, %d bytes left", in.Len())
	}
}

func TestKeyReaderDrainDiscardsPending(t *testing.T) {
	kr := newKeyReader(strings.NewReader("abcdef"))
	kr.start()

	// Give the reader goroutine a moment to enqueue everything, then
	// drain. Nothing typed before the drain may survive it.
	time.Sleep(10 * time.Millisecond)
	kr.drain(20 * time.Millisecond)

	select {
	case ev, ok := <-kr.Events():
		if ok {
			t.Fatalf("event leaked through drain: %#v", ev)
		}
	default:
		t.Fatalf("expected channel to be closed after drain consumed EOF")
	}
}
