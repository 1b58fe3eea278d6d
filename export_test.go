package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testMetadata() ExportMetadata {
	return ExportMetadata{
		SessionID:  "session-abc",
		VideoID:    "dQw4w9WgXcQ",
		Provider:   "anthropic",
		Model:      "claude-3-5-haiku-latest",
		Language:   "en",
		ExportedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestDefaultExportFilename(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC)
	if got := defaultExportFilename(now); got != "conversation-2026-01-15-103045.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTranscriptHeaderAndSections(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Message{Role: RoleUser, Content: "What is this video about?"})
	tr.Append(Message{Role: RoleAssistant, Content: "It explains Go channels."})

	content := formatTranscript(tr, testMetadata())

	for _, want := range []string{
		"# Tubetalk Conversation",
		"**Session ID:** session-abc",
		"**Video:** dQw4w9WgXcQ",
		"**Provider:** anthropic",
		"**Model:** claude-3-5-haiku-latest",
		"**Caption Language:** en",
		"**Exported:** 2026-01-15 10:30:00",
		"### User\n\nWhat is this video about?",
		"### Assistant\n\nIt explains Go channels.",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("export missing %q:\n%s", want, content)
		}
	}
}

func TestFormatTranscriptSkipsThinkingEntries(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Message{Role: RoleUser, Content: "hi"})
	tr.Append(Message{Role: RoleThinking, Content: "thinking..."})

	content := formatTranscript(tr, testMetadata())
	if strings.Contains(content, "thinking...") {
		t.Fatalf("transient thinking entry leaked into export")
	}
}

func TestFormatTranscriptPreservesOrder(t *testing.T) {
	tr := NewTranscript()
	tr.Append(Message{Role: RoleUser, Content: "first"})
	tr.Append(Message{Role: RoleAssistant, Content: "second"})
	tr.Append(Message{Role: RoleUser, Content: "third"})

	content := formatTranscript(tr, testMetadata())
	if strings.Index(content, "first") > strings.Index(content, "second") ||
		strings.Index(content, "second") > strings.Index(content, "third") {
		t.Fatalf("messages out of order:\n%s", content)
	}
}

func TestWriteTranscriptFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	if err := writeTranscriptFile("hello export", name); err != nil {
		t.Fatalf("writeTranscriptFile: %v", err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello export" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestWriteTranscriptFileBadPath(t *testing.T) {
	err := writeTranscriptFile("x", filepath.Join(t.TempDir(), "missing", "out.txt"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
