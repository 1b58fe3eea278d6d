package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ExportMetadata is the header block stamped on every export.
type ExportMetadata struct {
	SessionID  string
	VideoID    string
	Provider   string
	Model      string
	Language   string
	ExportedAt time.Time
}

// defaultExportFilename returns the conversation-<date>-<time>.txt name
// offered when the user leaves the filename prompt blank.
func defaultExportFilename(now time.Time) string {
	return fmt.Sprintf("conversation-%s.txt", now.Format("2006-01-02-150405"))
}

// formatTranscript renders the conversation as plain text with a metadata
// header. Thinking entries are transient UI state and are skipped.
func formatTranscript(t *Transcript, meta ExportMetadata) string {
	var b strings.Builder

	b.WriteString("# Tubetalk Conversation\n\n")
	b.WriteString(fmt.Sprintf("**Session ID:** %s\n", meta.SessionID))
	b.WriteString(fmt.Sprintf("**Video:** %s\n", meta.VideoID))
	b.WriteString(fmt.Sprintf("**Provider:** %s\n", meta.Provider))
	b.WriteString(fmt.Sprintf("**Model:** %s\n", meta.Model))
	b.WriteString(fmt.Sprintf("**Caption Language:** %s\n", meta.Language))
	b.WriteString(fmt.Sprintf("**Exported:** %s\n", meta.ExportedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n---\n\n")

	for _, msg := range t.Messages() {
		switch msg.Role {
		case RoleUser:
			b.WriteString("### User\n\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
		case RoleAssistant:
			b.WriteString("### Assistant\n\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

// writeTranscriptFile writes the export next to the current directory.
func writeTranscriptFile(content, filename string) error {
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
