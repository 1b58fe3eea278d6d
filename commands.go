package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Aliases     []string
	Handler     func(*Session) error
}

// CommandRegistry holds all available commands in registration order.
type CommandRegistry struct {
	commands map[string]Command
	order    []string
}

// NewCommandRegistry creates the registry with the built-in commands.
func NewCommandRegistry() *CommandRegistry {
	registry := &CommandRegistry{commands: make(map[string]Command)}

	registry.Register("/summarize", "Summarize the video", nil, handleSummarizeCommand)
	registry.Register("/export", "Export the conversation", nil, handleExportCommand)
	registry.Register("/language", "Change the caption language", nil, handleLanguageCommand)
	registry.Register("/model", "Select AI model", nil, handleModelCommand)
	registry.Register("/quit", "Quit the application", []string{"/exit"}, handleQuitCommand)

	return registry
}

// Register adds a command. Names are unique; re-registering replaces the
// entry without duplicating its position.
func (cr *CommandRegistry) Register(name, description string, aliases []string, handler func(*Session) error) {
	if _, exists := cr.commands[name]; !exists {
		cr.order = append(cr.order, name)
	}
	cr.commands[name] = Command{
		Name:        name,
		Description: description,
		Aliases:     aliases,
		Handler:     handler,
	}
}

// Lookup resolves a command by its name or one of its aliases.
func (cr *CommandRegistry) Lookup(name string) (Command, bool) {
	if cmd, ok := cr.commands[name]; ok {
		return cmd, true
	}
	for _, cmd := range cr.commands {
		for _, alias := range cmd.Aliases {
			if alias == name {
				return cmd, true
			}
		}
	}
	return Command{}, false
}

// All returns the commands in registration order.
func (cr *CommandRegistry) All() []Command {
	commands := make([]Command, 0, len(cr.order))
	for _, name := range cr.order {
		commands = append(commands, cr.commands[name])
	}
	return commands
}

// Command handlers. Each runs with the session in ModalActive state and
// must leave the transcript and config consistent on every path.

func handleSummarizeCommand(s *Session) error {
	s.process("Summarize this video in a few short paragraphs.")
	return nil
}

const (
	exportChoiceClipboard = 0
	exportChoiceFile      = 1
)

func handleExportCommand(s *Session) error {
	choice, ok := s.prompter.Select("Export conversation", []SelectOption{
		{Label: "Copy to clipboard", Description: "Put the formatted transcript on the system clipboard"},
		{Label: "Save to file", Description: "Write the formatted transcript to a text file"},
	}, 0)
	if !ok {
		return nil
	}

	content := formatTranscript(s.transcript, s.exportMetadata())

	switch choice {
	case exportChoiceClipboard:
		if err := clipboard.WriteAll(content); err != nil {
			s.notify(fmt.Sprintf("error: could not copy to clipboard: %v", err))
			return nil
		}
		s.notify("Conversation copied to clipboard.")
	case exportChoiceFile:
		defaultName := defaultExportFilename(time.Now())
		name, ok := s.prompter.Text("Filename", defaultName, "Enter to accept the default")
		if !ok {
			return nil
		}
		if err := writeTranscriptFile(content, name); err != nil {
			s.notify(fmt.Sprintf("error: could not write %s: %v", name, err))
			return nil
		}
		s.notify(fmt.Sprintf("Conversation saved to %s.", name))
	}
	return nil
}

func handleLanguageCommand(s *Session) error {
	if len(s.tracks) == 0 {
		s.notify("No caption tracks available for this video.")
		return nil
	}

	options := make([]SelectOption, len(s.tracks))
	defaultIndex := 0
	for i, track := range s.tracks {
		options[i] = SelectOption{
			Label:       track.ColumnLabel(),
			Description: track.KindLabel(),
		}
		if track.Lang == s.config.Language {
			defaultIndex = i
		}
	}

	langChoice, ok := s.prompter.Select("Caption language", options, defaultIndex)
	if !ok {
		return nil
	}

	prefDefault := 0
	if s.config.TranscriptPreference == transcriptPreferenceAuto {
		prefDefault = 1
	}
	prefChoice, ok := s.prompter.Select("Transcript preference", []SelectOption{
		{Label: "Manual captions", Description: "Prefer captions written by a person"},
		{Label: "Auto-generated ok", Description: "Accept speech-recognition captions"},
	}, prefDefault)
	if !ok {
		return nil
	}

	s.config.Language = s.tracks[langChoice].Lang
	if prefChoice == 1 {
		s.config.TranscriptPreference = transcriptPreferenceAuto
	} else {
		s.config.TranscriptPreference = transcriptPreferenceManual
	}

	if err := SaveConfig(s.config); err != nil {
		slog.Warn("failed to save config", "error", err)
		s.notify(fmt.Sprintf("error: could not save config: %v", err))
	}

	if err := s.reloadTranscript(); err != nil {
		s.notify(fmt.Sprintf("error: could not reload transcript: %v", err))
		return nil
	}
	s.notify(fmt.Sprintf("Captions switched to %s.", s.config.Language))
	return nil
}

func handleModelCommand(s *Session) error {
	models := knownModels(s.config.LLM.Provider)
	options := make([]SelectOption, len(models))
	defaultIndex := 0
	for i, m := range models {
		options[i] = SelectOption{Label: m}
		if m == s.config.LLM.Model {
			defaultIndex = i
		}
	}

	choice, ok := s.prompter.Select("Select model", options, defaultIndex)
	if !ok {
		return nil
	}

	s.config.LLM.Model = models[choice]
	if err := SaveConfig(s.config); err != nil {
		s.notify(fmt.Sprintf("error: could not save config: %v", err))
		return nil
	}
	// Live model switching is not implemented; the choice takes effect on
	// the next launch.
	s.notify(fmt.Sprintf("Model set to %s (applies on next start).", models[choice]))
	return nil
}

func handleQuitCommand(s *Session) error {
	s.terminate()
	return nil
}

// knownModels lists selectable model names per provider for the /model stub.
func knownModels(provider string) []string {
	switch provider {
	case "anthropic":
		return []string{"claude-sonnet-4-20250514", "claude-3-5-haiku-latest"}
	case "ollama":
		return []string{"llama3.1", "mistral", "qwen2.5"}
	case "googleai":
		return []string{"gemini-1.5-pro", "gemini-1.5-flash"}
	default:
		return []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}
	}
}
