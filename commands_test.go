package main

import "testing"

func TestCommandRegistryOrder(t *testing.T) {
	registry := NewCommandRegistry()
	commands := registry.All()
	if len(commands) == 0 {
		t.Fatalf("expected commands to be registered")
	}
	want := []string{"/summarize", "/export", "/language", "/model", "/quit"}
	if len(commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(commands))
	}
	for i, name := range want {
		if commands[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, commands[i].Name)
		}
	}
}

func TestCommandRegistryLookup(t *testing.T) {
	registry := NewCommandRegistry()

	cmd, ok := registry.Lookup("/export")
	if !ok || cmd.Name != "/export" {
		t.Fatalf("lookup by name failed: %v %v", cmd, ok)
	}

	cmd, ok = registry.Lookup("/exit")
	if !ok || cmd.Name != "/quit" {
		t.Fatalf("lookup by alias failed: %v %v", cmd, ok)
	}

	if _, ok := registry.Lookup("/missing"); ok {
		t.Fatalf("lookup invented a command")
	}
}

func TestCommandRegistryReRegisterKeepsPosition(t *testing.T) {
	registry := NewCommandRegistry()
	registry.Register("/export", "changed description", nil, nil)

	commands := registry.All()
	if commands[1].Name != "/export" {
		t.Fatalf("re-registration moved the command: %v", commands)
	}
	if commands[1].Description != "changed description" {
		t.Fatalf("re-registration did not replace the entry")
	}
	if len(commands) != 5 {
		t.Fatalf("re-registration duplicated the command: %d", len(commands))
	}
}

func TestKnownModelsNonEmptyPerProvider(t *testing.T) {
	for _, provider := range []string{"openai", "anthropic", "ollama", "googleai", "unheard-of"} {
		if len(knownModels(provider)) == 0 {
			t.Fatalf("no models for provider %s", provider)
		}
	}
}
