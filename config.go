package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	koanftoml "github.com/knadh/koanf/parsers/toml/v2"
	koanfenv "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

const (
	transcriptPreferenceManual = "manual"
	transcriptPreferenceAuto   = "auto"
)

// Config represents the application configuration structure.
type Config struct {
	LLM                  LLMConfig `koanf:"llm"`
	Language             string    `koanf:"language"`
	TranscriptPreference string    `koanf:"transcript_preference"`
}

// LLMConfig holds the reply-service configuration.
type LLMConfig struct {
	Provider string `koanf:"provider"`
	Model    string `koanf:"model"`
	APIKey   string `koanf:"api_key"`
	BaseURL  string `koanf:"base_url"`
}

func defaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Language:             "en",
		TranscriptPreference: transcriptPreferenceManual,
	}
}

func userConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tubetalk", "conf.toml"), nil
}

// LoadConfig loads configuration from the user config file plus the
// TUBETALK_ environment, with env values overriding file values.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	cfgPath, err := userConfigPath()
	if err != nil {
		slog.Warn("config path unavailable", "error", err)
	} else if _, statErr := os.Stat(cfgPath); statErr == nil {
		if err := k.Load(file.Provider(cfgPath), koanftoml.Parser()); err != nil {
			slog.Warn("failed to load user config", "path", cfgPath, "error", err)
		}
	}

	// TUBETALK_LLM_PROVIDER=ollama overrides llm.provider, and so on.
	if err := k.Load(koanfenv.Provider(".", koanfenv.Opt{
		Prefix: "TUBETALK_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, "TUBETALK_")), "_", ".")
			// transcript_preference flattens awkwardly; put it back.
			if key == "transcript.preference" {
				key = "transcript_preference"
			}
			if strings.HasPrefix(key, "llm.api.key") {
				key = "llm.api_key"
			}
			if strings.HasPrefix(key, "llm.base.url") {
				key = "llm.base_url"
			}
			return key, value
		},
	}), nil); err != nil {
		slog.Warn("failed to load environment variables", "error", err)
	}

	// Standard provider API key env vars win over nothing being set.
	if k.String("llm.api_key") == "" {
		switch k.String("llm.provider") {
		case "anthropic":
			if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
				k.Set("llm.api_key", key)
			}
		default:
			if key := os.Getenv("OPENAI_API_KEY"); key != "" {
				k.Set("llm.api_key", key)
			}
		}
	}

	config := defaultConfig()
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// SaveConfig persists the mutable settings (language, transcript
// preference, model) to the user config file. API keys never land here;
// they live in the keyring.
func SaveConfig(config *Config) error {
	cfgPath, err := userConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	k := koanf.New(".")
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		if err := k.Load(file.Provider(cfgPath), koanftoml.Parser()); err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
	}

	k.Set("language", config.Language)
	k.Set("transcript_preference", config.TranscriptPreference)
	k.Set("llm.provider", config.LLM.Provider)
	k.Set("llm.model", config.LLM.Model)

	data, err := k.Marshal(koanftoml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
