package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/fake"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// transcriptContextLimit caps how much caption text is sent as context.
const transcriptContextLimit = 24000

// getLLMClient creates and returns an LLM client based on the configuration.
func getLLMClient(config *Config) (llms.Model, error) {
	// Keyring first, then config/env. A key that arrived via config or
	// environment is stored for the next launch.
	if config.LLM.APIKey == "" {
		if apiKey, err := GetAPIKeyFromKeyring(config.LLM.Provider); err == nil && apiKey != "" {
			config.LLM.APIKey = apiKey
		}
	} else if err := SaveAPIKeyToKeyring(config.LLM.Provider, config.LLM.APIKey); err != nil {
		slog.Debug("could not persist API key to keyring", "error", err)
	}

	switch config.LLM.Provider {
	case "fake":
		return fake.NewFakeLLM([]string{}), nil
	case "ollama":
		opts := []ollama.Option{
			ollama.WithModel(config.LLM.Model),
		}
		if config.LLM.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(config.LLM.BaseURL))
		}
		return ollama.New(opts...)
	case "openai":
		opts := []openai.Option{
			openai.WithModel(config.LLM.Model),
		}
		if config.LLM.APIKey != "" {
			opts = append(opts, openai.WithToken(config.LLM.APIKey))
		}
		if config.LLM.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(config.LLM.BaseURL))
		}
		return openai.New(opts...)
	case "anthropic":
		opts := []anthropic.Option{
			anthropic.WithModel(config.LLM.Model),
		}
		if config.LLM.APIKey != "" {
			opts = append(opts, anthropic.WithToken(config.LLM.APIKey))
		}
		if config.LLM.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(config.LLM.BaseURL))
		}
		return anthropic.New(opts...)
	case "googleai":
		apiKey := config.LLM.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				return nil, fmt.Errorf("missing Google AI API key. Set it in the config file or via GEMINI_API_KEY")
			}
		}
		return googleai.New(context.Background(),
			googleai.WithDefaultModel(config.LLM.Model),
			googleai.WithAPIKey(apiKey),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.LLM.Provider)
	}
}

// llmReplyService answers questions about one video by sending the caption
// transcript as system context with each request.
type llmReplyService struct {
	model      llms.Model
	videoID    string
	transcript string
}

func newLLMReplyService(model llms.Model, videoID, transcript string) *llmReplyService {
	svc := &llmReplyService{model: model, videoID: videoID}
	svc.SetTranscript(transcript)
	return svc
}

// SetTranscript replaces the caption context, truncating oversized ones.
func (s *llmReplyService) SetTranscript(transcript string) {
	if len(transcript) > transcriptContextLimit {
		transcript = transcript[:transcriptContextLimit]
	}
	s.transcript = transcript
}

func (s *llmReplyService) systemPrompt() string {
	return fmt.Sprintf(
		"You are a helpful assistant answering questions about the video %s. "+
			"Base your answers on this caption transcript:\n\n%s",
		s.videoID, s.transcript)
}

// Invoke sends the user text with the transcript context and returns the
// assistant reply.
func (s *llmReplyService) Invoke(ctx context.Context, userText string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, s.systemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, userText),
	}
	resp, err := s.model.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("reply service failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("reply service returned no choices")
	}
	return resp.Choices[0].Content, nil
}
