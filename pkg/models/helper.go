package models

import (
	"context"
	"fmt"
	"strings"
)

// ProviderConfig selects and authenticates an LLM backend.
type ProviderConfig struct {
	Provider string
	Model    string
	APIKey   string
	Host     string
}

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "gpt-4o-mini"
	case "ollama":
		return "llama3.2"
	case "anthropic", "claude":
		return "claude-3-5-haiku-latest"
	default:
		return "gemini-2.0-flash"
	}
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (Agent, error) {
	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel(cfg.Provider)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gemini", "google", "":
		return NewGeminiLLM(ctx, model, cfg.APIKey)
	case "openai":
		return NewOpenAILLM(model, cfg.APIKey), nil
	case "ollama":
		return NewOllamaLLM(model, cfg.Host)
	case "anthropic", "claude":
		return NewAnthropicLLM(model, cfg.APIKey), nil
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
