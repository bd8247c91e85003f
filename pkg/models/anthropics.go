package models

import (
	"context"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicLLM talks to Anthropic's Messages API.
type AnthropicLLM struct {
	Client *anthropic.Client
	Model  string
}

// NewAnthropicLLM constructs a client. An empty apiKey falls back to ANTHROPIC_API_KEY.
func NewAnthropicLLM(model, apiKey string) *AnthropicLLM {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(apiKey),
	)
	return &AnthropicLLM{
		Client: &cl,
		Model:  model, // e.g. "claude-3-5-sonnet-latest"
	}
}

// Generate performs a single-turn completion and returns concatenated text.
func (a *AnthropicLLM) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	maxTokens := int64(cfg.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature:   anthropic.Float(float64(cfg.Temperature)),
		StopSequences: cfg.StopSequences,
	}
	if cfg.TopK > 0 {
		params.TopK = anthropic.Int(int64(cfg.TopK))
	}

	msg, err := a.Client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("anthropic: response has no text blocks")
	}
	return b.String(), nil
}

var _ Agent = (*AnthropicLLM)(nil)
