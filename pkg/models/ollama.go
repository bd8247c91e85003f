package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// ---------------------------- Ollama -----------------------------------------

type OllamaLLM struct {
	Client *ollama.Client
	Model  string
}

// NewOllamaLLM connects to host, or OLLAMA_HOST, or the local default.
func NewOllamaLLM(model, host string) (*OllamaLLM, error) {
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	return &OllamaLLM{Client: ollama.NewClient(u, httpClient), Model: model}, nil
}

func (o *OllamaLLM) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	stream := false
	options := map[string]any{
		"temperature": cfg.Temperature,
	}
	if cfg.TopK > 0 {
		options["top_k"] = cfg.TopK
	}
	if cfg.TopP > 0 {
		options["top_p"] = cfg.TopP
	}
	if cfg.MaxOutputTokens > 0 {
		options["num_predict"] = cfg.MaxOutputTokens
	}
	if len(cfg.StopSequences) > 0 {
		options["stop"] = cfg.StopSequences
	}

	req := &ollama.GenerateRequest{
		Model:   o.Model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}

	var text strings.Builder
	if err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return text.String(), nil
}

var _ Agent = (*OllamaLLM)(nil)
