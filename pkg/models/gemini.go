package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ---------------------------- Google Gemini ----------------------------------

var geminiHarmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

type GeminiLLM struct {
	Client *genai.Client
	Model  string
}

// NewGeminiLLM builds a client from apiKey, falling back to GOOGLE_API_KEY and GEMINI_API_KEY.
func NewGeminiLLM(ctx context.Context, model, apiKey string) (*GeminiLLM, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{Client: client, Model: model}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	model := g.Client.GenerativeModel(g.Model)
	model.SetTemperature(cfg.Temperature)
	if cfg.TopK > 0 {
		model.SetTopK(cfg.TopK)
	}
	if cfg.TopP > 0 {
		model.SetTopP(cfg.TopP)
	}
	if cfg.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	}
	model.StopSequences = cfg.StopSequences
	model.SafetySettings = geminiSafetySettings(cfg.Safety)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: candidate has no text parts")
	}
	return sb.String(), nil
}

// Close releases the underlying gRPC connection.
func (g *GeminiLLM) Close() error {
	return g.Client.Close()
}

func geminiSafetySettings(threshold SafetyThreshold) []*genai.SafetySetting {
	block := genai.HarmBlockMediumAndAbove
	switch threshold {
	case BlockNone:
		block = genai.HarmBlockNone
	case BlockOnlyHigh:
		block = genai.HarmBlockOnlyHigh
	case BlockLowAndAbove:
		block = genai.HarmBlockLowAndAbove
	}
	settings := make([]*genai.SafetySetting, 0, len(geminiHarmCategories))
	for _, category := range geminiHarmCategories {
		settings = append(settings, &genai.SafetySetting{Category: category, Threshold: block})
	}
	return settings
}

var _ Agent = (*GeminiLLM)(nil)
