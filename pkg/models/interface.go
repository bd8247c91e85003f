package models

import (
	"context"
	"fmt"
	"strings"
)

// SafetyThreshold is the provider-neutral harm blocking level.
type SafetyThreshold string

const (
	BlockNone           SafetyThreshold = "BLOCK_NONE"
	BlockOnlyHigh       SafetyThreshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
)

// ParseSafetyThreshold accepts the canonical names case-insensitively.
func ParseSafetyThreshold(s string) (SafetyThreshold, error) {
	switch t := SafetyThreshold(strings.ToUpper(strings.TrimSpace(s))); t {
	case BlockNone, BlockOnlyHigh, BlockMediumAndAbove, BlockLowAndAbove:
		return t, nil
	case "":
		return BlockMediumAndAbove, nil
	default:
		return "", fmt.Errorf("unknown safety threshold %q", s)
	}
}

// GenerationConfig bounds a single completion request.
type GenerationConfig struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
	StopSequences   []string
	Safety          SafetyThreshold
}

// DefaultGenerationConfig mirrors the settings every chatbot tier sends.
func DefaultGenerationConfig(maxOutputTokens int32) GenerationConfig {
	return GenerationConfig{
		Temperature:     0.7,
		TopK:            1,
		TopP:            1,
		MaxOutputTokens: maxOutputTokens,
		Safety:          BlockMediumAndAbove,
	}
}

// Agent is the text generation collaborator behind every chatbot tier.
type Agent interface {
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}
