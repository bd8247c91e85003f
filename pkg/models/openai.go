package models

import (
	"context"
	"errors"
	"os"

	"github.com/sashabaranov/go-openai"
)

type OpenAILLM struct {
	Client *openai.Client
	Model  string
}

func NewOpenAILLM(model, apiKey string) *OpenAILLM {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // fallback
	}
	return &OpenAILLM{Client: openai.NewClient(apiKey), Model: model}
}

func (o *OpenAILLM) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		MaxTokens:   int(cfg.MaxOutputTokens),
		Stop:        cfg.StopSequences,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Agent = (*OpenAILLM)(nil)
