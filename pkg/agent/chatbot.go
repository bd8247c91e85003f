package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

// DefaultChatMaxOutputTokens bounds answers of the single-task chatbots.
const DefaultChatMaxOutputTokens = 500

// ChatOptions configure the Level 1 and Level 2 chatbots.
type ChatOptions struct {
	Model        models.Agent
	SystemPrompt string
	// Generation defaults to models.DefaultGenerationConfig(DefaultChatMaxOutputTokens) when zero.
	Generation models.GenerationConfig
	Logger     *zap.Logger
}

type chatCore struct {
	model        models.Agent
	systemPrompt string
	generation   models.GenerationConfig
	logger       *zap.Logger
}

func newChatCore(opts ChatOptions, defaultPrompt string) (chatCore, error) {
	if opts.Model == nil {
		return chatCore{}, errors.New("chatbot requires a language model")
	}
	c := chatCore{
		model:        opts.Model,
		systemPrompt: opts.SystemPrompt,
		generation:   opts.Generation,
		logger:       opts.Logger,
	}
	if strings.TrimSpace(c.systemPrompt) == "" {
		c.systemPrompt = defaultPrompt
	}
	if c.generation.MaxOutputTokens <= 0 {
		c.generation = models.DefaultGenerationConfig(DefaultChatMaxOutputTokens)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// ask queries the model and folds failures into an apologetic reply.
func (c chatCore) ask(ctx context.Context, input string) string {
	reply, err := c.model.Generate(ctx, buildPrompt(c.systemPrompt, input), c.generation)
	if err != nil {
		c.logger.Warn("model call failed", zap.Error(err))
		return fmt.Sprintf("Sorry, I encountered an error while processing your request: %v", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "Sorry, I couldn't generate a response. Please try again."
	}
	return reply
}

// Chatbot is the Level 1 tier: a model-backed assistant that refuses arithmetic.
type Chatbot struct {
	chatCore
}

func NewChatbot(opts ChatOptions) (*Chatbot, error) {
	core, err := newChatCore(opts, chatbotSystemPrompt)
	if err != nil {
		return nil, err
	}
	return &Chatbot{chatCore: core}, nil
}

func (b *Chatbot) Respond(ctx context.Context, input string) string {
	if strings.TrimSpace(input) == "" {
		return errorLine(ErrEmptyInput)
	}
	if IsMathQuestion(input) {
		b.logger.Debug("refusing math question")
		return MathRefusal
	}
	return b.ask(ctx, input)
}

// ToolChatbot is the Level 2 tier: arithmetic goes to the calculator and
// compound requests are refused.
type ToolChatbot struct {
	chatCore
	calculator *tools.Calculator
}

func NewToolChatbot(opts ChatOptions) (*ToolChatbot, error) {
	core, err := newChatCore(opts, toolChatbotSystemPrompt)
	if err != nil {
		return nil, err
	}
	return &ToolChatbot{chatCore: core, calculator: tools.NewCalculator()}, nil
}

func (b *ToolChatbot) Respond(ctx context.Context, input string) string {
	if strings.TrimSpace(input) == "" {
		return errorLine(ErrEmptyInput)
	}
	if DetectMultipleTasks(input, b.calculator.Detect) {
		b.logger.Debug("refusing compound request")
		return MultipleTasksRefusal
	}
	if b.calculator.Detect(input) {
		out, err := b.calculator.Execute(ctx, input)
		if err != nil {
			return fmt.Sprintf("🧮 Calculator Error: %v", err)
		}
		return "🧮 Calculator Result: " + out.Display
	}
	return b.ask(ctx, input)
}

var (
	_ Responder = (*Chatbot)(nil)
	_ Responder = (*ToolChatbot)(nil)
	_ Responder = (*FullAgent)(nil)
)
