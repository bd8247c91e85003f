package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/tiered-agent/pkg/agent"
	"github.com/Protocol-Lattice/tiered-agent/pkg/config"
	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

// level describes how one chatbot tier introduces itself.
type level struct {
	Name    string
	Speaker string
	Intro   []string
}

var levels = map[int]level{
	1: {
		Name:    "Level 1 Chatbot",
		Speaker: "🤖 Chatbot",
		Intro: []string{
			"Welcome! I provide structured, step-by-step answers.",
			"Note: I cannot perform mathematical calculations - use a calculator for that!",
		},
	},
	2: {
		Name:    "Level 2 Chatbot with Calculator",
		Speaker: "🤖 Assistant",
		Intro: []string{
			"Welcome! I answer questions and solve addition and multiplication with my calculator.",
			"Note: I handle one task per message.",
		},
	},
	3: {
		Name:    "Level 3 Full Agent",
		Speaker: "🤖 Full Agent",
		Intro: []string{
			"Welcome! I can handle complex multi-step tasks including:",
			"• Math calculations (addition, multiplication)",
			"• English to German translations",
			"• General questions and explanations",
			"• Multi-step combinations of the above!",
			"",
			"Examples:",
			`• "Translate 'Good Morning' into German and then multiply 5 and 6"`,
			`• "Add 10 and 20, then translate 'Have a nice day' into German"`,
			`• "Tell me the capital of Italy, then multiply 12 and 12"`,
		},
	},
}

func lookupLevel(n int) (level, error) {
	l, ok := levels[n]
	if !ok {
		return level{}, fmt.Errorf("unknown level %d (want 1, 2 or 3)", n)
	}
	return l, nil
}

// newModel builds the configured backend behind the optional response cache.
// The returned closer releases the backend's client.
func newModel(ctx context.Context, c *config.Config) (models.Agent, func(), error) {
	base, err := models.NewLLMProvider(ctx, c.Provider())
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if cl, ok := base.(io.Closer); ok {
		closeFn = func() { _ = cl.Close() }
	}
	return models.WithCache(base, c.Cache.Size, c.Cache.TTL, c.Cache.Path), closeFn, nil
}

// newResponder wires the tier selected by n to model.
func newResponder(n int, c *config.Config, model models.Agent, log *zap.Logger) (agent.Responder, error) {
	gen, err := c.Generation(n)
	if err != nil {
		return nil, err
	}
	switch n {
	case 1:
		return agent.NewChatbot(agent.ChatOptions{Model: model, Generation: gen, Logger: log})
	case 2:
		return agent.NewToolChatbot(agent.ChatOptions{Model: model, Generation: gen, Logger: log})
	default:
		return agent.NewFullAgent(agent.Options{
			Model:      model,
			Generation: gen,
			Catalog:    agent.DefaultToolCatalog(tools.NewTranslator(c.Translator.Phrases)),
			Logger:     log,
		})
	}
}
