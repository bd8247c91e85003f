package agent

import (
	"context"
	"strings"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

// stubModel answers from a keyword table and records every call.
type stubModel struct {
	replies  map[string]string
	fallback string
	err      error

	prompts []string
	configs []models.GenerationConfig
}

func (m *stubModel) Generate(_ context.Context, prompt string, cfg models.GenerationConfig) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.configs = append(m.configs, cfg)
	if m.err != nil {
		return "", m.err
	}
	user := prompt
	if i := strings.LastIndex(prompt, "User:"); i >= 0 {
		user = prompt[i:]
	}
	for keyword, reply := range m.replies {
		if strings.Contains(user, keyword) {
			return reply, nil
		}
	}
	return m.fallback, nil
}

func (m *stubModel) calls() int { return len(m.prompts) }

// panicTool claims every input and panics when executed.
type panicTool struct{}

func (panicTool) Name() string            { return "panicky" }
func (panicTool) Description() string     { return "always panics" }
func (panicTool) Detect(text string) bool { return strings.Contains(text, "boom") }
func (panicTool) Execute(context.Context, string) (tools.Output, error) {
	panic("kaboom")
}
