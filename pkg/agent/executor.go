package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

// Executor runs one kind of segment. Label prefixes the step description.
type Executor interface {
	Label() string
	Execute(ctx context.Context, text string) (tools.Output, error)
}

type toolExecutor struct {
	label string
	tool  tools.Tool
}

func (e toolExecutor) Label() string { return e.label }

func (e toolExecutor) Execute(ctx context.Context, text string) (tools.Output, error) {
	return e.tool.Execute(ctx, text)
}

// LLMExecutor answers general segments with the language model.
type LLMExecutor struct {
	Model        models.Agent
	SystemPrompt string
	Config       models.GenerationConfig
}

func (e *LLMExecutor) Label() string { return "General query" }

func (e *LLMExecutor) Execute(ctx context.Context, text string) (tools.Output, error) {
	reply, err := e.Model.Generate(ctx, buildPrompt(e.SystemPrompt, text), e.Config)
	if err != nil {
		return tools.Output{}, &CollaboratorError{Err: err}
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return tools.Output{}, &CollaboratorError{Msg: "Could not generate response from LLM"}
	}
	return tools.Output{Display: reply, Value: reply}, nil
}

// executeStep converts every executor outcome, panics included, into a StepResult.
func executeStep(ctx context.Context, exec Executor, seg Segment) (res StepResult) {
	res = StepResult{
		Type:        seg.Type,
		Description: fmt.Sprintf("%s: %s", exec.Label(), seg.Text),
	}
	defer func() {
		if r := recover(); r != nil {
			res.Display, res.Raw = "", nil
			res.Err = fmt.Errorf("%s step failed: %v", seg.Type, r)
		}
	}()

	out, err := exec.Execute(ctx, seg.Text)
	if err != nil {
		res.Err = err
		return res
	}
	res.Display = out.Display
	res.Raw = out.Value
	return res
}
