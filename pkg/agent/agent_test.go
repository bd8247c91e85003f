package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
	"github.com/Protocol-Lattice/tiered-agent/pkg/tools"
)

func newTestAgent(t *testing.T, model *stubModel) *FullAgent {
	t.Helper()
	a, err := NewFullAgent(Options{Model: model})
	require.NoError(t, err)
	return a
}

func TestNewFullAgentRequiresModel(t *testing.T) {
	_, err := NewFullAgent(Options{})
	require.Error(t, err)
}

func TestSingleMathStepReturnsBareCalculation(t *testing.T) {
	model := &stubModel{}
	out := newTestAgent(t, model).Run(context.Background(), "5 * 6")

	assert.Equal(t, "5.0 * 6.0 = 30", out)
	assert.NotContains(t, out, "Step")
	assert.NotContains(t, out, "Task Summary")
	assert.Zero(t, model.calls())
}

func TestSingleTranslationStep(t *testing.T) {
	out := newTestAgent(t, &stubModel{}).Run(context.Background(), `Translate "Thank you"`)
	assert.Equal(t, `"Thank you" → "Danke"`, out)
}

func TestSingleGeneralStepUsesModel(t *testing.T) {
	model := &stubModel{fallback: "  1. Rome is the capital.  "}
	out := newTestAgent(t, model).Run(context.Background(), "Tell me the capital of Italy")

	assert.Equal(t, "1. Rome is the capital.", out)
	require.Equal(t, 1, model.calls())
	assert.True(t, strings.HasPrefix(model.prompts[0], fullAgentSystemPrompt))
	assert.True(t, strings.HasSuffix(model.prompts[0], "\n\nUser: Tell me the capital of Italy\nAssistant:"))
	assert.Equal(t, models.DefaultGenerationConfig(300), model.configs[0])
}

func TestSingleStepFailureIsOneErrorLine(t *testing.T) {
	out := newTestAgent(t, &stubModel{}).Run(context.Background(), `Translate "spaceship"`)
	assert.Equal(t, "❌ Error: Unknown words: spaceship (partial translation: [spaceship])", out)
}

func TestMultiStepRunWithSummary(t *testing.T) {
	a := newTestAgent(t, &stubModel{})
	report := a.RunReport(context.Background(), "Add 10 and 20, then translate 'Have a nice day' into German")

	require.Len(t, report.Segments, 2)
	assert.Equal(t, TaskMath, report.Segments[0].Type)
	assert.Equal(t, TaskTranslation, report.Segments[1].Type)
	assert.False(t, report.Aborted)

	want := strings.Join([]string{
		"🔍 Multi-step task detected! Breaking down your request:",
		"",
		"**Step 1**: Add 10 and 20",
		"✅ Result: 10.0 + 20.0 = 30",
		"",
		"**Step 2**: translate 'Have a nice day' into German",
		`✅ Result: "Have a nice day" → "Hab Einen Schönen Tag"`,
		"",
		"📋 **Task Summary**:",
		"• Math calculation: Add 10 and 20 → 10.0 + 20.0 = 30",
		`• Translation: translate 'Have a nice day' into German → "Have a nice day" → "Hab Einen Schönen Tag"`,
	}, "\n")
	assert.Equal(t, want, report.Transcript)

	require.Len(t, report.Memory, 2)
	assert.Equal(t, 30.0, report.Memory[0].Raw)
	assert.Equal(t, "hab einen schönen tag", report.Memory[1].Raw)
}

func TestMultiStepFailsFast(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	model := &stubModel{replies: map[string]string{"capital": "Rome"}}
	a, err := NewFullAgent(Options{Model: model, Logger: zap.New(core)})
	require.NoError(t, err)

	report := a.RunReport(context.Background(),
		"Tell me the capital of Italy, then translate 'spaceship' into German, then multiply 12 and 12")

	require.Len(t, report.Segments, 3)
	require.Len(t, report.Steps, 2)
	assert.True(t, report.Aborted)
	assert.True(t, report.Steps[0].Succeeded())
	assert.True(t, errors.Is(report.Steps[1].Err, tools.ErrUnknownVocabulary))
	assert.Len(t, report.Memory, 1)

	out := report.Transcript
	assert.Contains(t, out, "**Step 1**: Tell me the capital of Italy\n✅ Result: Rome")
	assert.Contains(t, out, "**Step 2**: translate 'spaceship' into German\n❌ Error: Unknown words: spaceship")
	assert.True(t, strings.HasSuffix(out, "❌ Error: Unknown words: spaceship (partial translation: [spaceship])"))
	assert.NotContains(t, out, "Step 3")
	assert.NotContains(t, out, "144")
	assert.NotContains(t, out, "Task Summary")
	assert.Equal(t, 1, model.calls())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, int64(2), entry.ContextMap()["step"])
	assert.Equal(t, int64(1), entry.ContextMap()["skipped"])
}

func TestCollaboratorFailureBecomesStepError(t *testing.T) {
	a := newTestAgent(t, &stubModel{err: errors.New("network down")})
	report := a.RunReport(context.Background(), "5 * 6 and then tell me a joke")

	require.Len(t, report.Steps, 2)
	err := report.Steps[1].Err
	assert.True(t, errors.Is(err, ErrCollaboratorFailure))
	assert.Equal(t, "LLM error: network down", err.Error())
	assert.True(t, strings.HasSuffix(report.Transcript, "❌ Error: LLM error: network down"))
	assert.Contains(t, report.Transcript, "✅ Result: 5.0 * 6.0 = 30")
}

func TestEmptyModelReplyIsFailure(t *testing.T) {
	out := newTestAgent(t, &stubModel{fallback: "   "}).Run(context.Background(), "Tell me a joke")
	assert.Equal(t, "❌ Error: Could not generate response from LLM", out)
}

func TestBlankQueryIsOneGeneralSegment(t *testing.T) {
	model := &stubModel{fallback: "How can I help?"}
	a := newTestAgent(t, model)

	assert.Equal(t, []Segment{{Text: "   ", Type: TaskGeneral}}, a.Plan("   "))
	assert.Equal(t, []Segment{{Text: "", Type: TaskGeneral}}, a.Plan(""))

	assert.Equal(t, "How can I help?", a.Run(context.Background(), "   "))
	require.Equal(t, 1, model.calls())
	assert.True(t, strings.HasSuffix(model.prompts[0], "User:    \nAssistant:"))
}

func TestToolPanicIsContained(t *testing.T) {
	catalog := NewToolCatalog()
	require.NoError(t, catalog.Register(TaskMath, "Math calculation", panicTool{}))
	a, err := NewFullAgent(Options{Model: &stubModel{}, Catalog: catalog})
	require.NoError(t, err)

	var report Report
	require.NotPanics(t, func() {
		report = a.RunReport(context.Background(), "boom")
	})
	require.Len(t, report.Steps, 1)
	assert.False(t, report.Steps[0].Succeeded())
	assert.Equal(t, "Math calculation: boom", report.Steps[0].Description)
	assert.Equal(t, "❌ Error: math step failed: kaboom", report.Transcript)
}

func TestMemoryIsFreshForEveryRun(t *testing.T) {
	a := newTestAgent(t, &stubModel{})
	first := a.RunReport(context.Background(), "add 1 and 2 and then multiply 3 and 4")
	second := a.RunReport(context.Background(), "add 5 and 6 and then multiply 7 and 8")

	require.Len(t, first.Memory, 2)
	require.Len(t, second.Memory, 2)
	assert.Equal(t, 11.0, second.Memory[0].Raw)
	assert.Equal(t, 56.0, second.Memory[1].Raw)
}

func TestMemoryRecordsAreCopied(t *testing.T) {
	m := NewMemory()
	m.Add(Record{Description: "a"})
	recs := m.Records()
	recs[0].Description = "mutated"
	assert.Equal(t, "a", m.Records()[0].Description)
	assert.Equal(t, 1, m.Len())
}
