package agent

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/tiered-agent/pkg/models"
)

// DefaultMaxOutputTokens bounds general answers produced inside a multi-step run.
const DefaultMaxOutputTokens = 300

// Options configure a new FullAgent.
type Options struct {
	Model        models.Agent
	SystemPrompt string
	// Generation defaults to models.DefaultGenerationConfig(DefaultMaxOutputTokens) when zero.
	Generation models.GenerationConfig
	// Catalog defaults to the calculator followed by the translator.
	Catalog   *ToolCatalog
	Segmenter *Segmenter
	Logger    *zap.Logger
}

// FullAgent decomposes a request into sub-tasks, routes each to a tool or the
// language model, and stitches the results into one reply.
type FullAgent struct {
	segmenter  *Segmenter
	classifier *Classifier
	executors  map[TaskType]Executor
	general    Executor
	logger     *zap.Logger
}

// Report is the full outcome of one run.
type Report struct {
	Segments   []Segment
	Steps      []StepResult
	Memory     []Record
	Transcript string
	// Aborted is set when a step failed and later segments were skipped.
	Aborted bool
}

// NewFullAgent creates a FullAgent with the provided options.
func NewFullAgent(opts Options) (*FullAgent, error) {
	if opts.Model == nil {
		return nil, errors.New("agent requires a language model")
	}

	systemPrompt := opts.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = fullAgentSystemPrompt
	}
	gen := opts.Generation
	if gen.MaxOutputTokens <= 0 {
		gen = models.DefaultGenerationConfig(DefaultMaxOutputTokens)
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultToolCatalog(nil)
	}
	segmenter := opts.Segmenter
	if segmenter == nil {
		segmenter = NewSegmenter()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &FullAgent{
		segmenter:  segmenter,
		classifier: NewClassifier(RulesFromCatalog(catalog)...),
		executors:  make(map[TaskType]Executor),
		general:    &LLMExecutor{Model: opts.Model, SystemPrompt: systemPrompt, Config: gen},
		logger:     logger,
	}
	for _, e := range catalog.Entries() {
		a.executors[e.Type] = toolExecutor{label: e.Label, tool: e.Tool}
	}
	return a, nil
}

// Plan segments and classifies query. An input with no usable segment becomes
// a single general segment carrying the whole query.
func (a *FullAgent) Plan(query string) []Segment {
	parts := a.segmenter.Split(query)
	if len(parts) == 0 {
		return []Segment{{Text: query, Type: TaskGeneral}}
	}
	segments := make([]Segment, 0, len(parts))
	for _, p := range parts {
		segments = append(segments, Segment{Text: p, Type: a.classifier.Classify(p)})
	}
	return segments
}

// Respond implements Responder.
func (a *FullAgent) Respond(ctx context.Context, input string) string {
	return a.Run(ctx, input)
}

// Run answers query and returns the reply text.
func (a *FullAgent) Run(ctx context.Context, query string) string {
	return a.RunReport(ctx, query).Transcript
}

// RunReport executes the segments of query in order with a fresh memory,
// stopping at the first failed step.
func (a *FullAgent) RunReport(ctx context.Context, query string) Report {
	memory := NewMemory()
	segments := a.Plan(query)
	report := Report{Segments: segments}

	a.logger.Debug("planned request",
		zap.Int("segments", len(segments)),
		zap.Stringers("types", taskTypes(segments)))

	if len(segments) == 1 {
		res := a.execute(ctx, segments[0])
		report.Steps = []StepResult{res}
		if !res.Succeeded() {
			report.Aborted = true
			report.Transcript = errorLine(res.Err)
			return report
		}
		report.Transcript = res.Display
		return report
	}

	out := newTranscript()
	for i, seg := range segments {
		out.step(i+1, seg.Text)
		res := a.execute(ctx, seg)
		report.Steps = append(report.Steps, res)
		out.result(res)
		if !res.Succeeded() {
			a.logger.Warn("step failed, aborting remaining steps",
				zap.Int("step", i+1),
				zap.Int("skipped", len(segments)-i-1),
				zap.Error(res.Err))
			report.Aborted = true
			report.Memory = memory.Records()
			report.Transcript = out.String()
			return report
		}
		memory.Add(Record{Description: res.Description, Display: res.Display, Raw: res.Raw})
		out.blank()
	}

	if memory.Len() > 1 {
		out.summary(memory.Records())
	}
	report.Memory = memory.Records()
	report.Transcript = out.String()
	return report
}

func (a *FullAgent) execute(ctx context.Context, seg Segment) StepResult {
	exec, ok := a.executors[seg.Type]
	if !ok {
		exec = a.general
	}
	res := executeStep(ctx, exec, seg)
	a.logger.Debug("executed step",
		zap.Stringer("type", seg.Type),
		zap.String("text", seg.Text),
		zap.Bool("ok", res.Succeeded()))
	return res
}

func taskTypes(segments []Segment) []TaskType {
	out := make([]TaskType, len(segments))
	for i, s := range segments {
		out[i] = s.Type
	}
	return out
}
