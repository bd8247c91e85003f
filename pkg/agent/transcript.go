package agent

import (
	"fmt"
	"strings"
)

const (
	multiStepHeader = "🔍 Multi-step task detected! Breaking down your request:"
	summaryHeader   = "📋 **Task Summary**:"
)

func errorLine(err error) string { return "❌ Error: " + err.Error() }
func resultLine(display string) string { return "✅ Result: " + display }

// transcript accumulates the numbered multi-step output.
type transcript struct {
	lines []string
}

func newTranscript() *transcript {
	return &transcript{lines: []string{multiStepHeader, ""}}
}

func (t *transcript) step(n int, text string) {
	t.lines = append(t.lines, fmt.Sprintf("**Step %d**: %s", n, text))
}

func (t *transcript) result(res StepResult) {
	if res.Succeeded() {
		t.lines = append(t.lines, resultLine(res.Display))
		return
	}
	t.lines = append(t.lines, errorLine(res.Err))
}

func (t *transcript) blank() { t.lines = append(t.lines, "") }

func (t *transcript) summary(records []Record) {
	t.lines = append(t.lines, summaryHeader)
	for _, r := range records {
		t.lines = append(t.lines, fmt.Sprintf("• %s → %s", r.Description, r.Display))
	}
}

func (t *transcript) String() string { return strings.Join(t.lines, "\n") }
