package agent

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultConnectors are applied in order; longer connectors come before their substrings.
var DefaultConnectors = []string{" and then ", " then ", " and also ", " also ", " and "}

// DefaultTaskIndicators mark a comma fragment as a task of its own.
var DefaultTaskIndicators = []string{"translate", "add", "multiply", "tell", "what", "how"}

const (
	// fragments after a comma survive if longer than this, or if they start with a task indicator
	defaultMinCommaFragment = 5
	// trimmed fragments shorter than this are noise
	defaultMinSegment = 3
)

var (
	operandLeft  = regexp.MustCompile(`(?i)\b(?:add|multiply)\s+\d+(?:\.\d+)?$`)
	operandRight = regexp.MustCompile(`^\d+(?:\.\d+)?`)
)

type connector struct {
	pattern *regexp.Regexp
	// joinsOperands marks connectors that may sit between the operands of "add 1 and 2".
	joinsOperands bool
}

// Segmenter splits a free-text request into ordered candidate sub-tasks.
type Segmenter struct {
	connectors       []connector
	indicators       []string
	minCommaFragment int
	minSegment       int
}

// NewSegmenter returns a segmenter using the default connectors and task indicators.
func NewSegmenter() *Segmenter {
	s := &Segmenter{
		indicators:       DefaultTaskIndicators,
		minCommaFragment: defaultMinCommaFragment,
		minSegment:       defaultMinSegment,
	}
	for _, c := range DefaultConnectors {
		s.connectors = append(s.connectors, connector{
			pattern:       regexp.MustCompile(`(?i)` + regexp.QuoteMeta(c)),
			joinsOperands: strings.TrimSpace(c) == "and",
		})
	}
	return s
}

// Split returns the trimmed segments of text in left-to-right order.
// It returns nil when nothing survives filtering.
func (s *Segmenter) Split(text string) []string {
	parts := []string{text}
	for _, c := range s.connectors {
		next := make([]string, 0, len(parts))
		for _, p := range parts {
			next = append(next, c.split(p)...)
		}
		parts = next
	}

	var out []string
	for _, p := range parts {
		for _, frag := range s.splitCommas(p) {
			frag = strings.TrimSpace(frag)
			if utf8.RuneCountInString(frag) < s.minSegment {
				continue
			}
			out = append(out, frag)
		}
	}
	return out
}

func (c connector) split(text string) []string {
	matches := c.pattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}
	out := make([]string, 0, len(matches)+1)
	prev := 0
	for _, m := range matches {
		if c.joinsOperands && operandLeft.MatchString(text[:m[0]]) && operandRight.MatchString(text[m[1]:]) {
			continue
		}
		out = append(out, text[prev:m[0]])
		prev = m[1]
	}
	return append(out, text[prev:])
}

// splitCommas keeps the first comma fragment and any later fragment that looks like a task.
func (s *Segmenter) splitCommas(text string) []string {
	if !strings.Contains(text, ",") {
		return []string{text}
	}
	fragments := strings.Split(text, ",")
	out := []string{fragments[0]}
	for _, frag := range fragments[1:] {
		frag = strings.TrimSpace(frag)
		if s.startsWithIndicator(frag) || utf8.RuneCountInString(frag) > s.minCommaFragment {
			out = append(out, frag)
		}
	}
	return out
}

func (s *Segmenter) startsWithIndicator(frag string) bool {
	lower := strings.ToLower(frag)
	for _, word := range s.indicators {
		if strings.HasPrefix(lower, word) {
			return true
		}
	}
	return false
}
