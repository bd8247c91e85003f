package tools

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Operator is a supported arithmetic operation.
type Operator int

const (
	OpAdd Operator = iota
	OpMultiply
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "addition"
	case OpMultiply:
		return "multiplication"
	default:
		return fmt.Sprintf("operator(%d)", int(o))
	}
}

// Symbol is the infix symbol used when rendering a calculation.
func (o Operator) Symbol() string {
	if o == OpMultiply {
		return "*"
	}
	return "+"
}

// Apply evaluates the operator in double precision.
func (o Operator) Apply(a, b float64) float64 {
	if o == OpMultiply {
		return a * b
	}
	return a + b
}

// CalculationRequest is a parsed two-operand arithmetic request.
type CalculationRequest struct {
	Operator Operator
	Operands [2]float64
}

type mathRule struct {
	op      Operator
	pattern *regexp.Regexp
}

const number = `(\d+(?:\.\d+)?)`

// Rules are tried in order and the first match wins. Addition rules come first.
var mathRules = []mathRule{
	{OpAdd, regexp.MustCompile(number + `\s*\+\s*` + number)},
	{OpAdd, regexp.MustCompile(`add\s+` + number + `\s+(?:and\s+|to\s+)?` + number)},
	{OpAdd, regexp.MustCompile(number + `\s+plus\s+` + number)},
	{OpAdd, regexp.MustCompile(`what\s+is\s+` + number + `\s*\+\s*` + number)},
	{OpMultiply, regexp.MustCompile(number + `\s*\*\s*` + number)},
	{OpMultiply, regexp.MustCompile(`multiply\s+` + number + `\s+(?:by\s+|and\s+)?` + number)},
	{OpMultiply, regexp.MustCompile(number + `\s+times\s+` + number)},
	{OpMultiply, regexp.MustCompile(`what\s+is\s+` + number + `\s*\*\s*` + number)},
}

// CalculatorExamples lists phrasings the calculator understands.
var CalculatorExamples = []string{
	"15 + 23",
	"add 10 and 5",
	"5 * 6",
	"multiply 4 by 7",
	"what is 12 + 8",
}

// Calculator adds or multiplies two numbers found in free text.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

func (c *Calculator) Name() string { return "calculator" }

func (c *Calculator) Description() string {
	return "Adds or multiplies two numbers, e.g. '15 + 23' or 'multiply 4 by 7'."
}

// Parse extracts the first supported calculation from text.
func (c *Calculator) Parse(text string) (CalculationRequest, bool) {
	expr := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range mathRules {
		m := rule.pattern.FindStringSubmatch(expr)
		if m == nil {
			continue
		}
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA != nil || errB != nil {
			continue
		}
		return CalculationRequest{Operator: rule.op, Operands: [2]float64{a, b}}, true
	}
	return CalculationRequest{}, false
}

func (c *Calculator) Detect(text string) bool {
	_, ok := c.Parse(text)
	return ok
}

func (c *Calculator) Execute(_ context.Context, text string) (Output, error) {
	req, ok := c.Parse(text)
	if !ok {
		return Output{}, &ParseError{
			Tool:     c.Name(),
			Message:  "Could not parse mathematical expression. I only support basic addition and multiplication.",
			Examples: CalculatorExamples,
		}
	}
	return Calculate(req), nil
}

// Calculate evaluates req and renders it as "a op b = result".
func Calculate(req CalculationRequest) Output {
	a, b := req.Operands[0], req.Operands[1]
	result := req.Operator.Apply(a, b)
	return Output{
		Display: fmt.Sprintf("%s %s %s = %s", formatOperand(a), req.Operator.Symbol(), formatOperand(b), formatResult(result)),
		Value:   result,
	}
}

// formatOperand always shows a fractional part, so 5 renders as "5.0".
func formatOperand(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// formatResult drops the fractional part of integral results.
func formatResult(f float64) string {
	if !math.IsInf(f, 0) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var _ Tool = (*Calculator)(nil)
