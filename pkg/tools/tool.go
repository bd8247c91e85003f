// Package tools holds the deterministic capabilities the chatbots delegate to
// instead of the language model: a two-operand calculator and a closed
// English to German phrase translator.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParseFailure reports that a tool could not make sense of its input.
	ErrParseFailure = errors.New("parse failure")
	// ErrUnknownVocabulary reports words missing from the translation dictionary.
	ErrUnknownVocabulary = errors.New("unknown vocabulary")
)

// Output is the successful result of a tool invocation.
type Output struct {
	// Display is the human-readable rendering.
	Display string
	// Value is the raw result: float64 for the calculator, string for the translator.
	Value any
}

// Tool is a capability that recognises its own requests and executes them.
type Tool interface {
	Name() string
	Description() string
	Detect(text string) bool
	Execute(ctx context.Context, text string) (Output, error)
}

// ParseError is returned when no rule of a tool matches the input.
type ParseError struct {
	Tool     string
	Message  string
	Examples []string
}

func (e *ParseError) Error() string {
	if len(e.Examples) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s Supported examples: %s", e.Message, strings.Join(e.Examples, "; "))
}

func (e *ParseError) Unwrap() error { return ErrParseFailure }
