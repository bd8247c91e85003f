package agent

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCollaboratorFailure reports a failed or unusable language model call.
	ErrCollaboratorFailure = errors.New("collaborator failure")
	// ErrEmptyInput reports a blank user message.
	ErrEmptyInput = errors.New("user input is empty")
)

// TaskType tags a segment with the capability that should handle it.
type TaskType int

const (
	TaskGeneral TaskType = iota
	TaskMath
	TaskTranslation
)

func (t TaskType) String() string {
	switch t {
	case TaskMath:
		return "math"
	case TaskTranslation:
		return "translation"
	default:
		return "general"
	}
}

// Segment is one sub-task of a user request, in request order.
type Segment struct {
	Text string
	Type TaskType
}

// StepResult is the outcome of executing one segment.
// Display and Raw are set iff Err is nil.
type StepResult struct {
	Type        TaskType
	Description string
	Display     string
	Raw         any
	Err         error
}

func (r StepResult) Succeeded() bool { return r.Err == nil }

// ErrorMessage returns the failure text, or "" for a successful step.
func (r StepResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Responder is implemented by every chatbot tier.
type Responder interface {
	Respond(ctx context.Context, input string) string
}

// CollaboratorError wraps a language model failure at the executor boundary.
type CollaboratorError struct {
	Msg string
	Err error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM error: %v", e.Err)
	}
	return e.Msg
}

func (e *CollaboratorError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCollaboratorFailure, e.Err}
	}
	return []error{ErrCollaboratorFailure}
}
