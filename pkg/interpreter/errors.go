package interpreter

import (
	"errors"
	"fmt"
)

// ErrStepLimit is wrapped by the RuntimeError raised when a run exceeds
// Context.StepLimit.
var ErrStepLimit = errors.New("step limit exceeded")

// RuntimeError aborts a run. Line is the statement being executed, or 0 for
// nodes built without source positions.
type RuntimeError struct {
	Line    int
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func (e *Evaluator) errorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: e.line, Message: fmt.Sprintf(format, args...)}
}

func (e *Evaluator) wrapf(err error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: e.line, Message: fmt.Sprintf(format, args...), Err: err}
}
