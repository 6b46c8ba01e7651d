package config

import (
	"errors"
	"fmt"
)

// Errors returned by pipeline loading and validation.
var (
	// ErrNoInput indicates the pipeline has no input path.
	ErrNoInput = errors.New("pipeline has no input path")

	// ErrNoOutput indicates the pipeline has no output path.
	ErrNoOutput = errors.New("pipeline has no output path")

	// ErrUnknownFormat indicates a format other than markup or json.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrUnknownOp indicates a step op the pipeline runner cannot execute.
	ErrUnknownOp = errors.New("unknown step op")

	// ErrInvalidStep indicates a step missing a field its op requires.
	ErrInvalidStep = errors.New("invalid step")
)

// ParseError represents an error while parsing a pipeline file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StepError wraps a validation or execution failure with the position
// of the step that caused it.
type StepError struct {
	// Index is the zero-based step position in the pipeline.
	Index int
	// Op is the step operation.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("step %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
