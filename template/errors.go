package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrParse is returned when the template fails to parse.
	ErrParse = errors.New("template parse error")

	// ErrExecute is returned when template execution fails.
	ErrExecute = errors.New("template execution error")

	// ErrUndefined is returned when a template references a function name
	// that is neither built in nor supplied by the render context.
	ErrUndefined = errors.New("undefined name")
)
