package codegen

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/codegen/splitter"
	"github.com/randalmurphal/codegen/template"
)

// Sentinel errors for code generation. They are usually wrapped in *Error.
var (
	// ErrParse indicates malformed template source.
	ErrParse = template.ErrParse

	// ErrRender indicates a failure while evaluating the template.
	ErrRender = template.ErrExecute

	// ErrMissingFileName indicates a marker line without a file name.
	ErrMissingFileName = splitter.ErrMissingFileName

	// ErrDuplicateFileName indicates a file name used twice in one render.
	ErrDuplicateFileName = splitter.ErrDuplicateFileName

	// ErrUndefinedGlobal indicates a name the template calls that is neither
	// bound nor built in.
	ErrUndefinedGlobal = template.ErrUndefined

	// ErrInvalidSettings indicates settings rejected by Settings.Validate.
	ErrInvalidSettings = errors.New("invalid settings")
)

// Error is returned by Generate, Render and Check. Message is the original
// diagnostic, suitable for reporting verbatim.
type Error struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps err in an *Error, leaving an existing *Error untouched.
func newError(err error) error {
	if err == nil {
		return nil
	}
	var cgErr *Error
	if errors.As(err, &cgErr) {
		return err
	}
	return &Error{Message: err.Error(), Err: err}
}

func invalidSettings(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...)
}
