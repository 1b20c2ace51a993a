package codegen

import (
	"runtime"
	"strings"

	"golang.org/x/text/language"

	"github.com/randalmurphal/codegen/splitter"
)

// Settings control one Generate call. The zero value and a nil *Settings are
// both valid.
type Settings struct {
	// NewLine terminates every emitted line.
	// Empty means the platform default: "\r\n" on Windows, "\n" elsewhere.
	NewLine string `json:"new_line,omitempty" yaml:"new_line,omitempty"`

	// IndentText, when non-empty, replaces each unit of template indentation.
	// When empty, indentation is kept as rendered.
	IndentText string `json:"indent_text,omitempty" yaml:"indent_text,omitempty"`

	// UseSnakeCase exposes globals under snake_case names.
	UseSnakeCase bool `json:"use_snake_case,omitempty" yaml:"use_snake_case,omitempty"`

	// Culture selects the locale of the number and format helpers.
	// The zero value is the locale-neutral culture.
	Culture language.Tag `json:"-" yaml:"-"`

	// SingleFileName, when non-empty, disables marker scanning and emits the
	// whole rendered text as one file with this name.
	SingleFileName string `json:"single_file_name,omitempty" yaml:"single_file_name,omitempty"`
}

// DefaultNewLine returns the platform line terminator.
func DefaultNewLine() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Validate checks the settings for values Generate cannot honor.
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}
	if s.SingleFileName != "" && strings.TrimSpace(s.SingleFileName) == "" {
		return invalidSettings("single file name is blank")
	}
	return nil
}

// resolved returns a copy with defaults applied.
func (s *Settings) resolved() Settings {
	var r Settings
	if s != nil {
		r = *s
	}
	if r.NewLine == "" {
		r.NewLine = DefaultNewLine()
	}
	return r
}

func (s Settings) splitOptions() splitter.Options {
	return splitter.Options{
		NewLine:        s.NewLine,
		IndentText:     s.IndentText,
		SingleFileName: s.SingleFileName,
	}
}
