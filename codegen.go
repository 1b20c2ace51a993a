package codegen

import (
	"log/slog"

	"github.com/randalmurphal/codegen/globals"
	"github.com/randalmurphal/codegen/splitter"
	"github.com/randalmurphal/codegen/template"
)

// OutputFile is one generated file.
type OutputFile = splitter.File

// Template is a parsed code-generation template.
// It is immutable and safe for concurrent use.
type Template struct {
	tmpl *template.Template
}

// Parse parses template text. Errors wrap ErrParse.
func Parse(text string) (*Template, error) {
	return ParseNamed(template.DefaultName, text)
}

// ParseNamed parses template text under a name used in diagnostics.
func ParseNamed(name, text string) (*Template, error) {
	tmpl, err := template.Parse(name, text)
	if err != nil {
		return nil, err
	}
	return &Template{tmpl: tmpl}, nil
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.tmpl.Name()
}

// Generate renders the template and splits the result into files.
// Both g and s may be nil.
//
// Files are returned in marker order. A render without markers yields no
// files and no error. Every failure is an *Error.
func (t *Template) Generate(g *globals.Globals, s *Settings) ([]OutputFile, error) {
	text, settings, err := t.render(g, s)
	if err != nil {
		return nil, err
	}

	files, err := splitter.Split(text, settings.splitOptions())
	if err != nil {
		return nil, newError(err)
	}

	slog.Debug("generated files",
		"template", t.Name(),
		"files", len(files),
		"single_file", settings.SingleFileName != "")

	return files, nil
}

// Render returns the rendered text before it is split into files.
func (t *Template) Render(g *globals.Globals, s *Settings) (string, error) {
	text, _, err := t.render(g, s)
	return text, err
}

// Check reports, without rendering, the names the template calls that g
// does not provide and that are not built in. The error wraps
// ErrUndefinedGlobal.
func (t *Template) Check(g *globals.Globals, s *Settings) error {
	if err := s.Validate(); err != nil {
		return newError(err)
	}
	funcs, err := g.Bind(s.resolved().UseSnakeCase)
	if err != nil {
		return newError(err)
	}
	return newError(t.tmpl.Check(funcs))
}

func (t *Template) render(g *globals.Globals, s *Settings) (string, Settings, error) {
	if err := s.Validate(); err != nil {
		return "", Settings{}, newError(err)
	}
	settings := s.resolved()

	funcs, err := g.Bind(settings.UseSnakeCase)
	if err != nil {
		return "", settings, newError(err)
	}

	text, err := t.tmpl.Render(template.Context{
		Funcs:   funcs,
		Culture: settings.Culture,
	})
	if err != nil {
		return "", settings, newError(err)
	}

	return text, settings, nil
}
