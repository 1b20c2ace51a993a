// Package codegen generates named source files from a single template.
//
// A template is rendered once per call against a set of globals, and the
// rendered text is cut into files at marker lines. A marker line starts with
// two or more '=' characters followed by '>', and the rest of the line is the
// file name:
//
//	==> user.go
//	package {{ Package }}
//
//	type User struct{}
//	==> user_test.go
//	package {{ Package }}_test
//
// Text before the first marker is discarded. Each file body has trailing
// whitespace removed from every line, loses one leading blank line and all
// trailing blank lines, and optionally has its indentation re-expressed with
// Settings.IndentText.
//
// # Quick Start
//
//	tmpl, err := codegen.Parse(text)
//	if err != nil {
//		return err
//	}
//
//	g, err := globals.NewBuilder().Value("Package", "models").Build()
//	if err != nil {
//		return err
//	}
//
//	files, err := tmpl.Generate(g, &codegen.Settings{NewLine: "\n", IndentText: "\t"})
//	if err != nil {
//		return err
//	}
//	for _, f := range files {
//		fmt.Println(f.Name, len(f.Text))
//	}
//
// # Packages
//
//   - template: Go template parsing and rendering with late-bound functions
//   - globals: named values and callables exposed to templates
//   - naming: the member renamer shared by globals and rendering
//   - splitter: marker scanning and per-file normalization
//   - config: generation settings loaded from YAML or TOML files
//   - writer: planning and atomic commits of generated files
//
// Every failure of Generate is returned as an *Error whose message is the
// original diagnostic.
package codegen
