package splitter

import (
	"fmt"
	"strings"
)

// File is one named output document.
type File struct {
	// Name is the file name from the marker line, trimmed. Never empty.
	Name string

	// Text is the normalized body; every line ends with the configured
	// newline, and an empty body is "".
	Text string
}

// Options control how a rendered text is split and normalized.
type Options struct {
	// NewLine terminates every emitted line. Defaults to "\n".
	NewLine string

	// IndentText, when non-empty, replaces each unit of template indentation.
	// When empty, indentation is kept verbatim.
	IndentText string

	// SingleFileName, when non-empty, disables marker scanning: the whole text
	// becomes one file with this name.
	SingleFileName string
}

// Split splits text into files at marker lines and normalizes each body.
// Files are returned in the order their markers appear. A text without
// markers yields no files.
func Split(text string, opts Options) ([]File, error) {
	newLine := opts.NewLine
	if newLine == "" {
		newLine = "\n"
	}

	var in *indenter
	if opts.IndentText != "" {
		in = &indenter{target: opts.IndentText}
	}

	lines := splitLines(text)

	if opts.SingleFileName != "" {
		return []File{{
			Name: opts.SingleFileName,
			Text: joinLines(collect(lines, in), newLine),
		}}, nil
	}

	// Skip the prologue up to the first marker, which fixes the token.
	start := -1
	var token string
	for i, line := range lines {
		if t, ok := FindMarker(line); ok {
			start, token = i, t
			break
		}
	}
	if start < 0 {
		return nil, nil
	}

	var files []File
	seen := make(map[string]bool)

	for i := start; i < len(lines); {
		name := markerName(lines[i], token)
		if name == "" {
			return nil, ErrMissingFileName
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFileName, name)
		}
		seen[key] = true

		end := i + 1
		for end < len(lines) && !strings.HasPrefix(lines[end], token) {
			end++
		}

		files = append(files, File{
			Name: name,
			Text: joinLines(collect(lines[i+1:end], in), newLine),
		})
		i = end
	}

	return files, nil
}

// collect trims, re-indents and blank-trims the body lines of one file.
func collect(lines []string, in *indenter) []string {
	body := make([]string, 0, len(lines))
	for _, line := range lines {
		body = append(body, in.convert(trimEnd(line)))
	}
	return trimBlankLines(body)
}
