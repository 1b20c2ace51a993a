package splitter

import "strings"

// indenter re-expresses leading whitespace using a different unit.
//
// The template's own unit is captured from the first indented line it sees
// and reused for every later line, across files. Each indenter is scoped to
// one Split call.
type indenter struct {
	target string
	unit   string
}

// convert rewrites the indentation of line. Only whole units are converted;
// leading whitespace narrower than one unit is left in place after them.
func (in *indenter) convert(line string) string {
	if in == nil {
		return line
	}

	width := len(line) - len(strings.TrimLeft(line, " \t"))
	if width == 0 {
		return line
	}
	if in.unit == "" {
		in.unit = line[:width]
	}

	level := width / len(in.unit)
	return strings.Repeat(in.target, level) + line[len(in.unit)*level:]
}
