package splitter

import (
	"strings"
	"unicode"
)

// splitLines splits text into lines terminated by "\n", "\r\n" or "\r".
// A terminator at the end of text does not start another line, so "" and
// "a\n" yield zero and one lines respectively.
func splitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// trimEnd removes trailing whitespace from a line.
func trimEnd(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// isBlank reports whether line is empty or whitespace only.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// trimBlankLines drops one leading blank line and every trailing blank line.
func trimBlankLines(lines []string) []string {
	if len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// joinLines writes every line followed by newLine.
func joinLines(lines []string, newLine string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(newLine)
	}
	return b.String()
}
