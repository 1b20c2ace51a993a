package splitter

import (
	"regexp"
	"strings"
)

// markerRegex matches the marker token at the start of a line.
var markerRegex = regexp.MustCompile(`^==+>`)

// FindMarker reports whether line is a file marker and returns the literal
// marker token it starts with (e.g. "==>" or "====>").
func FindMarker(line string) (string, bool) {
	token := markerRegex.FindString(line)
	return token, token != ""
}

// markerName returns the file name following token on a marker line.
func markerName(line, token string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, token))
}
