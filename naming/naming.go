// Package naming maps Go member names to the names templates see.
//
// The same policy is applied when globals are bound and when the renderer
// resolves them, so a name exposed by one side is always found by the other.
package naming

import (
	"strings"
	"unicode"
)

// Renamer maps an original member name to its exposed name.
type Renamer func(name string) string

// Identity exposes names unchanged.
func Identity(name string) string { return name }

// For returns the renamer for the given policy.
func For(snakeCase bool) Renamer {
	if snakeCase {
		return SnakeCase
	}
	return Identity
}

// Rename applies the policy selected by snakeCase to name.
func Rename(name string, snakeCase bool) string {
	return For(snakeCase)(name)
}

// SnakeCase converts PascalCase or camelCase to snake_case.
// Examples: UserName → user_name, userID → user_id, HTTPServer → http_server.
func SnakeCase(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}

		// Break before an uppercase letter that starts a new word: after a
		// lowercase letter or digit, or at the end of an acronym (HTTPServer).
		if i > 0 && runes[i-1] != '_' {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				b.WriteRune('_')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
