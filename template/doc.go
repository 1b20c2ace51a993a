// Package template renders code-generation templates written in Go template
// syntax.
//
// Templates are parsed once, before the names they call are known. Function
// names are resolved when the template is rendered, against the built-in
// helpers plus whatever the caller binds in the render Context. Referencing a
// name that is bound nowhere is an execution error, not an empty string.
//
// # Example
//
//	tmpl, err := template.Parse("model", "==> {{ snakeCase Name }}.go\npackage {{ Package }}\n")
//	if err != nil {
//		return err
//	}
//	text, err := tmpl.Render(template.Context{
//		Funcs: map[string]any{
//			"Name":    func() string { return "UserAccount" },
//			"Package": func() string { return "models" },
//		},
//	})
//
// # Built-in Functions
//
// String helpers:
//
//   - upper, lower, trim, split, join, replace, contains, hasPrefix, hasSuffix
//   - truncate(s string, maxLen int) string - Cut string to max length with ellipsis
//   - indent(s string, spaces int) string - Add spaces to each line
//   - wrap(s string, width int) string - Wrap text at width
//   - json(v any) string - Convert value to pretty-printed JSON
//   - default(val, defaultVal any) any - Return default if val is nil/empty
//   - pascalCase, camelCase, snakeCase - Identifier case conversion
//
// Arithmetic helpers: add, sub, mul, div, mod.
//
// Culture-aware helpers use the Context's Culture:
//
//   - number(v any) string - Format a number with the culture's separators
//   - format(pattern string, args ...any) string - Localized Sprintf
//   - culture() string - The BCP 47 tag of the culture
//
// Names bound in Context.Funcs take precedence over built-in helpers.
package template
