package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/randalmurphal/codegen/naming"
)

// execBuiltins are the functions text/template always provides.
var execBuiltins = []string{
	"and", "call", "html", "index", "slice", "js", "len", "not", "or",
	"print", "printf", "println", "urlquery",
	"eq", "ge", "gt", "le", "lt", "ne",
}

var builtinNames = func() map[string]bool {
	names := map[string]bool{emitFunc: true}
	for _, name := range execBuiltins {
		names[name] = true
	}
	for name := range defaultFuncs() {
		names[name] = true
	}
	for name := range cultureFuncs(language.Und) {
		names[name] = true
	}
	return names
}()

// isBuiltin reports whether name resolves without any bound globals.
func isBuiltin(name string) bool {
	return builtinNames[name]
}

// defaultFuncs returns the built-in template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate":   truncate,
		"json":       toJSON,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
		"trim":       strings.TrimSpace,
		"split":      strings.Split,
		"join":       strings.Join,
		"replace":    strings.ReplaceAll,
		"contains":   strings.Contains,
		"hasPrefix":  strings.HasPrefix,
		"hasSuffix":  strings.HasSuffix,
		"default":    defaultValue,
		"indent":     indent,
		"wrap":       wrap,
		"pascalCase": pascalCase,
		"camelCase":  camelCase,
		"snakeCase":  naming.SnakeCase,
		"add":        add,
		"sub":        sub,
		"mul":        mul,
		"div":        div,
		"mod":        mod,
	}
}

// cultureFuncs returns the helpers whose output depends on the culture.
func cultureFuncs(tag language.Tag) template.FuncMap {
	p := message.NewPrinter(tag)
	return template.FuncMap{
		"number": func(v any) (string, error) {
			if _, _, _, err := toNumber(v); err != nil {
				return "", err
			}
			return p.Sprint(number.Decimal(v)), nil
		},
		"format": func(pattern string, args ...any) string {
			return p.Sprintf(pattern, args...)
		},
		"culture": func() string {
			return tag.String()
		},
	}
}

// truncate cuts a string to the specified maximum length.
// If the string is longer than maxLen, it is truncated and "..." is appended.
// For maxLen <= 3, no ellipsis is added (the string is simply cut).
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// toJSON converts a value to a pretty-printed JSON string.
// If marshaling fails, returns the value's default string representation.
func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// defaultValue returns the default if the value is nil or an empty string.
// For other types (including zero values like 0), the original value is returned.
func defaultValue(val, defaultVal any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}

// indent adds a prefix string to each line of the input.
func indent(s string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// wrap wraps text at the specified width, breaking on word boundaries.
// If width <= 0, the string is returned unchanged.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	var lineLen int

	words := strings.Fields(s)
	for _, word := range words {
		if lineLen+len(word) > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += len(word)
	}

	return result.String()
}

// pascalCase converts snake_case or camelCase to PascalCase.
// Examples: user_name → UserName, userName → UserName.
func pascalCase(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// camelCase converts snake_case or PascalCase to camelCase.
// Examples: user_name → userName, UserName → userName.
func camelCase(s string) string {
	pascal := []rune(pascalCase(s))
	if len(pascal) == 0 {
		return ""
	}
	pascal[0] = unicode.ToLower(pascal[0])
	return string(pascal)
}

var errNotNumber = errors.New("not a number")

// toNumber classifies v as an integer or a float.
func toNumber(v any) (n int64, f float64, isFloat bool, err error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), 0, false, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, float64(u), true, nil
		}
		return int64(u), 0, false, nil
	case reflect.Float32, reflect.Float64:
		return 0, rv.Float(), true, nil
	default:
		return 0, 0, false, fmt.Errorf("%w: %T", errNotNumber, v)
	}
}

type operands struct {
	ints   [2]int64
	floats [2]float64
	float  bool
}

func binary(a, b any) (operands, error) {
	var ops operands
	for i, v := range []any{a, b} {
		n, f, isFloat, err := toNumber(v)
		if err != nil {
			return ops, err
		}
		if isFloat {
			ops.float = true
			ops.floats[i] = f
			continue
		}
		ops.ints[i] = n
		ops.floats[i] = float64(n)
	}
	return ops, nil
}

func add(a, b any) (any, error) {
	ops, err := binary(a, b)
	if err != nil {
		return nil, err
	}
	if ops.float {
		return ops.floats[0] + ops.floats[1], nil
	}
	return int(ops.ints[0] + ops.ints[1]), nil
}

func sub(a, b any) (any, error) {
	ops, err := binary(a, b)
	if err != nil {
		return nil, err
	}
	if ops.float {
		return ops.floats[0] - ops.floats[1], nil
	}
	return int(ops.ints[0] - ops.ints[1]), nil
}

func mul(a, b any) (any, error) {
	ops, err := binary(a, b)
	if err != nil {
		return nil, err
	}
	if ops.float {
		return ops.floats[0] * ops.floats[1], nil
	}
	return int(ops.ints[0] * ops.ints[1]), nil
}

func div(a, b any) (any, error) {
	ops, err := binary(a, b)
	if err != nil {
		return nil, err
	}
	if ops.float {
		if ops.floats[1] == 0 {
			return nil, errors.New("division by zero")
		}
		return ops.floats[0] / ops.floats[1], nil
	}
	if ops.ints[1] == 0 {
		return nil, errors.New("division by zero")
	}
	return int(ops.ints[0] / ops.ints[1]), nil
}

func mod(a, b any) (any, error) {
	ops, err := binary(a, b)
	if err != nil {
		return nil, err
	}
	if ops.float {
		return nil, errors.New("mod requires integer operands")
	}
	if ops.ints[1] == 0 {
		return nil, errors.New("division by zero")
	}
	return int(ops.ints[0] % ops.ints[1]), nil
}
