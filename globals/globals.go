// Package globals builds the named values and callables a template can
// reference.
//
// Globals are registered explicitly through a Builder, or discovered from an
// object's exported fields and methods with FromObject. Either way the result
// is an immutable, ordered set of entries that is bound to template function
// names at render time:
//
//	g, err := globals.NewBuilder().
//		Value("Package", "models").
//		Func("Title", strings.ToTitle).
//		Object(model).
//		Build()
//
// Constants are exposed as zero-argument functions, so a template refers to
// every global the same way: {{ Package }}, {{ Title Package }}.
package globals

import (
	"fmt"
	"reflect"

	"github.com/randalmurphal/codegen/naming"
)

// Kind distinguishes constants from callables.
type Kind int

const (
	// KindValue is a constant value.
	KindValue Kind = iota

	// KindFunc is a zero- or one-argument callable.
	KindFunc
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type entry struct {
	name  string
	kind  Kind
	value any
}

// Globals is an immutable, ordered set of named values and callables.
// A nil *Globals is valid and empty.
type Globals struct {
	entries []entry
}

// Len returns the number of globals.
func (g *Globals) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Names returns the original names in registration order.
func (g *Globals) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, len(g.entries))
	for i, e := range g.entries {
		names[i] = e.name
	}
	return names
}

// Kind reports the kind of the named global.
func (g *Globals) Kind(name string) (Kind, bool) {
	if g == nil {
		return 0, false
	}
	for _, e := range g.entries {
		if e.name == name {
			return e.kind, true
		}
	}
	return 0, false
}

// Bind returns the globals keyed by the names a template uses, applying the
// snake_case policy when snakeCase is true. Constants become zero-argument
// functions. Two globals that map to the same exposed name are reported as
// ErrNameConflict.
func (g *Globals) Bind(snakeCase bool) (map[string]any, error) {
	if g == nil {
		return map[string]any{}, nil
	}

	rename := naming.For(snakeCase)
	funcs := make(map[string]any, len(g.entries))
	origins := make(map[string]string, len(g.entries))

	for _, e := range g.entries {
		exposed := rename(e.name)
		if prev, ok := origins[exposed]; ok {
			return nil, fmt.Errorf("%w: %s and %s both map to %s", ErrNameConflict, prev, e.name, exposed)
		}
		origins[exposed] = e.name

		switch e.kind {
		case KindValue:
			funcs[exposed] = constant(e.value)
		default:
			funcs[exposed] = e.value
		}
	}

	return funcs, nil
}

func constant(v any) func() any {
	return func() any { return v }
}

// FromObject creates globals from the exported fields and methods of src.
// See Builder.Object.
func FromObject(src any) (*Globals, error) {
	return NewBuilder().Object(src).Build()
}

// FromMap creates globals from a map. See Builder.Map.
func FromMap(values map[string]any) (*Globals, error) {
	return NewBuilder().Map(values).Build()
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// checkSignature reports whether a function of type ft can be bound.
func checkSignature(ft reflect.Type) error {
	switch {
	case ft.Kind() != reflect.Func:
		return fmt.Errorf("%w: %s is not a function", ErrInvalidFunc, ft)
	case ft.IsVariadic():
		return fmt.Errorf("%w: %s is variadic", ErrInvalidFunc, ft)
	case ft.NumIn() > 1:
		return fmt.Errorf("%w: %s takes %d arguments, at most 1 allowed", ErrInvalidFunc, ft, ft.NumIn())
	case ft.NumOut() == 1:
		return nil
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
		return nil
	default:
		return fmt.Errorf("%w: %s must return a value, optionally followed by an error", ErrInvalidFunc, ft)
	}
}
