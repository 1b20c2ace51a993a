package globals

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"unicode"
)

// skippedMethods are formatting and identity methods that are never exposed.
var skippedMethods = map[string]bool{
	"String":   true,
	"GoString": true,
	"Error":    true,
}

// Builder accumulates globals. Registration errors are collected and
// returned together by Build, so calls can be chained.
type Builder struct {
	entries []entry
	names   map[string]bool
	errs    []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]bool)}
}

// Value registers a constant. Templates read it as {{ name }}.
func (b *Builder) Value(name string, v any) *Builder {
	b.add(name, KindValue, v)
	return b
}

// Func registers a callable. fn must take zero or one argument and return a
// value, optionally followed by an error.
func (b *Builder) Func(name string, fn any) *Builder {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || (rv.Kind() == reflect.Func && rv.IsNil()) {
		b.errs = append(b.errs, fmt.Errorf("%w: %s is nil", ErrInvalidFunc, name))
		return b
	}
	if err := checkSignature(rv.Type()); err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return b
	}
	b.add(name, KindFunc, fn)
	return b
}

// Map registers every entry of values in name order. Function values are
// registered with Func, everything else with Value.
func (b *Builder) Map(values map[string]any) *Builder {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := values[name]
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			b.Func(name, v)
			continue
		}
		b.Value(name, v)
	}
	return b
}

// Object registers the exported members of src.
//
// Exported struct fields become zero-argument getters that read the field
// when the template calls them, so a pointer source reflects later changes.
// Exported methods with a bindable signature become callables bound to src.
// String, GoString and Error are never exposed; other methods with an
// unsupported signature are skipped.
func (b *Builder) Object(src any) *Builder {
	rv := reflect.ValueOf(src)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		b.errs = append(b.errs, fmt.Errorf("%w: nil object", ErrInvalidSource))
		return b
	}

	local := make(map[string]bool)

	sv := reflect.Indirect(rv)
	if sv.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(sv.Type()) {
			if !field.IsExported() || field.Anonymous {
				continue
			}
			if _, isMethod := rv.Type().MethodByName(field.Name); isMethod {
				continue
			}
			local[field.Name] = true
			b.add(field.Name, KindFunc, fieldGetter(sv, field.Index))
		}
	}

	rt := rv.Type()
	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() || skippedMethods[method.Name] || local[method.Name] {
			continue
		}
		bound := rv.Method(i)
		if err := checkSignature(bound.Type()); err != nil {
			slog.Debug("skipping method with unsupported signature",
				slog.String("method", method.Name),
				slog.String("type", bound.Type().String()))
			continue
		}
		b.add(method.Name, KindFunc, bound.Interface())
	}

	return b
}

// Build returns the accumulated globals, or every registration error joined.
func (b *Builder) Build() (*Globals, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	entries := make([]entry, len(b.entries))
	copy(entries, b.entries)
	return &Globals{entries: entries}, nil
}

func (b *Builder) add(name string, kind Kind, v any) {
	if !isIdentifier(name) {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrInvalidName, name))
		return
	}
	if b.names[name] {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateName, name))
		return
	}
	b.names[name] = true
	b.entries = append(b.entries, entry{name: name, kind: kind, value: v})
}

func fieldGetter(sv reflect.Value, index []int) func() (any, error) {
	return func() (any, error) {
		field, err := sv.FieldByIndexErr(index)
		if err != nil {
			return nil, err
		}
		return field.Interface(), nil
	}
}

// isIdentifier reports whether name can be referenced from a template.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
