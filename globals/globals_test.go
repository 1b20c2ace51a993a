package globals

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Label   string
	Count   int
	private string
}

func (s sample) Number() int { return 42 }

func (s sample) Triple(value int) float64 { return float64(value * value * value) }

func (s *sample) Increment() int {
	s.Count++
	return s.Count
}

func (s sample) Lookup(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	return strings.ToUpper(key), nil
}

func (s sample) TwoArgs(a, b int) int { return a + b }

func (s sample) NoResult() {}

func (s sample) String() string { return "sample" }

func call(t *testing.T, fn any, args ...any) any {
	t.Helper()
	switch f := fn.(type) {
	case func() any:
		require.Empty(t, args)
		return f()
	case func() (any, error):
		v, err := f()
		require.NoError(t, err)
		return v
	case func() int:
		return f()
	case func(int) float64:
		return f(args[0].(int))
	default:
		t.Fatalf("unexpected callable type %T", fn)
		return nil
	}
}

func TestBuilder_ValueAndFunc(t *testing.T) {
	g, err := NewBuilder().
		Value("Package", "models").
		Func("Triple", func(v int) float64 { return float64(v * v * v) }).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"Package", "Triple"}, g.Names())

	kind, ok := g.Kind("Package")
	require.True(t, ok)
	assert.Equal(t, KindValue, kind)

	kind, ok = g.Kind("Triple")
	require.True(t, ok)
	assert.Equal(t, KindFunc, kind)

	_, ok = g.Kind("Missing")
	assert.False(t, ok)

	funcs, err := g.Bind(false)
	require.NoError(t, err)
	assert.Equal(t, "models", call(t, funcs["Package"]))
	assert.Equal(t, float64(27), call(t, funcs["Triple"], 3))
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder) *Builder
		wantErr error
	}{
		{
			name:    "empty name",
			build:   func(b *Builder) *Builder { return b.Value("", 1) },
			wantErr: ErrInvalidName,
		},
		{
			name:    "name with dash",
			build:   func(b *Builder) *Builder { return b.Value("my-name", 1) },
			wantErr: ErrInvalidName,
		},
		{
			name:    "name starting with digit",
			build:   func(b *Builder) *Builder { return b.Value("1st", 1) },
			wantErr: ErrInvalidName,
		},
		{
			name:    "duplicate name",
			build:   func(b *Builder) *Builder { return b.Value("A", 1).Value("A", 2) },
			wantErr: ErrDuplicateName,
		},
		{
			name:    "two arguments",
			build:   func(b *Builder) *Builder { return b.Func("Add", func(a, b int) int { return a + b }) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "variadic",
			build:   func(b *Builder) *Builder { return b.Func("Join", func(s ...string) string { return "" }) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "no result",
			build:   func(b *Builder) *Builder { return b.Func("Nothing", func() {}) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "second result not error",
			build:   func(b *Builder) *Builder { return b.Func("Pair", func() (int, int) { return 1, 2 }) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "not a function",
			build:   func(b *Builder) *Builder { return b.Func("NotFunc", 42) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "nil function",
			build:   func(b *Builder) *Builder { return b.Func("Nil", nil) },
			wantErr: ErrInvalidFunc,
		},
		{
			name:    "nil object",
			build:   func(b *Builder) *Builder { return b.Object((*sample)(nil)) },
			wantErr: ErrInvalidSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build(NewBuilder()).Build()
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuilder_CollectsAllErrors(t *testing.T) {
	_, err := NewBuilder().Value("", 1).Func("F", 3).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, err, ErrInvalidFunc)
}

func TestFromObject(t *testing.T) {
	src := &sample{Label: "widget", private: "hidden"}
	g, err := FromObject(src)
	require.NoError(t, err)

	names := g.Names()
	assert.Equal(t, []string{"Label", "Count", "Increment", "Lookup", "Number", "Triple"}, names)
	assert.NotContains(t, names, "String")
	assert.NotContains(t, names, "TwoArgs")
	assert.NotContains(t, names, "NoResult")
	assert.NotContains(t, names, "private")

	funcs, err := g.Bind(false)
	require.NoError(t, err)

	assert.Equal(t, "widget", call(t, funcs["Label"]))
	assert.Equal(t, 42, call(t, funcs["Number"]))
	assert.Equal(t, float64(74088), call(t, funcs["Triple"], 42))

	// Methods are bound to the source and fields are read on each call.
	increment := funcs["Increment"].(func() int)
	assert.Equal(t, 1, increment())
	assert.Equal(t, 2, increment())
	assert.Equal(t, 2, call(t, funcs["Count"]))

	lookup := funcs["Lookup"].(func(string) (string, error))
	got, err := lookup("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", got)
}

func TestFromObject_ValueReceiverOnly(t *testing.T) {
	g, err := FromObject(sample{Label: "copy"})
	require.NoError(t, err)

	// Pointer-receiver methods are not in the method set of a value.
	assert.NotContains(t, g.Names(), "Increment")
	assert.Contains(t, g.Names(), "Number")
}

func TestFromMap(t *testing.T) {
	g, err := FromMap(map[string]any{
		"Zeta":  "last",
		"Alpha": 1,
		"Upper": strings.ToUpper,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Upper", "Zeta"}, g.Names())

	kind, _ := g.Kind("Upper")
	assert.Equal(t, KindFunc, kind)
	kind, _ = g.Kind("Alpha")
	assert.Equal(t, KindValue, kind)
}

func TestBind_SnakeCase(t *testing.T) {
	g, err := FromObject(sample{})
	require.NoError(t, err)

	funcs, err := g.Bind(true)
	require.NoError(t, err)

	assert.Contains(t, funcs, "number")
	assert.Contains(t, funcs, "triple")
	assert.Contains(t, funcs, "label")
	assert.NotContains(t, funcs, "Number")
}

func TestBind_NameConflict(t *testing.T) {
	g, err := NewBuilder().Value("UserName", 1).Value("user_name", 2).Build()
	require.NoError(t, err)

	_, err = g.Bind(false)
	require.NoError(t, err)

	_, err = g.Bind(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameConflict)
	assert.Contains(t, err.Error(), "user_name")
}

func TestBind_Nil(t *testing.T) {
	var g *Globals
	funcs, err := g.Bind(true)
	require.NoError(t, err)
	assert.Empty(t, funcs)
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Names())
}

func TestBuild_IsImmutable(t *testing.T) {
	b := NewBuilder().Value("A", 1)
	g, err := b.Build()
	require.NoError(t, err)

	b.Value("B", 2)
	assert.Equal(t, 1, g.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "func", KindFunc.String())
	assert.Equal(t, fmt.Sprintf("Kind(%d)", 7), Kind(7).String())
}
