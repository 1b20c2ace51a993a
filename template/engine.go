package template

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"

	"golang.org/x/text/language"
)

// DefaultName is the template name used when none is given.
const DefaultName = "template"

// Template is a parsed template. Function names are not checked at parse
// time; they are resolved against the render Context instead.
//
// A Template is immutable and safe for concurrent Render calls.
type Template struct {
	name  string
	trees map[string]*parse.Tree
}

// Context carries everything a single render needs.
// A fresh text/template is built from it for every Render call.
type Context struct {
	// Funcs are the bound globals, keyed by the name the template uses.
	Funcs map[string]any

	// Culture selects the locale for the culture-aware helpers.
	// The zero value is the locale-neutral culture.
	Culture language.Tag
}

// Parse parses text into a Template. The name appears in diagnostics.
// An empty text is a valid template that renders to an empty string.
func Parse(name, text string) (*Template, error) {
	if name == "" {
		name = DefaultName
	}

	trees := make(map[string]*parse.Tree)
	tree := parse.New(name)
	tree.Mode = parse.SkipFuncCheck
	if _, err := tree.Parse(text, "", "", trees); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	for _, t := range trees {
		emitNil(t, t.Root)
	}

	return &Template{name: name, trees: trees}, nil
}

// Name returns the template name.
func (t *Template) Name() string {
	return t.name
}

// Render executes the template with the given context and returns the
// rendered text.
func (t *Template) Render(ctx Context) (out string, err error) {
	// Funcs panics on names that are not identifiers or values that are not
	// callable; report those as execution errors like any other bad global.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%w: %v", ErrExecute, r)
		}
	}()

	tmpl := template.New(t.name).
		Option("missingkey=zero").
		Funcs(defaultFuncs()).
		Funcs(cultureFuncs(ctx.Culture))
	if len(ctx.Funcs) > 0 {
		tmpl.Funcs(ctx.Funcs)
	}
	tmpl.Funcs(template.FuncMap{emitFunc: emit})

	for name, tree := range t.trees {
		if _, addErr := tmpl.AddParseTree(name, tree); addErr != nil {
			return "", fmt.Errorf("%w: %w", ErrExecute, addErr)
		}
	}

	// Dot has no fields, so .Name outside range or with is an error.
	var buf strings.Builder
	if execErr := tmpl.Execute(&buf, struct{}{}); execErr != nil {
		return "", fmt.Errorf("%w: %w", ErrExecute, execErr)
	}

	return buf.String(), nil
}

// Identifiers returns the function names the template calls that are not
// built in, sorted and de-duplicated. These are the names that must be
// supplied by the render context.
func (t *Template) Identifiers() []string {
	seen := make(map[string]bool)
	for _, tree := range t.trees {
		walk(tree.Root, func(ident string) {
			if !isBuiltin(ident) {
				seen[ident] = true
			}
		})
	}

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Check reports the identifiers the template calls that funcs does not
// provide. The returned error wraps ErrUndefined.
func (t *Template) Check(funcs map[string]any) error {
	var missing []string
	for _, name := range t.Identifiers() {
		if _, ok := funcs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUndefined, strings.Join(missing, ", "))
	}
	return nil
}

// emitFunc is appended to every printing action. It is installed after the
// bound globals, so a global with this name is ignored.
const emitFunc = "_emit"

// emit prints nil, including a missing key of a map[string]any, as an empty
// string instead of "<no value>".
func emit(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// emitNil appends emitFunc to the pipeline of every action that prints.
func emitNil(t *parse.Tree, node parse.Node) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			emitNil(t, child)
		}
	case *parse.ActionNode:
		if len(n.Pipe.Decl) > 0 {
			return
		}
		ident := parse.NewIdentifier(emitFunc).SetTree(t).SetPos(n.Pos)
		n.Pipe.Cmds = append(n.Pipe.Cmds, &parse.CommandNode{
			NodeType: parse.NodeCommand,
			Pos:      n.Pos,
			Args:     []parse.Node{ident},
		})
	case *parse.IfNode:
		emitNil(t, n.List)
		emitNil(t, n.ElseList)
	case *parse.RangeNode:
		emitNil(t, n.List)
		emitNil(t, n.ElseList)
	case *parse.WithNode:
		emitNil(t, n.List)
		emitNil(t, n.ElseList)
	}
}

// walk visits every identifier in the node tree.
func walk(node parse.Node, visit func(string)) {
	switch n := node.(type) {
	case nil:
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			walk(child, visit)
		}
	case *parse.ActionNode:
		walk(n.Pipe, visit)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			walk(cmd, visit)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			walk(arg, visit)
		}
	case *parse.ChainNode:
		walk(n.Node, visit)
	case *parse.IdentifierNode:
		visit(n.Ident)
	case *parse.IfNode:
		walkBranch(&n.BranchNode, visit)
	case *parse.RangeNode:
		walkBranch(&n.BranchNode, visit)
	case *parse.WithNode:
		walkBranch(&n.BranchNode, visit)
	case *parse.TemplateNode:
		walk(n.Pipe, visit)
	}
}

func walkBranch(n *parse.BranchNode, visit func(string)) {
	walk(n.Pipe, visit)
	walk(n.List, visit)
	walk(n.ElseList, visit)
}
