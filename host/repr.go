package host

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// bindingOrder returns the names in globals ordered by the first top-level
// statement that binds them: assignment targets, def, for and load. Uses
// inside function bodies, lambdas and comprehensions do not count. Names
// the walk cannot place sort last, by name.
func bindingOrder(file *syntax.File, globals starlark.StringDict) []string {
	first := make(map[string]int, len(globals))
	bind := func(name string) {
		if _, seen := first[name]; !seen {
			first[name] = len(first)
		}
	}
	syntax.Walk(file, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.AssignStmt:
			bindTargets(n.LHS, bind)
		case *syntax.ForStmt:
			bindTargets(n.Vars, bind)
		case *syntax.DefStmt:
			bind(n.Name.Name)
			return false
		case *syntax.LoadStmt:
			for _, id := range n.To {
				bind(id.Name)
			}
		case *syntax.LambdaExpr, *syntax.Comprehension:
			return false
		}
		return true
	})

	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, iok := first[names[i]]
		pj, jok := first[names[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// bindTargets binds every identifier in an assignment target list.
func bindTargets(lhs syntax.Expr, bind func(string)) {
	switch lhs := lhs.(type) {
	case *syntax.Ident:
		bind(lhs.Name)
	case *syntax.ParenExpr:
		bindTargets(lhs.X, bind)
	case *syntax.TupleExpr:
		for _, x := range lhs.List {
			bindTargets(x, bind)
		}
	case *syntax.ListExpr:
		for _, x := range lhs.List {
			bindTargets(x, bind)
		}
	}
}

// maxReprDepth bounds container nesting; deeper values render as "...".
const maxReprDepth = 64

// reprBindings renders bindings as a Python dict literal: {'x': 2}.
func reprBindings(names []string, globals starlark.StringDict) string {
	p := newReprPrinter()
	p.b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(pyQuote(name))
		p.b.WriteString(": ")
		p.write(globals[name])
	}
	p.b.WriteByte('}')
	return p.b.String()
}

// Repr renders a single value the way the host's Python console would.
func Repr(v starlark.Value) string {
	p := newReprPrinter()
	p.write(v)
	return p.b.String()
}

// reprPrinter tracks the mutable containers being rendered so a
// self-referencing value prints [...] or {...} instead of recursing.
type reprPrinter struct {
	b      strings.Builder
	active map[starlark.Value]bool
	depth  int
}

func newReprPrinter() *reprPrinter {
	return &reprPrinter{active: make(map[starlark.Value]bool)}
}

// enter marks v as being rendered. It reports false when v is already on
// the stack or the depth cap is reached; the caller then writes elided.
func (p *reprPrinter) enter(v starlark.Value, elided string) bool {
	if p.active[v] || p.depth >= maxReprDepth {
		p.b.WriteString(elided)
		return false
	}
	p.active[v] = true
	p.depth++
	return true
}

func (p *reprPrinter) leave(v starlark.Value) {
	delete(p.active, v)
	p.depth--
}

func (p *reprPrinter) write(v starlark.Value) {
	b := &p.b
	switch v := v.(type) {
	case nil:
		b.WriteString("None")
	case starlark.String:
		b.WriteString(pyQuote(string(v)))
	case *starlark.List:
		if !p.enter(v, "[...]") {
			return
		}
		defer p.leave(v)
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(v.Index(i))
		}
		b.WriteByte(']')
	case starlark.Tuple:
		// Tuples are immutable and cannot hold themselves; only depth applies.
		if p.depth >= maxReprDepth {
			b.WriteString("(...)")
			return
		}
		p.depth++
		defer func() { p.depth-- }()
		b.WriteByte('(')
		for i, elem := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(elem)
		}
		if len(v) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case *starlark.Dict:
		if !p.enter(v, "{...}") {
			return
		}
		defer p.leave(v)
		b.WriteByte('{')
		for i, item := range v.Items() {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(item[0])
			b.WriteString(": ")
			p.write(item[1])
		}
		b.WriteByte('}')
	case *starlark.Set:
		if v.Len() == 0 {
			b.WriteString("set()")
			return
		}
		if !p.enter(v, "{...}") {
			return
		}
		defer p.leave(v)
		b.WriteByte('{')
		iter := v.Iterate()
		defer iter.Done()
		var elem starlark.Value
		for i := 0; iter.Next(&elem); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(elem)
		}
		b.WriteByte('}')
	case *starlark.Function:
		fmt.Fprintf(b, "<function %s>", v.Name())
	case *starlark.Builtin:
		fmt.Fprintf(b, "<built-in function %s>", v.Name())
	default:
		b.WriteString(v.String())
	}
}

// pyQuote quotes s like Python's str.__repr__: single quotes unless the
// text contains a single quote and no double quote.
func pyQuote(s string) string {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == unicode.ReplacementChar:
			b.WriteString(`�`)
		case !unicode.IsPrint(r):
			switch {
			case r < 0x100:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r < 0x10000:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// ReprStrings renders names as a Python list literal: ['A', 'B'].
func ReprStrings(names []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pyQuote(name))
	}
	b.WriteByte(']')
	return b.String()
}
