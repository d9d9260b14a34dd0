package razor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
)

// EmitGo generates Go source that renders the structured document through
// a render builder. Tags the registry classifies as components emit
// OpenComponent/Param/CloseComponent calls, with child content captured in
// a deferred closure opened on the first child; everything else emits plain
// element calls. The generated function takes the outermost builder as its
// only argument; the builder runtime supplies Text, Value, Attr, element
// and component calls, and str for value coercion.
func EmitGo(doc *Node, reg ComponentRegistry, funcName string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	e := &emitter{reg: reg, targets: []string{builderName(0)}}
	e.scopes = NewScopeStack(e)

	e.printf("func %s(%s *Builder) {", funcName, builderName(0))
	e.indent++
	e.scopes.OpenScope("", false)
	for _, c := range doc.Children {
		e.emitNode(c)
	}
	e.scopes.CloseScope()
	e.indent--
	e.printf("}")
	return e.buf.String(), nil
}

type emitter struct {
	buf     strings.Builder
	indent  int
	scopes  *ScopeStack
	reg     ComponentRegistry
	targets []string
}

var _ ClosureWriter = (*emitter)(nil)

func (e *emitter) target() string {
	return e.targets[len(e.targets)-1]
}

func (e *emitter) printf(format string, args ...any) {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteByte('\t')
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

// OpenClosure begins capturing child content for a component scope. It is
// called by the scope stack just before the scope's first child emits.
func (e *emitter) OpenClosure(target string) {
	e.printf("%s.ChildContent(func(%s *Builder) {", e.target(), target)
	e.targets = append(e.targets, target)
	e.indent++
}

// CloseClosure ends the capture opened for target.
func (e *emitter) CloseClosure(target string) {
	e.targets = e.targets[:len(e.targets)-1]
	e.indent--
	e.printf("})")
}

func (e *emitter) emitNode(n *Node) {
	switch n.Kind {
	case KindRawMarkup:
		e.scopes.IncrementChildCount()
		e.printf("%s.Text(%q)", e.target(), n.Text)
	case KindExpr:
		e.scopes.IncrementChildCount()
		e.printf("%s.Value(%s)", e.target(), n.Text)
	case KindCodeBlock:
		// Statements run in place; they are not children of the scope.
		for _, line := range strings.Split(strings.TrimSpace(n.Text), "\n") {
			e.printf("%s", strings.TrimSpace(line))
		}
	case KindElement:
		if e.reg != nil && e.reg.IsComponent(n.Tag) {
			e.emitComponent(n)
		} else {
			e.emitElement(n)
		}
	case KindConstruct:
		// Orphans were lowered before emission; what survives is a
		// component.
		e.emitComponent(n)
	case KindFragment:
		for _, c := range n.Children {
			e.emitNode(c)
		}
	default:
		panic(internalf("emit", "unexpected %s node during emission", n.Kind))
	}
}

func (e *emitter) emitElement(n *Node) {
	e.scopes.IncrementChildCount()
	attrs, body := n.SplitChildren()
	e.printf("%s.OpenElement(%q)", e.target(), n.Tag)
	for _, a := range attrs {
		e.printf("%s.Attr(%q, %s)", e.target(), a.AttrName, e.valueExpr(a))
	}
	e.scopes.OpenScope(n.Tag, false)
	for _, c := range body {
		e.emitNode(c)
	}
	e.scopes.CloseScope()
	e.printf("%s.CloseElement()", e.target())
}

func (e *emitter) emitComponent(n *Node) {
	e.scopes.IncrementChildCount()
	attrs, body := n.SplitChildren()
	e.printf("%s.OpenComponent(%q)", e.target(), n.Tag)
	for _, a := range attrs {
		e.printf("%s.Param(%q, %s)", e.target(), paramName(a.AttrName), e.valueExpr(a))
	}
	e.scopes.OpenScope(n.Tag, true)
	for _, c := range body {
		e.emitNode(c)
	}
	e.scopes.CloseScope()
	e.printf("%s.CloseComponent()", e.target())
}

// valueExpr renders an attribute value subtree as a Go expression.
func (e *emitter) valueExpr(a *Node) string {
	parts := a.valueParts()
	if len(parts) == 0 {
		return `""`
	}
	exprs := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part.Kind {
		case KindRawMarkup:
			exprs = append(exprs, fmt.Sprintf("%q", part.Text))
		case KindExpr:
			if len(parts) == 1 {
				exprs = append(exprs, part.Text)
			} else {
				exprs = append(exprs, fmt.Sprintf("str(%s)", part.Text))
			}
		default:
			panic(internalf("emit", "unexpected %s in attribute value", part.Kind))
		}
	}
	return strings.Join(exprs, " + ")
}

// paramName maps an attribute name like "on-click" or "maxItems" to the
// component parameter it sets.
func paramName(attr string) string {
	var words []string
	for _, field := range strings.FieldsFunc(attr, isNameSep) {
		words = append(words, camelcase.Split(field)...)
	}
	var sb strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(w[size:])
	}
	return sb.String()
}

func isNameSep(r rune) bool {
	return r == '-' || r == '_' || r == ':' || r == '.'
}
