package razor

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

// ParseTemplate reads a template and splits it into the flat intermediate
// document: raw markup fragments interleaved with expression and code-block
// holes. Markup is not interpreted here at all; StructureMarkup turns the
// fragments into a proper element tree afterwards.
//
// The transition character is '@':
//
//	@@           a literal '@'
//	@{ ... }     a code block
//	@( ... )     an explicit expression
//	@name.field  an implicit expression (identifiers, dots, calls)
//
// Expressions compile eagerly; a compile failure becomes a diagnostic on
// the hole node, never a parse error.
func ParseTemplate(r io.Reader, name string) (*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	p := &templateParser{
		src:  string(src),
		file: name,
		line: 1,
		col:  1,
	}
	p.doc = &Node{Kind: KindDocument, Source: p.here()}
	p.parse()
	return p.doc, nil
}

type templateParser struct {
	src  string
	file string

	pos  int
	line int
	col  int

	doc *Node

	// lit accumulates the current literal markup run.
	lit     strings.Builder
	litSrc  Source
	litOpen bool
}

func (p *templateParser) here() Source {
	return Source{File: p.file, Span: Span{Offset: p.pos, Line: p.line, Column: p.col}}
}

func (p *templateParser) advance(n int) {
	end := p.pos + n
	for p.pos < end {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos += size
	}
}

func (p *templateParser) writeLit(s string) {
	if !p.litOpen {
		p.litOpen = true
		p.litSrc = p.here()
	}
	p.lit.WriteString(s)
}

func (p *templateParser) flushLit() {
	if !p.litOpen {
		return
	}
	text := p.lit.String()
	src := p.litSrc
	src.Span.Length = len(text)
	p.doc.Children = append(p.doc.Children, &Node{
		Kind:   KindRawMarkup,
		Text:   text,
		Source: src,
	})
	p.lit.Reset()
	p.litOpen = false
}

func (p *templateParser) parse() {
	for p.pos < len(p.src) {
		i := strings.IndexByte(p.src[p.pos:], '@')
		if i < 0 {
			p.writeLit(p.src[p.pos:])
			p.advance(len(p.src) - p.pos)
			break
		}
		if i > 0 {
			p.writeLit(p.src[p.pos : p.pos+i])
			p.advance(i)
		}

		rest := p.src[p.pos:]
		switch {
		case strings.HasPrefix(rest, "@@"):
			p.writeLit("@")
			p.advance(2)
		case strings.HasPrefix(rest, "@{"):
			p.flushLit()
			p.codeBlock()
		case strings.HasPrefix(rest, "@("):
			p.flushLit()
			p.explicitExpr()
		case len(rest) > 1 && isIdentStart(decodeRune(rest[1:])):
			p.flushLit()
			p.implicitExpr()
		default:
			// A lone '@' is literal text.
			p.writeLit("@")
			p.advance(1)
		}
	}
	p.flushLit()
}

func (p *templateParser) codeBlock() {
	src := p.here()
	p.advance(1) // '@'
	inner, ok := p.balanced('{', '}')
	n := &Node{Kind: KindCodeBlock, Text: inner, Source: src}
	if !ok {
		n.Diags = append(n.Diags, &Diag{Kind: DiagUnterminatedBlock, Source: src, Detail: "}"})
	}
	p.doc.Children = append(p.doc.Children, n)
}

func (p *templateParser) explicitExpr() {
	src := p.here()
	p.advance(1) // '@'
	inner, ok := p.balanced('(', ')')
	n := p.exprHole(inner, src)
	if !ok {
		n.Diags = append(n.Diags, &Diag{Kind: DiagUnterminatedBlock, Source: src, Detail: ")"})
	}
	p.doc.Children = append(p.doc.Children, n)
}

// implicitExpr scans an expression of the form name(.name | (...))* right
// after the transition character.
func (p *templateParser) implicitExpr() {
	src := p.here()
	p.advance(1) // '@'

	start := p.pos
	p.ident()
	for p.pos < len(p.src) {
		switch {
		case p.src[p.pos] == '.' && p.pos+1 < len(p.src) && isIdentStart(decodeRune(p.src[p.pos+1:])):
			p.advance(1)
			p.ident()
		case p.src[p.pos] == '(':
			p.balanced('(', ')')
		default:
			p.doc.Children = append(p.doc.Children, p.exprHole(p.src[start:p.pos], src))
			return
		}
	}
	p.doc.Children = append(p.doc.Children, p.exprHole(p.src[start:p.pos], src))
}

func (p *templateParser) ident() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentStart(r) && !unicode.IsDigit(r) {
			return
		}
		p.advance(size)
	}
}

// balanced consumes a delimited region starting at the opening rune and
// returns its inner text. Quoted strings inside the region are skipped so
// delimiters in string literals do not count. Returns ok=false when the
// closing delimiter is missing; the rest of the source is consumed.
func (p *templateParser) balanced(open, close byte) (string, bool) {
	p.advance(1) // opening delimiter
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				inner := p.src[start:p.pos]
				p.advance(1)
				return inner, true
			}
		case '"', '\'':
			p.quoted(c)
			continue
		}
		p.advance(1)
	}
	return p.src[start:], false
}

// quoted consumes a string literal including its quotes, honoring
// backslash escapes.
func (p *templateParser) quoted(quote byte) {
	p.advance(1)
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.advance(1)
		if c == '\\' && p.pos < len(p.src) {
			p.advance(1)
			continue
		}
		if c == quote {
			return
		}
	}
}

// exprHole builds an expression hole node, compiling the source eagerly.
func (p *templateParser) exprHole(src string, loc Source) *Node {
	loc.Span.Length = p.pos - loc.Span.Offset
	n := &Node{Kind: KindExpr, Text: src, Source: loc}
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		n.Diags = append(n.Diags, &Diag{Kind: DiagBadExpression, Source: loc, Detail: err.Error()})
		return n
	}
	n.Prog = prog
	return n
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func decodeRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
