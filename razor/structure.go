package razor

import (
	"strings"
)

const whitespace = " \t\r\n\f"

// voidElements are tags that never take children and close implicitly.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// StructureMarkup rebuilds proper element and attribute nesting for every
// container in the tree that still holds raw markup fragments. The walk is
// post-order: a container is structured only after all of its children are,
// so a parent never sees unresolved structure below it.
//
// Mismatched closing tags become diagnostics on the affected element and do
// not stop the pass. A container whose markup is not balanced once holes
// are ignored violates the upstream parser's contract and aborts the
// document with an *InternalError.
func StructureMarkup(doc *Node) error {
	return structureWalk(doc)
}

func structureWalk(n *Node) error {
	switch n.Kind {
	case KindRawMarkup, KindExpr, KindCodeBlock:
		return nil
	case KindAttribute:
		// Raw children of an attribute are value text, not markup.
		return nil
	}

	hasRaw := false
	for _, c := range n.Children {
		if c.Kind == KindRawMarkup {
			hasRaw = true
			continue
		}
		if err := structureWalk(c); err != nil {
			return err
		}
	}
	if !hasRaw {
		return nil
	}

	kids, err := structureChildren(n)
	if err != nil {
		return err
	}
	n.Children = kids
	return nil
}

// pendingHole is a non-markup node that arrived while a start tag was still
// open across fragments. The offset locates it within the carried tag text
// so it can be spliced into the attribute value it interrupted.
type pendingHole struct {
	node   *Node
	offset int
}

// structurer reconciles the flat children of one container into a tree.
// The stack supplies the tree structure the flat token stream lacks; the
// attribute-hole buffer and the carried remainder thread non-markup content
// through tag boundaries the tokenizer cannot see across.
type structurer struct {
	// stack of open elements; stack[0] is a synthetic bottom frame standing
	// in for the container itself.
	stack []*Node

	// attrHoles buffers attribute nodes seen since the last start tag; they
	// attach to the next element opened.
	attrHoles []*Node

	// pending holds value holes waiting for their split start tag to close.
	pending []pendingHole

	// remainder is tag text left unscanned at the end of a fragment, plus
	// the source position where it starts.
	remainder    string
	remainderSrc Source
}

func structureChildren(container *Node) ([]*Node, error) {
	bottom := &Node{Kind: KindFragment}
	s := &structurer{stack: []*Node{bottom}}

	for _, child := range container.Children {
		switch {
		case child.Kind == KindRawMarkup:
			if err := s.scanFragment(child); err != nil {
				return nil, err
			}
		case child.Kind == KindAttribute:
			s.attrHoles = append(s.attrHoles, child)
		case s.remainder != "":
			// A hole inside a split start tag belongs to the attribute
			// value it interrupts.
			s.pending = append(s.pending, pendingHole{node: child, offset: len(s.remainder)})
		default:
			s.appendChild(child)
		}
	}

	if len(s.stack) != 1 {
		return nil, internalf("structure", "unclosed <%s> at end of container: markup balance contract broken", s.top().Tag)
	}
	if s.remainder != "" {
		return nil, internalf("structure", "unterminated markup %q at end of container", s.remainder)
	}
	if len(s.attrHoles) != 0 {
		return nil, internalf("structure", "%d attribute holes with no element to attach to", len(s.attrHoles))
	}
	return bottom.Children, nil
}

func (s *structurer) top() *Node {
	return s.stack[len(s.stack)-1]
}

func (s *structurer) appendChild(n *Node) {
	t := s.top()
	t.Children = append(t.Children, n)
}

// scanFragment tokenizes one raw markup fragment, prefixed with any tag
// text carried over from the previous fragment.
func (s *structurer) scanFragment(frag *Node) error {
	carried := len(s.remainder)
	fed := s.remainder + frag.Text
	s.remainder = ""

	toks, consumed, err := scanMarkup(fed)
	if err != nil {
		return err
	}
	if consumed < len(fed) {
		if consumed >= carried {
			s.remainderSrc = frag.Source.Advance(frag.Text, consumed-carried)
		}
		s.remainder = fed[consumed:]
	}

	src := func(tok Token) Source {
		if tok.Offset >= carried {
			return frag.Source.Advance(frag.Text, tok.Offset-carried)
		}
		return s.remainderSrc
	}

	for _, tok := range toks {
		if err := s.handleToken(tok, src(tok)); err != nil {
			return err
		}
	}

	// Holes recorded against the carried tag must have been absorbed by the
	// start tag that completed in this fragment.
	if len(s.pending) > 0 && consumed > 0 {
		return internalf("structure", "embedded hole not absorbed by a start tag")
	}
	return nil
}

func (s *structurer) handleToken(tok Token, src Source) error {
	switch tok.Type {
	case TextToken:
		if len(s.stack) == 1 && strings.TrimLeft(tok.Text, whitespace) == "" {
			// Whitespace between top-level constructs is not content.
			return nil
		}
		s.appendChild(&Node{Kind: KindRawMarkup, Text: tok.Text, Source: src})
		return nil
	case StartTagToken:
		return s.openElement(tok, src)
	case EndTagToken:
		return s.closeElement(tok, src)
	case CommentToken, EndOfInputToken:
		// Comments are not represented in the tree.
		return nil
	}
	return internalf("structure", "unrecognized token type %d", tok.Type)
}

func (s *structurer) openElement(tok Token, src Source) error {
	el := &Node{Kind: KindElement, Tag: tok.Name, Source: src}
	s.appendChild(el)
	s.stack = append(s.stack, el)

	// Literal attributes first, in written order, with any pending holes
	// spliced into the value they interrupted.
	for _, at := range tok.Attrs {
		attr := &Node{Kind: KindAttribute, AttrName: at.Name, Source: src}
		attr.Children = []*Node{s.attrValue(tok, at, src, attr)}
		el.Children = append(el.Children, attr)
	}

	// Then the buffered attribute holes, in the order they were seen.
	el.Children = append(el.Children, s.attrHoles...)
	s.attrHoles = nil

	// A pending hole that landed inside the tag but outside every attribute
	// value has no attribute to join. It is kept as leading body content and
	// flagged on the element.
	rest := s.pending[:0]
	for _, ph := range s.pending {
		if ph.offset < tok.Offset || ph.offset > tok.Offset+tok.Length {
			rest = append(rest, ph)
			continue
		}
		el.Diags = append(el.Diags, &Diag{
			Kind:   DiagMisplacedExpression,
			Source: ph.node.Source,
			Detail: ph.node.Text,
		})
		el.Children = append(el.Children, ph.node)
	}
	s.pending = rest

	if tok.SelfClosing || voidElements[strings.ToLower(tok.Name)] {
		s.stack = s.stack[:len(s.stack)-1]
	}
	return nil
}

// attrValue builds the value subtree for one literal attribute, consuming
// the pending holes that fall inside the value's span. A code block inside
// a value cannot produce one; it is dropped with a diagnostic on attr.
func (s *structurer) attrValue(tok Token, at TagAttr, src Source, attr *Node) *Node {
	val := &Node{Kind: KindFragment, Source: src}

	base := tok.Offset + at.ValSpan.Offset
	end := base + at.ValSpan.Length

	cursor := 0
	rest := s.pending[:0]
	for _, ph := range s.pending {
		if ph.offset < base || ph.offset > end {
			rest = append(rest, ph)
			continue
		}
		rel := ph.offset - base
		if rel > cursor {
			val.Children = append(val.Children, &Node{Kind: KindRawMarkup, Text: at.Val[cursor:rel], Source: src})
			cursor = rel
		}
		if ph.node.Kind == KindCodeBlock {
			attr.Diags = append(attr.Diags, &Diag{
				Kind:   DiagCodeBlockInValue,
				Source: ph.node.Source,
				Detail: ph.node.Text,
			})
			continue
		}
		val.Children = append(val.Children, ph.node)
	}
	s.pending = rest

	if cursor < len(at.Val) {
		val.Children = append(val.Children, &Node{Kind: KindRawMarkup, Text: at.Val[cursor:], Source: src})
	}
	return val
}

func (s *structurer) closeElement(tok Token, src Source) error {
	if len(s.stack) == 1 {
		return internalf("structure", "closing tag </%s> with no open element", tok.Name)
	}
	el := s.top()
	s.stack = s.stack[:len(s.stack)-1]

	// The tag comparison is advisory: stack discipline wins, the author
	// gets a diagnostic on the element that was actually closed.
	if !strings.EqualFold(el.Tag, tok.Name) {
		el.Diags = append(el.Diags, &Diag{
			Kind:   DiagMismatchedClosingTag,
			Source: src,
			Detail: tok.Name,
		})
	}
	return nil
}
