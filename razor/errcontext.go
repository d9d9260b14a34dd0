package razor

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// DiagContext renders a short markup snippet around a node so a diagnostic
// can show where in the document it points. Up to two non-whitespace
// siblings are kept on each side, the rest is elided, and the snippet is
// wrapped in the parent element's tag.
func DiagContext(root, target *Node) string {
	parent, idx := findParent(root, target)

	doc := &etree.Element{}
	b := contextBuilder{}
	if parent == nil {
		b.addNode(doc, target)
	} else {
		b.addSiblings(doc, parent.Children, idx, -1)
		b.addNode(doc, target)
		b.addSiblings(doc, parent.Children, idx, +1)
		doc = b.wrapParent(doc, parent)
	}
	return renderContext(doc)
}

// findParent locates the parent of target within root by walking the tree;
// nodes carry no parent references.
func findParent(root, target *Node) (*Node, int) {
	var parent *Node
	var idx int
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		for i, c := range n.Children {
			if c == target {
				parent, idx = n, i
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return parent, idx
}

// contextBuilder organizes helper functions for building context trees.
type contextBuilder struct{}

func (b contextBuilder) addSiblings(doc *etree.Element, siblings []*Node, i, dir int) {
	var picked []*Node
	for j := i + dir; j >= 0 && j < len(siblings); j += dir {
		s := siblings[j]
		if s.Kind == KindRawMarkup && strings.TrimLeft(s.Text, whitespace) == "" {
			continue
		}
		if len(picked) == 2 {
			picked = append(picked, nil) // ellipsis marker
			break
		}
		picked = append(picked, s)
	}
	if dir < 0 {
		for j := len(picked) - 1; j >= 0; j-- {
			b.addPicked(doc, picked[j])
		}
	} else {
		for _, s := range picked {
			b.addPicked(doc, s)
		}
	}
}

func (b contextBuilder) addPicked(doc *etree.Element, n *Node) {
	if n == nil {
		doc.AddChild(etree.NewText("..."))
		return
	}
	b.addNode(doc, n)
}

func (b contextBuilder) addNode(doc *etree.Element, n *Node) {
	switch n.Kind {
	case KindElement, KindConstruct:
		el := etree.NewElement(n.Tag)
		attrs, body := n.SplitChildren()
		for _, a := range attrs {
			el.CreateAttr(a.AttrName, literalValue(a))
		}
		if len(body) > 0 {
			el.AddChild(etree.NewText("..."))
		}
		doc.AddChild(el)
	case KindRawMarkup:
		if strings.TrimLeft(n.Text, whitespace) != "" {
			doc.AddChild(etree.NewText(n.Text))
		}
	case KindExpr:
		doc.AddChild(etree.NewText("@(" + n.Text + ")"))
	case KindCodeBlock:
		doc.AddChild(etree.NewText("@{...}"))
	case KindAttribute:
		doc.AddChild(etree.NewText(n.AttrName + `="` + literalValue(n) + `"`))
	case KindFragment, KindDocument:
		for _, c := range n.Children {
			b.addNode(doc, c)
		}
	}
}

func (b contextBuilder) wrapParent(doc *etree.Element, parent *Node) *etree.Element {
	if parent.Kind != KindElement && parent.Kind != KindConstruct {
		return doc // do not wrap document or fragment roots
	}
	doc.Tag = parent.Tag
	attrs, _ := parent.SplitChildren()
	for _, a := range attrs {
		doc.CreateAttr(a.AttrName, literalValue(a))
	}
	wrapper := &etree.Element{}
	wrapper.AddChild(doc)
	return wrapper
}

// literalValue flattens an attribute value subtree back into source-like
// text for display.
func literalValue(a *Node) string {
	var sb strings.Builder
	for _, part := range a.valueParts() {
		switch part.Kind {
		case KindRawMarkup:
			sb.WriteString(part.Text)
		case KindExpr:
			sb.WriteString("@(" + part.Text + ")")
		}
	}
	return sb.String()
}

// renderContext converts the etree context into HTML text.
func renderContext(doc *etree.Element) string {
	dst := &html.Node{Type: html.DocumentNode}

	var render func(*html.Node, *etree.Element)
	render = func(dst *html.Node, src *etree.Element) {
		for _, c := range src.Child {
			switch t := c.(type) {
			case *etree.Element:
				n := &html.Node{Type: html.ElementNode, Data: t.FullTag()}
				for _, a := range t.Attr {
					n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
				}
				dst.AppendChild(n)
				render(n, t)
			case *etree.CharData:
				dst.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data})
			}
		}
	}

	render(dst, doc)

	var buf strings.Builder
	_ = html.Render(&buf, dst)

	return buf.String()
}
