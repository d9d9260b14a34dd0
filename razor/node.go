package razor

import (
	"github.com/expr-lang/expr/vm"
)

// NodeKind discriminates the variants of the intermediate tree.
type NodeKind int

const (
	// KindDocument is the root container produced by ParseTemplate.
	KindDocument NodeKind = iota

	// KindRawMarkup holds literal markup text exactly as the author typed it.
	// Before structuring it is an opaque fragment that may span tags; after
	// structuring only text leaves remain.
	KindRawMarkup

	// KindElement is a markup element. Its attribute children always precede
	// its body children.
	KindElement

	// KindAttribute is a named attribute with a single KindFragment child
	// producing its value. The value may mix literal parts and embedded
	// expression holes.
	KindAttribute

	// KindFragment is an anonymous container: an attribute value or a
	// structured construct body.
	KindFragment

	// KindConstruct is a higher-level construct recognized by the upstream
	// matcher. Its children are attribute sub-nodes followed by exactly one
	// fragment body.
	KindConstruct

	// KindExpr is an embedded expression hole.
	KindExpr

	// KindCodeBlock is an embedded code block hole.
	KindCodeBlock
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindRawMarkup:
		return "raw-markup"
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	case KindFragment:
		return "fragment"
	case KindConstruct:
		return "construct"
	case KindExpr:
		return "expr"
	case KindCodeBlock:
		return "code-block"
	}
	return "unknown"
}

// Node is one node of the intermediate tree. Child order is document order.
// Nodes are never shared between parents and carry no parent references;
// passes that rewrite the tree record (parent, child index) pairs instead.
type Node struct {
	Kind NodeKind

	// Tag is the element or construct tag name, author casing preserved.
	Tag string

	// AttrName is the attribute name for KindAttribute nodes.
	AttrName string

	// Text is the literal text of a raw markup node, or the source text of
	// an expression or code block hole.
	Text string

	// Prog is the compiled program of a KindExpr hole. It is nil when the
	// expression failed to compile; the failure is recorded as a diagnostic
	// on the node.
	Prog *vm.Program

	// Children are the node's children in document order.
	Children []*Node

	// Source locates the node in the template file, when known.
	Source Source

	// Diags are the diagnostics attached to this node, in the order they
	// were recorded.
	Diags []*Diag
}

// SplitChildren partitions an element's children into its attribute nodes
// and its body. Attributes always come first in child order.
func (n *Node) SplitChildren() (attrs, body []*Node) {
	i := 0
	for i < len(n.Children) && n.Children[i].Kind == KindAttribute {
		i++
	}
	return n.Children[:i], n.Children[i:]
}

// valueParts returns the parts of an attribute's value subtree.
func (n *Node) valueParts() []*Node {
	if len(n.Children) == 1 && n.Children[0].Kind == KindFragment {
		return n.Children[0].Children
	}
	return n.Children
}
