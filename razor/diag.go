package razor

// DiagKind identifies a class of user-facing, recoverable diagnostics.
type DiagKind int

const (
	// DiagMismatchedClosingTag reports a closing tag whose name does not
	// case-insensitively match the element it closed. Detail holds the
	// closing tag name as written.
	DiagMismatchedClosingTag DiagKind = iota

	// DiagBadExpression reports an embedded expression that failed to
	// compile. Detail holds the compiler's error text.
	DiagBadExpression

	// DiagUnterminatedBlock reports an embedded code block or expression
	// whose closing delimiter is missing. Detail holds the delimiter.
	DiagUnterminatedBlock

	// DiagMisplacedExpression reports a hole that appears inside a tag but
	// outside any attribute value. The hole is kept as leading body content
	// of the element. Detail holds the hole's source text.
	DiagMisplacedExpression

	// DiagCodeBlockInValue reports a code block spliced into an attribute
	// value. A code block produces no value; it is dropped from the value.
	// Detail holds the block's source text.
	DiagCodeBlockInValue
)

func (k DiagKind) String() string {
	switch k {
	case DiagMismatchedClosingTag:
		return "mismatched-closing-tag"
	case DiagBadExpression:
		return "bad-expression"
	case DiagUnterminatedBlock:
		return "unterminated-block"
	case DiagMisplacedExpression:
		return "misplaced-expression"
	case DiagCodeBlockInValue:
		return "code-block-in-value"
	}
	return "unknown"
}

// Diag is one structured diagnostic record. Diagnostics never abort
// compilation of a document; they are attached to the affected node and
// collected by the pipeline driver.
type Diag struct {
	Kind   DiagKind
	Source Source
	Detail string
}

// NodeDiag pairs a diagnostic with the node carrying it.
type NodeDiag struct {
	Node *Node
	Diag *Diag
}

// CollectDiags gathers every diagnostic in the tree in document order.
func CollectDiags(root *Node) []NodeDiag {
	var out []NodeDiag
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, d := range n.Diags {
			out = append(out, NodeDiag{Node: n, Diag: d})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
