package razor

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders the tree in an indented debug form, one node per line.
// Document and fragment roots are transparent.
func Dump(root *Node) string {
	var sb strings.Builder
	switch root.Kind {
	case KindDocument, KindFragment:
		for _, c := range root.Children {
			dumpLevel(&sb, c, 0)
		}
	default:
		dumpLevel(&sb, root, 0)
	}
	return sb.String()
}

func dumpIndent(w io.Writer, level int) {
	_, _ = io.WriteString(w, "| ")
	for i := 0; i < level; i++ {
		_, _ = io.WriteString(w, "  ")
	}
}

func dumpLevel(w io.Writer, n *Node, level int) {
	dumpIndent(w, level)
	switch n.Kind {
	case KindRawMarkup:
		fmt.Fprintf(w, "%q\n", n.Text)
	case KindElement, KindConstruct:
		if n.Kind == KindConstruct {
			fmt.Fprintf(w, "construct <%s>\n", n.Tag)
		} else {
			fmt.Fprintf(w, "<%s>\n", n.Tag)
		}
		for _, c := range n.Children {
			dumpLevel(w, c, level+1)
		}
	case KindAttribute:
		parts := n.valueParts()
		if len(parts) == 1 && parts[0].Kind == KindRawMarkup {
			fmt.Fprintf(w, "%s=%q\n", n.AttrName, parts[0].Text)
			return
		}
		fmt.Fprintf(w, "%s=\n", n.AttrName)
		for _, part := range parts {
			dumpLevel(w, part, level+1)
		}
	case KindExpr:
		fmt.Fprintf(w, "@(%s)\n", n.Text)
	case KindCodeBlock:
		fmt.Fprintf(w, "@{%s}\n", n.Text)
	case KindFragment:
		fmt.Fprintf(w, "fragment\n")
		for _, c := range n.Children {
			dumpLevel(w, c, level+1)
		}
	default:
		fmt.Fprintf(w, "%s\n", n.Kind)
	}
}
