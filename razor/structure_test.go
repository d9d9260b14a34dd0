package razor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(text string) *Node {
	return &Node{Kind: KindRawMarkup, Text: text}
}

func hole(src string) *Node {
	return &Node{Kind: KindExpr, Text: src}
}

func docOf(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

func attrNode(name string, parts ...*Node) *Node {
	return &Node{
		Kind:     KindAttribute,
		AttrName: name,
		Children: []*Node{{Kind: KindFragment, Children: parts}},
	}
}

func TestStructureMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   []*Node
		want string
	}{
		{
			name: "simple nesting",
			in:   []*Node{raw(`<div class="a"><span>hi</span></div>`)},
			want: `| <div>
|   class="a"
|   <span>
|     "hi"
`,
		},
		{
			name: "tag casing preserved",
			in:   []*Node{raw(`<DIV>x</DIV>`)},
			want: `| <DIV>
|   "x"
`,
		},
		{
			name: "attribute order and casing",
			in:   []*Node{raw(`<a x="1" Y="2"></a>`)},
			want: `| <a>
|   x="1"
|   Y="2"
`,
		},
		{
			name: "void element closes immediately",
			in:   []*Node{raw(`<img src="x">after`)},
			want: `| <img>
|   src="x"
| "after"
`,
		},
		{
			name: "self-closing tag",
			in:   []*Node{raw(`<br/>text`)},
			want: `| <br>
| "text"
`,
		},
		{
			name: "comment dropped",
			in:   []*Node{raw(`<div><!-- note -->x</div>`)},
			want: `| <div>
|   "x"
`,
		},
		{
			name: "case-insensitive close matches",
			in:   []*Node{raw(`<Div>x</dIv>`)},
			want: `| <Div>
|   "x"
`,
		},
		{
			name: "whitespace at outermost level dropped",
			in:   []*Node{raw("  \n "), raw(`<p>x</p>`), raw("\n")},
			want: `| <p>
|   "x"
`,
		},
		{
			name: "hole in element body",
			in:   []*Node{raw(`<div>`), hole("h"), raw(`</div>`)},
			want: `| <div>
|   @(h)
`,
		},
		{
			name: "split start tag",
			in:   []*Node{raw(`<a x="1" y="`), hole("h"), raw(`2">body</a>`)},
			want: `| <a>
|   x="1"
|   y=
|     @(h)
|     "2"
|   "body"
`,
		},
		{
			name: "hole with value prefix and suffix",
			in:   []*Node{raw(`<a t="p-`), hole("h"), raw(`-s"></a>`)},
			want: `| <a>
|   t=
|     "p-"
|     @(h)
|     "-s"
`,
		},
		{
			name: "attribute hole attaches to next element",
			in:   []*Node{raw(`<div `), attrNode("data-bind", hole("v")), raw(`>x</div>`)},
			want: `| <div>
|   data-bind=
|     @(v)
|   "x"
`,
		},
		{
			name: "text split across fragments",
			in:   []*Node{raw(`<a>one`), raw(`two</a>`)},
			want: `| <a>
|   "one"
|   "two"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docOf(tt.in...)
			require.NoError(t, StructureMarkup(doc))
			if diff := cmp.Diff(tt.want, Dump(doc)); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStructureMismatchedClosingTag(t *testing.T) {
	doc := docOf(raw(`<a></b>`))
	require.NoError(t, StructureMarkup(doc))

	require.Len(t, doc.Children, 1)
	el := doc.Children[0]
	assert.Equal(t, KindElement, el.Kind)
	assert.Equal(t, "a", el.Tag)

	require.Len(t, el.Diags, 1)
	assert.Equal(t, DiagMismatchedClosingTag, el.Diags[0].Kind)
	assert.Equal(t, "b", el.Diags[0].Detail)
}

func TestStructureHoleBetweenAttributes(t *testing.T) {
	doc := docOf(raw(`<div `), hole("disabled"), raw(` class="x">y</div>`))
	require.NoError(t, StructureMarkup(doc))

	require.Len(t, doc.Children, 1)
	el := doc.Children[0]
	require.Len(t, el.Diags, 1)
	assert.Equal(t, DiagMisplacedExpression, el.Diags[0].Kind)
	assert.Equal(t, "disabled", el.Diags[0].Detail)

	// The hole becomes leading body content of the element it interrupted.
	want := `| <div>
|   class="x"
|   @(disabled)
|   "y"
`
	if diff := cmp.Diff(want, Dump(doc)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureCodeBlockInAttributeValue(t *testing.T) {
	block := &Node{Kind: KindCodeBlock, Text: " y := 1 "}
	doc := docOf(raw(`<a x="`), block, raw(`">b</a>`))
	require.NoError(t, StructureMarkup(doc))

	el := doc.Children[0]
	attrs, body := el.SplitChildren()
	require.Len(t, attrs, 1)
	assert.Empty(t, attrs[0].valueParts())
	require.Len(t, attrs[0].Diags, 1)
	assert.Equal(t, DiagCodeBlockInValue, attrs[0].Diags[0].Kind)

	require.Len(t, body, 1)
	assert.Equal(t, "b", body[0].Text)
}

func TestStructureTextPreservation(t *testing.T) {
	doc := docOf(raw("<a>One <B>Two\t&amp;</B> three</a>"))
	require.NoError(t, StructureMarkup(doc))

	var sb strings.Builder
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Kind == KindRawMarkup {
			sb.WriteString(n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc)
	assert.Equal(t, "One Two\t&amp; three", sb.String())
}

func TestStructureInternalErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []*Node
	}{
		{"unclosed element", []*Node{raw(`<a><b></b>`)}},
		{"stray closing tag", []*Node{raw(`</a>`)}},
		{"unterminated tag at end", []*Node{raw(`<a href="x`)}},
		{"dangling attribute hole", []*Node{attrNode("x", raw("1")), raw(`text`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StructureMarkup(docOf(tt.in...))
			var ie *InternalError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "structure", ie.Pass)
		})
	}
}

func TestStructureNestedContainers(t *testing.T) {
	body := &Node{Kind: KindFragment, Children: []*Node{raw(`<i>x</i>`)}}
	c := &Node{Kind: KindConstruct, Tag: "Card", Children: []*Node{body}}
	doc := docOf(raw(`<div>`), c, raw(`</div>`))

	require.NoError(t, StructureMarkup(doc))

	require.Len(t, doc.Children, 1)
	el := doc.Children[0]
	assert.Equal(t, "div", el.Tag)
	require.Len(t, el.Children, 1)
	assert.Same(t, c, el.Children[0])

	// The construct body was structured before the document container.
	require.Len(t, body.Children, 1)
	inner := body.Children[0]
	assert.Equal(t, KindElement, inner.Kind)
	assert.Equal(t, "i", inner.Tag)
}

func TestStructureAttributeValuesNotRestructured(t *testing.T) {
	// A raw part of an attribute value is value text, not markup, even if
	// it looks like a tag.
	a := attrNode("title", raw("<not-a-tag>"))
	doc := docOf(raw(`<div `), a, raw(`>x</div>`))

	require.NoError(t, StructureMarkup(doc))

	el := doc.Children[0]
	attrs, _ := el.SplitChildren()
	require.Len(t, attrs, 1)
	parts := attrs[0].valueParts()
	require.Len(t, parts, 1)
	assert.Equal(t, KindRawMarkup, parts[0].Kind)
	assert.Equal(t, "<not-a-tag>", parts[0].Text)
}
