package razor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	src := "<div class=\"box\">\n  <p>Hello, @name!</p>\n</div>"
	res, err := Compile(strings.NewReader(src), "test.razor", nil)
	require.NoError(t, err)
	assert.Empty(t, res.Diags)

	want := `| <div>
|   class="box"
|   "\n  "
|   <p>
|     "Hello, "
|     @(name)
|     "!"
|   "\n"
`
	if diff := cmp.Diff(want, Dump(res.Doc)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileWithComponents(t *testing.T) {
	src := `<Card title="@title"><p>body</p></Card>`
	res, err := Compile(strings.NewReader(src), "test.razor", &Options{
		Components: NewTagSet("Card"),
	})
	require.NoError(t, err)

	require.Len(t, res.Doc.Children, 1)
	card := res.Doc.Children[0]
	assert.Equal(t, KindElement, card.Kind)
	assert.Equal(t, "Card", card.Tag)
}

func TestCompileMismatchedTagIsDiagnostic(t *testing.T) {
	res, err := Compile(strings.NewReader(`<a></b>`), "test.razor", nil)
	require.NoError(t, err)

	require.Len(t, res.Diags, 1)
	assert.Equal(t, DiagMismatchedClosingTag, res.Diags[0].Diag.Kind)
	assert.Equal(t, "a", res.Diags[0].Node.Tag)
}

func TestCompileExpressionBetweenAttributes(t *testing.T) {
	res, err := Compile(strings.NewReader(`<div @disabled class="x">y</div>`), "test.razor", nil)
	require.NoError(t, err)

	require.Len(t, res.Diags, 1)
	assert.Equal(t, DiagMisplacedExpression, res.Diags[0].Diag.Kind)
	assert.Equal(t, "div", res.Diags[0].Node.Tag)
}

func TestCompileCodeBlockInAttributeValue(t *testing.T) {
	res, err := Compile(strings.NewReader(`<a x="@{ y := 1 }">b</a>`), "test.razor", nil)
	require.NoError(t, err)

	require.Len(t, res.Diags, 1)
	assert.Equal(t, DiagCodeBlockInValue, res.Diags[0].Diag.Kind)

	// The dropped block must not crash emission.
	out, err := EmitGo(res.Doc, nil, "Render")
	require.NoError(t, err)
	assert.Contains(t, out, `__builder.Attr("x", "")`)
}

func TestCompileUnclosedElementFails(t *testing.T) {
	_, err := Compile(strings.NewReader(`<a><b></b>`), "test.razor", nil)
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
}
