package razor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMarkupComplete(t *testing.T) {
	text := `<DIV Class="X">hi</DIV>`
	toks, consumed, err := scanMarkup(text)
	require.NoError(t, err)
	assert.Equal(t, len(text), consumed)

	require.Len(t, toks, 4)

	assert.Equal(t, StartTagToken, toks[0].Type)
	assert.Equal(t, "DIV", toks[0].Name)
	require.Len(t, toks[0].Attrs, 1)
	assert.Equal(t, "Class", toks[0].Attrs[0].Name)
	assert.Equal(t, "X", toks[0].Attrs[0].Val)

	assert.Equal(t, TextToken, toks[1].Type)
	assert.Equal(t, "hi", toks[1].Text)
	assert.Equal(t, 15, toks[1].Offset)

	assert.Equal(t, EndTagToken, toks[2].Type)
	assert.Equal(t, "DIV", toks[2].Name)

	assert.Equal(t, EndOfInputToken, toks[3].Type)
	assert.Equal(t, len(text), toks[3].Offset)
}

func TestScanMarkupPartialTag(t *testing.T) {
	toks, consumed, err := scanMarkup(`text<a href="`)
	require.NoError(t, err)

	// Scanning stops at the unclosed tag; the caller keeps the tail.
	assert.Equal(t, 4, consumed)
	require.Len(t, toks, 2)
	assert.Equal(t, TextToken, toks[0].Type)
	assert.Equal(t, "text", toks[0].Text)
	assert.Equal(t, EndOfInputToken, toks[1].Type)
}

func TestScanMarkupSelfClosing(t *testing.T) {
	toks, _, err := scanMarkup(`<br/>`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, StartTagToken, toks[0].Type)
	assert.True(t, toks[0].SelfClosing)
}

func TestScanMarkupComment(t *testing.T) {
	toks, consumed, err := scanMarkup(`a<!-- note -->b`)
	require.NoError(t, err)
	assert.Equal(t, 15, consumed)
	require.Len(t, toks, 4)
	assert.Equal(t, CommentToken, toks[1].Type)
}

func TestScanMarkupDoctypeIsText(t *testing.T) {
	toks, _, err := scanMarkup(`<!DOCTYPE html><p>x</p>`)
	require.NoError(t, err)
	assert.Equal(t, TextToken, toks[0].Type)
	assert.Equal(t, "<!DOCTYPE html>", toks[0].Text)
	assert.Equal(t, StartTagToken, toks[1].Type)
}

func TestScanTagAttrs(t *testing.T) {
	raw := `<a x="1" y='2' checked z=un>`
	attrs := scanTagAttrs(raw)
	require.Len(t, attrs, 4)

	assert.Equal(t, "x", attrs[0].Name)
	assert.Equal(t, "1", attrs[0].Val)
	assert.Equal(t, "1", raw[attrs[0].ValSpan.Offset:attrs[0].ValSpan.End()])

	assert.Equal(t, "y", attrs[1].Name)
	assert.Equal(t, "2", attrs[1].Val)

	assert.Equal(t, "checked", attrs[2].Name)
	assert.Equal(t, "", attrs[2].Val)
	assert.Equal(t, 0, attrs[2].ValSpan.Length)

	assert.Equal(t, "z", attrs[3].Name)
	assert.Equal(t, "un", attrs[3].Val)
}

func TestRawTagName(t *testing.T) {
	assert.Equal(t, "Div", rawTagName(`<Div class="x">`))
	assert.Equal(t, "SPAN", rawTagName(`</SPAN>`))
	assert.Equal(t, "br", rawTagName(`<br/>`))
}
