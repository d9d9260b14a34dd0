package razor

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TokenType is the type of a markup token produced by scanMarkup.
type TokenType int

const (
	TextToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	EndOfInputToken
)

// TagAttr is one literal attribute of a start tag. The name keeps the
// author-typed casing and the value keeps the author-typed characters;
// neither is normalized or unescaped.
type TagAttr struct {
	Name string
	Val  string

	// ValSpan is the byte range of the value within the tag's raw text.
	// Zero-length for attributes written without a value.
	ValSpan Span
}

// Token is one markup token within a fed text.
type Token struct {
	Type        TokenType
	Text        string // literal text for TextToken and CommentToken
	Name        string // tag name for start and end tags, author casing
	Attrs       []TagAttr
	SelfClosing bool
	Offset      int // byte offset of the token within the fed text
	Length      int
}

// scanMarkup tokenizes one accumulated markup fragment. It returns the
// tokens, ending with an EndOfInputToken, and the byte offset at which
// scanning stopped. The offset is short of len(text) when the text ends
// inside an unclosed tag; the caller keeps the tail and prepends it to the
// next fragment.
//
// The underlying x/net/html tokenizer normalizes tag and attribute names
// and unescapes values, so names and values are recovered by rescanning the
// token's raw bytes instead.
func scanMarkup(text string) ([]Token, int, error) {
	z := html.NewTokenizer(strings.NewReader(text))
	z.SetMaxBuf(0)

	var toks []Token
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, 0, internalf("tokenize", "markup tokenizer: %w", err)
			}
			break
		}
		raw := string(z.Raw())
		tok := Token{Offset: consumed, Length: len(raw)}
		switch tt {
		case html.TextToken, html.DoctypeToken:
			// Doctype declarations pass through as literal text.
			tok.Type = TextToken
			tok.Text = raw
		case html.StartTagToken, html.SelfClosingTagToken:
			tok.Type = StartTagToken
			tok.Name = rawTagName(raw)
			tok.Attrs = scanTagAttrs(raw)
			tok.SelfClosing = tt == html.SelfClosingTagToken
		case html.EndTagToken:
			tok.Type = EndTagToken
			tok.Name = rawTagName(raw)
		case html.CommentToken:
			tok.Type = CommentToken
			tok.Text = raw
		default:
			return nil, 0, internalf("tokenize", "unrecognized token type %v", tt)
		}
		consumed += len(raw)
		toks = append(toks, tok)
	}

	toks = append(toks, Token{Type: EndOfInputToken, Offset: consumed})
	return toks, consumed, nil
}

// rawTagName slices the author-typed tag name out of the raw text of a
// start or end tag.
func rawTagName(raw string) string {
	i := 1
	if len(raw) > 1 && raw[1] == '/' {
		i = 2
	}
	j := i
	for j < len(raw) && !isAttrSpace(raw[j]) && raw[j] != '>' && raw[j] != '/' {
		j++
	}
	return raw[i:j]
}
