package razor

import "unicode/utf8"

// Span is a byte range in a template source file.
type Span struct {
	Offset int // byte offset in the file
	Line   int // 1-based line number
	Column int // 1-based column number (in runes, not bytes)
	Length int // length in bytes
}

// IsZero returns true if the span is uninitialized.
func (s Span) IsZero() bool {
	return s.Offset == 0 && s.Line == 0 && s.Column == 0 && s.Length == 0
}

// End returns the end offset of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Source is a span with optional file information.
type Source struct {
	File string // file path (can be empty)
	Span Span   // location within the file
}

// Advance returns the position moved forward by the first n bytes of text,
// where text is the source content starting at s. Lines and columns are
// recounted from the skipped prefix.
func (s Source) Advance(text string, n int) Source {
	if n <= 0 {
		return s
	}
	if n > len(text) {
		n = len(text)
	}
	line, col := s.Span.Line, s.Span.Column
	for i := 0; i < n; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return Source{
		File: s.File,
		Span: Span{
			Offset: s.Span.Offset + n,
			Line:   line,
			Column: col,
		},
	}
}
