package razor

// scanTagAttrs scans the raw text of a start tag and returns its attributes
// in written order. Names keep the author-typed casing; value spans are
// relative to the raw tag text.
func scanTagAttrs(raw string) []TagAttr {
	var attrs []TagAttr

	// Skip '<' and the tag name.
	pos := 0
	if pos < len(raw) && raw[pos] == '<' {
		pos++
	}
	for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
		pos++
	}

	for pos < len(raw) {
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] == '>' {
			break
		}
		if raw[pos] == '/' {
			pos++
			continue
		}

		nameStart := pos
		for pos < len(raw) && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
			pos++
		}
		name := raw[nameStart:pos]
		nameEnd := pos

		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] != '=' {
			// Attribute written without a value.
			attrs = append(attrs, TagAttr{Name: name, ValSpan: Span{Offset: nameEnd}})
			continue
		}
		pos++ // skip '='
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) {
			attrs = append(attrs, TagAttr{Name: name, ValSpan: Span{Offset: nameEnd}})
			break
		}

		var valStart, valEnd int
		if raw[pos] == '"' || raw[pos] == '\'' {
			quote := raw[pos]
			pos++
			valStart = pos
			for pos < len(raw) && raw[pos] != quote {
				pos++
			}
			valEnd = pos
			if pos < len(raw) {
				pos++ // skip closing quote
			}
		} else {
			valStart = pos
			for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' {
				pos++
			}
			valEnd = pos
		}

		attrs = append(attrs, TagAttr{
			Name: name,
			Val:  raw[valStart:valEnd],
			ValSpan: Span{
				Offset: valStart,
				Length: valEnd - valStart,
			},
		})
	}

	return attrs
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
