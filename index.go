package wfobj

// VertexIndex is one face corner's triple of zero-based pool indices.
// A value of -1 in any component means that component is absent from the
// source token (e.g. the "v//vn" and "v" shapes never set VtIdx).
type VertexIndex struct {
	VIdx  int
	VtIdx int
	VnIdx int
}

// normalizeIndex turns a 1-based OBJ index (possibly negative, meaning
// relative-to-end-of-pool) into a zero-based index.
func normalizeIndex(raw, poolSize int) (int, bool) {
	switch {
	case raw > 0:
		return raw - 1, true
	case raw < 0:
		return poolSize + raw, true
	default:
		return 0, false // raw == 0 is never valid
	}
}

// parseFaceVertexToken decodes one OBJ face-vertex token of shape v, v/vt,
// v//vn, or v/vt/vn into a VertexIndex. posSize, texSize
// and normSize are the current sizes of the position, texcoord and normal
// pools, used to resolve negative (relative) indices.
func parseFaceVertexToken(token string, posSize, texSize, normSize int) (VertexIndex, error) {
	c := newCursor(token)

	vi := VertexIndex{VIdx: -1, VtIdx: -1, VnIdx: -1}

	v, ok := c.parseSignedNoSkip()
	if !ok {
		return vi, ErrMalformedFace
	}
	vIdx, ok := normalizeIndex(v, posSize)
	if !ok {
		return vi, ErrZeroIndex
	}
	vi.VIdx = vIdx

	if c.atEnd() {
		return vi, nil // v
	}
	if c.peek() != '/' {
		return vi, ErrMalformedFace
	}
	c.pos++ // consume '/'

	if !c.atEnd() && c.peek() == '/' {
		// v//vn
		c.pos++ // consume second '/'
		n, ok := c.parseSignedNoSkip()
		if !ok {
			return vi, ErrMalformedFace
		}
		nIdx, ok := normalizeIndex(n, normSize)
		if !ok {
			return vi, ErrZeroIndex
		}
		vi.VnIdx = nIdx
		if !c.atEnd() {
			return vi, ErrMalformedFace
		}
		return vi, nil
	}

	// v/vt or v/vt/vn
	t, ok := c.parseSignedNoSkip()
	if !ok {
		return vi, ErrMalformedFace
	}
	tIdx, ok := normalizeIndex(t, texSize)
	if !ok {
		return vi, ErrZeroIndex
	}
	vi.VtIdx = tIdx

	if c.atEnd() {
		return vi, nil // v/vt
	}
	if c.peek() != '/' {
		return vi, ErrMalformedFace
	}
	c.pos++ // consume '/'

	n, ok := c.parseSignedNoSkip()
	if !ok {
		return vi, ErrMalformedFace
	}
	nIdx, ok := normalizeIndex(n, normSize)
	if !ok {
		return vi, ErrZeroIndex
	}
	vi.VnIdx = nIdx

	if !c.atEnd() {
		return vi, ErrMalformedFace
	}
	return vi, nil
}

// parseSignedNoSkip parses a signed integer starting at the current
// position without skipping leading space first (a face-vertex token has
// no internal space around its '/' separators). The bool is false when no
// digits were present.
func (c *cursor) parseSignedNoSkip() (int, bool) {
	start := c.pos
	if !c.atEnd() && (c.peek() == '+' || c.peek() == '-') {
		c.pos++
	}
	for !c.atEnd() && c.line[c.pos] >= '0' && c.line[c.pos] <= '9' {
		c.pos++
	}
	word := c.line[start:c.pos]
	if word == "" || word == "+" || word == "-" {
		return 0, false
	}
	n := 0
	neg := false
	i := 0
	if word[0] == '+' || word[0] == '-' {
		neg = word[0] == '-'
		i = 1
	}
	for ; i < len(word); i++ {
		n = n*10 + int(word[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
