package korobin

import "fmt"

// token is one payload unit: a literal byte or a back-reference into the window.
type token struct {
	literal bool
	value   byte // literal byte
	offset  int  // absolute window index, 0..WindowSize-1
	length  int  // MinMatch..MaxMatch
}

// literalToken returns a literal token for b.
func literalToken(b byte) token {
	return token{literal: true, value: b}
}

// matchToken returns a back-reference token.
func matchToken(offset, length int) token {
	return token{offset: offset, length: length}
}

// flag returns the chunk flag bit for the token: 1 for a literal, 0 for a match.
func (t token) flag() byte {
	if t.literal {
		return 1
	}

	return 0
}

// appendToken appends the encoded form of t to dst.
// Match layout: [offset&0xFF, (offset>>2)&0xC0 | (length-3)].
// Panics when a match lies outside the encodable range; that is an encoder bug.
func appendToken(dst []byte, t token) []byte {
	if t.literal {
		return append(dst, t.value)
	}

	if t.offset < 0 || t.offset >= WindowSize || t.length < MinMatch || t.length > MaxMatch {
		panic(fmt.Sprintf("korobin: match out of range: offset=%d length=%d", t.offset, t.length))
	}

	return append(dst,
		byte(t.offset&0xFF),
		byte((t.offset>>2)&offsetHigh)|byte(t.length-MinMatch), // #nosec G115 -- range checked above
	)
}

// decodeMatch decodes the two bytes of a back-reference.
func decodeMatch(lo, hi byte) token {
	offset := int(hi&offsetHigh)<<2 | int(lo)
	length := int(hi&lengthMask) + MinMatch

	return matchToken(offset, length)
}
