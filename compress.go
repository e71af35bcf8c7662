package korobin

// Compress encodes src into a container: header followed by chunks of one
// flag byte and up to FlagBits tokens. It never fails; empty input yields
// the bare header.
func Compress(src []byte) []byte {
	// Worst case is all literals plus one flag byte per chunk and the trailing flag.
	out := make([]byte, 0, HeaderSize+len(src)+len(src)/FlagBits+1)
	out = Header{UncompressedLength: uint32(len(src))}.Append(out) // #nosec G115 -- level blocks are far below 4 GiB

	w := newWindow()
	var flagByte byte
	bitCount := 0
	flagPos := -1

	i := 0
	for i < len(src) {
		if bitCount == 0 {
			flagPos = len(out)
			out = append(out, 0)
		}

		var t token
		if m, ok := w.findMatch(src[i:]); ok {
			t = m
		} else {
			t = literalToken(src[i])
		}

		step := 1
		if !t.literal {
			step = t.length
		}
		w.writeAll(src[i : i+step])
		i += step

		flagByte |= t.flag() << bitCount
		out = appendToken(out, t)

		bitCount++
		if bitCount == FlagBits {
			out[flagPos] = flagByte
			flagByte = 0
			bitCount = 0
		}
	}

	if bitCount > 0 {
		out[flagPos] = flagByte
	} else if len(src) > 0 {
		// The game's tools close a stream that ends on a full chunk with an empty flag byte.
		out = append(out, 0)
	}

	return out
}
