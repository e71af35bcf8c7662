package korobin

// window is the 1024-byte ring of recently processed uncompressed bytes.
// The cursor points at the next slot to overwrite, i.e. the oldest byte.
// Match offsets are absolute indices into buf.
type window struct {
	buf    [WindowSize]byte
	cursor int
}

// newWindow returns a zeroed window with the cursor at WindowStart.
func newWindow() *window {
	return &window{cursor: WindowStart}
}

// write stores b at the cursor, advances it and returns the slot written.
func (w *window) write(b byte) int {
	prev := w.cursor
	w.buf[prev] = b
	w.cursor = (prev + 1) & windowMask

	return prev
}

// writeAll writes p in order, wrapping across the end of the buffer.
func (w *window) writeAll(p []byte) {
	for _, b := range p {
		w.write(b)
	}
}

// read returns the byte at index i modulo WindowSize; i may be negative.
func (w *window) read(i int) byte {
	return w.buf[i&windowMask]
}

// slot returns the absolute index lying n slots after the cursor.
func (w *window) slot(n int) int {
	return (w.cursor + n) & windowMask
}

// distance returns how many slots index i lies after the cursor.
func (w *window) distance(i int) int {
	return (i - w.cursor) & windowMask
}
