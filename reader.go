package korobin

import (
	"errors"
	"io"
)

// payloadReader reads a container held in memory.
type payloadReader struct {
	data []byte
	off  int
}

// countingReader tallies the bytes taken from r.
type countingReader struct {
	r io.ByteReader
	n int64
}

func (p *payloadReader) ReadByte() (byte, error) {
	if p.off >= len(p.data) {
		return 0, io.EOF
	}

	b := p.data[p.off]
	p.off++

	return b, nil
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}

	return b, err
}

// readHeader takes exactly HeaderSize bytes from r.
// A stream ending early reports ErrInputTooShort.
func readHeader(r io.ByteReader) ([HeaderSize]byte, error) {
	var raw [HeaderSize]byte
	for i := range raw {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return raw, ErrInputTooShort
		}
		if err != nil {
			return raw, err
		}
		raw[i] = b
	}

	return raw, nil
}
