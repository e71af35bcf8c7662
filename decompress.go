package korobin

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// maxExpansion bounds output per payload byte (a 2-byte match yields MaxMatch bytes).
const maxExpansion = MaxMatch/2 + 1

// Decompress decodes a container produced by Compress or by the game.
// Options nil means DefaultOptions (strict header, marker normalization).
//
// A match token cut short by the end of input is not an error: the bytes
// decoded so far are returned with a nil error.
func Decompress(src []byte, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	h, err := parseHeader(src, opts.VerifyMagic)
	if err != nil {
		return nil, err
	}

	payload := src[HeaderSize:]
	sizeHint := min(int(h.UncompressedLength), len(payload)*maxExpansion)

	return decompressFromByteReader(&payloadReader{data: payload}, h, sizeHint, opts)
}

// DecompressFromReader decodes one container from r and returns consumed bytes.
// Decoding stops right after the token that completes the output, so r is left
// positioned at any trailing data (with the usual bufio caveat for readers that
// are not io.ByteReader).
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	var byteReader io.ByteReader
	if existing, ok := r.(io.ByteReader); ok {
		byteReader = existing
	} else {
		byteReader = bufio.NewReader(r)
	}

	counter := &countingReader{r: byteReader}

	raw, err := readHeader(counter)
	if err != nil {
		return nil, counter.n, err
	}

	h, err := parseHeader(raw[:], opts.VerifyMagic)
	if err != nil {
		return nil, counter.n, err
	}

	sizeHint := min(int(h.UncompressedLength), 64<<10)
	out, err := decompressFromByteReader(counter, h, sizeHint, opts)
	if err != nil {
		return nil, counter.n, err
	}

	return out, counter.n, nil
}

// decompressFromByteReader decodes the payload that follows header h.
func decompressFromByteReader(r io.ByteReader, h Header, sizeHint int, opts *Options) ([]byte, error) {
	outLen := int(h.UncompressedLength)
	out := make([]byte, 0, sizeHint)
	w := newWindow()

	// Read a byte from the reader.
	// If the reader returns an EOF error, return the error passed as eofErr.
	// Otherwise, return the error from the reader.
	readByte := func(eofErr error) (byte, error) {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, eofErr
			}

			return 0, err
		}

		return b, nil
	}

	for len(out) < outLen {
		flagByte, err := readByte(ErrUnexpectedEOF)
		if err != nil {
			return nil, err
		}

		for bit := 0; bit < FlagBits && len(out) < outLen; bit++ {
			// If bit is 1, it's a literal: 1 byte, otherwise it's a 2-byte match.
			if (flagByte>>bit)&1 == 1 {
				b, err := readByte(ErrUnexpectedEOFBit)
				if err != nil {
					return nil, err
				}

				w.write(b)
				out = append(out, b)
				continue
			}

			lo, err := readByte(io.ErrUnexpectedEOF)
			if err != nil {
				return truncated(out, err)
			}
			hi, err := readByte(io.ErrUnexpectedEOF)
			if err != nil {
				return truncated(out, err)
			}

			t := decodeMatch(lo, hi)
			n := min(t.length, outLen-len(out))
			// Read before write: an overlapping match sees its own output.
			for k := 0; k < n; k++ {
				b := w.read(t.offset + k - WindowSize)
				w.write(b)
				out = append(out, b)
			}
		}
	}

	if opts.NormalizeEditUser {
		out = bytes.ReplaceAll(out, editUserFrom, editUserTo)
	}

	return out, nil
}

// truncated returns the partial output when a match is cut off by the end
// of input; other read errors are passed through.
func truncated(out []byte, err error) ([]byte, error) {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return out, nil
	}

	return nil, err
}
