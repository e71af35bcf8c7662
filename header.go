package korobin

import (
	"encoding/binary"
	"fmt"
)

// Header is the 16-byte container header preceding the payload.
// Layout (big-endian uint32): MagicA, MagicB, uncompressed length, MagicC.
type Header struct {
	UncompressedLength uint32
}

// Append appends the encoded header to dst.
func (h Header) Append(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, MagicA)
	dst = binary.BigEndian.AppendUint32(dst, MagicB)
	dst = binary.BigEndian.AppendUint32(dst, h.UncompressedLength)

	return binary.BigEndian.AppendUint32(dst, MagicC)
}

// ParseHeader decodes and validates the header at the beginning of src.
func ParseHeader(src []byte) (Header, error) {
	return parseHeader(src, true)
}

// UncompressedLength returns the decoded size recorded in the header of src
// without decompressing the payload. Magic values are not checked.
func UncompressedLength(src []byte) (int, error) {
	h, err := parseHeader(src, false)
	if err != nil {
		return 0, err
	}

	return int(h.UncompressedLength), nil
}

// parseHeader decodes the header; verify enables magic value checks.
func parseHeader(src []byte, verify bool) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, ErrInputTooShort
	}

	if verify {
		fields := [...]struct {
			name string
			pos  int
			want uint32
		}{
			{"magic_a", 0, MagicA},
			{"magic_b", 4, MagicB},
			{"magic_c", 12, MagicC},
		}
		for _, f := range fields {
			if got := binary.BigEndian.Uint32(src[f.pos:]); got != f.want {
				return Header{}, fmt.Errorf("%w: %s=0x%08x expected=0x%08x", ErrBadMagic, f.name, got, f.want)
			}
		}
	}

	return Header{UncompressedLength: binary.BigEndian.Uint32(src[8:])}, nil
}
