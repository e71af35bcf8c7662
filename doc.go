/*
Package korobin implements the compressed level container used by the
Kororinpa level editor in its save data.

Format: 16-byte header of big-endian uint32 fields (1, 8, uncompressed length, 1)
followed by chunks. Each chunk is one flag byte and up to 8 tokens; flag bits are
read LSB first, bit 1 = literal (1 byte), bit 0 = match (2 bytes).
Match: [offset&0xFF, (offset>>2)&0xC0 | (length-3)]; offset is an absolute index
into a 1024-byte ring window, length 3..66.
Window: zero-filled, write cursor starts at 958.

The encoder is byte-exact with the game's tooling: the match search walks the
window from the cursor (oldest byte) and keeps the oldest candidate among those
reaching the longest length.

Use Compress(data) to build a container; it never fails.
Use Decompress(src, opts) with nil for default (strict header check, marker normalization).
Use DecompressFromReader(r, opts) to decode one container from a stream.
Use UncompressedLength(src) to read the decoded size without decoding.

# Examples

Round-trip compress and decompress:

	enc := korobin.Compress(data)
	dec, err := korobin.Decompress(enc, nil)
	if err != nil {
		return err
	}
	// dec equals data

Decompress a container whose magic fields were altered by another tool:

	out, err := korobin.Decompress(src, korobin.LenientOptions())

A match cut off by the end of input yields the bytes decoded so far and no error:

	out, err := korobin.Decompress(damaged, nil)
	if err == nil && len(out) < wantLen {
		// partial recovery
	}
*/
package korobin
