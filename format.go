package korobin

// Container and token format constants.
const (
	WindowSize  = 1024 // Sliding window size (ring buffer).
	WindowStart = 958  // Initial write cursor of the window.
	MinMatch    = 3    // Minimum back-reference length.
	MaxMatch    = 66   // Maximum back-reference length (encoded as 0..63 + MinMatch).
	FlagBits    = 8    // Tokens per flag byte.
	HeaderSize  = 16   // Container header: four big-endian uint32 fields.

	windowMask = WindowSize - 1
	lengthMask = 0x3F // Low 6 bits of the second match byte.
	offsetHigh = 0xC0 // High 2 bits of the second match byte (offset bits 8..9).
)

// Fixed header field values.
const (
	MagicA uint32 = 1
	MagicB uint32 = 8
	MagicC uint32 = 1
)

// Marker rewritten by the decoder after a full decode.
var (
	editUserFrom = []byte("<EDITUSER> 3 </EDITUSER>")
	editUserTo   = []byte("<EDITUSER> 2 </EDITUSER>")
)
