package korobin

// Options configures Decompress behavior.
type Options struct {
	// VerifyMagic: if true, a header whose fixed fields differ from
	// MagicA/MagicB/MagicC is rejected with ErrBadMagic.
	VerifyMagic bool
	// NormalizeEditUser: if true, every "<EDITUSER> 3 </EDITUSER>" in a fully
	// decoded payload is rewritten to "<EDITUSER> 2 </EDITUSER>", as the
	// reference tooling does. Partial (truncated) output is never rewritten.
	NormalizeEditUser bool
}

// DefaultOptions returns options for default behavior: strict header, marker normalization.
func DefaultOptions() *Options {
	return &Options{
		VerifyMagic:       true,
		NormalizeEditUser: true,
	}
}

// LenientOptions returns options that read only the length field of the header.
func LenientOptions() *Options {
	return &Options{
		VerifyMagic:       false,
		NormalizeEditUser: true,
	}
}
