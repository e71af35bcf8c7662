package level

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/woozymasta/korobin"
)

// File is a level stored as a whole compressed container on disk.
type File struct {
	Path    string
	Options *korobin.Options // Decompress options; nil means defaults.
}

var _ Level = (*File)(nil)

// Exists reports whether the file is present.
func (f *File) Exists() (bool, error) {
	_, err := os.Stat(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return err == nil, err
}

// Read decompresses the file.
func (f *File) Read() ([]byte, error) {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, f.wrap(err)
	}

	out, err := korobin.Decompress(src, f.Options)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", f.Path, err)
	}

	return out, nil
}

// Write compresses data into the file, replacing it.
func (f *File) Write(data []byte) error {
	return os.WriteFile(f.Path, korobin.Compress(data), 0o644)
}

// Delete removes the file.
func (f *File) Delete() error {
	return f.wrap(os.Remove(f.Path))
}

// Len reads the decompressed size from the header only.
func (f *File) Len() (int, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return 0, f.wrap(err)
	}
	defer fh.Close()

	var hdr [korobin.HeaderSize]byte
	if _, err := io.ReadFull(fh, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%s: %w", f.Path, korobin.ErrInputTooShort)
		}
		return 0, err
	}

	return korobin.UncompressedLength(hdr[:])
}

// wrap maps a missing file to ErrNotFound.
func (f *File) wrap(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, f.Path, err)
	}

	return err
}
