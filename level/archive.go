package level

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/containerd/log"
	"github.com/klauspost/compress/zip"
	"github.com/woozymasta/korobin"
	"golang.org/x/sync/errgroup"
)

// Archive is a ZIP file holding up to NumSlots levels as "NN.bin" entries.
// Entries that do not belong to a slot are preserved on every rewrite.
type Archive struct {
	Path        string
	Options     *korobin.Options // Decompress options; nil means defaults.
	Concurrency int              // Parallel slot workers for ReadAll/WriteAll; <= 0 means unlimited.
}

// ArchiveLevel is one slot of an Archive.
type ArchiveLevel struct {
	archive *Archive
	slot    int
}

var _ Level = (*ArchiveLevel)(nil)

// entry is a buffered archive member.
type entry struct {
	header zip.FileHeader
	data   []byte
}

// NewArchive returns an Archive at path with default options.
func NewArchive(path string) *Archive {
	return &Archive{Path: path}
}

// Slot returns the level stored in a 1-based slot.
func (a *Archive) Slot(slot int) (*ArchiveLevel, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}

	return &ArchiveLevel{archive: a, slot: slot}, nil
}

// FillMask reports, per slot, whether the archive holds a level.
func (a *Archive) FillMask() ([]bool, error) {
	entries, err := a.load()
	if err != nil {
		return nil, a.wrap(err)
	}

	mask := make([]bool, NumSlots)
	for slot := 1; slot <= NumSlots; slot++ {
		mask[slot-1] = find(entries, EntryName(slot)) >= 0
	}

	return mask, nil
}

// ReadAll decompresses every slot; empty slots are nil.
func (a *Archive) ReadAll(ctx context.Context) ([][]byte, error) {
	entries, err := a.load()
	if err != nil {
		return nil, a.wrap(err)
	}

	levels := make([][]byte, NumSlots)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit())
	for slot := 1; slot <= NumSlots; slot++ {
		i := find(entries, EntryName(slot))
		if i < 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := korobin.Decompress(entries[i].data, a.Options)
			if err != nil {
				return fmt.Errorf("slot %d: %w", slot, err)
			}
			levels[slot-1] = out
			log.G(ctx).WithField("slot", slot).WithField("size", len(out)).Debug("read level")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return levels, nil
}

// WriteAll replaces every slot entry with levels[i] for slot i+1. Nil levels
// leave the slot empty; unrelated entries are kept. At most NumSlots levels
// are accepted.
func (a *Archive) WriteAll(ctx context.Context, levels [][]byte) error {
	if len(levels) > NumSlots {
		return fmt.Errorf("%w: %d levels (max %d)", ErrInvalidSlot, len(levels), NumSlots)
	}

	existing, err := a.load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var kept []entry
	for _, e := range existing {
		if !slotEntry.MatchString(e.header.Name) {
			kept = append(kept, e)
		}
	}

	compressed := make([][]byte, len(levels))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit())
	for i, data := range levels {
		if data == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			compressed[i] = korobin.Compress(data)
			log.G(ctx).WithField("slot", i+1).WithField("size", len(data)).Debug("compressed level")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, data := range compressed {
		if data != nil {
			kept = append(kept, newEntry(EntryName(i+1), data))
		}
	}

	return a.store(kept)
}

// Exists reports whether the slot holds a level.
func (l *ArchiveLevel) Exists() (bool, error) {
	entries, err := l.archive.load()
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return find(entries, l.Name()) >= 0, nil
}

// Read decompresses the slot entry.
func (l *ArchiveLevel) Read() ([]byte, error) {
	data, err := l.raw()
	if err != nil {
		return nil, err
	}

	out, err := korobin.Decompress(data, l.archive.Options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l, err)
	}

	return out, nil
}

// Write compresses data into the slot entry, keeping all other entries.
func (l *ArchiveLevel) Write(data []byte) error {
	existing, err := l.archive.load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	kept := remove(existing, l.Name())
	kept = append(kept, newEntry(l.Name(), korobin.Compress(data)))

	return l.archive.store(kept)
}

// Delete removes the slot entry.
func (l *ArchiveLevel) Delete() error {
	existing, err := l.archive.load()
	if err != nil {
		return l.archive.wrap(err)
	}

	kept := remove(existing, l.Name())
	if len(kept) == len(existing) {
		return fmt.Errorf("%w: %s", ErrNotFound, l)
	}

	return l.archive.store(kept)
}

// Len returns the decompressed size recorded in the slot entry's header.
func (l *ArchiveLevel) Len() (int, error) {
	data, err := l.raw()
	if err != nil {
		return 0, err
	}

	return korobin.UncompressedLength(data)
}

// Slot returns the 1-based slot number.
func (l *ArchiveLevel) Slot() int {
	return l.slot
}

// Name returns the archive entry name.
func (l *ArchiveLevel) Name() string {
	return EntryName(l.slot)
}

func (l *ArchiveLevel) String() string {
	return l.archive.Path + ":" + l.Name()
}

// raw returns the compressed entry bytes.
func (l *ArchiveLevel) raw() ([]byte, error) {
	entries, err := l.archive.load()
	if err != nil {
		return nil, l.archive.wrap(err)
	}

	i := find(entries, l.Name())
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, l)
	}

	return entries[i].data, nil
}

func (a *Archive) limit() int {
	if a.Concurrency <= 0 {
		return -1
	}

	return a.Concurrency
}

// load reads every member of the archive into memory.
func (a *Archive) load() ([]entry, error) {
	r, err := zip.OpenReader(a.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in %s: %w", f.Name, a.Path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s in %s: %w", f.Name, a.Path, err)
		}
		entries = append(entries, entry{header: f.FileHeader, data: data})
	}

	return entries, nil
}

// store writes entries to a temporary file next to the archive and renames
// it into place.
func (a *Archive) store(entries []entry) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(a.Path), filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}

	zw := zip.NewWriter(tmp)
	for _, e := range entries {
		hdr := e.header
		w, err := zw.CreateHeader(&hdr)
		if err != nil {
			return fmt.Errorf("create %s: %w", hdr.Name, err)
		}
		if _, err := io.Copy(w, bytes.NewReader(e.data)); err != nil {
			return fmt.Errorf("write %s: %w", hdr.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), a.Path)
}

// wrap maps a missing archive to ErrNotFound.
func (a *Archive) wrap(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, a.Path, err)
	}

	return err
}

func newEntry(name string, data []byte) entry {
	return entry{header: zip.FileHeader{Name: name, Method: zip.Deflate}, data: data}
}

func find(entries []entry, name string) int {
	for i, e := range entries {
		if e.header.Name == name {
			return i
		}
	}

	return -1
}

func remove(entries []entry, name string) []entry {
	var kept []entry
	for _, e := range entries {
		if e.header.Name != name {
			kept = append(kept, e)
		}
	}

	return kept
}
