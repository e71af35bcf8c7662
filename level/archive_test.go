package level

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/korobin"
)

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestEntryName(t *testing.T) {
	assert.Equal(t, "01.bin", EntryName(1))
	assert.Equal(t, "20.bin", EntryName(20))
}

func TestArchiveSlotRange(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "levels.zip"))
	for _, slot := range []int{0, -1, NumSlots + 1} {
		_, err := a.Slot(slot)
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %d", slot)
	}

	l, err := a.Slot(NumSlots)
	require.NoError(t, err)
	assert.Equal(t, NumSlots, l.Slot())
	assert.Equal(t, "20.bin", l.Name())
}

func TestArchiveLevelRoundTrip(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "levels.zip"))
	l, err := a.Slot(3)
	require.NoError(t, err)

	ok, err := l.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = l.Read()
	assert.ErrorIs(t, err, ErrNotFound)

	data := []byte("<STAGE> <EDITUSER> 2 </EDITUSER> </STAGE>")
	require.NoError(t, l.Write(data))

	other, err := a.Slot(7)
	require.NoError(t, err)
	require.NoError(t, other.Write([]byte("other level")))

	// Rewriting a slot keeps the other entries.
	require.NoError(t, l.Write(data))
	assert.ElementsMatch(t, []string{"03.bin", "07.bin"}, entryNames(t, a.Path))

	got, err := l.Read()
	require.NoError(t, err)
	assert.Equal(t, data, got)

	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	mask, err := a.FillMask()
	require.NoError(t, err)
	want := make([]bool, NumSlots)
	want[2], want[6] = true, true
	assert.Equal(t, want, mask)

	require.NoError(t, l.Delete())
	assert.ErrorIs(t, l.Delete(), ErrNotFound)
	assert.Equal(t, []string{"07.bin"}, entryNames(t, a.Path))
}

func TestArchiveWriteAllKeepsForeignEntries(t *testing.T) {
	a := &Archive{Path: filepath.Join(t.TempDir(), "levels.zip"), Concurrency: 2}
	ctx := context.Background()

	// Seed with a slot entry, a raw slot entry and an unrelated file.
	seed := []entry{
		newEntry("02.bin", korobin.Compress([]byte("old"))),
		newEntry("05.lvl", []byte("raw")),
		newEntry("readme.txt", []byte("keep me")),
		newEntry("21.bin", []byte("not a slot")),
	}
	require.NoError(t, a.store(seed))

	levels := make([][]byte, NumSlots)
	levels[0] = []byte("first")
	levels[19] = []byte("<EDITUSER> 3 </EDITUSER>")
	require.NoError(t, a.WriteAll(ctx, levels))

	assert.Equal(t, []string{"readme.txt", "21.bin", "01.bin", "20.bin"}, entryNames(t, a.Path))

	got, err := a.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, NumSlots)
	assert.Equal(t, "first", string(got[0]))
	assert.Equal(t, "<EDITUSER> 2 </EDITUSER>", string(got[19]))
	for i := 1; i < NumSlots-1; i++ {
		assert.Nil(t, got[i], "slot %d", i+1)
	}
}

func TestArchiveWriteAllTooMany(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "levels.zip"))
	err := a.WriteAll(context.Background(), make([][]byte, NumSlots+1))
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestArchiveReadAllCorruptSlot(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "levels.zip"))
	require.NoError(t, a.store([]entry{newEntry("04.bin", []byte{1, 2, 3})}))

	_, err := a.ReadAll(context.Background())
	assert.ErrorIs(t, err, korobin.ErrInputTooShort)
}

func TestArchiveMissing(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "missing.zip"))

	_, err := a.FillMask()
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	l, err := a.Slot(1)
	require.NoError(t, err)
	ok, err := l.Exists()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, l.Delete(), ErrNotFound)
}
