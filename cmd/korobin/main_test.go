package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/korobin"
	"github.com/woozymasta/korobin/level"
)

// run executes the CLI with a throwaway config and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level = \"debug\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"korobin", "--config", cfgPath}, args...))
	return stdout.String(), err
}

func TestCompressDecompressInfo(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "stage.xml")
	bin := filepath.Join(dir, "stage.bin")
	out := filepath.Join(dir, "stage.out")
	data := bytes.Repeat([]byte("<PART> 1 0 0 </PART>\n"), 20)
	require.NoError(t, os.WriteFile(raw, data, 0o644))

	_, err := run(t, "compress", raw, bin)
	require.NoError(t, err)

	enc, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, korobin.Compress(data), enc)

	_, err = run(t, "decompress", bin, out)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	stdout, err := run(t, "info", bin)
	require.NoError(t, err)
	var info Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, Info{
		Path:               bin,
		CompressedSize:     len(enc),
		UncompressedLength: len(data),
		ValidMagic:         true,
	}, info)
}

func TestInfoReportsBadMagic(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "odd.bin")
	enc := korobin.Compress([]byte("odd"))
	enc[0] = 0xFF
	require.NoError(t, os.WriteFile(bin, enc, 0o644))

	stdout, err := run(t, "info", bin)
	require.NoError(t, err)
	var info Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.False(t, info.ValidMagic)
	assert.Equal(t, 3, info.UncompressedLength)
}

func TestPackUnpack(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "levels.zip")
	var files []string
	for i, body := range []string{"first level", "second level", "third level"} {
		path := filepath.Join(dir, "in", string(rune('a'+i))+".xml")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		files = append(files, path)
	}

	_, err := run(t, append([]string{"pack", "--start-slot", "5", archive}, files...)...)
	require.NoError(t, err)

	mask, err := level.NewArchive(archive).FillMask()
	require.NoError(t, err)
	assert.True(t, mask[4])
	assert.True(t, mask[5])
	assert.True(t, mask[6])
	assert.False(t, mask[0])

	outDir := filepath.Join(dir, "out")
	_, err = run(t, "unpack", archive, outDir, "6", "1")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(outDir, "06.lvl"))
	require.NoError(t, err)
	assert.Equal(t, "second level", string(got))
	assert.NoFileExists(t, filepath.Join(outDir, "01.lvl"))
	assert.NoFileExists(t, filepath.Join(outDir, "05.lvl"))
}

func TestPackRejectsOverflow(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.xml")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o644))

	_, err := run(t, "pack", "--start-slot", "20", filepath.Join(dir, "x.zip"), src, src)
	assert.ErrorIs(t, err, level.ErrInvalidSlot)
}

func TestUnpackRejectsBadSlot(t *testing.T) {
	_, err := run(t, "unpack", "x.zip", t.TempDir(), "21")
	assert.ErrorIs(t, err, level.ErrInvalidSlot)
}

func TestMissingArguments(t *testing.T) {
	_, err := run(t, "compress", "only-one")
	assert.Error(t, err)
}

func TestConfigDump(t *testing.T) {
	stdout, err := run(t, "config", "dump")
	require.NoError(t, err)
	assert.Regexp(t, `log_level = ['"]debug['"]`, stdout)
	assert.Contains(t, stdout, "verify_magic = true")
}
