package files_test

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgabbard/bue-common-open/pkg/files"
	"github.com/rgabbard/bue-common-open/pkg/symbols"
)

func TestSwapAndAddExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "doc.json", files.SwapExtension("doc.txt", "json"))
	assert.Equal(t, "dir/doc.json", files.SwapExtension("dir/doc.txt", "json"))
	assert.Equal(t, "doc.json", files.SwapExtension("doc", "json"))
	assert.Equal(t, "doc.txt.gz", files.AddExtension("doc.txt", "gz"))
}

func TestLoadFileList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.list")
	require.NoError(t, os.WriteFile(path, []byte("a.txt\n\n  b.txt  \nc.txt\n"), 0o644))

	entries, err := files.LoadFileList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, entries)
}

func TestLoadFileListRelativeTo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.list")
	require.NoError(t, os.WriteFile(path, []byte("a.txt\n/abs/b.txt\n"), 0o644))

	entries, err := files.LoadFileListRelativeTo(path, "/base")
	require.NoError(t, err)
	assert.Equal(t, []string{"/base/a.txt", "/abs/b.txt"}, entries)
}

func TestWriteFileList_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.list")

	require.NoError(t, files.WriteFileList([]string{"x.txt", "y.txt"}, path))
	entries, err := files.LoadFileList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt", "y.txt"}, entries)
}

func TestOptionallyCompressedReader_Gzip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("compressed content"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	r, err := files.OptionallyCompressedReader(path)
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "compressed content", string(content))
}

func TestOptionallyCompressedWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"plain.txt", "data.txt.gz", "data.txt.xz"} {
		dir := t.TempDir()
		path := filepath.Join(dir, name)

		w, err := files.OptionallyCompressedWriter(path)
		require.NoError(t, err, name)
		_, err = w.Write([]byte("round trip"))
		require.NoError(t, err, name)
		require.NoError(t, w.Close(), name)

		r, err := files.OptionallyCompressedReader(path)
		require.NoError(t, err, name)
		content, err := io.ReadAll(r)
		require.NoError(t, err, name)
		require.NoError(t, r.Close(), name)
		assert.Equal(t, "round trip", string(content), name)
	}
}

func TestLoadStringToFileMap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.map")
	require.NoError(t, os.WriteFile(path, []byte("doc1\ta.txt\ndoc2\tb.txt\n"), 0o644))

	m, err := files.LoadStringToFileMap(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"doc1": "a.txt", "doc2": "b.txt"}, m)
}

func TestLoadStringToFileMap_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	dup := filepath.Join(dir, "dup.map")
	require.NoError(t, os.WriteFile(dup, []byte("k\ta.txt\nk\tb.txt\n"), 0o644))
	_, err := files.LoadStringToFileMap(dup)
	require.Error(t, err)

	malformed := filepath.Join(dir, "bad.map")
	require.NoError(t, os.WriteFile(malformed, []byte("no tab here\n"), 0o644))
	_, err = files.LoadStringToFileMap(malformed)
	require.Error(t, err)
}

func TestSymbolToFileMap_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.map")

	m := map[symbols.Symbol]string{
		symbols.From("doc2"): "b.txt",
		symbols.From("doc1"): "a.txt",
	}
	require.NoError(t, files.WriteSymbolToFileMap(m, path))

	// Sorted by key for deterministic output.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "doc1\ta.txt\ndoc2\tb.txt\n", string(content))

	loaded, err := files.LoadSymbolToFileMap(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestLoadStringMultimap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "multi.map")
	require.NoError(t, os.WriteFile(path, []byte("k\ta\nk\tb\nj\tc\n"), 0o644))

	m, err := files.LoadStringMultimap(path)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"k": {"a", "b"}, "j": {"c"}}, m)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, files.WriteAtomic(path, []byte("first"), 0))
	require.NoError(t, files.WriteAtomic(path, []byte("second"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestBackup_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	created, err := files.Backup(path, "")
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, os.WriteFile(path, []byte("modified"), 0o644))

	created, err = files.Backup(path, "")
	require.NoError(t, err)
	assert.False(t, created, "existing backup must not be overwritten")

	content, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "original", string(content))
}

func TestBackup_MissingOriginal(t *testing.T) {
	t.Parallel()

	created, err := files.Backup(filepath.Join(t.TempDir(), "nope.txt"), "")
	require.NoError(t, err)
	assert.False(t, created)
}
