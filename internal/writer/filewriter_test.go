package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileWriterReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.SchDoc")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteContainer([]byte("new contents")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new contents", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not survive")
}

func TestFileWriterBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.SchDoc")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	w := &FileWriter{Path: path, Backup: true}
	require.NoError(t, w.WriteContainer([]byte("patched")))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	require.Equal(t, "original", string(bak))
}

func TestFileWriterCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.SchDoc")
	w := &FileWriter{Path: path, Backup: true}
	require.NoError(t, w.WriteContainer([]byte{1, 2, 3}))
	_, err := os.Stat(path + ".bak")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileWriterMissingDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "x.SchDoc")}
	require.Error(t, w.WriteContainer([]byte{1}))
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	src := []byte{1, 2, 3}
	require.NoError(t, w.WriteContainer(src))
	src[0] = 9
	require.Equal(t, []byte{1, 2, 3}, w.Buf)
}
