package save

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	want := sampleData()
	require.NoError(t, fs.Save(want))

	// A second store on the same dir must read the written file, not a cache.
	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := fs2.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_MissingFileIsFreshSave(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, NewData(), got)
}

func TestFileStore_TamperedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Save(sampleData()))

	raw, err := os.ReadFile(filepath.Join(dir, "save.json"))
	require.NoError(t, err)
	raw = bytes.Replace(raw, []byte("1234.5"), []byte("999999"), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "save.json"), raw, 0o644))

	fs2, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := fs2.Load()
	require.NoError(t, err)
	assert.Equal(t, NewData(), got)
}

func TestFileStore_Clear(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Save(sampleData()))
	require.NoError(t, fs.Clear())

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, NewData(), got)
}

func TestMemoryStore_SetRawTamper(t *testing.T) {
	ms := NewMemoryStore()
	require.NoError(t, ms.Save(sampleData()))

	ms.SetRaw(bytes.Replace(ms.Raw(), []byte("1234.5"), []byte("42"), 1))

	got, err := ms.Load()
	require.NoError(t, err)
	assert.Equal(t, NewData(), got)
}
