package photosource

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeZip(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return writeFile(t, dir, name, buf.Bytes())
}

func TestCollectSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", []byte("jpeg bytes"))

	col, err := Collect(context.Background(), []string{path})
	require.NoError(t, err)
	defer col.Close()
	require.Len(t, col.Entries, 1)

	assert.Equal(t, "photo.jpg", col.Entries[0].Name)
	data, err := col.Entries[0].Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestCollectDirectorySkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.png", []byte("png"))
	writeFile(t, dir, "a.jpg", []byte("jpg"))
	writeFile(t, dir, "notes.txt", []byte("text"))

	col, err := Collect(context.Background(), []string{dir})
	require.NoError(t, err)
	defer col.Close()
	require.Len(t, col.Entries, 2)

	// lexical walk order
	assert.Equal(t, "a.jpg", col.Entries[0].Name)
	assert.Equal(t, "b.png", col.Entries[1].Name)
}

func TestCollectZip(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "photos.zip", map[string]string{"one.jpg": "1", "two.jpeg": "2", "skip.json": "{}"})

	col, err := Collect(context.Background(), []string{path})
	require.NoError(t, err)
	defer col.Close()
	require.Len(t, col.Entries, 2)

	names := []string{col.Entries[0].Name, col.Entries[1].Name}
	assert.ElementsMatch(t, []string{"one.jpg", "two.jpeg"}, names)
}

func TestCollectionCloseReleasesArchives(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "photos.zip", map[string]string{"one.jpg": "1"})

	col, err := Collect(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, col.Entries, 1)

	data, err := col.Entries[0].Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), data)

	require.NoError(t, col.Close())

	// the archive's file handle is gone
	_, err = col.Entries[0].Bytes()
	assert.Error(t, err)
}

func TestCollectMissingPath(t *testing.T) {
	_, err := Collect(context.Background(), []string{"/does/not/exist.jpg"})
	assert.Error(t, err)
}

func TestCollectUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "document.pdf", []byte("%PDF"))

	_, err := Collect(context.Background(), []string{path})
	assert.Error(t, err)
}

func TestCollectPreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "zz.jpg", []byte("z"))
	second := writeFile(t, dir, "aa.jpg", []byte("a"))

	col, err := Collect(context.Background(), []string{first, second})
	require.NoError(t, err)
	defer col.Close()
	require.Len(t, col.Entries, 2)
	assert.Equal(t, "zz.jpg", col.Entries[0].Name)
	assert.Equal(t, "aa.jpg", col.Entries[1].Name)
}
