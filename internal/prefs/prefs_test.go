package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bstardust/datestamp/internal/config"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "style.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := tempStore(t)
	assert.Equal(t, config.DefaultStyle(), s.Load())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := tempStore(t)

	style := config.DefaultStyle()
	style.FontSizePt = 64
	style.FontColor = "#ff0000"
	style.Position = config.TopLeft
	style.ShadowEnabled = false
	style.DateFormat = "MMMM DD, YYYY"

	require.NoError(t, s.Save(style))
	assert.Equal(t, style, s.Load())
}

func TestLoadMergesMissingFieldsOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")

	// A current-version document that only sets two fields.
	doc := `{"version": 2, "style": {"fontSizePt": 30, "fontColor": "#123456"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got := New(path).Load()
	defaults := config.DefaultStyle()

	assert.Equal(t, float64(30), got.FontSizePt)
	assert.Equal(t, "#123456", got.FontColor)
	assert.Equal(t, defaults.Position, got.Position)
	assert.Equal(t, defaults.DateFormat, got.DateFormat)
	assert.Equal(t, defaults.ShadowEnabled, got.ShadowEnabled)
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")

	// Schema v1: no shadow fields existed.
	doc := `{"version": 1, "style": {"fontSizePt": 48, "position": "top-right", "dateFormat": "DD/MM/YYYY"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got := New(path).Load()
	defaults := config.DefaultStyle()

	assert.Equal(t, float64(48), got.FontSizePt)
	assert.Equal(t, config.TopRight, got.Position)
	assert.Equal(t, "DD/MM/YYYY", got.DateFormat)
	assert.Equal(t, defaults.ShadowEnabled, got.ShadowEnabled)
	assert.Equal(t, defaults.ShadowBlurPx, got.ShadowBlurPx)
}

func TestLoadSanitizesBrokenValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")

	doc := `{"version": 2, "style": {"position": "center", "strokeWidthPx": -3, "offsetX": -1, "dateFormat": ""}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got := New(path).Load()
	defaults := config.DefaultStyle()

	assert.Equal(t, defaults.Position, got.Position)
	assert.Equal(t, float64(0), got.StrokeWidthPx)
	assert.Equal(t, defaults.OffsetX, got.OffsetX)
	assert.Equal(t, defaults.DateFormat, got.DateFormat)
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	assert.Equal(t, config.DefaultStyle(), New(path).Load())
}
