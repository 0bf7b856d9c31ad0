package resolver

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// EXIF tag IDs for the three timestamp fields
const (
	tagDateTime          = 0x0132
	tagDateTimeOriginal  = 0x9003
	tagDateTimeDigitized = 0x9004
)

type exifField struct {
	tag   uint16
	value time.Time
}

// exifBlob builds a minimal little-endian TIFF structure whose IFD0 points
// at an Exif sub-IFD carrying the given ASCII timestamp fields. goexif
// accepts raw TIFF data directly.
func exifBlob(t *testing.T, fields ...exifField) []byte {
	t.Helper()

	var buf bytes.Buffer
	le := binary.LittleEndian

	write := func(v interface{}) {
		require.NoError(t, binary.Write(&buf, le, v))
	}

	// TIFF header: byte order, magic, offset to IFD0
	buf.WriteString("II")
	write(uint16(42))
	write(uint32(8))

	// IFD0: a single entry pointing at the Exif sub-IFD
	exifIFDOffset := uint32(8 + 2 + 12 + 4)
	write(uint16(1))
	write(uint16(0x8769)) // ExifIFDPointer
	write(uint16(4))      // LONG
	write(uint32(1))
	write(exifIFDOffset)
	write(uint32(0)) // no next IFD

	// Exif sub-IFD
	n := len(fields)
	dataOffset := exifIFDOffset + uint32(2+12*n+4)
	write(uint16(n))
	for i, f := range fields {
		write(f.tag)
		write(uint16(2))  // ASCII
		write(uint32(20)) // "YYYY:MM:DD HH:MM:SS" + NUL
		write(dataOffset + uint32(20*i))
	}
	write(uint32(0))
	for _, f := range fields {
		buf.WriteString(f.value.Format("2006:01:02 15:04:05"))
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolvePrefersCaptureTime(t *testing.T) {
	capture := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)
	modified := time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local)

	data := exifBlob(t,
		exifField{tagDateTime, modified},
		exifField{tagDateTimeOriginal, capture},
	)

	r := New()
	got := r.Resolve(data)
	assert.False(t, got.IsFallback)
	assert.True(t, got.Instant.Equal(capture), "want %v, got %v", capture, got.Instant)
}

func TestResolveFallsBackThroughFieldOrder(t *testing.T) {
	digitized := time.Date(2022, 9, 15, 18, 30, 45, 0, time.Local)

	data := exifBlob(t, exifField{tagDateTimeDigitized, digitized})

	got := New().Resolve(data)
	assert.False(t, got.IsFallback)
	assert.True(t, got.Instant.Equal(digitized))
}

func TestResolveLastModifiedOnly(t *testing.T) {
	modified := time.Date(2021, 2, 3, 4, 5, 6, 0, time.Local)

	data := exifBlob(t, exifField{tagDateTime, modified})

	got := New().Resolve(data)
	assert.False(t, got.IsFallback)
	assert.True(t, got.Instant.Equal(modified))
}

func TestResolveNoRecognizedFields(t *testing.T) {
	now := time.Date(2024, 5, 5, 5, 5, 5, 0, time.Local)
	r := &Resolver{Now: fixedClock(now)}

	data := exifBlob(t) // valid TIFF, empty Exif IFD

	got := r.Resolve(data)
	assert.True(t, got.IsFallback)
	assert.True(t, got.Instant.Equal(now))
}

func TestResolveCorruptInput(t *testing.T) {
	now := time.Date(2024, 5, 5, 5, 5, 5, 0, time.Local)
	r := &Resolver{Now: fixedClock(now)}

	for _, data := range [][]byte{
		nil,
		[]byte("definitely not an image"),
		{0xff, 0xd8, 0xff}, // truncated JPEG
	} {
		got := r.Resolve(data)
		assert.True(t, got.IsFallback)
		assert.True(t, got.Instant.Equal(now))
	}
}

func TestParseExifTime(t *testing.T) {
	got, err := parseExifTime("2023:06:01 12:00:00\x00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local), got)

	_, err = parseExifTime("not a timestamp")
	assert.Error(t, err)
}
