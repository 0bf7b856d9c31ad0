// Package resolver derives the timestamp to stamp onto a photo from its
// embedded EXIF metadata, falling back to the wall clock when nothing usable
// is present. Absent or corrupt metadata is an expected condition, never an
// error for the caller.
package resolver

import (
	"bytes"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/bstardust/datestamp/internal/logger"
)

// exifTimeLayout is the EXIF ASCII date format
const exifTimeLayout = "2006:01:02 15:04:05"

// fieldPriority encodes the preference order: the moment of capture is
// authoritative, administrative timestamps are weaker signals.
var fieldPriority = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// ResolvedTimestamp is the outcome of metadata resolution. IsFallback means
// the wall clock was substituted; it is carried to the final record for
// display only and never affects rendering.
type ResolvedTimestamp struct {
	Instant    time.Time
	IsFallback bool
}

// Resolver extracts capture timestamps from raw image bytes
type Resolver struct {
	// Now supplies the fallback clock; tests may replace it.
	Now func() time.Time
}

// New creates a new Resolver using the system clock
func New() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve returns the first usable embedded timestamp, or the current time
// with IsFallback set. It never fails.
func (r *Resolver) Resolve(data []byte) ResolvedTimestamp {
	if ts, ok := r.extract(data); ok {
		return ResolvedTimestamp{Instant: ts}
	}
	return ResolvedTimestamp{Instant: r.Now(), IsFallback: true}
}

// extract attempts the priority-ordered EXIF fields. Decoder panics on
// malformed containers are treated the same as missing metadata.
func (r *Resolver) extract(data []byte) (ts time.Time, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Debug("Metadata decoder panicked: %v", rec)
			ok = false
		}
	}()

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Time{}, false
	}

	for _, field := range fieldPriority {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, err := parseExifTime(raw); err == nil {
			return t, true
		}
		logger.Debug("Unparseable %s value %q", field, raw)
	}

	return time.Time{}, false
}

// parseExifTime parses an EXIF ASCII timestamp, tolerating NUL padding.
// EXIF timestamps carry no zone; local time is assumed, as cameras do.
func parseExifTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	return time.ParseInLocation(exifTimeLayout, raw, time.Local)
}
