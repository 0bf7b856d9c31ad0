// Package prefs persists the user's stamp style between runs as a small
// versioned JSON document. Style preferences are convenience, not
// correctness: any read or write failure degrades to defaults.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/internal/logger"
)

// Version of the stored schema. v1 predates the shadow controls.
const Version = 2

// Store reads and writes the style preference file
type Store struct {
	path string
}

// document is the on-disk schema
type document struct {
	Version int          `json:"version"`
	Style   config.Style `json:"style"`
}

// New creates a Store at path, defaulting to ~/.datestamp/style.json
func New(path string) *Store {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".datestamp", "style.json")
		} else {
			path = ".datestamp-style.json"
		}
	}
	return &Store{path: path}
}

// Load returns the stored style merged over the defaults, so fields a newer
// schema added (or a hand-edited file dropped) come back default-filled.
// A missing or unreadable file yields the defaults.
func (s *Store) Load() config.Style {
	doc := document{Version: Version, Style: config.DefaultStyle()}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read style preferences %s: %v", s.path, err)
		}
		return doc.Style
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Could not parse style preferences %s: %v", s.path, err)
		return config.DefaultStyle()
	}

	if doc.Version < Version {
		migrate(&doc)
	}
	sanitize(&doc.Style)

	return doc.Style
}

// Save writes the style back to disk. Callers log and ignore failures.
func (s *Store) Save(style config.Style) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(document{Version: Version, Style: style}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// migrate upgrades older documents in place
func migrate(doc *document) {
	logger.Debug("Migrating style preferences from schema v%d", doc.Version)

	if doc.Version < 2 {
		// v1 had no shadow controls; give upgraded documents the defaults.
		defaults := config.DefaultStyle()
		doc.Style.ShadowEnabled = defaults.ShadowEnabled
		doc.Style.ShadowColor = defaults.ShadowColor
		doc.Style.ShadowBlurPx = defaults.ShadowBlurPx
		doc.Style.ShadowOffsetX = defaults.ShadowOffsetX
		doc.Style.ShadowOffsetY = defaults.ShadowOffsetY
	}
	doc.Version = Version
}

// sanitize repairs values a hand-edited file could break
func sanitize(style *config.Style) {
	defaults := config.DefaultStyle()

	if !style.Position.Valid() {
		style.Position = defaults.Position
	}
	if style.StrokeWidthPx < 0 {
		style.StrokeWidthPx = 0
	}
	if style.OffsetX < 0 {
		style.OffsetX = defaults.OffsetX
	}
	if style.OffsetY < 0 {
		style.OffsetY = defaults.OffsetY
	}
	if style.DateFormat == "" {
		style.DateFormat = defaults.DateFormat
	}
}
