package config

// Position pins the stamp to one corner of the frame.
type Position string

// Stamp positions
const (
	TopLeft     Position = "top-left"
	TopRight    Position = "top-right"
	BottomLeft  Position = "bottom-left"
	BottomRight Position = "bottom-right"
)

// Valid reports whether p is one of the four known corners
func (p Position) Valid() bool {
	switch p {
	case TopLeft, TopRight, BottomLeft, BottomRight:
		return true
	}
	return false
}

// RightAligned reports whether text is measured from the right edge
func (p Position) RightAligned() bool {
	return p == TopRight || p == BottomRight
}

// BottomAligned reports whether the baseline sits at the bottom edge
func (p Position) BottomAligned() bool {
	return p == BottomLeft || p == BottomRight
}

// Style is the per-run stamp configuration. It is passed by value through
// the pipeline; nothing mutates it after the run starts.
type Style struct {
	FontSizePt    float64  `json:"fontSizePt"`
	FontFamily    string   `json:"fontFamily"` // path to a .ttf/.otf file; empty selects the embedded bold face
	FontColor     string   `json:"fontColor"`
	StrokeColor   string   `json:"strokeColor"`
	ShadowColor   string   `json:"shadowColor"`
	StrokeWidthPx float64  `json:"strokeWidthPx"`
	Position      Position `json:"position"`
	OffsetX       int      `json:"offsetX"` // pixels inward from the chosen corner
	OffsetY       int      `json:"offsetY"`
	ShadowEnabled bool     `json:"shadowEnabled"`
	ShadowBlurPx  float64  `json:"shadowBlurPx"`
	ShadowOffsetX int      `json:"shadowOffsetX"`
	ShadowOffsetY int      `json:"shadowOffsetY"`
	DateFormat    string   `json:"dateFormat"`
}

// Config represents the application configuration
type Config struct {
	LogLevel string
	Style    Style
	Output   OutputConfig
	S3       S3Config
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Dir       string
	ZipPath   string
	SaveStyle bool
	NoPrefs   bool
}

// S3Config represents the optional publish destination
type S3Config struct {
	Endpoint    string
	Region      string
	Bucket      string
	AccessKey   string
	SecretKey   string
	UseSSL      bool
	Prefix      string
	Concurrency int
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "info",
		Style:    DefaultStyle(),
		Output: OutputConfig{
			Dir: "stamped",
		},
		S3: S3Config{
			Region:      "us-east-1",
			UseSSL:      true,
			Concurrency: 4,
		},
	}
}

// DefaultStyle returns the stamp style used when no preferences are stored.
// The orange fill over a thin dark outline mimics classic film datestamps.
func DefaultStyle() Style {
	return Style{
		FontSizePt:    42,
		FontColor:     "#ffa500",
		StrokeColor:   "#000000",
		ShadowColor:   "#000000",
		StrokeWidthPx: 2,
		Position:      BottomRight,
		OffsetX:       20,
		OffsetY:       20,
		ShadowEnabled: true,
		ShadowBlurPx:  4,
		ShadowOffsetX: 2,
		ShadowOffsetY: 2,
		DateFormat:    "YYYY-MM-DD HH:mm",
	}
}
