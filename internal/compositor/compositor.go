// Package compositor draws the resolved timestamp text onto a photo and
// encodes the result. Placement, stroke and shadow layering follow a fixed
// order: shadow (cast by the stroke silhouette), then stroke, then fill on
// top, so the shadow is never doubled and the fill always reads cleanly.
package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"

	// Decodable input formats. Outputs are always JPEG.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/bstardust/datestamp/internal/config"
	"github.com/bstardust/datestamp/pkg/common"
)

const (
	// minFontSize keeps the stamp legible on thumbnails
	minFontSize = 24
	// widthDivisor caps the stamp at a tenth of the frame width
	widthDivisor = 10
	// jpegQuality for encoded outputs
	jpegQuality = 95
	// blurPasses of box blur approximate a Gaussian
	blurPasses = 3
)

// Compositor renders timestamp overlays with a single parsed font
type Compositor struct {
	font *opentype.Font
}

// New creates a Compositor drawing with the font at fontPath, or the
// embedded bold face when fontPath is empty.
func New(fontPath string) (*Compositor, error) {
	f, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	return &Compositor{font: f}, nil
}

// Decode decodes raw image bytes into a drawable surface
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Composite draws text onto a copy of src per style and returns the result
// encoded as JPEG. The source is never resampled; the canvas keeps its
// native dimensions.
func (c *Compositor) Composite(src image.Image, text string, style config.Style) ([]byte, error) {
	bounds := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)

	size := effectiveFontSize(style.FontSizePt, canvas.Rect.Dx())
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, common.NewConfigError("cannot size font face: " + err.Error())
	}
	defer face.Close()

	textWidth := font.MeasureString(face, text).Ceil()
	x, y := anchor(style, canvas.Rect.Dx(), canvas.Rect.Dy(), textWidth, size)

	strokeWidth := int(math.Round(style.StrokeWidthPx))
	if strokeWidth > 0 {
		mask := strokeMask(canvas.Rect, face, text, x, y, strokeWidth)

		// The shadow is cast by the stroke silhouette only; the fill pass
		// below never draws one.
		if style.ShadowEnabled {
			shadow := blurAlpha(mask, int(math.Round(style.ShadowBlurPx/2)))
			shadowColor := parseHexColor(style.ShadowColor, color.RGBA{A: 0xff})
			offset := image.Pt(style.ShadowOffsetX, style.ShadowOffsetY)
			draw.DrawMask(canvas, canvas.Rect.Add(offset),
				image.NewUniform(shadowColor), image.Point{}, shadow, image.Point{}, draw.Over)
		}

		strokeColor := parseHexColor(style.StrokeColor, color.RGBA{A: 0xff})
		draw.DrawMask(canvas, canvas.Rect,
			image.NewUniform(strokeColor), image.Point{}, mask, image.Point{}, draw.Over)
	}

	fillColor := parseHexColor(style.FontColor, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(fillColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, common.NewEncodeError(text, err.Error())
	}
	return buf.Bytes(), nil
}

// effectiveFontSize clamps the configured size between minFontSize and a
// tenth of the frame width, so text stays legible on small images and
// proportionate on large ones.
func effectiveFontSize(requested float64, width int) float64 {
	size := requested
	if max := float64(width) / widthDivisor; size > max {
		size = max
	}
	if size < minFontSize {
		size = minFontSize
	}
	return size
}

// anchor returns the baseline origin for the text. Offsets are measured
// inward from the chosen corner; top positions push the baseline down by
// one text height so the glyphs sit fully inside the frame.
func anchor(style config.Style, width, height, textWidth int, size float64) (int, int) {
	var x, y int

	if style.Position.RightAligned() {
		x = width - textWidth - style.OffsetX
	} else {
		x = style.OffsetX
	}

	if style.Position.BottomAligned() {
		y = height - style.OffsetY
	} else {
		y = int(math.Round(size)) + style.OffsetY
	}

	return x, y
}

// strokeMask rasterizes the text outline: the glyph raster stamped at every
// integer offset within the stroke radius, which yields round joins.
func strokeMask(r image.Rectangle, face font.Face, text string, x, y, width int) *image.Alpha {
	mask := image.NewAlpha(r)
	src := image.NewUniform(color.Alpha{A: 0xff})

	for dy := -width; dy <= width; dy++ {
		for dx := -width; dx <= width; dx++ {
			if dx*dx+dy*dy > width*width {
				continue
			}
			d := font.Drawer{
				Dst:  mask,
				Src:  src,
				Face: face,
				Dot:  fixed.P(x+dx, y+dy),
			}
			d.DrawString(text)
		}
	}
	return mask
}

// parseHexColor parses #RGB and #RRGGBB color values, returning fallback
// for anything unparseable. Bad color strings degrade, they never fail a
// render.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}

	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}

	switch len(s) {
	case 4: // #RGB
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := hex(s[i+1])
			if !ok {
				return fallback
			}
			c[i] = v * 0x11
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
	case 7: // #RRGGBB
		var c [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hex(s[2*i+1])
			lo, ok2 := hex(s[2*i+2])
			if !ok1 || !ok2 {
				return fallback
			}
			c[i] = hi<<4 | lo
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
	}
	return fallback
}
