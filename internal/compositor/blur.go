package compositor

import "image"

// blurAlpha softens an alpha mask with repeated box blurs. Three passes are
// a close approximation of a Gaussian and cheap enough to run per photo.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	out := src
	for i := 0; i < blurPasses; i++ {
		out = boxBlur(out, radius)
	}
	return out
}

// boxBlur runs one horizontal and one vertical sliding-window pass.
// Edges clamp to the border pixel.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	b := src.Rect
	w, h := b.Dx(), b.Dy()
	window := 2*radius + 1

	tmp := image.NewAlpha(b)
	dst := image.NewAlpha(b)

	clamp := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	// horizontal
	for y := 0; y < h; y++ {
		row := y * src.Stride
		sum := 0
		for i := -radius; i <= radius; i++ {
			sum += int(src.Pix[row+clamp(i, w-1)])
		}
		for x := 0; x < w; x++ {
			tmp.Pix[y*tmp.Stride+x] = uint8(sum / window)
			sum += int(src.Pix[row+clamp(x+radius+1, w-1)])
			sum -= int(src.Pix[row+clamp(x-radius, w-1)])
		}
	}

	// vertical
	for x := 0; x < w; x++ {
		sum := 0
		for i := -radius; i <= radius; i++ {
			sum += int(tmp.Pix[clamp(i, h-1)*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			dst.Pix[y*dst.Stride+x] = uint8(sum / window)
			sum += int(tmp.Pix[clamp(y+radius+1, h-1)*tmp.Stride+x])
			sum -= int(tmp.Pix[clamp(y-radius, h-1)*tmp.Stride+x])
		}
	}

	return dst
}
