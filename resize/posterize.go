package resize

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Posterize reduces m to at most n colors using median cut quantization.
// If n is zero or negative m is returned unchanged.
func Posterize(m *image.RGBA, n int) *image.RGBA {
	b := m.Bounds()
	if n <= 0 || b.Empty() {
		return m
	}

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	dst := image.NewRGBA(b)
	draw.Draw(dst, b, pm, b.Min, draw.Src)

	return dst
}
