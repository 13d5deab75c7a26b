/*
Package resize scales decoded images down to the character grid of an image
banner.

Terminal character cells are usually about twice as tall as they are wide so
the height is additionally scaled by an aspect ratio correction. The width is
only ever reduced, never enlarged, whereas the aspect ratio is always applied
to the height.
*/
package resize

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/gift"
)

var errUnknownResampling = errors.New("resize: unknown resampling filter")

// Resampling selects the filter used when scaling.
type Resampling int

// Supported resampling filters. The zero value is Box.
const (
	Box Resampling = iota
	NearestNeighbor
	Linear
	Cubic
	Lanczos
)

var resamplingNames = [...]string{
	Box:             "box",
	NearestNeighbor: "nearest",
	Linear:          "linear",
	Cubic:           "cubic",
	Lanczos:         "lanczos",
}

func (r Resampling) String() string {
	if r < 0 || int(r) >= len(resamplingNames) {
		return fmt.Sprintf("Resampling(%d)", int(r))
	}
	return resamplingNames[r]
}

// Valid reports whether r is a known filter.
func (r Resampling) Valid() bool {
	return r >= 0 && int(r) < len(resamplingNames)
}

// ParseResampling returns the filter with the given name.
func ParseResampling(name string) (Resampling, error) {
	for i, n := range resamplingNames {
		if strings.EqualFold(n, name) {
			return Resampling(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errUnknownResampling, name)
}

func (r Resampling) filter() gift.Resampling {
	switch r {
	case NearestNeighbor:
		return gift.NearestNeighborResampling
	case Linear:
		return gift.LinearResampling
	case Cubic:
		return gift.CubicResampling
	case Lanczos:
		return gift.LanczosResampling
	default:
		return gift.BoxResampling
	}
}

// Height returns the unconverted number of rows Dimensions yields, so callers
// can bound it before allocating anything.
func Height(sw, sh, maxWidth int, aspectRatio float64) float64 {
	ratio := 1.0
	if sw > maxWidth {
		ratio = float64(maxWidth) / float64(sw)
	}
	return math.Ceil(ratio * aspectRatio * float64(sh))
}

// Dimensions returns the size of the grid an image of sw by sh pixels is
// scaled to.
func Dimensions(sw, sh, maxWidth int, aspectRatio float64) (int, int) {
	width := sw
	if sw > maxWidth {
		width = maxWidth
	}
	return width, int(Height(sw, sh, maxWidth, aspectRatio))
}

// Image scales m to the size given by Dimensions. The result is opaque with
// any transparency composited over black, and its top-left corner is at
// (0, 0). Pixels of m are only read on the calling goroutine.
func Image(m image.Image, maxWidth int, aspectRatio float64, r Resampling) *image.RGBA {
	b := m.Bounds()
	w, h := Dimensions(b.Dx(), b.Dy(), maxWidth, aspectRatio)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if dst.Rect.Empty() {
		return dst
	}

	// gift reads its source from worker goroutines
	src := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Rect, m, b.Min, draw.Src)

	g := gift.New(gift.Resize(w, h, r.filter()))
	scaled := image.NewNRGBA(g.Bounds(src.Rect))
	g.Draw(scaled, src)

	draw.Draw(dst, dst.Rect, image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Rect, scaled, scaled.Rect.Min, draw.Over)

	return dst
}
