/*
Package luminance maps pixels onto the glyph ramp used for image banners.

Brightness is computed with the ITU-R BT.709 coefficients and expressed as an
integer percentage. Each band of ten percent selects one glyph, from a space
for the brightest pixels to '@' for the darkest.
*/
package luminance

import (
	"image/color"
	"math"
)

// BT.709 luminance coefficients
const (
	RedWeight   = 0.2126
	GreenWeight = 0.7152
	BlueWeight  = 0.0722
)

// Ramp lists the glyphs from brightest to darkest.
const Ramp = " .*:o&8#@"

// Lower bound of each band in Ramp, the final glyph catches everything else.
var bands = [...]int{90, 80, 70, 60, 50, 40, 30, 20}

// RGB returns the 8-bit channels of c. Non-opaque colors come out
// composited over black.
func RGB(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

// Of returns the luminance of c as a percentage between 0 and 100. If invert
// is set each channel is subtracted from 255 first.
func Of(c color.Color, invert bool) int {
	r8, g8, b8 := RGB(c)
	r, g, b := float64(r8), float64(g8), float64(b8)
	if invert {
		r, g, b = 255-r, 255-g, 255-b
	}

	// Explicit conversions stop the compiler fusing these into FMA
	l := float64(RedWeight*r) + float64(GreenWeight*g) + float64(BlueWeight*b)

	switch p := int(math.Ceil(l / 255 * 100)); {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// Glyph returns the ramp glyph for a luminance percentage.
func Glyph(level int) rune {
	for i, low := range bands {
		if level >= low {
			return rune(Ramp[i])
		}
	}
	return rune(Ramp[len(Ramp)-1])
}

// Map returns the glyph representing c.
func Map(c color.Color, invert bool) rune {
	return Glyph(Of(c, invert))
}
