package imagebanner

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/bodgit/imagebanner/ansi"
	"github.com/bodgit/imagebanner/luminance"
	"github.com/bodgit/imagebanner/palette"
	"github.com/bodgit/imagebanner/resize"
)

// MaxRows bounds the height of a banner. Parameters that would scale an
// image taller than this are rejected.
const MaxRows = 4096

// Parameters controls how an image is rendered.
type Parameters struct {
	// MaxWidth is the maximum number of characters per row.
	MaxWidth int
	// AspectRatio scales the height to compensate for character cells
	// not being square.
	AspectRatio float64
	// Invert renders for a dark terminal background, brighter pixels
	// getting denser glyphs.
	Invert bool
	// Resampling is the filter used when scaling the image.
	Resampling resize.Resampling
	// Colors, if positive, reduces the scaled image to that many colors
	// before mapping.
	Colors int
}

// DefaultParameters returns the parameters used when nothing else is
// configured.
func DefaultParameters() Parameters {
	return Parameters{
		MaxWidth:    76,
		AspectRatio: 0.5,
	}
}

func (p Parameters) validate() error {
	switch {
	case p.MaxWidth <= 0:
		return fmt.Errorf("%w: maximum width %d", ErrInvalidParameter, p.MaxWidth)
	case p.AspectRatio <= 0 || math.IsNaN(p.AspectRatio) || math.IsInf(p.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %v", ErrInvalidParameter, p.AspectRatio)
	case !p.Resampling.Valid():
		return fmt.Errorf("%w: resampling %v", ErrInvalidParameter, p.Resampling)
	case p.Colors < 0:
		return fmt.Errorf("%w: colors %d", ErrInvalidParameter, p.Colors)
	}
	return nil
}

func (p Parameters) scale(m image.Image) (*image.RGBA, error) {
	b := m.Bounds()
	if h := resize.Height(b.Dx(), b.Dy(), p.MaxWidth, p.AspectRatio); h > MaxRows {
		return nil, fmt.Errorf("%w: aspect ratio %v gives %v rows, more than %d", ErrInvalidParameter, p.AspectRatio, h, MaxRows)
	}
	return resize.Posterize(resize.Image(m, p.MaxWidth, p.AspectRatio, p.Resampling), p.Colors), nil
}

// cell is a single character of a banner.
type cell struct {
	glyph rune
	color string
}

func cellFor(c color.Color, invert bool) cell {
	return cell{
		glyph: luminance.Map(c, invert),
		color: palette.ANSI.Nearest(c).Name,
	}
}

func imageToBanner(m *image.RGBA, dark bool) string {
	b := m.Bounds()

	background := ansi.Default
	if dark {
		background = "BLACK"
	}

	var sb strings.Builder
	sb.Grow(b.Dy() * (b.Dx()*20 + 64))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.WriteString(ansi.BackgroundColor(background))
		for x := b.Min.X; x < b.Max.X; x++ {
			c := cellFor(m.RGBAAt(x, y), dark)
			sb.WriteString(ansi.Color(c.color))
			sb.WriteRune(c.glyph)
		}
		if dark {
			sb.WriteString(ansi.BackgroundColor(ansi.Default))
		}
		sb.WriteString(ansi.Color(ansi.Default))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func recoverInternal(banner *string, err *error) {
	if r := recover(); r != nil {
		*banner = ""
		*err = fmt.Errorf("%w: %v", ErrInternal, r)
	}
}

// RenderImage renders an already decoded image.
func RenderImage(m image.Image, p Parameters) (banner string, err error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	defer recoverInternal(&banner, &err)

	var resized *image.RGBA
	if err := withHeadless(func() (err error) {
		resized, err = p.scale(m)
		return
	}); err != nil {
		return "", err
	}

	return imageToBanner(resized, p.Invert), nil
}
