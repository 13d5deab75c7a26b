package imagebanner

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bodgit/imagebanner/ansi"
	"github.com/bodgit/imagebanner/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(c color.Color) image.Image {
	m := image.NewRGBA(image.Rect(0, 0, 1, 1))
	m.Set(0, 0, c)
	return m
}

func gradient(w, h int) image.Image {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) % 256), 0xff})
		}
	}
	return m
}

func exact(invert bool) Parameters {
	return Parameters{
		MaxWidth:    10,
		AspectRatio: 1.0,
		Invert:      invert,
		Resampling:  resize.NearestNeighbor,
	}
}

func TestRenderImageSinglePixel(t *testing.T) {
	tables := []struct {
		name   string
		color  color.Color
		invert bool
		banner string
	}{
		{"white", color.White, false, "${AnsiBackground.DEFAULT}${AnsiColor.BRIGHT_WHITE} ${AnsiColor.DEFAULT}\n"},
		{"black", color.Black, false, "${AnsiBackground.DEFAULT}${AnsiColor.BLACK}@${AnsiColor.DEFAULT}\n"},
		{"inverted black", color.Black, true, "${AnsiBackground.BLACK}${AnsiColor.BLACK} ${AnsiBackground.DEFAULT}${AnsiColor.DEFAULT}\n"},
		{"inverted white", color.White, true, "${AnsiBackground.BLACK}${AnsiColor.BRIGHT_WHITE}@${AnsiBackground.DEFAULT}${AnsiColor.DEFAULT}\n"},
		{"red", color.RGBA{170, 0, 0, 0xff}, false, "${AnsiBackground.DEFAULT}${AnsiColor.RED}@${AnsiColor.DEFAULT}\n"},
		{"grey", color.Gray{170}, false, "${AnsiBackground.DEFAULT}${AnsiColor.WHITE}:${AnsiColor.DEFAULT}\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			banner, err := RenderImage(single(table.color), exact(table.invert))
			require.NoError(t, err)
			assert.Equal(t, table.banner, banner)
		})
	}
}

func TestRenderImageDimensions(t *testing.T) {
	tables := []struct {
		name          string
		width, height int
		p             Parameters
		rows, columns int
	}{
		{"downscale", 200, 100, Parameters{MaxWidth: 100, AspectRatio: 0.5}, 25, 100},
		{"no downscale", 50, 40, Parameters{MaxWidth: 100, AspectRatio: 0.5}, 20, 50},
		{"vertical enlarge", 20, 10, Parameters{MaxWidth: 100, AspectRatio: 2.0, Resampling: resize.Lanczos}, 20, 20},
		{"defaults", 300, 150, DefaultParameters(), 19, 76},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			for _, invert := range []bool{false, true} {
				p := table.p
				p.Invert = invert

				banner, err := RenderImage(gradient(table.width, table.height), p)
				require.NoError(t, err)
				require.True(t, strings.HasSuffix(banner, "\n"))

				rows := strings.Split(strings.TrimSuffix(banner, "\n"), "\n")
				assert.Len(t, rows, table.rows)
				for _, row := range rows {
					assert.Equal(t, table.columns, utf8.RuneCountInString(ansi.Strip(row)))
					assert.Equal(t, table.columns, strings.Count(row, "${AnsiColor.")-1)
				}
			}
		})
	}
}

func TestRenderImageIdempotent(t *testing.T) {
	m := gradient(120, 80)
	for _, p := range []Parameters{DefaultParameters(), {MaxWidth: 40, AspectRatio: 0.5, Invert: true}} {
		first, err := RenderImage(m, p)
		require.NoError(t, err)
		second, err := RenderImage(m, p)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestRenderImagePosterize(t *testing.T) {
	p := DefaultParameters()
	p.Colors = 4

	banner, err := RenderImage(gradient(100, 100), p)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(banner, "\n"), "\n")
	assert.Len(t, rows, 38)
}

func TestRenderImageInvalidParameters(t *testing.T) {
	tables := map[string]Parameters{
		"zero width":         {MaxWidth: 0, AspectRatio: 0.5},
		"negative width":     {MaxWidth: -1, AspectRatio: 0.5},
		"zero aspect":        {MaxWidth: 10, AspectRatio: 0},
		"negative aspect":    {MaxWidth: 10, AspectRatio: -0.5},
		"NaN aspect":         {MaxWidth: 10, AspectRatio: math.NaN()},
		"infinite aspect":    {MaxWidth: 10, AspectRatio: math.Inf(1)},
		"negative colors":    {MaxWidth: 10, AspectRatio: 0.5, Colors: -1},
		"unknown resampling": {MaxWidth: 10, AspectRatio: 0.5, Resampling: resize.Resampling(99)},
	}

	for name, p := range tables {
		t.Run(name, func(t *testing.T) {
			banner, err := RenderImage(single(color.White), p)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
			assert.Equal(t, "InvalidParameter", KindOf(err))
			assert.Empty(t, banner)
		})
	}
}

type brokenImage struct{}

func (brokenImage) ColorModel() color.Model { return color.RGBAModel }

func (brokenImage) Bounds() image.Rectangle { return image.Rect(0, 0, 4, 4) }

func (brokenImage) At(x, y int) color.Color { panic("unreadable pixel") }

func TestRenderImagePanic(t *testing.T) {
	banner, err := RenderImage(brokenImage{}, DefaultParameters())
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, "InternalError", KindOf(err))
	assert.Empty(t, banner)
	assert.False(t, Headless())
}

func TestRenderImageTooTall(t *testing.T) {
	tables := []struct {
		name        string
		m           image.Image
		aspectRatio float64
	}{
		{"huge aspect ratio", gradient(10, 10), 1e300},
		{"million rows", gradient(10, 10), 1e5},
		{"one row over", gradient(1, MaxRows+1), 1.0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			banner, err := RenderImage(table.m, Parameters{MaxWidth: 10, AspectRatio: table.aspectRatio})
			assert.True(t, errors.Is(err, ErrInvalidParameter))
			assert.Equal(t, "InvalidParameter", KindOf(err))
			assert.Empty(t, banner)
			assert.False(t, Headless())
		})
	}

	banner, err := RenderImage(gradient(1, MaxRows), Parameters{MaxWidth: 10, AspectRatio: 1.0})
	require.NoError(t, err)
	assert.Equal(t, MaxRows, strings.Count(banner, "\n"))
}

func TestRecoverInternal(t *testing.T) {
	render := func() (banner string, err error) {
		defer recoverInternal(&banner, &err)
		banner = "partial"
		panic("mapping failed")
	}

	banner, err := render()
	assert.Empty(t, banner)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Contains(t, err.Error(), "mapping failed")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "", KindOf(nil))
	assert.Equal(t, "InternalError", KindOf(errors.New("boom")))
	assert.Equal(t, "ResourceNotFound", KindOf(ErrNotFound))
	assert.Equal(t, "DecodeError", KindOf(ErrDecode))
	assert.Equal(t, "IOError", KindOf(ErrIO))
}
