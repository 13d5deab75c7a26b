/*
Package imagebanner renders raster images as ASCII art suitable for printing
as a startup banner in a text console.

Each pixel of the scaled image becomes one glyph chosen by its luminance,
preceded by a marker naming the nearest of the 16 ANSI terminal colors. The
markers are placeholders of the form ${AnsiColor.NAME} and
${AnsiBackground.NAME} and are turned into escape sequences by the ansi
package, or any other templating layer that understands them.
*/
package imagebanner

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"log"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImageBanner renders a single image file.
type ImageBanner struct {
	file   string
	logger *log.Logger
	cache  *Cache
}

// New returns an ImageBanner for the image stored in file. The file must
// exist but is not read until the banner is rendered. Render failures are
// reported to logger, or to standard error if logger is nil.
func New(file string, logger *log.Logger) (*ImageBanner, error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, file)
	}

	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	return &ImageBanner{
		file:   file,
		logger: logger,
	}, nil
}

// File returns the path of the image.
func (ib *ImageBanner) File() string {
	return ib.file
}

// UseCache makes subsequent renders consult and populate c. Passing nil
// disables caching.
func (ib *ImageBanner) UseCache(c *Cache) {
	ib.cache = c
}

func decode(b []byte) (image.Image, error) {
	m, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return m, nil
}

// Render reads, decodes and renders the image. Any failure, including a
// panic while scaling or mapping, is returned as an error wrapping one of the
// package errors.
func (ib *ImageBanner) Render(p Parameters) (banner string, err error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	defer recoverInternal(&banner, &err)

	b, err := os.ReadFile(ib.file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}

	if ib.cache != nil {
		text, ok, err := ib.cache.Get(b, p)
		switch {
		case err != nil:
			ib.logger.Printf("Unable to read cached banner for %s: %v\n", ib.file, err)
		case ok:
			return text, nil
		}
	}

	var resized *image.RGBA
	if err := withHeadless(func() error {
		m, err := decode(b)
		if err != nil {
			return err
		}
		resized, err = p.scale(m)
		return err
	}); err != nil {
		return "", err
	}

	banner = imageToBanner(resized, p.Invert)

	if ib.cache != nil {
		if err := ib.cache.Put(b, p, banner); err != nil {
			ib.logger.Printf("Unable to cache banner for %s: %v\n", ib.file, err)
		}
	}

	return banner, nil
}

// String renders the image, logging any failure and returning an empty
// banner instead.
func (ib *ImageBanner) String(p Parameters) string {
	banner, err := ib.Render(p)
	if err != nil {
		ib.logger.Printf("Image banner not printable: %s (%s: '%v')\n", ib.file, KindOf(err), err)
		return ""
	}
	return banner
}
