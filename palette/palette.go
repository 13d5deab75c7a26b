/*
Package palette implements the fixed set of named terminal colors that image
banner pixels are quantized to.

The order of a palette is significant. When a pixel is exactly as far from
two entries the one appearing first wins, so reordering a palette changes
rendered output.
*/
package palette

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/bodgit/imagebanner/luminance"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	errEmpty     = errors.New("palette: no entries")
	errDuplicate = errors.New("palette: duplicate entry")
)

// Entry is a named 24-bit color. It implements the color.Color interface.
type Entry struct {
	Name    string
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (e Entry) RGBA() (r, g, b, a uint32) {
	return color.RGBA{e.R, e.G, e.B, 0xff}.RGBA()
}

// Hex returns the entry as a "#rrggbb" string.
func (e Entry) Hex() string {
	c, _ := colorful.MakeColor(e)
	return c.Hex()
}

func (e Entry) String() string {
	return fmt.Sprintf("%s(%d,%d,%d)", e.Name, e.R, e.G, e.B)
}

// Palette is an immutable ordered list of entries with unique names.
type Palette struct {
	entries []Entry
	index   map[string]int
}

// New returns a palette holding entries in the order given.
func New(entries ...Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, errEmpty
	}

	p := &Palette{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(p.entries, entries)

	for i, e := range p.entries {
		if _, ok := p.index[e.Name]; ok {
			return nil, fmt.Errorf("%w: %s", errDuplicate, e.Name)
		}
		p.index[e.Name] = i
	}

	return p, nil
}

func mustNew(entries ...Entry) *Palette {
	p, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return p
}

// ANSI is the standard 16 color terminal palette. The position of each entry
// is its ANSI color number.
var ANSI = mustNew(
	Entry{"BLACK", 0, 0, 0},
	Entry{"RED", 170, 0, 0},
	Entry{"GREEN", 0, 170, 0},
	Entry{"YELLOW", 170, 85, 0},
	Entry{"BLUE", 0, 0, 170},
	Entry{"MAGENTA", 170, 0, 170},
	Entry{"CYAN", 0, 170, 170},
	Entry{"WHITE", 170, 170, 170},

	Entry{"BRIGHT_BLACK", 85, 85, 85},
	Entry{"BRIGHT_RED", 255, 85, 85},
	Entry{"BRIGHT_GREEN", 85, 255, 85},
	Entry{"BRIGHT_YELLOW", 255, 255, 85},
	Entry{"BRIGHT_BLUE", 85, 85, 255},
	Entry{"BRIGHT_MAGENTA", 255, 85, 255},
	Entry{"BRIGHT_CYAN", 85, 255, 255},
	Entry{"BRIGHT_WHITE", 255, 255, 255},
)

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in palette order.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Named returns the entry called name.
func (p *Palette) Named(name string) (Entry, bool) {
	i, ok := p.index[name]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Index returns the position of the entry called name, or -1.
func (p *Palette) Index(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	return -1
}

// Distance returns the squared distance between c and e with each channel
// scaled by its luminance coefficient.
func Distance(c color.Color, e Entry) float64 {
	r, g, b := luminance.RGB(c)

	dr := float64(int(r)-int(e.R)) * luminance.RedWeight
	dg := float64(int(g)-int(e.G)) * luminance.GreenWeight
	db := float64(int(b)-int(e.B)) * luminance.BlueWeight

	return float64(dr*dr) + float64(dg*dg) + float64(db*db)
}

// Nearest returns the entry closest to c. Ties go to the earliest entry.
func (p *Palette) Nearest(c color.Color) Entry {
	best, bestDistance := 0, Distance(c, p.entries[0])
	for i, e := range p.entries[1:] {
		if d := Distance(c, e); d < bestDistance {
			best, bestDistance = i+1, d
		}
	}
	return p.entries[best]
}
