/*
Package ansi resolves the color markers embedded in rendered image banners
into terminal escape sequences.

Markers take the form ${AnsiColor.NAME} for the foreground and
${AnsiBackground.NAME} for the background, where NAME is either an entry of
the ANSI palette or DEFAULT.
*/
package ansi

import (
	"regexp"

	"github.com/bodgit/imagebanner/palette"
	"github.com/muesli/termenv"
)

const (
	// Foreground is the marker prefix for foreground colors.
	Foreground = "AnsiColor"
	// Background is the marker prefix for background colors.
	Background = "AnsiBackground"
	// Default is the marker name resetting a color to the terminal default.
	Default = "DEFAULT"
)

var marker = regexp.MustCompile(`\$\{(` + Foreground + `|` + Background + `)\.([A-Z_]+)\}`)

// Color returns the foreground marker for name.
func Color(name string) string {
	return "${" + Foreground + "." + name + "}"
}

// BackgroundColor returns the background marker for name.
func BackgroundColor(name string) string {
	return "${" + Background + "." + name + "}"
}

func sequence(kind, name string) (string, bool) {
	bg := kind == Background

	if name == Default {
		if bg {
			return termenv.CSI + "49m", true
		}
		return termenv.CSI + "39m", true
	}

	i := palette.ANSI.Index(name)
	if i < 0 {
		return "", false
	}
	return termenv.CSI + termenv.ANSIColor(i).Sequence(bg) + "m", true
}

// Resolve replaces every marker in s. Under the termenv.Ascii profile the
// markers are removed instead. Markers naming an unknown color are left
// as they are.
func Resolve(s string, profile termenv.Profile) string {
	return marker.ReplaceAllStringFunc(s, func(m string) string {
		sub := marker.FindStringSubmatch(m)
		seq, ok := sequence(sub[1], sub[2])
		switch {
		case !ok:
			return m
		case profile == termenv.Ascii:
			return ""
		default:
			return seq
		}
	})
}

// Strip removes every known marker from s.
func Strip(s string) string {
	return Resolve(s, termenv.Ascii)
}
