package borders

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// RGB is an 8-bit per channel color as found in configuration files.
type RGB struct {
	R, G, B uint8
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Normalized returns the channels scaled from [0, 255] to [0, 1].
func (c RGB) Normalized() [3]float32 {
	return [3]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
}

// String returns the color as "#rrggbb".
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb", "#rrggbb" (the leading '#' is optional) or an
// SVG 1.1 color name such as "darkslategray", matched case-insensitively.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[cases.Fold().String(s)]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint32
	switch len(hex) {
	case 3:
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil //nolint:gosec // at most two hex digits
}

// MustParseColor is like ParseColor but panics on error.
// Use only for hardcoded colors.
func MustParseColor(s string) RGB {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex parses s as hexadecimal into val and reports success.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Palette holds the three colors a frame is painted with, indexed by
// ColorIndex.
type Palette [paletteSize]RGB

// NewPalette returns the palette for the given background, active border
// and inactive border colors.
func NewPalette(background, activeBorder, inactiveBorder RGB) Palette {
	return Palette{
		ColorBackground:     background,
		ColorActiveBorder:   activeBorder,
		ColorInactiveBorder: inactiveBorder,
	}
}

// At returns the color for index c. Out-of-range indices return the
// background color.
func (p Palette) At(c ColorIndex) RGB {
	if c < 0 || c >= paletteSize {
		return p[ColorBackground]
	}
	return p[c]
}

// RGB returns the palette as three tightly packed normalized RGB triples.
func (p Palette) RGB() [paletteSize * 3]float32 {
	var out [paletteSize * 3]float32
	for i, c := range p {
		n := c.Normalized()
		copy(out[i*3:], n[:])
	}
	return out
}

// RGBA returns the palette as three normalized RGBA quadruples with alpha
// set to 1. Uniform arrays of vec3 use a 16-byte stride, so GPU programs
// upload this layout.
func (p Palette) RGBA() [paletteSize * 4]float32 {
	var out [paletteSize * 4]float32
	for i, c := range p {
		n := c.Normalized()
		copy(out[i*4:], n[:])
		out[i*4+3] = 1
	}
	return out
}
