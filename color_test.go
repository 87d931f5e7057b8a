package borders

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#000000", RGB{}},
		{"#00ff00", RGB{G: 0xff}},
		{"cccccc", RGB{R: 0xcc, G: 0xcc, B: 0xcc}},
		{"#ABCDEF", RGB{R: 0xab, G: 0xcd, B: 0xef}},
		{"#f80", RGB{R: 0xff, G: 0x88, B: 0x00}},
		{"  #102030  ", RGB{R: 0x10, G: 0x20, B: 0x30}},
		{"red", RGB{R: 0xff}},
		{"DarkSlateGray", RGB{R: 0x2f, G: 0x4f, B: 0x4f}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#1234567", "#gg0000", "notacolor", "#-12"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor did not panic")
		}
	}()
	MustParseColor("#xyz")
}

func TestRGBConversions(t *testing.T) {
	c := RGB{R: 255, G: 0, B: 51}
	if got := c.String(); got != "#ff0033" {
		t.Errorf("String() = %q", got)
	}
	if got := c.Normalized(); got != [3]float32{1, 0, 0.2} {
		t.Errorf("Normalized() = %v", got)
	}
	r, g, b, a := c.Color().RGBA()
	if r != 0xffff || g != 0 || b != 0x3333 || a != 0xffff {
		t.Errorf("Color().RGBA() = %x %x %x %x", r, g, b, a)
	}
	var _ color.Color = c.Color()
}

func TestPalette(t *testing.T) {
	p := NewPalette(RGB{R: 255}, RGB{G: 255}, RGB{B: 255})
	if p.At(ColorActiveBorder) != (RGB{G: 255}) {
		t.Errorf("At(active) = %v", p.At(ColorActiveBorder))
	}
	if p.At(ColorIndex(5)) != p[ColorBackground] || p.At(ColorIndex(-1)) != p[ColorBackground] {
		t.Error("out-of-range index does not fall back to background")
	}

	wantRGB := [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if got := p.RGB(); got != wantRGB {
		t.Errorf("RGB() = %v, want %v", got, wantRGB)
	}
	wantRGBA := [12]float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1}
	if got := p.RGBA(); got != wantRGBA {
		t.Errorf("RGBA() = %v, want %v", got, wantRGBA)
	}
}
