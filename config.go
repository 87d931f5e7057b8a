package borders

import (
	"fmt"
	"math"
)

// Config describes the decorations as found in a user's configuration.
type Config struct {
	// BorderWidth is the window border width in points (1/72 inch).
	BorderWidth float64

	// DPI is the logical display resolution used to convert BorderWidth to
	// device pixels. Zero means 72, making points equal to pixels.
	DPI float64

	// Background, ActiveBorder and InactiveBorder are colors in "#rgb",
	// "#rrggbb" or SVG color-name form.
	Background     string
	ActiveBorder   string
	InactiveBorder string
}

// Settings are the validated values the core consumes.
type Settings struct {
	// BorderWidth is the ring width in device pixels.
	BorderWidth int

	// Palette holds the background, active and inactive border colors.
	Palette Palette
}

// DefaultConfig returns a one point border with a black background, a
// light green active border and a light gray inactive border.
func DefaultConfig() Config {
	return Config{
		BorderWidth:    1,
		DPI:            72,
		Background:     "#000000",
		ActiveBorder:   "#00ff00",
		InactiveBorder: "#cccccc",
	}
}

// BorderWidthPx converts BorderWidth from points to whole device pixels at
// the configured DPI.
func (c Config) BorderWidthPx() int {
	dpi := c.DPI
	if dpi == 0 {
		dpi = 72
	}
	return int(math.Round(c.BorderWidth * dpi / 72))
}

// Settings validates c and resolves it into Settings.
func (c Config) Settings() (Settings, error) {
	if c.BorderWidth < 0 || math.IsNaN(c.BorderWidth) || math.IsInf(c.BorderWidth, 0) {
		return Settings{}, fmt.Errorf("%w: border width %v", ErrInvalidConfig, c.BorderWidth)
	}
	if c.DPI < 0 || math.IsNaN(c.DPI) || math.IsInf(c.DPI, 0) {
		return Settings{}, fmt.Errorf("%w: dpi %v", ErrInvalidConfig, c.DPI)
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return Settings{}, fmt.Errorf("background: %w", err)
	}
	active, err := ParseColor(c.ActiveBorder)
	if err != nil {
		return Settings{}, fmt.Errorf("active border: %w", err)
	}
	inactive, err := ParseColor(c.InactiveBorder)
	if err != nil {
		return Settings{}, fmt.Errorf("inactive border: %w", err)
	}
	return Settings{
		BorderWidth: c.BorderWidthPx(),
		Palette:     NewPalette(bg, active, inactive),
	}, nil
}
