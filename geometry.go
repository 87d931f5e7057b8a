package borders

// ViewportSize is the size of the drawable area in device pixels.
// It is read at layout time and passed explicitly to every computation.
type ViewportSize struct {
	Width, Height int
}

// Geometry is the bounding rectangle of one content window in device pixels.
// Right and Bottom are exclusive.
type Geometry struct {
	Left, Top, Right, Bottom int
}

// Width returns the horizontal extent of the geometry.
func (g Geometry) Width() int { return g.Right - g.Left }

// Height returns the vertical extent of the geometry.
func (g Geometry) Height() int { return g.Bottom - g.Top }

// Contains reports whether the device pixel (x, y) lies inside g.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.Left && x < g.Right && y >= g.Top && y < g.Bottom
}

// ColorIndex selects one entry of the three-color [Palette].
type ColorIndex int

const (
	// ColorBackground paints padding outside the windows' bounding box.
	ColorBackground ColorIndex = iota

	// ColorActiveBorder paints the border ring of the active window.
	ColorActiveBorder

	// ColorInactiveBorder paints the border ring of every other window.
	ColorInactiveBorder

	// paletteSize is the number of palette entries.
	paletteSize
)

// String returns the name of the color index.
func (c ColorIndex) String() string {
	switch c {
	case ColorBackground:
		return "background"
	case ColorActiveBorder:
		return "active-border"
	case ColorInactiveBorder:
		return "inactive-border"
	default:
		return "unknown"
	}
}
