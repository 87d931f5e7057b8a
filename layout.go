package borders

// NoActiveWindow is the LayoutInput.Active value used when no window has
// focus; every ring is then drawn in the inactive border color.
const NoActiveWindow = -1

// LayoutInput is one snapshot of everything the layout depends on.
type LayoutInput struct {
	// Windows are the content window geometries in drawing order.
	Windows []Geometry

	// Active is the index into Windows of the focused window, or
	// NoActiveWindow.
	Active int

	// BorderWidth is the ring width in device pixels. Negative values are
	// treated as zero.
	BorderWidth int

	// DrawBorders enables the per-window border rings.
	DrawBorders bool

	// Viewport is the drawable area. Callers reserving space for a tab bar
	// pass the reduced height here.
	Viewport ViewportSize
}

// ComputeFrame derives the rectangles that paint the padding and border
// rings for in and packs them into a new Frame.
//
// Padding rectangles come first, one per side of the viewport left
// uncovered by the windows' bounding box, tested in the order left, top,
// right, bottom. The strips may overlap at the corners. Border rings
// follow in window order; each ring is four strips outside the window's
// geometry whose corners are covered twice. Both overlaps are only
// invisible because every fill is opaque.
//
// ComputeFrame is a pure function: identical inputs produce bit-identical
// frames.
func ComputeFrame(in LayoutInput) *Frame {
	vw, vh := in.Viewport.Width, in.Viewport.Height
	if vw <= 0 || vh <= 0 {
		return NewFrame(nil)
	}

	bw := max(in.BorderWidth, 0)
	drawRings := in.DrawBorders && bw > 0

	n := 4
	if drawRings {
		n += 4 * len(in.Windows)
	}
	rects := make([]float32, 0, n*FloatsPerRect)

	if len(in.Windows) == 0 {
		// Nothing is covered: the whole viewport is padding.
		rects = AppendRect(rects, 0, 0, vw, vh, ColorBackground, in.Viewport)
		return NewFrame(rects)
	}

	box := boundingBox(in.Windows)
	if box.Left > 0 {
		rects = AppendRect(rects, 0, 0, box.Left, vh, ColorBackground, in.Viewport)
	}
	if box.Top > 0 {
		rects = AppendRect(rects, 0, 0, vw, box.Top, ColorBackground, in.Viewport)
	}
	if box.Right < vw {
		rects = AppendRect(rects, box.Right, 0, vw, vh, ColorBackground, in.Viewport)
	}
	if box.Bottom < vh {
		rects = AppendRect(rects, 0, box.Bottom, vw, vh, ColorBackground, in.Viewport)
	}

	if drawRings {
		for i, g := range in.Windows {
			c := ColorInactiveBorder
			if i == in.Active {
				c = ColorActiveBorder
			}
			rects = appendRing(rects, g, bw, c, in.Viewport)
		}
	}

	Logger().Debug("borders: layout computed",
		"windows", len(in.Windows),
		"rects", len(rects)/FloatsPerRect,
		"viewport_w", vw, "viewport_h", vh)

	return NewFrame(rects)
}

// appendRing appends the four strips of a ring of width bw drawn strictly
// outside g: left, top, right, bottom.
func appendRing(dst []float32, g Geometry, bw int, c ColorIndex, vp ViewportSize) []float32 {
	dst = AppendRect(dst, g.Left-bw, g.Top-bw, g.Left, g.Bottom+bw, c, vp)
	dst = AppendRect(dst, g.Left-bw, g.Top-bw, g.Right+bw, g.Top, c, vp)
	dst = AppendRect(dst, g.Right, g.Top-bw, g.Right+bw, g.Bottom+bw, c, vp)
	dst = AppendRect(dst, g.Left-bw, g.Bottom, g.Right+bw, g.Bottom+bw, c, vp)
	return dst
}

// boundingBox returns the smallest geometry enclosing all windows.
// windows must not be empty.
func boundingBox(windows []Geometry) Geometry {
	box := windows[0]
	for _, g := range windows[1:] {
		box.Left = min(box.Left, g.Left)
		box.Top = min(box.Top, g.Top)
		box.Right = max(box.Right, g.Right)
		box.Bottom = max(box.Bottom, g.Bottom)
	}
	return box
}
