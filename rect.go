package borders

const (
	// VerticesPerRect is the vertex count of one rectangle triangle fan.
	VerticesPerRect = 4

	// FloatsPerVertex is the number of scalars per vertex: x, y, colorIndex.
	FloatsPerVertex = 3

	// FloatsPerRect is the number of scalars per rectangle unit.
	FloatsPerRect = VerticesPerRect * FloatsPerVertex
)

// Vertex is one clip-space vertex tagged with a palette index. The index is
// carried as a float and truncated to an integer by the shader.
type Vertex struct {
	X, Y  float32
	Color float32
}

// EmitRect returns the four vertices of the rectangle (left, top) to
// (right, bottom) in triangle-fan order: (right, top), (right, bottom),
// (left, bottom), (left, top). Any other order yields a degenerate or
// inverted fan.
func EmitRect(left, top, right, bottom int, c ColorIndex, vp ViewportSize) [VerticesPerRect]Vertex {
	var out [VerticesPerRect]Vertex
	corners := [VerticesPerRect][2]int{
		{right, top},
		{right, bottom},
		{left, bottom},
		{left, top},
	}
	for i, p := range corners {
		x, y := ToClipSpace(float64(p[0]), float64(p[1]), vp)
		out[i] = Vertex{X: x, Y: y, Color: float32(c)}
	}
	return out
}

// AppendRect appends the 12 scalars of one rectangle unit to dst and
// returns the extended slice. The layout matches EmitRect.
func AppendRect(dst []float32, left, top, right, bottom int, c ColorIndex, vp ViewportSize) []float32 {
	for _, v := range EmitRect(left, top, right, bottom, c, vp) {
		dst = append(dst, v.X, v.Y, v.Color)
	}
	return dst
}
