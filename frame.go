package borders

import (
	"fmt"
	"math"
)

// Frame is one packed layout result: an ordered sequence of rectangle units
// and the draw descriptor of each unit.
//
// VertexData holds FloatsPerRect scalars per rectangle. StartOffsets[i] is
// the index of the first vertex of rectangle i and VertexCounts[i] is always
// VerticesPerRect. A Frame is built once and never modified; a new layout
// produces a new Frame.
type Frame struct {
	VertexData   []float32
	StartOffsets []int32
	VertexCounts []int32
}

// NewFrame wraps a packed vertex stream and derives its draw descriptors.
// The length of vertexData must be a multiple of FloatsPerRect; a trailing
// partial rectangle is dropped. The frame takes ownership of vertexData.
func NewFrame(vertexData []float32) *Frame {
	n := len(vertexData) / FloatsPerRect
	f := &Frame{
		VertexData:   vertexData[:n*FloatsPerRect],
		StartOffsets: make([]int32, n),
		VertexCounts: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		f.StartOffsets[i] = int32(i * VerticesPerRect) //nolint:gosec // rect count fits int32
		f.VertexCounts[i] = VerticesPerRect
	}
	return f
}

// RectCount returns the number of rectangle units in the frame.
func (f *Frame) RectCount() int {
	if f == nil {
		return 0
	}
	return len(f.StartOffsets)
}

// Rect returns the four vertices of rectangle i.
func (f *Frame) Rect(i int) [VerticesPerRect]Vertex {
	var out [VerticesPerRect]Vertex
	base := int(f.StartOffsets[i]) * FloatsPerVertex
	for v := range out {
		o := base + v*FloatsPerVertex
		out[v] = Vertex{X: f.VertexData[o], Y: f.VertexData[o+1], Color: f.VertexData[o+2]}
	}
	return out
}

// Validate checks the packing invariants: the scalar count is a multiple of
// FloatsPerRect, there is one descriptor per rectangle and every descriptor
// covers exactly one in-range rectangle unit.
func (f *Frame) Validate() error {
	if f == nil {
		return nil
	}
	if len(f.VertexData)%FloatsPerRect != 0 {
		return fmt.Errorf("%w: %d scalars is not a multiple of %d",
			ErrTornFrame, len(f.VertexData), FloatsPerRect)
	}
	n := len(f.VertexData) / FloatsPerRect
	if len(f.StartOffsets) != n || len(f.VertexCounts) != n {
		return fmt.Errorf("%w: %d rects, %d offsets, %d counts",
			ErrTornFrame, n, len(f.StartOffsets), len(f.VertexCounts))
	}
	for i := 0; i < n; i++ {
		if f.VertexCounts[i] != VerticesPerRect {
			return fmt.Errorf("%w: rect %d has %d vertices", ErrTornFrame, i, f.VertexCounts[i])
		}
		if int(f.StartOffsets[i])+VerticesPerRect > n*VerticesPerRect || f.StartOffsets[i] < 0 {
			return fmt.Errorf("%w: rect %d starts at vertex %d", ErrTornFrame, i, f.StartOffsets[i])
		}
	}
	return nil
}

// Equal reports whether f and o hold bit-identical data.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f.RectCount() == o.RectCount()
	}
	if f.RectCount() != o.RectCount() || len(f.VertexData) != len(o.VertexData) {
		return false
	}
	for i := range f.VertexData {
		if math.Float32bits(f.VertexData[i]) != math.Float32bits(o.VertexData[i]) {
			return false
		}
	}
	for i := range f.StartOffsets {
		if f.StartOffsets[i] != o.StartOffsets[i] || f.VertexCounts[i] != o.VertexCounts[i] {
			return false
		}
	}
	return true
}
