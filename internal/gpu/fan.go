//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// rectVertexStride is the byte stride per vertex in the rect pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0, .xy)
//	palette index (f32)  = 4 bytes (location 0, .z)
//
// Total = 12 bytes per vertex.
const rectVertexStride = 12

// floatsPerVertex is the number of float32 values per uploaded vertex.
const floatsPerVertex = 3

// errFanRange is returned when a draw descriptor points outside the
// uploaded vertex stream.
var errFanRange = errors.New("gpu: fan descriptor out of range")

// fanTriangleVertices returns the triangle-list vertex count produced by
// expanding the given fans.
func fanTriangleVertices(vertexCounts []int32, fans int) int {
	total := 0
	for i := 0; i < fans; i++ {
		if n := int(vertexCounts[i]); n >= 3 {
			total += (n - 2) * 3
		}
	}
	return total
}

// expandFans converts triangle fans into a triangle list. WebGPU has no fan
// topology and no multi-draw, so the fans described by startOffsets and
// vertexCounts are rewritten as (first, k, k+1) triangles and drawn with a
// single Draw call.
//
// The result is written into staging, which is grown if necessary. Returns
// the (possibly reallocated) staging buffer, the valid vertex bytes and the
// vertex count.
func expandFans(verts []float32, startOffsets, vertexCounts []int32, fans int, staging []byte) ([]byte, []byte, uint32, error) {
	if fans > len(startOffsets) || fans > len(vertexCounts) {
		return staging, nil, 0, fmt.Errorf("%w: %d fans, %d offsets, %d counts",
			errFanRange, fans, len(startOffsets), len(vertexCounts))
	}
	nverts := len(verts) / floatsPerVertex
	for i := 0; i < fans; i++ {
		start, count := int(startOffsets[i]), int(vertexCounts[i])
		if start < 0 || count < 0 || start+count > nverts {
			return staging, nil, 0, fmt.Errorf("%w: fan %d spans [%d, %d) of %d vertices",
				errFanRange, i, start, start+count, nverts)
		}
	}

	total := fanTriangleVertices(vertexCounts, fans)
	if total == 0 {
		return staging, nil, 0, nil
	}
	needed := total * rectVertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}

	offset := 0
	for i := 0; i < fans; i++ {
		start, count := int(startOffsets[i]), int(vertexCounts[i])
		for k := 1; k+1 < count; k++ {
			for _, v := range [3]int{start, start + k, start + k + 1} {
				writeRectVertex(staging[offset:], verts[v*floatsPerVertex:])
				offset += rectVertexStride
			}
		}
	}
	return staging, staging[:offset], uint32(total), nil //nolint:gosec // vertex count fits uint32
}

// writeRectVertex writes one x, y, index vertex into buf.
func writeRectVertex(buf []byte, v []float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}

// paletteUniformSize is the byte size of the palette uniform:
// array<vec4<f32>, 3>.
const paletteUniformSize = 48

// paletteBytes serializes twelve RGBA floats into uniform layout.
func paletteBytes(rgba [12]float32) []byte {
	buf := make([]byte, paletteUniformSize)
	for i, f := range rgba {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
