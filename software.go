package borders

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// SoftwareProgram is a CPU implementation of Program. It rasterizes the
// uploaded triangle fans into an RGBA image using pixel-center sampling,
// matching what the GPU rasterizer produces for opaque fills.
//
// SoftwareProgram is not safe for concurrent use; like any Program it is
// driven from the render goroutine.
type SoftwareProgram struct {
	img     *image.RGBA
	verts   []float32
	palette [paletteSize]color.RGBA
	draws   int
}

var _ Program = (*SoftwareProgram)(nil)

// NewSoftwareProgram creates a software program drawing into a new
// width x height image.
func NewSoftwareProgram(width, height int) *SoftwareProgram {
	return &SoftwareProgram{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewSoftwareProgramFor creates a software program drawing into img.
func NewSoftwareProgramFor(img *image.RGBA) *SoftwareProgram {
	return &SoftwareProgram{img: img}
}

// Image returns the target image.
func (p *SoftwareProgram) Image() *image.RGBA { return p.img }

// DrawCount returns how many batched draws have been issued.
func (p *SoftwareProgram) DrawCount() int { return p.draws }

// Begin implements Program.
func (p *SoftwareProgram) Begin() error { return nil }

// End implements Program.
func (p *SoftwareProgram) End() error { return nil }

// Upload implements Program. The vertex data is copied.
func (p *SoftwareProgram) Upload(vertexData []float32, palette Palette) error {
	p.verts = append(p.verts[:0], vertexData...)
	for i, c := range palette {
		p.palette[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return nil
}

// Draw implements Program. Each fan of n vertices is split into n-2
// triangles sharing its first vertex.
func (p *SoftwareProgram) Draw(startOffsets, vertexCounts []int32, rectCount int) error {
	if rectCount > len(startOffsets) || rectCount > len(vertexCounts) {
		return fmt.Errorf("%w: %d rects, %d offsets, %d counts",
			ErrTornFrame, rectCount, len(startOffsets), len(vertexCounts))
	}
	nverts := len(p.verts) / FloatsPerVertex
	for i := 0; i < rectCount; i++ {
		start, count := int(startOffsets[i]), int(vertexCounts[i])
		if start < 0 || start+count > nverts {
			return fmt.Errorf("%w: fan %d spans vertices [%d, %d) of %d",
				ErrTornFrame, i, start, start+count, nverts)
		}
		for k := 1; k+1 < count; k++ {
			p.fillTriangle(p.vertex(start), p.vertex(start+k), p.vertex(start+k+1))
		}
	}
	p.draws++
	return nil
}

// screenVertex is a vertex in pixel coordinates.
type screenVertex struct {
	x, y  float64
	color int
}

// vertex converts uploaded vertex i from clip space to pixel space.
func (p *SoftwareProgram) vertex(i int) screenVertex {
	b := p.img.Bounds()
	o := i * FloatsPerVertex
	cx, cy := float64(p.verts[o]), float64(p.verts[o+1])
	return screenVertex{
		x:     (cx + 1) / 2 * float64(b.Dx()),
		y:     (1 - cy) / 2 * float64(b.Dy()),
		color: int(p.verts[o+2]),
	}
}

// edgeEpsilon keeps pixel centers on an edge shared by two triangles of the
// same fan from being rejected by both.
const edgeEpsilon = 1e-9

// fillTriangle paints every pixel whose center lies inside the triangle,
// edges included, with the provoking (first) vertex color.
func (p *SoftwareProgram) fillTriangle(a, b, c screenVertex) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	bounds := p.img.Bounds()
	minX := max(int(math.Floor(min(a.x, b.x, c.x))), bounds.Min.X)
	maxX := min(int(math.Ceil(max(a.x, b.x, c.x))), bounds.Max.X)
	minY := max(int(math.Floor(min(a.y, b.y, c.y))), bounds.Min.Y)
	maxY := min(int(math.Ceil(max(a.y, b.y, c.y))), bounds.Max.Y)

	col := p.palette[ColorBackground]
	if a.color >= 0 && a.color < int(paletteSize) {
		col = p.palette[a.color]
	}
	for y := minY; y < maxY; y++ {
		sy := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			sx := float64(x) + 0.5
			w0 := edge(b, c, sx, sy) / area
			w1 := edge(c, a, sx, sy) / area
			w2 := edge(a, b, sx, sy) / area
			if w0 >= -edgeEpsilon && w1 >= -edgeEpsilon && w2 >= -edgeEpsilon {
				p.img.SetRGBA(x, y, col)
			}
		}
	}
}

// edge returns the signed doubled area of (a, b, (x, y)).
func edge(a, b screenVertex, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}
