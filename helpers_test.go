package borders

import (
	"errors"
	"log/slog"
	"testing"
)

var errInjected = errors.New("injected failure")

// recordingProgram is a Program that records every call.
type recordingProgram struct {
	calls     []string
	uploaded  []float32
	palette   Palette
	starts    []int32
	counts    []int32
	rectCount int
	logger    *slog.Logger

	failBegin, failUpload, failDraw, failEnd bool
}

func (p *recordingProgram) SetLogger(l *slog.Logger) { p.logger = l }

func (p *recordingProgram) Begin() error {
	p.calls = append(p.calls, "begin")
	if p.failBegin {
		return errInjected
	}
	return nil
}

func (p *recordingProgram) Upload(vertexData []float32, palette Palette) error {
	p.calls = append(p.calls, "upload")
	if p.failUpload {
		return errInjected
	}
	p.uploaded = append([]float32(nil), vertexData...)
	p.palette = palette
	return nil
}

func (p *recordingProgram) Draw(startOffsets, vertexCounts []int32, rectCount int) error {
	p.calls = append(p.calls, "draw")
	if p.failDraw {
		return errInjected
	}
	p.starts = append([]int32(nil), startOffsets...)
	p.counts = append([]int32(nil), vertexCounts...)
	p.rectCount = rectCount
	return nil
}

func (p *recordingProgram) End() error {
	p.calls = append(p.calls, "end")
	if p.failEnd {
		return errInjected
	}
	return nil
}

// pixelRect converts rectangle i of f back to device pixels.
func pixelRect(t *testing.T, f *Frame, i int, vp ViewportSize) (left, top, right, bottom float64, c ColorIndex) {
	t.Helper()
	r := f.Rect(i)
	toPx := func(v Vertex) (float64, float64) {
		return (float64(v.X) + 1) / 2 * float64(vp.Width), (1 - float64(v.Y)) / 2 * float64(vp.Height)
	}
	right, top = toPx(r[0])
	left, bottom = toPx(r[2])
	return left, top, right, bottom, ColorIndex(r[0].Color)
}

// rectsOf returns the expected packed data for the given rectangles.
func rectsOf(vp ViewportSize, rects ...[5]int) []float32 {
	var out []float32
	for _, r := range rects {
		out = AppendRect(out, r[0], r[1], r[2], r[3], ColorIndex(r[4]), vp)
	}
	return out
}
