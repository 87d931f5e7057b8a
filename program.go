package borders

import "fmt"

// Program is a compiled drawing program able to paint packed frames.
//
// Implementations own their GPU objects (vertex buffer, palette uniform,
// pipeline) and must only be used from the render goroutine. The GPU
// implementation lives in package gpu; [SoftwareProgram] rasterizes on the
// CPU.
type Program interface {
	// Begin binds the program for a render.
	Begin() error

	// Upload replaces the program's vertex stream and palette. vertexData
	// holds FloatsPerRect scalars per rectangle and is only valid for the
	// duration of the call.
	Upload(vertexData []float32, palette Palette) error

	// Draw paints rectCount triangle fans from the uploaded vertex stream in
	// a single batched submission. Fan i starts at vertex startOffsets[i]
	// and spans vertexCounts[i] vertices.
	Draw(startOffsets, vertexCounts []int32, rectCount int) error

	// End releases the per-render binding.
	End() error
}

// BatchRenderer draws a StateBuffer's frames through a Program.
type BatchRenderer struct {
	program Program
}

// NewBatchRenderer creates a renderer drawing with p. If p accepts a
// logger it receives the package logger, now and after every SetLogger.
func NewBatchRenderer(p Program) *BatchRenderer {
	if p != nil {
		bindLogger(p)
	}
	return &BatchRenderer{program: p}
}

// Program returns the renderer's program.
func (r *BatchRenderer) Program() Program {
	return r.program
}

// Render binds the program and draws the current frame of buf. The vertex
// stream is uploaded only if it changed since the previous render.
func (r *BatchRenderer) Render(buf *StateBuffer) error {
	if r.program == nil {
		return ErrNilProgram
	}
	if err := r.program.Begin(); err != nil {
		return fmt.Errorf("begin program: %w", err)
	}
	renderErr := buf.Render(r.program.Upload, r.program.Draw)
	if err := r.program.End(); err != nil && renderErr == nil {
		return fmt.Errorf("end program: %w", err)
	}
	return renderErr
}
