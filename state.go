package borders

import (
	"fmt"
	"sync"
)

// UploadFunc pushes a frame's vertex stream and the palette to the GPU.
// The slices are only valid for the duration of the call.
type UploadFunc func(vertexData []float32, palette Palette) error

// DrawFunc issues one batched draw of rectCount rectangle units described
// by startOffsets and vertexCounts.
type DrawFunc func(startOffsets, vertexCounts []int32, rectCount int) error

// StateBuffer is the single-slot mailbox between the goroutine that
// computes layouts and the goroutine that renders them.
//
// Update replaces the stored frame wholesale; Render uploads it when it
// changed and draws it every time. Both run under the same mutex, so a
// render never observes vertex data from one frame with descriptors from
// another. Updates between two renders are not queued: only the latest
// frame is drawn.
//
// The zero value is ready to use and renders nothing.
type StateBuffer struct {
	mu      sync.Mutex
	frame   *Frame
	palette Palette
	dirty   bool
	ready   bool
}

// NewStateBuffer creates a state buffer that uploads palette with each
// new frame.
func NewStateBuffer(palette Palette) *StateBuffer {
	return &StateBuffer{palette: palette}
}

// Update stores f as the current frame and marks it for upload.
// A nil frame is stored as an empty frame.
func (b *StateBuffer) Update(f *Frame) {
	if f == nil {
		f = NewFrame(nil)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = f
	b.dirty = true
	b.ready = true
}

// SetPalette replaces the palette. The new colors are uploaded together
// with the vertex data on the next render.
func (b *StateBuffer) SetPalette(p Palette) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.palette = p
	b.dirty = true
}

// invalidate forces the next Render to upload the stored frame again, for
// a program that has never seen it.
func (b *StateBuffer) invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		b.dirty = true
	}
}

// Render draws the current frame. It is a no-op until the first Update.
// If the frame or palette changed since the last successful upload, upload
// is called first; draw is called on every render. A failed upload leaves
// the frame marked dirty so the next render retries it, and skips the draw.
func (b *StateBuffer) Render(upload UploadFunc, draw DrawFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil
	}
	f := b.frame
	if b.dirty {
		if err := upload(f.VertexData, b.palette); err != nil {
			return fmt.Errorf("upload frame: %w", err)
		}
		b.dirty = false
	}
	if err := draw(f.StartOffsets, f.VertexCounts, f.RectCount()); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Ready reports whether at least one frame has been stored.
func (b *StateBuffer) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Dirty reports whether the stored frame still needs uploading.
func (b *StateBuffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// RectCount returns the number of rectangles in the stored frame.
func (b *StateBuffer) RectCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame.RectCount()
}
