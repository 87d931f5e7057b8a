package borders

import (
	"errors"
	"sync"
	"testing"
)

// renderCounter records the upload and draw callbacks of a StateBuffer.
type renderCounter struct {
	uploads, draws int
	lastData       []float32
	lastPalette    Palette
	lastRects      int
	failUpload     bool
	failDraw       bool
}

func (c *renderCounter) upload(data []float32, p Palette) error {
	c.uploads++
	if c.failUpload {
		return errInjected
	}
	c.lastData = append(c.lastData[:0], data...)
	c.lastPalette = p
	return nil
}

func (c *renderCounter) draw(_, _ []int32, rects int) error {
	c.draws++
	if c.failDraw {
		return errInjected
	}
	c.lastRects = rects
	return nil
}

func sampleFrame(n int) *Frame {
	var data []float32
	for i := 0; i < n; i++ {
		data = AppendRect(data, i, i, i+10, i+10, ColorInactiveBorder, vp800)
	}
	return NewFrame(data)
}

func TestStateBufferNotReady(t *testing.T) {
	var b StateBuffer
	var c renderCounter
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c.uploads != 0 || c.draws != 0 {
		t.Errorf("uploads=%d draws=%d before first Update, want 0, 0", c.uploads, c.draws)
	}
	if b.Ready() || b.Dirty() {
		t.Errorf("Ready()=%v Dirty()=%v on zero value", b.Ready(), b.Dirty())
	}
	if b.RectCount() != 0 {
		t.Errorf("RectCount() = %d, want 0", b.RectCount())
	}
}

func TestStateBufferUploadOnlyWhenDirty(t *testing.T) {
	pal := NewPalette(RGB{1, 2, 3}, RGB{4, 5, 6}, RGB{7, 8, 9})
	b := NewStateBuffer(pal)
	var c renderCounter

	b.Update(sampleFrame(3))
	if !b.Ready() || !b.Dirty() {
		t.Fatalf("after Update: Ready()=%v Dirty()=%v, want true, true", b.Ready(), b.Dirty())
	}
	for i := 0; i < 3; i++ {
		if err := b.Render(c.upload, c.draw); err != nil {
			t.Fatalf("Render() #%d error = %v", i, err)
		}
	}
	if c.uploads != 1 {
		t.Errorf("uploads = %d, want 1", c.uploads)
	}
	if c.draws != 3 {
		t.Errorf("draws = %d, want 3", c.draws)
	}
	if c.lastRects != 3 {
		t.Errorf("rectCount = %d, want 3", c.lastRects)
	}
	if c.lastPalette != pal {
		t.Errorf("palette = %v, want %v", c.lastPalette, pal)
	}
	if b.Dirty() {
		t.Error("Dirty() = true after successful render")
	}

	b.Update(sampleFrame(1))
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c.uploads != 2 {
		t.Errorf("uploads after second Update = %d, want 2", c.uploads)
	}
	if len(c.lastData) != FloatsPerRect {
		t.Errorf("uploaded %d scalars, want %d", len(c.lastData), FloatsPerRect)
	}
}

func TestStateBufferLatestFrameWins(t *testing.T) {
	b := NewStateBuffer(Palette{})
	var c renderCounter
	b.Update(sampleFrame(1))
	b.Update(sampleFrame(2))
	b.Update(sampleFrame(5))
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatal(err)
	}
	if c.uploads != 1 || c.lastRects != 5 {
		t.Errorf("uploads=%d rects=%d, want 1, 5", c.uploads, c.lastRects)
	}
}

func TestStateBufferSetPaletteMarksDirty(t *testing.T) {
	b := NewStateBuffer(Palette{})
	var c renderCounter
	b.Update(sampleFrame(2))
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatal(err)
	}

	pal := NewPalette(RGB{R: 9}, RGB{G: 9}, RGB{B: 9})
	b.SetPalette(pal)
	if !b.Dirty() {
		t.Fatal("Dirty() = false after SetPalette")
	}
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatal(err)
	}
	if c.uploads != 2 {
		t.Errorf("uploads = %d, want 2", c.uploads)
	}
	if c.lastPalette != pal {
		t.Errorf("palette = %v, want %v", c.lastPalette, pal)
	}
}

func TestStateBufferUploadFailureRetries(t *testing.T) {
	b := NewStateBuffer(Palette{})
	c := renderCounter{failUpload: true}
	b.Update(sampleFrame(2))

	err := b.Render(c.upload, c.draw)
	if !errors.Is(err, errInjected) {
		t.Fatalf("Render() error = %v, want injected", err)
	}
	if c.draws != 0 {
		t.Errorf("draws = %d after failed upload, want 0", c.draws)
	}
	if !b.Dirty() {
		t.Error("Dirty() = false after failed upload")
	}

	c.failUpload = false
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatalf("Render() retry error = %v", err)
	}
	if c.uploads != 2 || c.draws != 1 {
		t.Errorf("uploads=%d draws=%d, want 2, 1", c.uploads, c.draws)
	}
}

func TestStateBufferDrawFailure(t *testing.T) {
	b := NewStateBuffer(Palette{})
	c := renderCounter{failDraw: true}
	b.Update(sampleFrame(1))
	if err := b.Render(c.upload, c.draw); !errors.Is(err, errInjected) {
		t.Fatalf("Render() error = %v, want injected", err)
	}
	if b.Dirty() {
		t.Error("Dirty() = true; upload succeeded and must not be repeated")
	}
}

func TestStateBufferNilFrame(t *testing.T) {
	b := NewStateBuffer(Palette{})
	var c renderCounter
	b.Update(nil)
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatal(err)
	}
	if c.uploads != 1 || c.draws != 1 || c.lastRects != 0 {
		t.Errorf("uploads=%d draws=%d rects=%d, want 1, 1, 0", c.uploads, c.draws, c.lastRects)
	}
}

func TestStateBufferInvalidate(t *testing.T) {
	var b StateBuffer
	b.invalidate()
	if b.Dirty() {
		t.Error("invalidate marked an empty buffer dirty")
	}
	b.Update(sampleFrame(1))
	var c renderCounter
	if err := b.Render(c.upload, c.draw); err != nil {
		t.Fatal(err)
	}
	b.invalidate()
	if !b.Dirty() {
		t.Error("Dirty() = false after invalidate")
	}
}

// TestStateBufferConcurrentNoTearing checks that a render never sees
// vertex data from one frame together with descriptors from another.
func TestStateBufferConcurrentNoTearing(t *testing.T) {
	frames := []*Frame{sampleFrame(1), sampleFrame(4), sampleFrame(9), NewFrame(nil)}
	b := NewStateBuffer(Palette{})
	b.Update(frames[0])

	const iterations = 2000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			b.Update(frames[i%len(frames)])
		}
	}()

	var uploaded int
	var torn int
	upload := func(data []float32, _ Palette) error {
		uploaded = len(data)
		return nil
	}
	draw := func(starts, counts []int32, rects int) error {
		if len(starts) != rects || len(counts) != rects || uploaded != rects*FloatsPerRect {
			torn++
		}
		return nil
	}
	for i := 0; i < iterations; i++ {
		if err := b.Render(upload, draw); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}
	wg.Wait()
	if torn != 0 {
		t.Errorf("%d renders observed a torn frame", torn)
	}
}
