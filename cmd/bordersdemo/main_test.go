package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/borders"
)

func TestGridLayout(t *testing.T) {
	vp := borders.ViewportSize{Width: 800, Height: 600}
	windows := gridLayout(vp, 2, 2, 10, 2)
	if len(windows) != 4 {
		t.Fatalf("got %d windows, want 4", len(windows))
	}
	for i, w := range windows {
		if w.Left < 10 || w.Top < 10 || w.Right > 790 || w.Bottom > 590 {
			t.Errorf("window %d %+v outside margin", i, w)
		}
	}
	// Neighbors leave room for two rings.
	if gap := windows[1].Left - windows[0].Right; gap != 4 {
		t.Errorf("horizontal gap = %d, want 4", gap)
	}
	if gap := windows[2].Top - windows[0].Bottom; gap != 4 {
		t.Errorf("vertical gap = %d, want 4", gap)
	}
}

func TestGridLayoutDegenerate(t *testing.T) {
	vp := borders.ViewportSize{Width: 20, Height: 20}
	if w := gridLayout(vp, 0, 1, 0, 1); w != nil {
		t.Errorf("zero columns = %v, want nil", w)
	}
	if w := gridLayout(vp, 30, 1, 0, 1); w != nil {
		t.Errorf("too many columns = %v, want nil", w)
	}
}

func TestRenderSoftwareAndSave(t *testing.T) {
	b := borders.MustNew(borders.DefaultConfig())
	vp := borders.ViewportSize{Width: 64, Height: 48}
	if err := b.Layout(gridLayout(vp, 2, 1, 4, b.BorderWidth()), 0, true, vp); err != nil {
		t.Fatal(err)
	}
	img, err := render(b, vp, false)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := savePNG(path, img); err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
