// Command bordersdemo lays out a grid of terminal windows, draws their
// borders and padding and saves the result as a PNG.
package main

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/borders"
	"github.com/gogpu/borders/gpu"
)

func main() {
	def := borders.DefaultConfig()
	var (
		width    = flag.Int("width", 800, "viewport width in pixels")
		height   = flag.Int("height", 600, "viewport height in pixels")
		cols     = flag.Int("cols", 2, "window columns")
		rows     = flag.Int("rows", 2, "window rows")
		margin   = flag.Int("margin", 10, "padding around the window grid in pixels")
		active   = flag.Int("active", 0, "index of the active window, -1 for none")
		border   = flag.Float64("border", 2, "border width in points")
		dpi      = flag.Float64("dpi", 96, "logical DPI")
		bg       = flag.String("background", def.Background, "background color")
		activeC  = flag.String("active-color", def.ActiveBorder, "active border color")
		inactive = flag.String("inactive-color", def.InactiveBorder, "inactive border color")
		noBorder = flag.Bool("no-borders", false, "draw padding only")
		useGPU   = flag.Bool("gpu", false, "render on the GPU, falling back to software")
		verbose  = flag.Bool("v", false, "debug logging")
		output   = flag.String("output", "borders.png", "output file")
	)
	flag.Parse()

	if *verbose {
		borders.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := borders.Config{
		BorderWidth:    *border,
		DPI:            *dpi,
		Background:     *bg,
		ActiveBorder:   *activeC,
		InactiveBorder: *inactive,
	}
	b, err := borders.New(cfg, borders.WithValidation())
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	vp := borders.ViewportSize{Width: *width, Height: *height}
	windows := gridLayout(vp, *cols, *rows, *margin, b.BorderWidth())
	if err := b.Layout(windows, *active, !*noBorder, vp); err != nil {
		log.Fatalf("Layout failed: %v", err)
	}

	img, err := render(b, vp, *useGPU)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Borders saved to %s (%dx%d, %d rects)\n",
		*output, *width, *height, b.State().RectCount())
}

// gridLayout splits the viewport inside margin into cols x rows windows,
// leaving room for one border ring between neighbors.
func gridLayout(vp borders.ViewportSize, cols, rows, margin, bw int) []borders.Geometry {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	innerW := vp.Width - 2*margin - (cols-1)*2*bw
	innerH := vp.Height - 2*margin - (rows-1)*2*bw
	if innerW < cols || innerH < rows {
		return nil
	}
	cellW, cellH := innerW/cols, innerH/rows
	windows := make([]borders.Geometry, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			left := margin + c*(cellW+2*bw)
			top := margin + r*(cellH+2*bw)
			windows = append(windows, borders.Geometry{
				Left: left, Top: top, Right: left + cellW, Bottom: top + cellH,
			})
		}
	}
	return windows
}

func render(b *borders.Borders, vp borders.ViewportSize, useGPU bool) (*image.RGBA, error) {
	if useGPU {
		img, err := renderGPU(b, vp)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, gpu.ErrNoGPU) {
			return nil, err
		}
		log.Printf("GPU not available, using software renderer: %v", err)
	}
	prog := borders.NewSoftwareProgram(vp.Width, vp.Height)
	if err := b.Render(prog); err != nil {
		return nil, err
	}
	return prog.Image(), nil
}

func renderGPU(b *borders.Borders, vp borders.ViewportSize) (*image.RGBA, error) {
	prog, err := gpu.Open()
	if err != nil {
		return nil, err
	}
	defer prog.Destroy()

	if err := prog.SetOffscreenTarget(uint32(vp.Width), uint32(vp.Height)); err != nil { //nolint:gosec // flag-sized dimensions
		return nil, err
	}
	if err := b.Render(prog); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	if err := prog.Readback(img); err != nil {
		return nil, err
	}
	return img, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
