package borders

import (
	"fmt"
	"reflect"
	"sync"
)

// Borders ties the layout computation to its render state. Layout is
// called from the goroutine that manages windows; Render is called once per
// frame from the render goroutine.
type Borders struct {
	state    *StateBuffer
	validate bool

	mu          sync.Mutex
	borderWidth int
	renderer    *BatchRenderer
}

// New creates Borders from cfg.
func New(cfg Config, opts ...Option) (*Borders, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	if o.dpi != 0 {
		cfg.DPI = o.dpi
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, fmt.Errorf("borders: %w", err)
	}

	Logger().Debug("borders: created",
		"border_width_px", settings.BorderWidth,
		"background", settings.Palette[ColorBackground].String(),
		"active", settings.Palette[ColorActiveBorder].String(),
		"inactive", settings.Palette[ColorInactiveBorder].String())

	return &Borders{
		state:       NewStateBuffer(settings.Palette),
		validate:    o.validate,
		borderWidth: settings.BorderWidth,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config, opts ...Option) *Borders {
	b, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// BorderWidth returns the ring width in device pixels.
func (b *Borders) BorderWidth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.borderWidth
}

// SetBorderWidth changes the ring width in device pixels, for example after
// the window moved to a monitor with a different scale. It takes effect on
// the next Layout.
func (b *Borders) SetBorderWidth(px int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.borderWidth = max(px, 0)
}

// SetPalette changes the colors. They are uploaded on the next Render.
func (b *Borders) SetPalette(p Palette) {
	b.state.SetPalette(p)
}

// State returns the state buffer frames are published to.
func (b *Borders) State() *StateBuffer {
	return b.state
}

// Layout computes the frame for the given windows and publishes it for the
// render goroutine. active is the index of the focused window or
// NoActiveWindow.
func (b *Borders) Layout(windows []Geometry, active int, drawBorders bool, vp ViewportSize) error {
	f := ComputeFrame(LayoutInput{
		Windows:     windows,
		Active:      active,
		BorderWidth: b.BorderWidth(),
		DrawBorders: drawBorders,
		Viewport:    vp,
	})
	if b.validate {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	b.state.Update(f)
	return nil
}

// Render draws the most recently published frame with p. It does nothing
// until Layout has been called at least once. Switching to a different
// program forces the current frame to be uploaded to it.
func (b *Borders) Render(p Program) error {
	if p == nil {
		return ErrNilProgram
	}
	b.mu.Lock()
	r := b.renderer
	if r == nil || !sameProgram(r.Program(), p) {
		r = NewBatchRenderer(p)
		b.renderer = r
		b.state.invalidate()
	}
	b.mu.Unlock()
	return r.Render(b.state)
}

// sameProgram reports whether a and b are the same program. Programs of a
// type that does not support == (a value type holding a slice, map or
// func) are never considered the same, so they get the frame uploaded on
// every render.
func sameProgram(a, b Program) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
