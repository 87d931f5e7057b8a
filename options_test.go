package borders

import (
	"log/slog"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.dpi != 0 || o.logger != nil || o.validate {
		t.Errorf("defaultOptions() = %+v, want zero value", o)
	}
}

func TestOptionsApply(t *testing.T) {
	l := slog.New(nopHandler{})
	o := defaultOptions()
	for _, opt := range []Option{WithDPI(144), WithLogger(l), WithValidation()} {
		opt(&o)
	}
	if o.dpi != 144 {
		t.Errorf("dpi = %v, want 144", o.dpi)
	}
	if o.logger != l {
		t.Error("logger not set")
	}
	if !o.validate {
		t.Error("validate not set")
	}
}

func TestNewWithDPI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BorderWidth = 2
	b, err := New(cfg, WithDPI(144))
	if err != nil {
		t.Fatal(err)
	}
	if b.BorderWidth() != 4 {
		t.Errorf("BorderWidth() = %d, want 4", b.BorderWidth())
	}
}
