package borders

import "log/slog"

// Option configures Borders during creation.
//
// Example:
//
//	b, err := borders.New(cfg,
//	    borders.WithDPI(144),
//	    borders.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds optional configuration for Borders creation.
type options struct {
	dpi      float64
	logger   *slog.Logger
	validate bool
}

// defaultOptions returns the default Borders options.
func defaultOptions() options {
	return options{}
}

// WithDPI overrides Config.DPI, typically with the value reported by the
// window system for the current monitor.
func WithDPI(dpi float64) Option {
	return func(o *options) {
		o.dpi = dpi
	}
}

// WithLogger sets the package logger, as SetLogger does.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithValidation makes Layout check every computed frame's packing
// invariants before storing it. Intended for tests and debugging.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}
