package borders

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while the render goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for borders and its sub-packages.
// By default, borders produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by borders:
//   - [slog.LevelDebug]: per-layout and per-upload statistics
//   - [slog.LevelInfo]: GPU adapter selection
//   - [slog.LevelWarn]: non-fatal issues (software fallback, release errors)
//
// Example:
//
//	borders.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	boundMu.Lock()
	defer boundMu.Unlock()
	loggerPtr.Store(l)
	if boundProgram != nil {
		boundProgram.SetLogger(l)
	}
}

// Logger returns the current logger used by borders.
// Sub-packages call this to share the same logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by programs that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// boundProgram is the most recently bound program that accepts a logger.
// SetLogger forwards every new logger to it, so GPU programs never keep
// logging through a replaced one. boundMu also serializes the forwarding
// with bindLogger.
var (
	boundMu      sync.Mutex
	boundProgram loggerSetter
)

// bindLogger hands the current logger to p and keeps p in sync with later
// SetLogger calls. Programs without a SetLogger method are ignored.
func bindLogger(p Program) {
	ls, ok := p.(loggerSetter)
	if !ok {
		return
	}
	boundMu.Lock()
	defer boundMu.Unlock()
	boundProgram = ls
	ls.SetLogger(Logger())
}
