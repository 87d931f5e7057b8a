//go:build nogpu

package gpu

import (
	"errors"
	"image"

	"github.com/gogpu/borders"
	"github.com/gogpu/gpucontext"
)

// Errors returned by programs. Builds tagged nogpu report ErrNoGPU from
// every constructor, so callers fall back to borders.SoftwareProgram.
var (
	ErrNoGPU        = errors.New("gpu: no GPU available")
	ErrNoTarget     = errors.New("gpu: no render target")
	ErrSizeMismatch = errors.New("gpu: size mismatch")
	ErrDestroyed    = errors.New("gpu: program destroyed")
)

// Program stands in for the wgpu program when GPU support is compiled
// out. It cannot be constructed; every method fails with ErrNoGPU.
type Program struct{}

var _ borders.Program = (*Program)(nil)

// Open always fails with ErrNoGPU.
func Open() (*Program, error) {
	borders.Logger().Warn("gpu: built without GPU support")
	return nil, ErrNoGPU
}

// FromProvider always fails with ErrNoGPU.
func FromProvider(gpucontext.DeviceProvider) (*Program, error) {
	return nil, ErrNoGPU
}

// ShaderSource returns an empty string.
func ShaderSource() string { return "" }

// CompileShaderSPIRV always fails with ErrNoGPU.
func CompileShaderSPIRV() ([]uint32, error) { return nil, ErrNoGPU }

func (*Program) Begin() error                            { return ErrNoGPU }
func (*Program) Upload([]float32, borders.Palette) error { return ErrNoGPU }
func (*Program) Draw(_, _ []int32, _ int) error          { return ErrNoGPU }
func (*Program) End() error                              { return ErrNoGPU }

// SetOffscreenTarget always fails with ErrNoGPU.
func (*Program) SetOffscreenTarget(_, _ uint32) error { return ErrNoGPU }

// Readback always fails with ErrNoGPU.
func (*Program) Readback(*image.RGBA) error { return ErrNoGPU }

// Destroy does nothing.
func (*Program) Destroy() {}
