//go:build !nogpu

// Package gpu draws border frames on the GPU through gogpu/wgpu.
//
// A Program implements borders.Program: it keeps the palette in a uniform
// buffer, uploads the vertex stream only when the layout changed and draws
// every rectangle of a frame with a single draw call.
//
// Programs either share a device with the host application:
//
//	prog, err := gpu.FromProvider(provider) // e.g. gogpu.App.GPUContextProvider()
//	prog.SetSurfaceTarget(view, width, height)
//
// or open their own device and render offscreen:
//
//	prog, err := gpu.Open()
//	err = prog.SetOffscreenTarget(800, 600)
//	...
//	err = prog.Readback(img)
//
// If no GPU is available Open returns an error wrapping ErrNoGPU and callers
// fall back to borders.SoftwareProgram. Building with the nogpu tag drops the
// wgpu dependency and makes Open always fail that way.
package gpu

import (
	"fmt"

	"github.com/gogpu/borders"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	gpuimpl "github.com/gogpu/borders/internal/gpu"
)

// Program is the wgpu implementation of borders.Program.
type Program = gpuimpl.RectProgram

// Stats counts the work a Program has done.
type Stats = gpuimpl.Stats

// Errors returned by programs.
var (
	ErrNoGPU        = gpuimpl.ErrNoGPU
	ErrNoTarget     = gpuimpl.ErrNoTarget
	ErrSizeMismatch = gpuimpl.ErrSizeMismatch
	ErrDestroyed    = gpuimpl.ErrDestroyed
)

// Open creates a program on its own GPU device.
func Open() (*Program, error) {
	p, err := gpuimpl.OpenRectProgram()
	if err != nil {
		borders.Logger().Warn("gpu: device not available", "err", err)
		return nil, err
	}
	p.SetLogger(borders.Logger())
	return p, nil
}

// FromDevice creates a program on a HAL device owned by the caller,
// rendering to surfaces of the given format.
func FromDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Program {
	p := gpuimpl.NewRectProgram(device, queue, format)
	p.SetLogger(borders.Logger())
	return p
}

// FromProvider creates a program sharing the device of a host application.
// The provider must also expose HAL types through HalDevice() any and
// HalQueue() any; the pipeline targets the provider's surface format.
func FromProvider(provider gpucontext.DeviceProvider) (*Program, error) {
	if provider == nil {
		return nil, fmt.Errorf("gpu: nil DeviceProvider")
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return FromDevice(device, queue, provider.SurfaceFormat()), nil
}

// ShaderSource returns the WGSL source of the program's pipeline.
func ShaderSource() string {
	return gpuimpl.ShaderSource()
}

// CompileShaderSPIRV compiles the program's shader to SPIR-V words.
func CompileShaderSPIRV() ([]uint32, error) {
	return gpuimpl.CompileShaderSPIRV()
}
