// Package borders computes and draws the decorative surfaces of a terminal
// window: the background padding around the area occupied by content
// windows and the border ring drawn around each window.
//
// # Overview
//
// Every surface is an opaque, flat-colored, axis-aligned rectangle. On each
// layout change the producer side turns window geometries into a packed
// [Frame] (a flat vertex stream plus per-rectangle draw descriptors) and
// stores it in a [StateBuffer]. Once per frame the render side hands the
// buffer to a [BatchRenderer], which uploads the vertex stream only when it
// changed and draws all rectangles with a single batched call.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/borders"
//	    "github.com/gogpu/borders/gpu"
//	)
//
//	b, err := borders.New(borders.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	// Producer (layout goroutine).
//	b.Layout(windows, activeIndex, true, borders.ViewportSize{Width: 800, Height: 600})
//
//	// Consumer (render goroutine).
//	prog, err := gpu.FromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	err = b.Render(prog)
//
// # Coordinate System
//
// Geometry is supplied in device pixels with the origin at the top-left
// corner and Y increasing down. Vertices are emitted in clip space, where
// the viewport spans [-1, 1] on both axes and Y increases up.
//
// # Architecture
//
//   - Geometry: [ToClipSpace], [EmitRect], [ComputeFrame]
//   - Handoff: [Frame], [StateBuffer]
//   - Drawing: [Program], [BatchRenderer], [SoftwareProgram]
//   - GPU: package gpu (wgpu HAL program, one draw call per frame)
package borders

// Version is the current version of the library.
const Version = "0.1.0"
