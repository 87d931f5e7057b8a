//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/borders"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

//go:embed shaders/borders.wgsl
var bordersShaderSource string

var (
	// ErrNoGPU is returned when no usable GPU adapter is available.
	ErrNoGPU = errors.New("gpu: no GPU available")

	// ErrNoTarget is returned when drawing before a render target is set.
	ErrNoTarget = errors.New("gpu: no render target")

	// ErrSizeMismatch is returned when a readback image does not match the
	// render target.
	ErrSizeMismatch = errors.New("gpu: size mismatch")

	// ErrDestroyed is returned when using a program after Destroy.
	ErrDestroyed = errors.New("gpu: program destroyed")
)

// RectProgram draws packed border frames with the wgpu HAL. It implements
// borders.Program.
//
// Upload writes the palette uniform and keeps a CPU copy of the fan vertex
// stream; the first Draw after an upload expands the fans into a triangle
// list and writes the vertex buffer. Every Draw then records one render
// pass holding a single Draw call for all rectangles. Draws of an unchanged
// frame touch no buffers.
//
// The target is either a caller-owned surface view (SetSurfaceTarget) or an
// internal offscreen texture (SetOffscreenTarget) that can be read back.
// All methods must be called from the goroutine owning the GPU context; the
// mutex only protects against misuse.
type RectProgram struct {
	mu sync.Mutex

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool // true when using a shared device (don't destroy on Destroy)
	format         gputypes.TextureFormat

	// GPU objects for the render pipeline.
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	// Palette uniform, written on upload.
	paletteBuf hal.Buffer
	bindGroup  hal.BindGroup

	// Vertex state. fanData is the last uploaded fan stream; needsExpand
	// is set by Upload and cleared once the triangle list is on the GPU.
	fanData     []float32
	needsExpand bool
	staging     []byte
	vertBuf     hal.Buffer
	vertBufSize uint64
	vertCount   uint32

	// Render target. surfaceView is owned by the caller.
	surfaceView   hal.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32
	offscreen     offscreenTarget

	stats Stats
}

// Stats counts the work a RectProgram has done.
type Stats struct {
	Uploads       int // palette and vertex stream uploads
	BufferWrites  int // triangle-list writes to the vertex buffer
	DrawCalls     int // GPU draw calls issued
	RectsDrawn    int // rectangles covered by those draw calls
	BufferResizes int // vertex buffer (re)allocations
}

var _ borders.Program = (*RectProgram)(nil)

// NewRectProgram creates a program on a device owned by the caller.
// format is the color format of the surfaces it will draw into.
// Pipelines are created lazily on first use.
func NewRectProgram(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *RectProgram {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &RectProgram{
		device:         device,
		queue:          queue,
		format:         format,
		externalDevice: true,
	}
}

// OpenRectProgram creates a program on its own Vulkan device, preferring a
// discrete or integrated GPU adapter.
func OpenRectProgram() (*RectProgram, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrNoGPU)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("gpu: adapter selected", "name", selected.Info.Name)

	p := NewRectProgram(openDev.Device, openDev.Queue, gputypes.TextureFormatBGRA8Unorm)
	p.instance = instance
	p.externalDevice = false
	return p, nil
}

// SetLogger sets the logger used by the GPU program.
func (p *RectProgram) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Format returns the color format the pipeline renders to.
func (p *RectProgram) Format() gputypes.TextureFormat {
	return p.format
}

// SetSurfaceTarget makes Draw render into view, a caller-owned texture view
// of the given size whose format matches Format. The existing content is
// kept; borders are drawn on top.
func (p *RectProgram) SetSurfaceTarget(view hal.TextureView, width, height uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device != nil {
		p.offscreen.destroy(p.device)
	}
	p.surfaceView = view
	p.surfaceWidth = width
	p.surfaceHeight = height
}

// SetOffscreenTarget makes Draw render into an internal width x height
// texture, cleared to transparent black on every draw. Use Readback to
// fetch the pixels.
func (p *RectProgram) SetOffscreenTarget(width, height uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrDestroyed
	}
	p.surfaceView = nil
	p.surfaceWidth, p.surfaceHeight = 0, 0
	_, err := p.offscreen.ensure(p.device, width, height, p.format)
	return err
}

// Size returns the current render target dimensions.
func (p *RectProgram) Size() (uint32, uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.surfaceView != nil {
		return p.surfaceWidth, p.surfaceHeight
	}
	return p.offscreen.width, p.offscreen.height
}

// Stats returns the program's counters.
func (p *RectProgram) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Begin implements borders.Program. It creates the pipeline on first use
// and checks that a render target is set.
func (p *RectProgram) Begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrDestroyed
	}
	if p.surfaceView == nil && p.offscreen.view == nil {
		return ErrNoTarget
	}
	return p.ensurePipeline()
}

// End implements borders.Program.
func (p *RectProgram) End() error { return nil }

// Upload implements borders.Program. It writes the palette uniform and
// stores the fan vertex stream for expansion on the next Draw.
func (p *RectProgram) Upload(vertexData []float32, palette borders.Palette) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrDestroyed
	}
	if err := p.ensurePipeline(); err != nil {
		return err
	}
	p.queue.WriteBuffer(p.paletteBuf, 0, paletteBytes(palette.RGBA()))
	p.fanData = append(p.fanData[:0], vertexData...)
	p.needsExpand = true
	p.stats.Uploads++
	slogger().Debug("gpu: frame uploaded", "floats", len(vertexData))
	return nil
}

// Draw implements borders.Program. All rectCount fans are drawn by one
// Draw call in one render pass.
func (p *RectProgram) Draw(startOffsets, vertexCounts []int32, rectCount int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrDestroyed
	}
	if p.needsExpand {
		if err := p.writeTriangles(startOffsets, vertexCounts, rectCount); err != nil {
			return err
		}
		p.needsExpand = false
	}
	view, loadOp := p.surfaceView, gputypes.LoadOpLoad
	if view == nil {
		view, loadOp = p.offscreen.view, gputypes.LoadOpClear
	}
	if view == nil {
		return ErrNoTarget
	}
	// Surfaces keep their content, so an empty frame needs no pass. The
	// offscreen target is cleared by every pass.
	if p.vertCount == 0 && loadOp == gputypes.LoadOpLoad {
		return nil
	}
	if err := p.encodeSubmit(view, loadOp); err != nil {
		return err
	}
	if p.vertCount > 0 {
		p.stats.DrawCalls++
		p.stats.RectsDrawn += rectCount
	}
	return nil
}

// Readback copies the offscreen target into dst.
func (p *RectProgram) Readback(dst *image.RGBA) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return ErrDestroyed
	}
	if p.surfaceView != nil {
		return fmt.Errorf("%w: readback needs an offscreen target", ErrNoTarget)
	}
	return p.offscreen.readback(p.device, p.queue, p.format, dst)
}

// Destroy releases all GPU resources held by the program. The device is
// only destroyed if the program created it. Safe to call multiple times.
func (p *RectProgram) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device == nil {
		return
	}
	p.offscreen.destroy(p.device)
	p.destroyVertexBuffer()
	p.destroyPipeline()
	if !p.externalDevice {
		p.device.Destroy()
		if p.instance != nil {
			p.instance.Destroy()
			p.instance = nil
		}
	}
	p.device = nil
	p.queue = nil
	p.surfaceView = nil
	p.fanData = nil
	p.staging = nil
}

// writeTriangles expands the uploaded fans and writes them to the vertex
// buffer, growing it when needed.
func (p *RectProgram) writeTriangles(startOffsets, vertexCounts []int32, rectCount int) error {
	staging, data, count, err := expandFans(p.fanData, startOffsets, vertexCounts, rectCount, p.staging)
	if err != nil {
		return err
	}
	p.staging = staging
	p.vertCount = count
	if count == 0 {
		return nil
	}
	if err := p.ensureVertexBuffer(uint64(len(data))); err != nil {
		return err
	}
	p.queue.WriteBuffer(p.vertBuf, 0, data)
	p.stats.BufferWrites++
	return nil
}

// ensureVertexBuffer makes sure the vertex buffer holds at least size
// bytes. The buffer at least doubles when it grows, so a steady stream of
// slightly larger layouts does not reallocate every time.
func (p *RectProgram) ensureVertexBuffer(size uint64) error {
	if p.vertBuf != nil && p.vertBufSize >= size {
		return nil
	}
	newSize := max(size, 2*p.vertBufSize)
	p.destroyVertexBuffer()
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "borders_vertices",
		Size:  newSize,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	p.vertBuf = buf
	p.vertBufSize = newSize
	p.stats.BufferResizes++
	slogger().Debug("gpu: vertex buffer allocated", "bytes", newSize)
	return nil
}

func (p *RectProgram) destroyVertexBuffer() {
	if p.vertBuf != nil {
		p.device.DestroyBuffer(p.vertBuf)
		p.vertBuf = nil
	}
	p.vertBufSize = 0
}

// encodeSubmit records one render pass with a single draw of the whole
// triangle list, submits it and waits for completion.
func (p *RectProgram) encodeSubmit(view hal.TextureView, loadOp gputypes.LoadOp) error {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "borders_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("borders_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "borders_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	if p.vertCount > 0 {
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, p.bindGroup, nil)
		rp.SetVertexBuffer(0, p.vertBuf, 0)
		rp.Draw(p.vertCount, 1, 0, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	return submitAndWait(p.device, p.queue, cmdBuf)
}

// ensurePipeline creates the shader, layouts, pipeline, palette buffer and
// bind group if they don't already exist.
func (p *RectProgram) ensurePipeline() error {
	if p.pipeline != nil {
		return nil
	}
	if err := p.createPipeline(); err != nil {
		p.destroyPipeline()
		return err
	}
	return nil
}

// createPipeline compiles the rect shader and creates an opaque, non-
// multisampled triangle-list pipeline.
func (p *RectProgram) createPipeline() error {
	if bordersShaderSource == "" {
		return fmt.Errorf("borders shader source is empty")
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "borders_shader",
		Source: hal.ShaderSource{WGSL: bordersShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile borders shader: %w", err)
	}
	p.shader = shader

	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "borders_palette_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create palette layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "borders_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "borders_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    rectVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create borders pipeline: %w", err)
	}
	p.pipeline = pipeline

	paletteBuf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "borders_palette",
		Size:  paletteUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create palette buffer: %w", err)
	}
	p.paletteBuf = paletteBuf

	bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "borders_palette_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.paletteBuf.NativeHandle(), Offset: 0, Size: paletteUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create palette bind group: %w", err)
	}
	p.bindGroup = bindGroup
	return nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *RectProgram) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	if p.paletteBuf != nil {
		p.device.DestroyBuffer(p.paletteBuf)
		p.paletteBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// rectVertexLayout returns the vertex buffer layout for the rect pipeline.
func rectVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: rectVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, // x, y, palette index
			},
		},
	}
}
