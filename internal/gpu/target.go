//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// offscreenTarget owns the single-sample color texture the program renders
// into when no surface view has been provided.
type offscreenTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure creates or recreates the color texture if the requested
// dimensions differ from the current size. It reports whether a new
// texture was created.
func (t *offscreenTarget) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat) (bool, error) {
	if t.width == w && t.height == h && t.tex != nil {
		return false, nil
	}
	t.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "borders_offscreen_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return false, fmt.Errorf("create offscreen texture: %w", err)
	}
	t.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "borders_offscreen_color_view",
	})
	if err != nil {
		t.destroy(device)
		return false, fmt.Errorf("create offscreen view: %w", err)
	}
	t.view = view
	t.width = w
	t.height = h
	return true, nil
}

// destroy releases the texture and resets dimensions.
func (t *offscreenTarget) destroy(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}

// readback copies the offscreen texture into dst, converting from the
// texture format to RGBA. dst must match the texture size.
func (t *offscreenTarget) readback(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, dst *image.RGBA) error {
	if t.tex == nil {
		return ErrNoTarget
	}
	w, h := t.width, t.height
	if b := dst.Bounds(); b.Dx() != int(w) || b.Dy() != int(h) {
		return fmt.Errorf("readback into %dx%d image from %dx%d target: %w",
			b.Dx(), b.Dy(), w, h, ErrSizeMismatch)
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "borders_readback_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("borders_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// WebGPU requires BytesPerRow aligned to 256 bytes.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "borders_readback_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(t.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if err := submitAndWait(device, queue, cmdBuf); err != nil {
		return err
	}

	raw := make([]byte, stagingSize)
	if err := queue.ReadBuffer(stagingBuf, 0, raw); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	swap := format == gputypes.TextureFormatBGRA8Unorm
	for row := 0; row < int(h); row++ {
		src := raw[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		out := dst.Pix[row*dst.Stride : row*dst.Stride+int(bytesPerRow)]
		copy(out, src)
		if swap {
			for i := 0; i+3 < len(out); i += 4 {
				out[i], out[i+2] = out[i+2], out[i]
			}
		}
	}
	return nil
}

// submitTimeout bounds how long a submission may take before it is
// reported as failed.
const submitTimeout = 5 * time.Second

// submitAndWait submits cmdBuf and blocks until the GPU has executed it.
func submitAndWait(device hal.Device, queue hal.Queue, cmdBuf hal.CommandBuffer) error {
	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, submitTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}
