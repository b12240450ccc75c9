// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/contents/backend"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// ErrForeignPipeline is returned for a command whose pipeline was not
// created by this backend's factory.
var ErrForeignPipeline = errors.New("wgpu: pipeline was not created by this backend")

// copyPitchAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyPitchAlignment = 256

// frame records commands and replays them on the device in Finish.
type frame struct {
	*renderer.CommandPass

	backend  *Backend
	finished bool
}

// frameResources are the objects created for one frame and destroyed after
// its submission completes.
type frameResources struct {
	bindGroups []hal.BindGroup
	textures   []hal.Texture
	views      []hal.TextureView
	uploaded   map[*image.RGBA]hal.TextureView
}

func (r *frameResources) release(device hal.Device) {
	for _, bg := range r.bindGroups {
		device.DestroyBindGroup(bg)
	}
	for _, v := range r.views {
		device.DestroyTextureView(v)
	}
	for _, t := range r.textures {
		device.DestroyTexture(t)
	}
}

// Finish implements backend.Frame. It uploads the transient buffer, encodes
// one render pass for all commands, submits it and reads the resolved
// target back.
func (f *frame) Finish() (*image.RGBA, error) {
	if f.finished {
		return nil, backend.ErrFrameFinished
	}
	f.finished = true

	b := f.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, backend.ErrClosed
	}

	size := f.RenderTargetSize()
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	cmds := f.Commands()
	if len(cmds) == 0 {
		return img, nil
	}

	pipelines := make([]*pipeline, len(cmds))
	for i, cmd := range cmds {
		p, ok := cmd.Pipeline.(*pipeline)
		if !ok {
			return nil, fmt.Errorf("command %d %q: %w", i, cmd.Label, ErrForeignPipeline)
		}
		pipelines[i] = p
	}

	w, h := uint32(size.Width), uint32(size.Height)
	if err := b.targets.ensure(b.device, w, h, f.SampleCount(), f.ColorFormat()); err != nil {
		return nil, err
	}
	if err := b.uploadTransients(); err != nil {
		return nil, err
	}

	res := &frameResources{uploaded: make(map[*image.RGBA]hal.TextureView)}
	defer res.release(b.device)

	groups := make([]hal.BindGroup, len(cmds))
	for i, cmd := range cmds {
		bg, err := b.bindGroup(res, pipelines[i], cmd)
		if err != nil {
			return nil, fmt.Errorf("wgpu: command %d %q: %w", i, cmd.Label, err)
		}
		groups[i] = bg
	}

	if err := b.encodeAndRead(cmds, pipelines, groups, img); err != nil {
		return nil, err
	}
	renderer.Logger().Debug("wgpu: frame finished", "commands", len(cmds), "bytes", b.transients.Len())
	return img, nil
}

// uploadTransients copies the frame arena into the device buffer. The
// upload is padded to a multiple of four bytes.
func (b *Backend) uploadTransients() error {
	data := b.transients.Bytes()
	if rem := len(data) % 4; rem != 0 {
		padded := make([]byte, len(data)+4-rem)
		copy(padded, data)
		data = padded
	}
	if err := b.ensureArena(uint64(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := b.queue.WriteBuffer(b.arena, 0, data); err != nil {
		return fmt.Errorf("wgpu: upload transients: %w", err)
	}
	return nil
}

// bindGroup creates the group 0 bind group of a command from its uniform
// views and textures.
func (b *Backend) bindGroup(res *frameResources, p *pipeline, cmd renderer.Command) (hal.BindGroup, error) {
	layout := shaders.BindGroupLayoutEntries(p.desc.Shader)
	entries := make([]gputypes.BindGroupEntry, 0, len(layout))
	for _, le := range layout {
		switch {
		case le.Buffer != nil:
			view, ok := uniformView(cmd, le.Binding)
			if !ok {
				return nil, fmt.Errorf("missing uniform at binding %d", le.Binding)
			}
			entries = append(entries, gputypes.BindGroupEntry{
				Binding: le.Binding,
				Resource: gputypes.BufferBinding{
					Buffer: b.arena.NativeHandle(),
					Offset: uint64(view.Range.Offset),
					Size:   uint64(view.Range.Length),
				},
			})
		case le.Texture != nil:
			tb, ok := textureBinding(cmd, le.Binding)
			if !ok {
				return nil, fmt.Errorf("missing texture at binding %d", le.Binding)
			}
			view, err := b.uploadTexture(res, tb.Image)
			if err != nil {
				return nil, err
			}
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  le.Binding,
				Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
			})
		case le.Sampler != nil:
			filter := gputypes.FilterModeNearest
			if tb, ok := textureBinding(cmd, shaders.TextureBinding); ok {
				filter = tb.Filter
			}
			s, err := b.sampler(filter)
			if err != nil {
				return nil, err
			}
			entries = append(entries, gputypes.BindGroupEntry{
				Binding:  le.Binding,
				Resource: gputypes.SamplerBinding{Sampler: s.NativeHandle()},
			})
		}
	}
	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   cmd.Label,
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	res.bindGroups = append(res.bindGroups, bg)
	return bg, nil
}

func uniformView(cmd renderer.Command, binding uint32) (renderer.BufferView, bool) {
	for _, u := range cmd.VertexBindings {
		if u.Slot == binding {
			return u.View, true
		}
	}
	for _, u := range cmd.FragmentBindings {
		if u.Slot == binding {
			return u.View, true
		}
	}
	return renderer.BufferView{}, false
}

func textureBinding(cmd renderer.Command, slot uint32) (renderer.TextureBinding, bool) {
	for _, t := range cmd.Textures {
		if t.Slot == slot {
			return t, true
		}
	}
	return renderer.TextureBinding{}, false
}

// uploadTexture creates a sampled texture holding img. Each image is
// uploaded once per frame.
func (b *Backend) uploadTexture(res *frameResources, img *image.RGBA) (hal.TextureView, error) {
	if view, ok := res.uploaded[img]; ok {
		return view, nil
	}
	bounds := img.Bounds()
	w, h := uint32(bounds.Dx()), uint32(bounds.Dy())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty texture %v", bounds)
	}
	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "contents_texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	res.textures = append(res.textures, tex)

	err = b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		tightPixels(img),
		&hal.ImageDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&size,
	)
	if err != nil {
		return nil, fmt.Errorf("upload texture: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "contents_texture_view"})
	if err != nil {
		return nil, fmt.Errorf("create texture view: %w", err)
	}
	res.views = append(res.views, view)
	res.uploaded[img] = view
	return view, nil
}

// tightPixels returns the pixels of img without row padding.
func tightPixels(img *image.RGBA) []byte {
	bounds := img.Bounds()
	rowBytes := bounds.Dx() * 4
	if img.Stride == rowBytes && bounds.Min == (image.Point{}) {
		return img.Pix[:rowBytes*bounds.Dy()]
	}
	out := make([]byte, rowBytes*bounds.Dy())
	for y := range bounds.Dy() {
		src := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(out[y*rowBytes:(y+1)*rowBytes], img.Pix[src:src+rowBytes])
	}
	return out
}

// encodeAndRead records the render pass, copies the resolved target into a
// staging buffer, submits and waits, then copies the pixels into img.
func (b *Backend) encodeAndRead(cmds []renderer.Command, pipelines []*pipeline, groups []hal.BindGroup, img *image.RGBA) error {
	w, h := b.targets.width, b.targets.height
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "contents_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "contents_frame"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("contents_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "contents_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{b.targets.colorAttachment()},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              b.targets.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		},
	})
	for i, cmd := range cmds {
		rp.SetPipeline(pipelines[i].render)
		rp.SetBindGroup(0, groups[i], nil)
		rp.SetVertexBuffer(0, b.arena, uint64(cmd.VertexBuffer.View.Range.Offset))
		rp.SetStencilReference(cmd.StencilReference)
		rp.Draw(cmd.VertexBuffer.VertexCount, 1, 0, 0)
	}
	rp.End()

	// The resolved target is a render attachment; copies need CopySrc.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.targets.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(b.targets.resolveTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: b.targets.resolveTex, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.targets.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if _, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := b.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}

	mapping, err := b.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return fmt.Errorf("wgpu: map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)
	copyRows(img, readback, int(alignedBytesPerRow), b.targets.format == gputypes.TextureFormatBGRA8Unorm)
	if err := b.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("wgpu: unmap staging buffer: %w", err)
	}
	return nil
}

// copyRows strips the row padding of a readback and swaps red and blue for
// BGRA targets.
func copyRows(dst *image.RGBA, src []byte, srcStride int, bgra bool) {
	rowBytes := dst.Bounds().Dx() * 4
	for y := range dst.Bounds().Dy() {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+rowBytes]
		copy(row, src[y*srcStride:y*srcStride+rowBytes])
		if bgra {
			for i := 0; i < len(row); i += 4 {
				row[i], row[i+2] = row[i+2], row[i]
			}
		}
	}
}
