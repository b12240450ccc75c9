// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targetSet holds the offscreen attachments of a frame. With a sample count
// of 1 there is no MSAA texture and the pass renders straight into the
// resolve texture.
type targetSet struct {
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	stencilTex  hal.Texture
	stencilView hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	width       uint32
	height      uint32
	sampleCount uint32
	format      gputypes.TextureFormat
}

// ensure creates or recreates the attachments when the requested
// configuration differs from the current one.
func (ts *targetSet) ensure(device hal.Device, w, h, samples uint32, format gputypes.TextureFormat) error {
	if ts.resolveTex != nil && ts.width == w && ts.height == h &&
		ts.sampleCount == samples && ts.format == format {
		return nil
	}
	ts.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	var err error

	if samples > 1 {
		ts.msaaTex, ts.msaaView, err = createAttachment(device, "contents_msaa_color", size, samples, format,
			gputypes.TextureUsageRenderAttachment)
		if err != nil {
			ts.destroy(device)
			return err
		}
	}

	ts.stencilTex, ts.stencilView, err = createAttachment(device, "contents_depth_stencil", size, samples,
		depthStencilFormat, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		ts.destroy(device)
		return err
	}

	ts.resolveTex, ts.resolveView, err = createAttachment(device, "contents_resolve", size, 1, format,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
	if err != nil {
		ts.destroy(device)
		return err
	}

	ts.width, ts.height, ts.sampleCount, ts.format = w, h, samples, format
	return nil
}

func createAttachment(device hal.Device, label string, size hal.Extent3D, samples uint32,
	format gputypes.TextureFormat, usage gputypes.TextureUsage) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: label + "_view"})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("wgpu: create %s view: %w", label, err)
	}
	return tex, view, nil
}

// colorAttachment returns the pass colour attachment: the MSAA view
// resolving into the resolve view, or the resolve view alone.
func (ts *targetSet) colorAttachment() hal.RenderPassColorAttachment {
	a := hal.RenderPassColorAttachment{
		View:       ts.resolveView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: gputypes.Color{},
	}
	if ts.msaaView != nil {
		a.View = ts.msaaView
		a.ResolveTarget = ts.resolveView
	}
	return a
}

// destroy releases all attachments and resets the configuration.
func (ts *targetSet) destroy(device hal.Device) {
	for _, v := range []hal.TextureView{ts.resolveView, ts.stencilView, ts.msaaView} {
		if v != nil {
			device.DestroyTextureView(v)
		}
	}
	for _, t := range []hal.Texture{ts.resolveTex, ts.stencilTex, ts.msaaTex} {
		if t != nil {
			device.DestroyTexture(t)
		}
	}
	*ts = targetSet{}
}
