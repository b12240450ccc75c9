// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu executes content commands on a GPU through the gogpu/wgpu
// hardware abstraction layer.
//
// Pipelines are built from renderer.PipelineDescriptor values: the embedded
// WGSL program of the descriptor's shader, a bind group layout derived from
// its uniforms, and the blend, stencil and multisample state of the
// descriptor. Every frame uploads the whole transient arena into one GPU
// buffer, so vertex and uniform views are bound by their arena offsets.
//
// The frame renders into an offscreen target:
//   - MSAA colour: SampleCount samples, RGBA8Unorm or BGRA8Unorm
//   - Depth/stencil: SampleCount samples, Depth24PlusStencil8
//   - Resolve: 1 sample, RenderAttachment | CopySrc
//
// and Finish copies the resolve texture back to an *image.RGBA.
//
// A Backend can open its own device:
//
//	b, err := wgpu.NewHeadless()
//
// or share one with an application through gpucontext:
//
//	b, err := wgpu.NewFromProvider(provider)
//
// Importing the package registers it as the "wgpu" backend.
package wgpu
