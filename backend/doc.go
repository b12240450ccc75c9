// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines how recorded content commands reach a device.
//
// A Backend owns the pipeline objects and the transient buffer of a device. Each
// frame starts with BeginFrame, which returns a Frame: a renderer.RenderPass
// that records commands, plus Finish, which executes them and reads the
// result back.
//
// # Backend Registration
//
// Backends register themselves from init functions and are selected by name
// or by priority:
//
//	import (
//		_ "github.com/gogpu/contents/backend/software"
//		_ "github.com/gogpu/contents/backend/wgpu"
//	)
//
//	b, err := backend.Default() // wgpu if a device opens, otherwise software
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	ctx := contents.NewContentContext(b.PipelineFactory())
//	frame, err := b.BeginFrame(geometry.ISize{Width: 800, Height: 600})
//	...
//	pass.Render(ctx, frame)
//	img, err := frame.Finish()
//
// # Available Backends
//
//   - "wgpu": GPU execution through gogpu/wgpu HAL
//   - "software": CPU rasterizer, always available
package backend
