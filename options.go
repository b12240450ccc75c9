// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/renderer"
)

// ContentContextOptions selects a pipeline variant. Pipelines are a pure
// function of these options and the shader, so equal options always return
// the same cached pipeline.
type ContentContextOptions struct {
	SampleCount      uint32
	ColorFormat      gputypes.TextureFormat
	BlendMode        renderer.BlendMode
	StencilCompare   gputypes.CompareFunction
	StencilOperation gputypes.StencilOperation
}

// OptionsFromPass returns the options of an ordinary draw into pass:
// source-over blending and a stencil test that passes where the buffer
// equals the reference.
func OptionsFromPass(pass renderer.RenderPass) ContentContextOptions {
	return ContentContextOptions{
		SampleCount:      pass.SampleCount(),
		ColorFormat:      pass.ColorFormat(),
		BlendMode:        renderer.BlendSourceOver,
		StencilCompare:   gputypes.CompareFunctionEqual,
		StencilOperation: gputypes.StencilOperationKeep,
	}
}

// OptionsFromPassAndEntity is OptionsFromPass with the entity's blend mode.
func OptionsFromPassAndEntity(pass renderer.RenderPass, entity *Entity) ContentContextOptions {
	opts := OptionsFromPass(pass)
	opts.BlendMode = entity.BlendMode()
	return opts
}

func (o ContentContextOptions) descriptor(label, shader string, stride uint32, colorWrites bool) renderer.PipelineDescriptor {
	stencil := renderer.DefaultStencilState()
	if o.StencilCompare != gputypes.CompareFunctionUndefined {
		stencil.Compare = o.StencilCompare
	}
	if o.StencilOperation != gputypes.StencilOperationUndefined {
		stencil.PassOp = o.StencilOperation
	}
	return renderer.PipelineDescriptor{
		Label:        label,
		Shader:       shader,
		VertexStride: stride,
		SampleCount:  max(o.SampleCount, 1),
		ColorFormat:  o.ColorFormat,
		Blend:        o.BlendMode.BlendState(),
		ColorWrites:  colorWrites,
		Stencil:      stencil,
		Topology:     gputypes.PrimitiveTopologyTriangleList,
	}
}
