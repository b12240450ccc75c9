// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// depthStencilFormat is the format of every depth/stencil attachment.
const depthStencilFormat = gputypes.TextureFormatDepth24PlusStencil8

// pipeline is a HAL render pipeline and the objects it owns.
type pipeline struct {
	desc       renderer.PipelineDescriptor
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	layout     hal.PipelineLayout
	render     hal.RenderPipeline
}

// Descriptor implements renderer.Pipeline.
func (p *pipeline) Descriptor() renderer.PipelineDescriptor { return p.desc }

func (p *pipeline) destroy(device hal.Device) {
	if p.render != nil {
		device.DestroyRenderPipeline(p.render)
		p.render = nil
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// createPipeline builds the HAL objects for desc. On failure everything
// created so far is destroyed.
func createPipeline(device hal.Device, desc renderer.PipelineDescriptor) (*pipeline, error) {
	src, err := shaders.Source(desc.Shader)
	if err != nil {
		return nil, err
	}
	vertexLayout := shaders.VertexLayout(desc.Shader)
	if vertexLayout.ArrayStride != uint64(desc.VertexStride) {
		return nil, fmt.Errorf("wgpu: %s: vertex stride %d does not match shader layout %d",
			desc.Shader, desc.VertexStride, vertexLayout.ArrayStride)
	}

	p := &pipeline{desc: desc}
	p.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Shader,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile %s shader: %w", desc.Shader, err)
	}

	p.bindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Shader + "_bind_layout",
		Entries: shaders.BindGroupLayoutEntries(desc.Shader),
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("wgpu: create %s bind group layout: %w", desc.Shader, err)
	}

	p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Shader + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("wgpu: create %s pipeline layout: %w", desc.Shader, err)
	}

	p.render, err = device.CreateRenderPipeline(renderPipelineDescriptor(desc, p.layout, p.module, vertexLayout))
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("wgpu: create %s pipeline: %w", desc.Label, err)
	}
	return p, nil
}

func renderPipelineDescriptor(desc renderer.PipelineDescriptor, layout hal.PipelineLayout,
	module hal.ShaderModule, vertexLayout gputypes.VertexBufferLayout) *hal.RenderPipelineDescriptor {
	writeMask := gputypes.ColorWriteMaskAll
	var blend *gputypes.BlendState
	if desc.ColorWrites {
		b := desc.Blend
		blend = &b
	} else {
		writeMask = gputypes.ColorWriteMaskNone
	}
	face := hal.StencilFaceState{
		Compare:     desc.Stencil.Compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      stencilOperation(desc.Stencil.PassOp),
	}
	return &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: shaders.VertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{vertexLayout},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: desc.Topology,
			CullMode: gputypes.CullModeNone,
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthStencilFormat,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront:      face,
			StencilBack:       face,
			StencilReadMask:   desc.Stencil.ReadMask,
			StencilWriteMask:  desc.Stencil.WriteMask,
		},
		Multisample: gputypes.MultisampleState{
			Count: max(desc.SampleCount, 1),
			Mask:  0xFFFFFFFF,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: shaders.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{{
				Format:    desc.ColorFormat,
				Blend:     blend,
				WriteMask: writeMask,
			}},
		},
	}
}

// stencilOperation maps a gputypes stencil operation to its HAL value.
// Undefined maps to Keep.
func stencilOperation(op gputypes.StencilOperation) hal.StencilOperation {
	switch op {
	case gputypes.StencilOperationZero:
		return hal.StencilOperationZero
	case gputypes.StencilOperationReplace:
		return hal.StencilOperationReplace
	case gputypes.StencilOperationInvert:
		return hal.StencilOperationInvert
	case gputypes.StencilOperationIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case gputypes.StencilOperationDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case gputypes.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case gputypes.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}
