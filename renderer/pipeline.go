// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// ErrNilPipeline is returned when a command has no pipeline.
var ErrNilPipeline = errors.New("renderer: command has no pipeline")

// StencilState is the stencil test of a pipeline. Both faces share it.
type StencilState struct {
	Compare   gputypes.CompareFunction
	PassOp    gputypes.StencilOperation
	ReadMask  uint32
	WriteMask uint32
}

// DefaultStencilState returns the stencil state of an ordinary draw: pass
// where the stencil value equals the reference, keep the buffer.
func DefaultStencilState() StencilState {
	return StencilState{
		Compare:   gputypes.CompareFunctionEqual,
		PassOp:    gputypes.StencilOperationKeep,
		ReadMask:  0xFF,
		WriteMask: 0xFF,
	}
}

// PipelineDescriptor fully describes a render pipeline. It is comparable and
// serves as the pipeline cache key.
type PipelineDescriptor struct {
	Label        string
	Shader       string
	VertexStride uint32
	SampleCount  uint32
	ColorFormat  gputypes.TextureFormat
	Blend        gputypes.BlendState
	// ColorWrites is false for stencil-only pipelines such as clips.
	ColorWrites bool
	Stencil     StencilState
	Topology    gputypes.PrimitiveTopology
}

// Pipeline is a backend pipeline object.
type Pipeline interface {
	Descriptor() PipelineDescriptor
}

// PipelineFactory creates backend pipelines from descriptors. Implementations
// are called at most once per distinct descriptor when fronted by a cache.
type PipelineFactory interface {
	CreatePipeline(desc PipelineDescriptor) (Pipeline, error)
}

// PipelineFactoryFunc adapts a function to PipelineFactory.
type PipelineFactoryFunc func(desc PipelineDescriptor) (Pipeline, error)

// CreatePipeline calls f(desc).
func (f PipelineFactoryFunc) CreatePipeline(desc PipelineDescriptor) (Pipeline, error) {
	return f(desc)
}

// DescriptorPipeline is a Pipeline that carries only its descriptor. Backends
// that interpret descriptors directly, such as the software rasterizer, use
// it as their pipeline object.
type DescriptorPipeline struct {
	Desc PipelineDescriptor
}

// Descriptor returns the pipeline descriptor.
func (p *DescriptorPipeline) Descriptor() PipelineDescriptor { return p.Desc }
