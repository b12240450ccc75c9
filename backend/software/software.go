// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/backend"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// Errors returned by the software pipeline factory.
var (
	ErrUnsupportedShader   = errors.New("software: unsupported shader")
	ErrUnsupportedTopology = errors.New("software: unsupported primitive topology")
)

func init() {
	backend.Register(backend.NameSoftware, func() (backend.Backend, error) {
		return New(), nil
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithHostBufferOptions configures the transient buffer of the backend.
func WithHostBufferOptions(opts ...renderer.HostBufferOption) Option {
	return func(b *Backend) { b.hostOpts = append(b.hostOpts, opts...) }
}

// WithCommandLimit sets the maximum number of commands per frame.
func WithCommandLimit(n int) Option {
	return func(b *Backend) { b.commandLimit = n }
}

// Backend is the CPU backend.
type Backend struct {
	mu           sync.Mutex
	hostOpts     []renderer.HostBufferOption
	commandLimit int
	transients   *renderer.HostBuffer
	closed       bool
}

// New creates a software backend.
func New(opts ...Option) *Backend {
	b := &Backend{commandLimit: renderer.DefaultCommandLimit}
	for _, opt := range opts {
		opt(b)
	}
	b.transients = renderer.NewHostBuffer(b.hostOpts...)
	return b
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return backend.NameSoftware }

// PipelineFactory implements backend.Backend. Pipelines are plain
// descriptors interpreted at execution time.
func (b *Backend) PipelineFactory() renderer.PipelineFactory {
	return renderer.PipelineFactoryFunc(createPipeline)
}

func createPipeline(desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	if shaders.VertexLayout(desc.Shader).ArrayStride != uint64(desc.VertexStride) {
		return nil, fmt.Errorf("software: %s: vertex stride %d does not match shader layout", desc.Shader, desc.VertexStride)
	}
	switch desc.Shader {
	case shaders.SolidFill, shaders.LinearGradientFill, shaders.RadialGradientFill,
		shaders.SweepGradientFill, shaders.TextureFill, shaders.Clip:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShader, desc.Shader)
	}
	switch desc.Topology {
	case gputypes.PrimitiveTopologyTriangleList, gputypes.PrimitiveTopologyTriangleStrip:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTopology, desc.Topology)
	}
	renderer.Logger().Debug("software: pipeline created", "label", desc.Label, "shader", desc.Shader)
	return &renderer.DescriptorPipeline{Desc: desc}, nil
}

// BeginFrame implements backend.Backend. It recycles the transient buffer,
// so the previous frame must be finished first.
func (b *Backend) BeginFrame(size geometry.ISize) (backend.Frame, error) {
	if err := backend.ValidateSize(size); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, backend.ErrClosed
	}
	b.transients.Reset()
	pass := renderer.NewCommandPass(size, b.transients,
		renderer.WithSampleCount(1),
		renderer.WithColorFormat(gputypes.TextureFormatRGBA8Unorm),
		renderer.WithCommandLimit(b.commandLimit),
	)
	return newFrame(pass), nil
}

// Close implements backend.Backend.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
