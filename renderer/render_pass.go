// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/geometry"
)

// DefaultCommandLimit is the command capacity of a CommandPass.
const DefaultCommandLimit = 1 << 16

// ErrCommandLimit is reported when a pass cannot accept more commands.
var ErrCommandLimit = errors.New("renderer: render pass command limit reached")

// RenderPass receives the draw commands of one frame in order.
type RenderPass interface {
	// RenderTargetSize returns the size of the render target in pixels.
	RenderTargetSize() geometry.ISize
	// TransientsBuffer returns the allocator for this frame's vertex and
	// uniform data.
	TransientsBuffer() *HostBuffer
	// AddCommand records a command. It returns false when the pass rejects
	// the command; the caller only propagates the result.
	AddCommand(cmd Command) bool
	// SampleCount returns the MSAA sample count of the color attachment.
	SampleCount() uint32
	// ColorFormat returns the format of the color attachment.
	ColorFormat() gputypes.TextureFormat
}

// CommandPass is the recording core of a RenderPass. Backends embed it and
// replay Commands when the frame finishes.
type CommandPass struct {
	size        geometry.ISize
	transients  *HostBuffer
	sampleCount uint32
	colorFormat gputypes.TextureFormat
	limit       int
	commands    []Command
	err         error
}

// CommandPassOption configures a CommandPass.
type CommandPassOption func(*CommandPass)

// WithSampleCount sets the MSAA sample count reported to pipelines.
func WithSampleCount(n uint32) CommandPassOption {
	return func(p *CommandPass) {
		if n > 0 {
			p.sampleCount = n
		}
	}
}

// WithColorFormat sets the color attachment format reported to pipelines.
func WithColorFormat(f gputypes.TextureFormat) CommandPassOption {
	return func(p *CommandPass) { p.colorFormat = f }
}

// WithCommandLimit sets the maximum number of commands per pass.
func WithCommandLimit(n int) CommandPassOption {
	return func(p *CommandPass) {
		if n > 0 {
			p.limit = n
		}
	}
}

// NewCommandPass creates a pass for a target of the given size that
// allocates from transients.
func NewCommandPass(size geometry.ISize, transients *HostBuffer, opts ...CommandPassOption) *CommandPass {
	p := &CommandPass{
		size:        size,
		transients:  transients,
		sampleCount: 1,
		colorFormat: gputypes.TextureFormatRGBA8Unorm,
		limit:       DefaultCommandLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RenderTargetSize implements RenderPass.
func (p *CommandPass) RenderTargetSize() geometry.ISize { return p.size }

// TransientsBuffer implements RenderPass.
func (p *CommandPass) TransientsBuffer() *HostBuffer { return p.transients }

// SampleCount implements RenderPass.
func (p *CommandPass) SampleCount() uint32 { return p.sampleCount }

// ColorFormat implements RenderPass.
func (p *CommandPass) ColorFormat() gputypes.TextureFormat { return p.colorFormat }

// AddCommand validates and records cmd. Rejections are logged and the first
// one is kept in Err.
func (p *CommandPass) AddCommand(cmd Command) bool {
	if len(p.commands) >= p.limit {
		p.reject(cmd, ErrCommandLimit)
		return false
	}
	if err := cmd.Validate(); err != nil {
		p.reject(cmd, err)
		return false
	}
	p.commands = append(p.commands, cmd)
	Logger().Debug("renderer: command recorded",
		"label", cmd.Label, "vertices", cmd.VertexBuffer.VertexCount, "stencil_ref", cmd.StencilReference)
	return true
}

func (p *CommandPass) reject(cmd Command, err error) {
	Logger().Warn("renderer: command rejected", "label", cmd.Label, "err", err)
	if p.err == nil {
		p.err = err
	}
}

// Commands returns the recorded commands in submission order.
func (p *CommandPass) Commands() []Command { return p.commands }

// Err returns the first rejection of the pass.
func (p *CommandPass) Err() error { return p.err }

// Reset drops all recorded commands.
func (p *CommandPass) Reset() {
	p.commands = p.commands[:0]
	p.err = nil
}
