// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// ErrEmptyCommand is returned for a command without vertices.
var ErrEmptyCommand = errors.New("renderer: command has no vertices")

// ShaderStage selects the stage a uniform is bound to.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// UniformBinding binds a uniform block to a slot of one shader stage.
type UniformBinding struct {
	Slot uint32
	View BufferView
}

// TextureBinding binds an RGBA image and its sampler filter to a fragment
// slot. The image is premultiplied and must not change while the frame is in
// flight.
type TextureBinding struct {
	Slot   uint32
	Image  *image.RGBA
	Filter gputypes.FilterMode
}

// Command is one draw: a pipeline, a mesh, and the resources the pipeline's
// shaders read. A Command is assembled once and handed to a RenderPass.
type Command struct {
	Label            string
	Pipeline         Pipeline
	StencilReference uint32
	VertexBuffer     VertexBuffer
	PrimitiveType    gputypes.PrimitiveTopology
	VertexBindings   []UniformBinding
	FragmentBindings []UniformBinding
	Textures         []TextureBinding
}

// BindVertices sets the mesh of the command.
func (c *Command) BindVertices(vb VertexBuffer) {
	c.VertexBuffer = vb
}

// BindUniform binds a uniform block to a slot of the given stage.
func (c *Command) BindUniform(stage ShaderStage, slot uint32, view BufferView) {
	b := UniformBinding{Slot: slot, View: view}
	if stage == StageVertex {
		c.VertexBindings = append(c.VertexBindings, b)
		return
	}
	c.FragmentBindings = append(c.FragmentBindings, b)
}

// BindTexture binds an image to a fragment slot.
func (c *Command) BindTexture(slot uint32, img *image.RGBA, filter gputypes.FilterMode) {
	c.Textures = append(c.Textures, TextureBinding{Slot: slot, Image: img, Filter: filter})
}

// Validate checks that the command is complete and its views are current.
func (c *Command) Validate() error {
	if c.Pipeline == nil {
		return fmt.Errorf("%q: %w", c.Label, ErrNilPipeline)
	}
	if c.VertexBuffer.VertexCount == 0 {
		return fmt.Errorf("%q: %w", c.Label, ErrEmptyCommand)
	}
	if !c.VertexBuffer.View.Current() {
		return fmt.Errorf("%q: stale vertex buffer view", c.Label)
	}
	for _, b := range c.VertexBindings {
		if !b.View.Current() {
			return fmt.Errorf("%q: stale vertex uniform at slot %d", c.Label, b.Slot)
		}
	}
	for _, b := range c.FragmentBindings {
		if !b.View.Current() {
			return fmt.Errorf("%q: stale fragment uniform at slot %d", c.Label, b.Slot)
		}
	}
	for _, t := range c.Textures {
		if t.Image == nil {
			return fmt.Errorf("%q: nil texture at slot %d", c.Label, t.Slot)
		}
	}
	return nil
}
