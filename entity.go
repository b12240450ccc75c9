// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

// Entity places contents in the scene: a world transformation, the stencil
// depth of the clip stack it is drawn under, and a blend mode.
type Entity struct {
	transform    geometry.Matrix
	stencilDepth uint32
	blendMode    renderer.BlendMode
	contents     Contents
}

// NewEntity creates an entity with an identity transformation.
func NewEntity(c Contents) *Entity {
	return &Entity{transform: geometry.Identity(), contents: c}
}

// Transformation returns the world transformation. The zero matrix reads as
// identity.
func (e *Entity) Transformation() geometry.Matrix {
	if e.transform == (geometry.Matrix{}) {
		return geometry.Identity()
	}
	return e.transform
}

// SetTransformation sets the world transformation.
func (e *Entity) SetTransformation(m geometry.Matrix) { e.transform = m }

// StencilDepth returns the stencil reference the entity is drawn with.
func (e *Entity) StencilDepth() uint32 { return e.stencilDepth }

// SetStencilDepth sets the stencil reference.
func (e *Entity) SetStencilDepth(d uint32) { e.stencilDepth = d }

// IncrementStencilDepth adds delta to the stencil depth.
func (e *Entity) IncrementStencilDepth(delta uint32) { e.stencilDepth += delta }

// BlendMode returns the blend mode.
func (e *Entity) BlendMode() renderer.BlendMode { return e.blendMode }

// SetBlendMode sets the blend mode.
func (e *Entity) SetBlendMode(m renderer.BlendMode) { e.blendMode = m }

// Contents returns the entity's contents, or nil.
func (e *Entity) Contents() Contents { return e.contents }

// SetContents replaces the contents.
func (e *Entity) SetContents(c Contents) { e.contents = c }

// Render draws the entity's contents into pass. An entity without contents
// renders nothing and succeeds.
func (e *Entity) Render(ctx *ContentContext, pass renderer.RenderPass) bool {
	if e.contents == nil {
		return true
	}
	return e.contents.Render(ctx, e, pass)
}
