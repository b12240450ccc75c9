// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

// ClipContents intersects the clip with its path. It writes no colour: where
// the stencil equals the entity's stencil depth and the path covers, the
// stencil is incremented. Contents drawn afterwards with depth+1 are
// restricted to the intersection.
type ClipContents struct {
	pathContents
}

// NewClipContents creates a clip of the given path.
func NewClipContents(p *geometry.Path) *ClipContents {
	c := &ClipContents{}
	c.SetPath(p)
	return c
}

// Render implements Contents.
func (c *ClipContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	return drawFill(ctx, entity, pass, fillDraw[renderer.SolidFillVertex]{
		label:    "Clip",
		path:     c.path,
		vertex:   solidVertex,
		paint:    c.InverseMatrix(),
		pipeline: ctx.ClipPipeline,
		options: func(o ContentContextOptions) ContentContextOptions {
			o.StencilCompare = gputypes.CompareFunctionEqual
			o.StencilOperation = gputypes.StencilOperationIncrementClamp
			return o
		},
	})
}

// ClipRestoreContents pops clips: wherever its path covers and the stencil
// is deeper than the entity's stencil depth, the stencil is reset to that
// depth. Without a path it covers the whole render target.
type ClipRestoreContents struct {
	pathContents
}

// NewClipRestoreContents creates a restore covering the whole target.
func NewClipRestoreContents() *ClipRestoreContents {
	return &ClipRestoreContents{}
}

// Render implements Contents.
func (c *ClipRestoreContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	path := c.path
	if path == nil {
		size := pass.RenderTargetSize()
		// The restore covers the target in world space; the entity transform
		// is applied by the vertex stage, so cover its inverse image.
		inv, ok := entity.Transformation().InvertOK()
		if !ok {
			return true
		}
		target := geometry.MakeSize(geometry.Size{Width: float64(size.Width), Height: float64(size.Height)}).TransformBounds(inv)
		path = geometry.NewPathBuilder().AddRect(target).TakePath()
	}
	return drawFill(ctx, entity, pass, fillDraw[renderer.SolidFillVertex]{
		label:    "ClipRestore",
		path:     path,
		vertex:   solidVertex,
		paint:    c.InverseMatrix(),
		pipeline: ctx.ClipPipeline,
		options: func(o ContentContextOptions) ContentContextOptions {
			o.StencilCompare = gputypes.CompareFunctionLess
			o.StencilOperation = gputypes.StencilOperationReplace
			return o
		},
	})
}
