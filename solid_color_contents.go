// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// SolidColorContents fills a path with one colour.
type SolidColorContents struct {
	pathContents
	color Color
}

// NewSolidColorContents creates a fill of the given colour.
func NewSolidColorContents(c Color) *SolidColorContents {
	return &SolidColorContents{color: c}
}

// SetColor sets the fill colour.
func (c *SolidColorContents) SetColor(col Color) { c.color = col }

// Color returns the fill colour.
func (c *SolidColorContents) Color() Color { return c.color }

// Render implements Contents.
func (c *SolidColorContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	return drawFill(ctx, entity, pass, fillDraw[renderer.SolidFillVertex]{
		label:    "SolidFill",
		path:     c.path,
		vertex:   solidVertex,
		paint:    c.InverseMatrix(),
		info:     shaders.SolidFillInfo{Color: c.color.Premultiply().Vec4()},
		pipeline: ctx.SolidFillPipeline,
	})
}
