// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// LinearGradientContents fills a path with a two-colour ramp along the axis
// from the start point to the end point.
//
// Only the first two colours are sampled. Longer lists are stored unchanged.
type LinearGradientContents struct {
	pathContents
	gradientStops
	start, end geometry.Point
}

// NewLinearGradientContents creates a gradient with two DefaultColor stops
// and clamp tiling.
func NewLinearGradientContents() *LinearGradientContents {
	c := &LinearGradientContents{}
	c.SetColors(nil)
	return c
}

// SetEndPoints sets the gradient axis in paint space.
func (c *LinearGradientContents) SetEndPoints(start, end geometry.Point) {
	c.start, c.end = start, end
}

// EndPoints returns the gradient axis.
func (c *LinearGradientContents) EndPoints() (start, end geometry.Point) {
	return c.start, c.end
}

// GradientInfo returns the fragment uniform block of the gradient.
func (c *LinearGradientContents) GradientInfo() shaders.LinearGradientInfo {
	startColor, endColor := c.endColors()
	return shaders.LinearGradientInfo{
		StartPoint: shaders.Vec2(c.start),
		EndPoint:   shaders.Vec2(c.end),
		StartColor: startColor.Vec4(),
		EndColor:   endColor.Vec4(),
		TileMode:   c.tileMode.ShaderSelector(),
	}
}

// Render implements Contents.
func (c *LinearGradientContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	return drawFill(ctx, entity, pass, fillDraw[renderer.GradientFillVertex]{
		label:    "LinearGradientFill",
		path:     c.path,
		vertex:   gradientVertex,
		paint:    c.InverseMatrix(),
		info:     c.GradientInfo(),
		pipeline: ctx.LinearGradientFillPipeline,
	})
}
