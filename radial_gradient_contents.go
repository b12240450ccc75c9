// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// RadialGradientContents fills a path with a ramp from the center colour to
// the edge colour at the given radius.
type RadialGradientContents struct {
	pathContents
	gradientStops
	center geometry.Point
	radius float64
}

// NewRadialGradientContents creates a gradient with two DefaultColor stops.
func NewRadialGradientContents() *RadialGradientContents {
	c := &RadialGradientContents{}
	c.SetColors(nil)
	return c
}

// SetCenterAndRadius sets the gradient circle in paint space.
func (c *RadialGradientContents) SetCenterAndRadius(center geometry.Point, radius float64) {
	c.center, c.radius = center, radius
}

// CenterAndRadius returns the gradient circle.
func (c *RadialGradientContents) CenterAndRadius() (geometry.Point, float64) {
	return c.center, c.radius
}

// GradientInfo returns the fragment uniform block of the gradient.
func (c *RadialGradientContents) GradientInfo() shaders.RadialGradientInfo {
	centerColor, edgeColor := c.endColors()
	return shaders.RadialGradientInfo{
		Center:      shaders.Vec2(c.center),
		Radius:      float32(c.radius),
		TileMode:    c.tileMode.ShaderSelector(),
		CenterColor: centerColor.Vec4(),
		EdgeColor:   edgeColor.Vec4(),
	}
}

// Render implements Contents.
func (c *RadialGradientContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	return drawFill(ctx, entity, pass, fillDraw[renderer.GradientFillVertex]{
		label:    "RadialGradientFill",
		path:     c.path,
		vertex:   gradientVertex,
		paint:    c.InverseMatrix(),
		info:     c.GradientInfo(),
		pipeline: ctx.RadialGradientFillPipeline,
	})
}
