// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"math"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// SweepGradientContents fills a path with a ramp swept around a center
// between a start and an end angle, in radians.
type SweepGradientContents struct {
	pathContents
	gradientStops
	center               geometry.Point
	startAngle, endAngle float64
}

// NewSweepGradientContents creates a full-turn sweep with two DefaultColor
// stops.
func NewSweepGradientContents() *SweepGradientContents {
	c := &SweepGradientContents{endAngle: 2 * math.Pi}
	c.SetColors(nil)
	return c
}

// SetCenterAndAngles sets the sweep center and angular range.
func (c *SweepGradientContents) SetCenterAndAngles(center geometry.Point, startAngle, endAngle float64) {
	c.center, c.startAngle, c.endAngle = center, startAngle, endAngle
}

// CenterAndAngles returns the sweep center and angular range.
func (c *SweepGradientContents) CenterAndAngles() (geometry.Point, float64, float64) {
	return c.center, c.startAngle, c.endAngle
}

// GradientInfo returns the fragment uniform block. The shader computes
// t = (angle/2π + Bias) * Scale with angle in [0, 2π).
func (c *SweepGradientContents) GradientInfo() shaders.SweepGradientInfo {
	startColor, endColor := c.endColors()
	var scale float64
	if span := c.endAngle - c.startAngle; span != 0 {
		scale = 2 * math.Pi / span
	}
	return shaders.SweepGradientInfo{
		Center:     shaders.Vec2(c.center),
		Bias:       float32(-c.startAngle / (2 * math.Pi)),
		Scale:      float32(scale),
		StartColor: startColor.Vec4(),
		EndColor:   endColor.Vec4(),
		TileMode:   c.tileMode.ShaderSelector(),
	}
}

// Render implements Contents.
func (c *SweepGradientContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	return drawFill(ctx, entity, pass, fillDraw[renderer.GradientFillVertex]{
		label:    "SweepGradientFill",
		path:     c.path,
		vertex:   gradientVertex,
		paint:    c.InverseMatrix(),
		info:     c.GradientInfo(),
		pipeline: ctx.SweepGradientFillPipeline,
	})
}
