// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
	"github.com/gogpu/contents/tessellator"
)

// Contents is a paint description that knows how to draw itself.
//
// Render returns true when the draw was accepted or there was nothing to
// draw, and false when the draw failed. It never panics on bad geometry.
//
// The set of implementations is closed to this package.
type Contents interface {
	Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool
	fillPath() *geometry.Path
}

// pathContents is the fill path and local transform shared by all variants.
type pathContents struct {
	path      *geometry.Path
	transform geometry.Matrix
}

// SetPath sets the fill path. The path is not copied and must not change.
func (c *pathContents) SetPath(p *geometry.Path) { c.path = p }

// Path returns the fill path, or nil.
func (c *pathContents) Path() *geometry.Path { return c.path }

func (c *pathContents) fillPath() *geometry.Path { return c.path }

// SetTransform sets the local transform that maps paint space to path space.
func (c *pathContents) SetTransform(m geometry.Matrix) { c.transform = m }

// Transform returns the local transform. The zero matrix reads as identity.
func (c *pathContents) Transform() geometry.Matrix {
	if c.transform == (geometry.Matrix{}) {
		return geometry.Identity()
	}
	return c.transform
}

// InverseMatrix returns the inverse of the local transform, mapping path
// space back to paint space. A singular transform yields identity.
func (c *pathContents) InverseMatrix() geometry.Matrix {
	return c.Transform().Invert()
}

// fillDraw describes one draw of the shared fill protocol.
type fillDraw[V renderer.VertexData] struct {
	label    string
	path     *geometry.Path
	vertex   func(geometry.Point) V
	paint    geometry.Matrix
	info     renderer.UniformData
	pipeline func(ContentContextOptions) (renderer.Pipeline, error)
	options  func(ContentContextOptions) ContentContextOptions
	texture  *image.RGBA
	filter   gputypes.FilterMode
}

// drawFill tessellates the path into a fresh vertex builder, places the mesh
// and uniforms in the pass's transient buffer and submits one command.
func drawFill[V renderer.VertexData](ctx *ContentContext, entity *Entity, pass renderer.RenderPass, d fillDraw[V]) bool {
	log := Logger()

	builder := renderer.NewVertexBufferBuilder[V](0)
	res := ctx.TessellateFill(d.path, func(p geometry.Point) {
		builder.AppendVertex(d.vertex(p))
	})
	switch res {
	case tessellator.Success:
	case tessellator.InputError:
		return true
	default:
		log.Warn("contents: tessellation failed", "label", d.label, "result", res)
		return false
	}

	transients := pass.TransientsBuffer()
	vb, err := builder.CreateVertexBuffer(transients)
	if err != nil {
		log.Error("contents: vertex allocation failed", "label", d.label, "err", err)
		return false
	}

	mvp := geometry.MakeOrthographic(pass.RenderTargetSize()).Multiply(entity.Transformation())
	frame := shaders.FrameInfo{
		MVP:    shaders.MatrixToMat4(mvp),
		Matrix: shaders.MatrixToMat4(d.paint),
	}
	frameView, err := transients.EmplaceUniform(frame)
	if err != nil {
		log.Error("contents: uniform allocation failed", "label", d.label, "err", err)
		return false
	}

	opts := OptionsFromPassAndEntity(pass, entity)
	if d.options != nil {
		opts = d.options(opts)
	}
	pipeline, err := d.pipeline(opts)
	if err != nil {
		log.Warn("contents: no pipeline", "label", d.label, "err", err)
		return false
	}

	cmd := renderer.Command{
		Label:            d.label,
		Pipeline:         pipeline,
		StencilReference: entity.StencilDepth(),
		PrimitiveType:    gputypes.PrimitiveTopologyTriangleList,
	}
	cmd.BindVertices(vb)
	cmd.BindUniform(renderer.StageVertex, shaders.FrameInfoBinding, frameView)
	if d.info != nil {
		infoView, err := transients.EmplaceUniform(d.info)
		if err != nil {
			log.Error("contents: uniform allocation failed", "label", d.label, "err", err)
			return false
		}
		cmd.BindUniform(renderer.StageFragment, shaders.FragmentInfoBinding, infoView)
	}
	if d.texture != nil {
		cmd.BindTexture(shaders.TextureBinding, d.texture, d.filter)
	}

	log.Debug("contents: draw", "label", d.label, "vertices", vb.VertexCount, "stencil", cmd.StencilReference)
	return pass.AddCommand(cmd)
}

func solidVertex(p geometry.Point) renderer.SolidFillVertex {
	return renderer.SolidFillVertex{Position: shaders.Vec2(p)}
}

func gradientVertex(p geometry.Point) renderer.GradientFillVertex {
	return renderer.GradientFillVertex{Position: shaders.Vec2(p)}
}

// gradientStops holds a colour list of at least two entries and a tile mode.
type gradientStops struct {
	colors   []Color
	tileMode TileMode
}

// SetColors stores the colour ramp. An empty list becomes two DefaultColor
// entries and a single colour is duplicated, so at least two colours are
// always stored.
func (g *gradientStops) SetColors(colors []Color) {
	switch len(colors) {
	case 0:
		g.colors = []Color{DefaultColor, DefaultColor}
	case 1:
		g.colors = []Color{colors[0], colors[0]}
	default:
		g.colors = append([]Color(nil), colors...)
	}
}

// Colors returns a copy of the stored colours. Before SetColors is called it
// returns two DefaultColor entries.
func (g *gradientStops) Colors() []Color {
	if len(g.colors) < 2 {
		return []Color{DefaultColor, DefaultColor}
	}
	return append([]Color(nil), g.colors...)
}

// SetTileMode sets how the ramp is sampled outside [0, 1].
func (g *gradientStops) SetTileMode(m TileMode) { g.tileMode = m }

// TileMode returns the tile mode.
func (g *gradientStops) TileMode() TileMode { return g.tileMode }

// endColors returns the premultiplied first and second colours.
func (g *gradientStops) endColors() (start, end Color) {
	c := g.Colors()
	return c[0].Premultiply(), c[1].Premultiply()
}
