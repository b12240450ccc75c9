// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// TextureContents fills a path with an image stretched over the path's
// bounds. The image is already decoded; decoding is the caller's concern.
type TextureContents struct {
	pathContents
	texture *image.RGBA
	source  image.Rectangle
	opacity float64
	filter  gputypes.FilterMode
}

// NewTextureContents creates an empty texture fill with full opacity and
// linear filtering.
func NewTextureContents() *TextureContents {
	return &TextureContents{opacity: 1, filter: gputypes.FilterModeLinear}
}

// SetTexture sets the image. Non-RGBA images are converted once, so the
// stored texture is always premultiplied RGBA with a zero origin. The source
// rectangle is reset to the whole image.
func (c *TextureContents) SetTexture(img image.Image) {
	if img == nil {
		c.texture = nil
		c.source = image.Rectangle{}
		return
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	c.texture = rgba
	c.source = rgba.Bounds()
}

// Texture returns the stored texture, or nil.
func (c *TextureContents) Texture() *image.RGBA { return c.texture }

// SetSourceRect selects the part of the texture mapped onto the path bounds.
// The rectangle is clipped to the texture.
func (c *TextureContents) SetSourceRect(r image.Rectangle) {
	if c.texture == nil {
		return
	}
	c.source = r.Intersect(c.texture.Bounds())
}

// SourceRect returns the sampled part of the texture.
func (c *TextureContents) SourceRect() image.Rectangle { return c.source }

// SetOpacity sets the alpha multiplier, clamped to [0, 1].
func (c *TextureContents) SetOpacity(a float64) { c.opacity = min(max(a, 0), 1) }

// Opacity returns the alpha multiplier.
func (c *TextureContents) Opacity() float64 { return c.opacity }

// SetFilter sets the sampler filter.
func (c *TextureContents) SetFilter(f gputypes.FilterMode) { c.filter = f }

// texCoord maps a path point to normalized texture coordinates: the path
// bounds cover the source rectangle.
func (c *TextureContents) texCoord(bounds geometry.Rect) func(geometry.Point) renderer.TextureFillVertex {
	tw, th := float64(c.texture.Bounds().Dx()), float64(c.texture.Bounds().Dy())
	u0, v0 := float64(c.source.Min.X)/tw, float64(c.source.Min.Y)/th
	du, dv := float64(c.source.Dx())/tw, float64(c.source.Dy())/th
	w, h := bounds.Width(), bounds.Height()

	return func(p geometry.Point) renderer.TextureFillVertex {
		var u, v float64
		if w > 0 {
			u = (p.X - bounds.Min.X) / w
		}
		if h > 0 {
			v = (p.Y - bounds.Min.Y) / h
		}
		return renderer.TextureFillVertex{
			Position: shaders.Vec2(p),
			TexCoord: f32.Vec2{float32(u0 + u*du), float32(v0 + v*dv)},
		}
	}
}

// Render implements Contents. A fill without a texture or with an empty
// source rectangle draws nothing.
func (c *TextureContents) Render(ctx *ContentContext, entity *Entity, pass renderer.RenderPass) bool {
	if c.texture == nil || c.source.Empty() || c.opacity == 0 {
		return true
	}
	return drawFill(ctx, entity, pass, fillDraw[renderer.TextureFillVertex]{
		label:    "TextureFill",
		path:     c.path,
		vertex:   c.texCoord(c.path.Bounds()),
		paint:    c.InverseMatrix(),
		info:     shaders.TextureFillInfo{Alpha: float32(c.opacity)},
		pipeline: ctx.TextureFillPipeline,
		texture:  c.texture,
		filter:   c.filter,
	})
}
