// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
)

// Entities builds the entities of the scene in draw order. Stencil depths
// follow the clip stack: a clip raises the depth of everything after it and
// a restore lowers it again.
func (s *Scene) Entities() ([]*contents.Entity, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := make([]*contents.Entity, 0, len(s.EntityList))
	var depth uint32
	for i := range s.EntityList {
		e, err := s.EntityList[i].build()
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %w", ErrInvalidScene, i, err)
		}
		switch s.EntityList[i].Paint.Type {
		case PaintClip:
			e.SetStencilDepth(depth)
			depth++
		case PaintRestore:
			depth--
			e.SetStencilDepth(depth)
		default:
			e.SetStencilDepth(depth)
		}
		out = append(out, e)
	}
	return out, nil
}

func (e *Entity) build() (*contents.Entity, error) {
	c, err := e.contents()
	if err != nil {
		return nil, err
	}
	entity := contents.NewEntity(c)
	entity.SetTransformation(e.Transform.Matrix())
	if e.Blend != "" {
		m, _ := renderer.ParseBlendMode(e.Blend)
		entity.SetBlendMode(m)
	}
	return entity, nil
}

// Matrix returns the transformation matrix.
func (t Transform) Matrix() geometry.Matrix {
	m := geometry.Identity()
	if len(t.Translate) == 2 {
		m = m.Multiply(geometry.MakeTranslation(t.Translate[0], t.Translate[1]))
	}
	if t.Rotate != 0 {
		m = m.Multiply(geometry.MakeRotationZ(t.Rotate * math.Pi / 180))
	}
	if len(t.Scale) == 2 {
		m = m.Multiply(geometry.MakeScale(t.Scale[0], t.Scale[1]))
	}
	return m
}

// Build returns the geometry path.
func (p Path) Build() *geometry.Path {
	b := geometry.NewPathBuilder()
	if p.Fill == "evenodd" {
		b.SetFillType(geometry.FillEvenOdd)
	}
	switch p.Kind {
	case PathRect:
		b.AddRect(rect(p.Rect))
	case PathRoundedRect:
		b.AddRoundedRect(rect(p.Rect), p.Radius)
	case PathOval:
		b.AddOval(rect(p.Rect))
	case PathCircle:
		b.AddCircle(point(p.Center), p.Radius)
	case PathPolygon:
		b.AddPolygon(point(p.Center), p.Radius, p.Sides)
	case PathPolyline:
		pts := make([]geometry.Point, len(p.Points))
		for i, v := range p.Points {
			pts[i] = point(v)
		}
		b.AddPolyline(pts...)
	}
	return b.TakePath()
}

func (e *Entity) contents() (contents.Contents, error) {
	p := e.Paint
	switch p.Type {
	case PaintSolid:
		c := contents.NewSolidColorContents(hexColor(p.Color, contents.DefaultColor))
		c.SetPath(e.Path.Build())
		return c, nil
	case PaintLinear:
		c := contents.NewLinearGradientContents()
		c.SetPath(e.Path.Build())
		c.SetEndPoints(point(p.Start), point(p.End))
		c.SetColors(colors(p.Colors))
		c.SetTileMode(tileMode(p.Tile))
		return c, nil
	case PaintRadial:
		c := contents.NewRadialGradientContents()
		c.SetPath(e.Path.Build())
		c.SetCenterAndRadius(point(p.Center), p.Radius)
		c.SetColors(colors(p.Colors))
		c.SetTileMode(tileMode(p.Tile))
		return c, nil
	case PaintSweep:
		c := contents.NewSweepGradientContents()
		c.SetPath(e.Path.Build())
		c.SetCenterAndAngles(point(p.Center), p.StartAngle*math.Pi/180, p.EndAngle*math.Pi/180)
		c.SetColors(colors(p.Colors))
		c.SetTileMode(tileMode(p.Tile))
		return c, nil
	case PaintTexture:
		c := contents.NewTextureContents()
		c.SetPath(e.Path.Build())
		c.SetTexture(p.Texture.Image())
		if p.Opacity != nil {
			c.SetOpacity(*p.Opacity)
		}
		if p.Filter == "linear" {
			c.SetFilter(gputypes.FilterModeLinear)
		}
		return c, nil
	case PaintClip:
		return contents.NewClipContents(e.Path.Build()), nil
	case PaintRestore:
		c := contents.NewClipRestoreContents()
		if e.Path.Kind != "" {
			c.SetPath(e.Path.Build())
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown paint %q", p.Type)
	}
}

// Image renders the checkerboard. Without colours it alternates black and
// white; a cell size of 0 uses one pixel per cell.
func (t Texture) Image() *image.RGBA {
	c0, c1 := contents.Black, contents.White
	if len(t.Colors) > 0 {
		c0 = hexColor(t.Colors[0], c0)
		c1 = c0
	}
	if len(t.Colors) > 1 {
		c1 = hexColor(t.Colors[1], c1)
	}
	cell := max(t.Cell, 1)
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := range t.Height {
		for x := range t.Width {
			c := c0
			if (x/cell+y/cell)%2 == 1 {
				c = c1
			}
			img.Set(x, y, c.NRGBA())
		}
	}
	return img
}

func rect(v []float64) geometry.Rect {
	return geometry.MakeXYWH(v[0], v[1], v[2], v[3])
}

func point(v []float64) geometry.Point {
	if len(v) != 2 {
		return geometry.Point{}
	}
	return geometry.Point{X: v[0], Y: v[1]}
}

func hexColor(hex string, fallback contents.Color) contents.Color {
	if hex == "" {
		return fallback
	}
	c, err := contents.ParseHex(hex)
	if err != nil {
		return fallback
	}
	return c
}

func colors(hexes []string) []contents.Color {
	out := make([]contents.Color, 0, len(hexes))
	for _, h := range hexes {
		out = append(out, hexColor(h, contents.DefaultColor))
	}
	return out
}

func tileMode(name string) contents.TileMode {
	m, _ := contents.ParseTileMode(name)
	return m
}
