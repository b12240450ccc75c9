// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// Tile mode selectors as written into gradient uniforms.
const (
	tileRepeat float32 = 1
	tileMirror float32 = 2
	tileDecal  float32 = 3
)

const invTau = 1 / (2 * math32.Pi)

// shadeFunc is the fragment stage: it returns the premultiplied colour at a
// point in the local space of the mesh.
type shadeFunc func(p geometry.Point) [4]float32

func newShadeFunc(shader string, cmd renderer.Command, info shaders.FrameInfo, tris []triangle) (shadeFunc, error) {
	if shader == shaders.Clip {
		return nil, nil
	}
	view, ok := binding(cmd.FragmentBindings, shaders.FragmentInfoBinding)
	if !ok {
		return nil, fmt.Errorf("%w: %s fragment info", ErrMissingBinding, shader)
	}
	data := view.Bytes()
	paint := toMatrix(info.Matrix)
	gradientPoint := func(p geometry.Point) (float32, float32) {
		q := paint.TransformPoint(p)
		return float32(q.X), float32(q.Y)
	}

	switch shader {
	case shaders.SolidFill:
		u, err := shaders.DecodeSolidFillInfo(data)
		if err != nil {
			return nil, err
		}
		c := [4]float32(u.Color)
		return func(geometry.Point) [4]float32 { return c }, nil

	case shaders.LinearGradientFill:
		u, err := shaders.DecodeLinearGradientInfo(data)
		if err != nil {
			return nil, err
		}
		ax, ay := u.EndPoint[0]-u.StartPoint[0], u.EndPoint[1]-u.StartPoint[1]
		lenSq := ax*ax + ay*ay
		return func(p geometry.Point) [4]float32 {
			x, y := gradientPoint(p)
			var t float32
			if lenSq > 0 {
				t = ((x-u.StartPoint[0])*ax + (y-u.StartPoint[1])*ay) / lenSq
			}
			return ramp([4]float32(u.StartColor), [4]float32(u.EndColor), t, u.TileMode)
		}, nil

	case shaders.RadialGradientFill:
		u, err := shaders.DecodeRadialGradientInfo(data)
		if err != nil {
			return nil, err
		}
		return func(p geometry.Point) [4]float32 {
			x, y := gradientPoint(p)
			var t float32
			if u.Radius > 0 {
				t = math32.Hypot(x-u.Center[0], y-u.Center[1]) / u.Radius
			}
			return ramp([4]float32(u.CenterColor), [4]float32(u.EdgeColor), t, u.TileMode)
		}, nil

	case shaders.SweepGradientFill:
		u, err := shaders.DecodeSweepGradientInfo(data)
		if err != nil {
			return nil, err
		}
		return func(p geometry.Point) [4]float32 {
			x, y := gradientPoint(p)
			angle := math32.Atan2(y-u.Center[1], x-u.Center[0]) * invTau
			if angle < 0 {
				angle++
			}
			t := (angle + u.Bias) * u.Scale
			return ramp([4]float32(u.StartColor), [4]float32(u.EndColor), t, u.TileMode)
		}, nil

	case shaders.TextureFill:
		u, err := shaders.DecodeTextureFillInfo(data)
		if err != nil {
			return nil, err
		}
		var tex *renderer.TextureBinding
		for i := range cmd.Textures {
			if cmd.Textures[i].Slot == shaders.TextureBinding {
				tex = &cmd.Textures[i]
			}
		}
		if tex == nil || tex.Image == nil {
			return nil, fmt.Errorf("%w: texture", ErrMissingBinding)
		}
		uv, ok := fitTexCoords(tris)
		if !ok {
			return func(geometry.Point) [4]float32 { return [4]float32{} }, nil
		}
		img, filter, alpha := tex.Image, tex.Filter, u.Alpha
		return func(p geometry.Point) [4]float32 {
			s, t := uv(p)
			c := sample(img, s, t, filter)
			for i := range c {
				c[i] *= alpha
			}
			return c
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedShader, shader)
}

// ramp evaluates a two-stop gradient at t.
func ramp(from, to [4]float32, t, mode float32) [4]float32 {
	if mode == tileDecal && (t < 0 || t > 1) {
		return [4]float32{}
	}
	t = tile(t, mode)
	var out [4]float32
	for i := range out {
		out[i] = from[i] + (to[i]-from[i])*t
	}
	return out
}

func tile(t, mode float32) float32 {
	switch mode {
	case tileRepeat:
		return t - math32.Floor(t)
	case tileMirror:
		m := t - 2*math32.Floor(t*0.5)
		if m > 1 {
			return 2 - m
		}
		return m
	}
	return clamp01(t)
}

// fitTexCoords returns the affine map from local position to texture
// coordinates defined by the first non-degenerate triangle. Meshes produced
// by TextureContents interpolate coordinates linearly over the whole fill.
func fitTexCoords(tris []triangle) (func(geometry.Point) (float32, float32), bool) {
	for _, t := range tris {
		p0, p1, p2 := t[0].pos, t[1].pos, t[2].pos
		e1, e2 := p1.Sub(p0), p2.Sub(p0)
		det := e1.Cross(e2)
		if det == 0 {
			continue
		}
		d1, d2 := t[1].uv.Sub(t[0].uv), t[2].uv.Sub(t[0].uv)
		uv0 := t[0].uv
		return func(p geometry.Point) (float32, float32) {
			d := p.Sub(p0)
			l1 := d.Cross(e2) / det
			l2 := e1.Cross(d) / det
			return float32(uv0.X + l1*d1.X + l2*d2.X), float32(uv0.Y + l1*d1.Y + l2*d2.Y)
		}, true
	}
	return nil, false
}

// sample reads a premultiplied texel with clamp-to-edge addressing.
func sample(img *image.RGBA, u, v float32, filter gputypes.FilterMode) [4]float32 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return [4]float32{}
	}
	x, y := u*float32(w), v*float32(h)
	if filter != gputypes.FilterModeLinear {
		return texel(img, int(math32.Floor(x)), int(math32.Floor(y)))
	}
	x -= 0.5
	y -= 0.5
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)
	c00, c10 := texel(img, ix, iy), texel(img, ix+1, iy)
	c01, c11 := texel(img, ix, iy+1), texel(img, ix+1, iy+1)
	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*fx
		bottom := c01[i] + (c11[i]-c01[i])*fx
		out[i] = top + (bottom-top)*fy
	}
	return out
}

func texel(img *image.RGBA, x, y int) [4]float32 {
	x = min(max(x, 0), img.Rect.Dx()-1)
	y = min(max(y, 0), img.Rect.Dy()-1)
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	p := img.Pix[i : i+4 : i+4]
	return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}
