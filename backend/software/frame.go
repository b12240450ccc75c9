// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/vector"

	"github.com/gogpu/contents/backend"
	"github.com/gogpu/contents/geometry"
	"github.com/gogpu/contents/renderer"
	"github.com/gogpu/contents/shaders"
)

// ErrMissingBinding is returned when a command lacks a resource its shader reads.
var ErrMissingBinding = errors.New("software: missing binding")

// vertex is a decoded vertex. UV is zero for layouts without texture
// coordinates.
type vertex struct {
	pos geometry.Point
	uv  geometry.Point
}

type triangle [3]vertex

// frame records commands and executes them into an RGBA target.
type frame struct {
	*renderer.CommandPass

	target   *image.RGBA
	stencil  []uint8
	coverage *image.Alpha
	raster   *vector.Rasterizer
	finished bool
}

func newFrame(pass *renderer.CommandPass) *frame {
	size := pass.RenderTargetSize()
	r := image.Rect(0, 0, size.Width, size.Height)
	return &frame{
		CommandPass: pass,
		target:      image.NewRGBA(r),
		stencil:     make([]uint8, size.Width*size.Height),
		coverage:    image.NewAlpha(r),
		raster:      vector.NewRasterizer(size.Width, size.Height),
	}
}

// Finish implements backend.Frame.
func (f *frame) Finish() (*image.RGBA, error) {
	if f.finished {
		return nil, backend.ErrFrameFinished
	}
	f.finished = true
	cmds := f.Commands()
	for i, cmd := range cmds {
		if err := f.execute(cmd); err != nil {
			return nil, fmt.Errorf("software: command %d %q: %w", i, cmd.Label, err)
		}
	}
	renderer.Logger().Debug("software: frame finished", "commands", len(cmds))
	return f.target, nil
}

func (f *frame) execute(cmd renderer.Command) error {
	desc := cmd.Pipeline.Descriptor()
	frameView, ok := binding(cmd.VertexBindings, shaders.FrameInfoBinding)
	if !ok {
		return fmt.Errorf("%w: frame info", ErrMissingBinding)
	}
	info, err := shaders.DecodeFrameInfo(frameView.Bytes())
	if err != nil {
		return err
	}
	verts, err := decodeVertices(cmd.VertexBuffer.View.Bytes(), desc.VertexStride, int(cmd.VertexBuffer.VertexCount))
	if err != nil {
		return err
	}
	tris := assemble(verts, desc.Topology)

	toPixel := viewport(f.RenderTargetSize()).Multiply(toMatrix(info.MVP))
	fromPixel, ok := toPixel.Invert2D()
	if !ok {
		renderer.Logger().Debug("software: degenerate transform, command skipped", "label", cmd.Label)
		return nil
	}
	var shade shadeFunc
	if desc.ColorWrites {
		if shade, err = newShadeFunc(desc.Shader, cmd, info, tris); err != nil {
			return err
		}
	}

	bounds := f.rasterize(tris, toPixel)
	if bounds.Empty() {
		return nil
	}

	ref := uint8(cmd.StencilReference)
	st := desc.Stencil
	readMask, writeMask := uint8(st.ReadMask), uint8(st.WriteMask)
	blend := desc.Blend
	width := f.target.Rect.Dx()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cov := f.coverage.Pix[f.coverage.PixOffset(x, y)]
			if cov == 0 {
				continue
			}
			si := y*width + x
			stored := f.stencil[si]
			if !stencilCompare(st.Compare, ref&readMask, stored&readMask) {
				continue
			}
			if cov >= 0x80 {
				v := stencilOp(st.PassOp, stored, ref)
				f.stencil[si] = stored&^writeMask | v&writeMask
			}
			if shade == nil {
				continue
			}
			p := fromPixel.TransformPoint(geometry.Pt(float64(x)+0.5, float64(y)+0.5))
			src := shade(p)
			i := f.target.PixOffset(x, y)
			px := f.target.Pix[i : i+4 : i+4]
			dst := [4]float32{
				float32(px[0]) / 255, float32(px[1]) / 255,
				float32(px[2]) / 255, float32(px[3]) / 255,
			}
			out := blendPixel(blend, src, dst, float32(cov)/255)
			for c := range out {
				px[c] = uint8(clamp01(out[c])*255 + 0.5)
			}
		}
	}
	return nil
}

// rasterize renders the coverage of the triangles into f.coverage and
// returns the pixel bounds to visit.
func (f *frame) rasterize(tris []triangle, toPixel geometry.Matrix) image.Rectangle {
	size := f.coverage.Rect.Size()
	z := f.raster
	z.Reset(size.X, size.Y)
	z.DrawOp = draw.Src

	var bounds geometry.Rect
	drawn := false
	for _, t := range tris {
		a := toPixel.TransformPoint(t[0].pos)
		b := toPixel.TransformPoint(t[1].pos)
		c := toPixel.TransformPoint(t[2].pos)
		if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
			continue
		}
		area := b.Sub(a).Cross(c.Sub(a))
		if area == 0 {
			continue
		}
		// The rasterizer sums signed area; give every triangle the same
		// winding so shared edges add up instead of cancelling.
		if area < 0 {
			b, c = c, b
		}
		z.MoveTo(float32(a.X), float32(a.Y))
		z.LineTo(float32(b.X), float32(b.Y))
		z.LineTo(float32(c.X), float32(c.Y))
		z.ClosePath()

		tb := geometry.MakeLTRB(min(a.X, b.X, c.X), min(a.Y, b.Y, c.Y), max(a.X, b.X, c.X), max(a.Y, b.Y, c.Y))
		if drawn {
			bounds = bounds.Union(tb)
		} else {
			bounds, drawn = tb, true
		}
	}
	if !drawn {
		return image.Rectangle{}
	}
	z.Draw(f.coverage, f.coverage.Rect, image.Opaque, image.Point{})

	r := image.Rect(
		int(math.Floor(bounds.Min.X)), int(math.Floor(bounds.Min.Y)),
		int(math.Ceil(bounds.Max.X)), int(math.Ceil(bounds.Max.Y)),
	)
	return r.Intersect(f.coverage.Rect)
}

func binding(bindings []renderer.UniformBinding, slot uint32) (renderer.BufferView, bool) {
	for _, b := range bindings {
		if b.Slot == slot {
			return b.View, true
		}
	}
	return renderer.BufferView{}, false
}

func decodeVertices(data []byte, stride uint32, count int) ([]vertex, error) {
	if stride < 8 {
		return nil, fmt.Errorf("software: vertex stride %d too small", stride)
	}
	if len(data) < int(stride)*count {
		return nil, fmt.Errorf("software: vertex buffer holds %d bytes, need %d", len(data), int(stride)*count)
	}
	read := func(b []byte) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	out := make([]vertex, count)
	for i := range out {
		rec := data[i*int(stride):]
		out[i].pos = geometry.Pt(read(rec), read(rec[4:]))
		if stride >= 16 {
			out[i].uv = geometry.Pt(read(rec[8:]), read(rec[12:]))
		}
	}
	return out, nil
}

func assemble(verts []vertex, topology gputypes.PrimitiveTopology) []triangle {
	var tris []triangle
	if topology == gputypes.PrimitiveTopologyTriangleStrip {
		for i := 2; i < len(verts); i++ {
			tris = append(tris, triangle{verts[i-2], verts[i-1], verts[i]})
		}
		return tris
	}
	tris = make([]triangle, 0, len(verts)/3)
	for i := 0; i+2 < len(verts); i += 3 {
		tris = append(tris, triangle{verts[i], verts[i+1], verts[i+2]})
	}
	return tris
}

// viewport maps normalized device coordinates to pixels, y down.
func viewport(size geometry.ISize) geometry.Matrix {
	w, h := float64(size.Width), float64(size.Height)
	m := geometry.Identity()
	m[0] = w / 2
	m[5] = -h / 2
	m[12] = w / 2
	m[13] = h / 2
	return m
}

func toMatrix(m shaders.Mat4) geometry.Matrix {
	var out geometry.Matrix
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}
