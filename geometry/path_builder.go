// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "math"

// kappa is the control point distance for a quarter-circle cubic.
const kappa = 0.5522847498

// PathBuilder accumulates path elements and produces an immutable Path.
// All methods return the builder for chaining.
type PathBuilder struct {
	elements []Element
	fillType FillType
	contours int
	start    Point
	current  Point
	open     bool
}

// NewPathBuilder creates an empty builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{elements: make([]Element, 0, 16)}
}

// SetFillType sets the winding rule of the path being built.
func (b *PathBuilder) SetFillType(f FillType) *PathBuilder {
	b.fillType = f
	return b
}

// MoveTo starts a new contour.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.moveTo(Pt(x, y))
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.lineTo(Pt(x, y))
	return b
}

// QuadraticCurveTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadraticCurveTo(cx, cy, x, y float64) *PathBuilder {
	b.quadTo(Pt(cx, cy), Pt(x, y))
	return b
}

// CubicCurveTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicCurveTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.cubicTo(Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y))
	return b
}

// Close closes the current contour. The next segment starts a new contour at
// the closed contour's start point.
func (b *PathBuilder) Close() *PathBuilder {
	if !b.open {
		return b
	}
	b.elements = append(b.elements, Close{})
	b.current = b.start
	b.open = false
	return b
}

// AddRect adds a closed rectangle contour.
func (b *PathBuilder) AddRect(r Rect) *PathBuilder {
	b.moveTo(r.Min)
	b.lineTo(Pt(r.Max.X, r.Min.Y))
	b.lineTo(r.Max)
	b.lineTo(Pt(r.Min.X, r.Max.Y))
	return b.Close()
}

// AddRoundedRect adds a rectangle with circular corners of the given radius.
func (b *PathBuilder) AddRoundedRect(r Rect, radius float64) *PathBuilder {
	x, y, w, h := r.Min.X, r.Min.Y, r.Width(), r.Height()
	radius = max(0, min(radius, min(w, h)/2))
	if radius == 0 {
		return b.AddRect(r)
	}
	k := kappa * radius

	b.moveTo(Pt(x+radius, y))
	b.lineTo(Pt(x+w-radius, y))
	b.cubicTo(Pt(x+w-radius+k, y), Pt(x+w, y+radius-k), Pt(x+w, y+radius))
	b.lineTo(Pt(x+w, y+h-radius))
	b.cubicTo(Pt(x+w, y+h-radius+k), Pt(x+w-radius+k, y+h), Pt(x+w-radius, y+h))
	b.lineTo(Pt(x+radius, y+h))
	b.cubicTo(Pt(x+radius-k, y+h), Pt(x, y+h-radius+k), Pt(x, y+h-radius))
	b.lineTo(Pt(x, y+radius))
	b.cubicTo(Pt(x, y+radius-k), Pt(x+radius-k, y), Pt(x+radius, y))
	return b.Close()
}

// AddCircle adds a circle contour.
func (b *PathBuilder) AddCircle(center Point, radius float64) *PathBuilder {
	return b.AddOval(MakeLTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius))
}

// AddOval adds an ellipse inscribed in the rectangle.
func (b *PathBuilder) AddOval(r Rect) *PathBuilder {
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2
	rx, ry := r.Width()/2, r.Height()/2
	kx, ky := kappa*rx, kappa*ry

	b.moveTo(Pt(cx+rx, cy))
	b.cubicTo(Pt(cx+rx, cy+ky), Pt(cx+kx, cy+ry), Pt(cx, cy+ry))
	b.cubicTo(Pt(cx-kx, cy+ry), Pt(cx-rx, cy+ky), Pt(cx-rx, cy))
	b.cubicTo(Pt(cx-rx, cy-ky), Pt(cx-kx, cy-ry), Pt(cx, cy-ry))
	b.cubicTo(Pt(cx+kx, cy-ry), Pt(cx+rx, cy-ky), Pt(cx+rx, cy))
	return b.Close()
}

// AddPolygon adds a regular polygon with the first vertex at the top.
func (b *PathBuilder) AddPolygon(center Point, radius float64, sides int) *PathBuilder {
	if sides < 3 {
		return b
	}
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		sin, cos := math.Sincos(-math.Pi/2 + float64(i)*step)
		pt := Pt(center.X+radius*cos, center.Y+radius*sin)
		if i == 0 {
			b.moveTo(pt)
		} else {
			b.lineTo(pt)
		}
	}
	return b.Close()
}

// AddPolyline adds a closed contour through the given points.
func (b *PathBuilder) AddPolyline(points ...Point) *PathBuilder {
	if len(points) == 0 {
		return b
	}
	b.moveTo(points[0])
	for _, pt := range points[1:] {
		b.lineTo(pt)
	}
	return b.Close()
}

// TakePath returns the constructed path and resets the builder.
func (b *PathBuilder) TakePath() *Path {
	p := &Path{
		elements: b.elements,
		fillType: b.fillType,
		contours: b.contours,
		bounds:   computeBounds(b.elements),
	}
	*b = PathBuilder{elements: make([]Element, 0, 16)}
	return p
}

func (b *PathBuilder) moveTo(pt Point) {
	// Consecutive MoveTo elements collapse into one.
	if n := len(b.elements); n > 0 {
		if _, ok := b.elements[n-1].(MoveTo); ok {
			b.elements[n-1] = MoveTo{Point: pt}
			b.start, b.current = pt, pt
			return
		}
	}
	b.elements = append(b.elements, MoveTo{Point: pt})
	b.contours++
	b.start, b.current = pt, pt
	b.open = true
}

func (b *PathBuilder) ensureContour() {
	if !b.open {
		b.moveTo(b.current)
	}
}

func (b *PathBuilder) lineTo(pt Point) {
	b.ensureContour()
	b.elements = append(b.elements, LineTo{Point: pt})
	b.current = pt
}

func (b *PathBuilder) quadTo(ctrl, pt Point) {
	b.ensureContour()
	b.elements = append(b.elements, QuadTo{Control: ctrl, Point: pt})
	b.current = pt
}

func (b *PathBuilder) cubicTo(c1, c2, pt Point) {
	b.ensureContour()
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	b.current = pt
}
